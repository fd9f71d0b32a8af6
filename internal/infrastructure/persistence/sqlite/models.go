package sqlite

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	ID               uuid.UUID `gorm:"type:text;primaryKey"`
	Username         string    `gorm:"not null;uniqueIndex"`
	Email            string    `gorm:"not null;uniqueIndex"`
	PasswordHash     string    `gorm:"not null"`
	IsActive         bool      `gorm:"not null;default:false"`
	IsAdmin          bool      `gorm:"not null;default:false"`
	DisplayName      *string
	Age              *int
	Gender           *string
	NearestStation   *string
	ExperienceMonths *int
	Education        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Projects    []projectModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Individuals []individualModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Links       []linkModel       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (userModel) TableName() string { return "users" }

type projectModel struct {
	ID               uuid.UUID `gorm:"type:text;primaryKey"`
	UserID           uuid.UUID `gorm:"type:text;not null;index"`
	StartMonth       string    `gorm:"not null"`
	EndMonth         string    `gorm:"not null"`
	Industry         string
	Name             string `gorm:"not null"`
	Summary          string
	Responsibilities string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Technologies []technologyModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Processes    []processModel    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (projectModel) TableName() string { return "projects" }

type technologyModel struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey"`
	ProjectID      uuid.UUID `gorm:"type:text;not null;index"`
	Category       string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	DurationMonths int       `gorm:"not null;default:0"`
	Position       int       `gorm:"not null"`
}

func (technologyModel) TableName() string { return "technologies" }

type processModel struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:text;not null;index"`
	Name      string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
}

func (processModel) TableName() string { return "processes" }

type individualModel struct {
	ID         uuid.UUID `gorm:"type:text;primaryKey"`
	UserID     uuid.UUID `gorm:"type:text;not null;index"`
	StartMonth string    `gorm:"not null"`
	EndMonth   string    `gorm:"not null"`
	Name       string    `gorm:"not null"`
	Summary    string
	CreatedAt  time.Time

	Technologies []individualTechnologyModel `gorm:"foreignKey:IndividualID;constraint:OnDelete:CASCADE"`
	Processes    []individualProcessModel    `gorm:"foreignKey:IndividualID;constraint:OnDelete:CASCADE"`
}

func (individualModel) TableName() string { return "individual_developments" }

type individualTechnologyModel struct {
	ID             uuid.UUID `gorm:"type:text;primaryKey"`
	IndividualID   uuid.UUID `gorm:"type:text;not null;index"`
	Category       string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	DurationMonths int       `gorm:"not null;default:0"`
	Position       int       `gorm:"not null"`
}

func (individualTechnologyModel) TableName() string { return "individual_technologies" }

type individualProcessModel struct {
	ID           uuid.UUID `gorm:"type:text;primaryKey"`
	IndividualID uuid.UUID `gorm:"type:text;not null;index"`
	Name         string    `gorm:"not null"`
	Position     int       `gorm:"not null"`
}

func (individualProcessModel) TableName() string { return "individual_processes" }

type linkModel struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	UserID    uuid.UUID `gorm:"type:text;not null;index"`
	LinkCode  string    `gorm:"not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

func (linkModel) TableName() string { return "links" }

type contactModel struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Message   string    `gorm:"not null"`
	CreatedAt time.Time
}

func (contactModel) TableName() string { return "contacts" }
