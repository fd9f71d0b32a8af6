package individual

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

func TestCreateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := portstest.NewStore().Individuals()
	owner := domain.NewUserID(uuid.New())

	res, err := NewCreate(repo).Execute(ctx, CreateInput{
		UserID:     owner,
		StartMonth: "2023-01",
		EndMonth:   "2023-06",
		Name:       "Budget tracker",
		Technologies: []domain.Technology{
			{Category: domain.CategoryLanguage, Name: "TypeScript", DurationMonths: 6},
			{Category: domain.CategoryLanguage, Name: " ", DurationMonths: 6},
		},
		Processes: []string{domain.PhaseImplementation},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Development.Technologies) != 1 || len(res.Development.Processes) != 1 {
		t.Fatalf("unexpected children: %+v", res.Development)
	}

	del := NewDelete(repo)
	stranger := project.Actor{UserID: domain.NewUserID(uuid.New())}
	if err := del.Execute(ctx, DeleteInput{Actor: stranger, ID: res.Development.ID}); !errors.Is(err, domerrors.ErrForbidden) {
		t.Errorf("stranger delete: got %v", err)
	}
	if err := del.Execute(ctx, DeleteInput{Actor: project.Actor{UserID: owner}, ID: res.Development.ID}); err != nil {
		t.Fatal(err)
	}
	if err := del.Execute(ctx, DeleteInput{Actor: project.Actor{UserID: owner}, ID: res.Development.ID}); !errors.Is(err, domerrors.ErrIndividualNotFound) {
		t.Errorf("second delete: got %v", err)
	}
}

func TestCreateRequiresName(t *testing.T) {
	_, err := NewCreate(portstest.NewStore().Individuals()).Execute(context.Background(), CreateInput{StartMonth: "2023-01", EndMonth: "2023-02"})
	if !errors.Is(err, domerrors.ErrMissingField) {
		t.Errorf("got %v", err)
	}
}
