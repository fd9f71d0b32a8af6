package admin

import (
	"context"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
	Profile  domain.Profile
}

// CreateUser registers an already-confirmed account from the admin console.
type CreateUser struct {
	register *auth.RegisterUser
	users    ports.UserRepository
}

func NewCreateUser(register *auth.RegisterUser, users ports.UserRepository) *CreateUser {
	return &CreateUser{register: register, users: users}
}

func (uc *CreateUser) Execute(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	res, err := uc.register.Execute(ctx, auth.RegisterUserInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		IsAdmin:  input.IsAdmin,
		Active:   true,
	})
	if err != nil {
		return nil, err
	}
	user := res.User
	user.Profile = input.Profile
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateUserInput struct {
	UserID   domain.UserID
	Username string
	Email    string
	IsAdmin  bool
	Profile  domain.Profile
}

// UpdateUser lets an admin rewrite identity, admin flag and profile of any user.
type UpdateUser struct {
	users ports.UserRepository
}

func NewUpdateUser(users ports.UserRepository) *UpdateUser {
	return &UpdateUser{users: users}
}

func (uc *UpdateUser) Execute(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" {
		return nil, domerrors.ErrMissingField
	}
	if username != user.Username {
		other, err := uc.users.GetByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domerrors.ErrUserExists
		}
	}
	if email != user.Email {
		other, err := uc.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domerrors.ErrEmailTaken
		}
	}
	user.Username = username
	user.Email = email
	user.IsAdmin = input.IsAdmin
	user.Profile = input.Profile
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UserDetail is a user with the share link currently active for them.
type UserDetail struct {
	User       *domain.User
	ActiveLink *domain.Link
}

// GetUser loads one user for the admin detail page.
type GetUser struct {
	users ports.UserRepository
	links ports.LinkRepository
}

func NewGetUser(users ports.UserRepository, links ports.LinkRepository) *GetUser {
	return &GetUser{users: users, links: links}
}

func (uc *GetUser) Execute(ctx context.Context, id domain.UserID) (*UserDetail, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	link, err := uc.links.GetActiveByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserDetail{User: user, ActiveLink: link}, nil
}
