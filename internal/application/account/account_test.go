package account

import (
	"context"
	"errors"
	"testing"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

func seed(t *testing.T, store *portstest.Store, username, email string) *domain.User {
	t.Helper()
	res, err := auth.NewRegisterUser(store.Users(), portstest.PlainHasher{}, nil).Execute(context.Background(),
		auth.RegisterUserInput{Username: username, Email: email, Password: "pw", Active: true})
	if err != nil {
		t.Fatal(err)
	}
	return res.User
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	a := seed(t, store, "a", "a@example.com")
	seed(t, store, "b", "b@example.com")
	uc := NewUpdateAccount(store.Users(), portstest.PlainHasher{})

	if _, err := uc.Execute(ctx, UpdateAccountInput{UserID: a.ID, Username: "b"}); !errors.Is(err, domerrors.ErrUserExists) {
		t.Errorf("taken username: got %v", err)
	}
	if _, err := uc.Execute(ctx, UpdateAccountInput{UserID: a.ID, Email: "b@example.com"}); !errors.Is(err, domerrors.ErrEmailTaken) {
		t.Errorf("taken email: got %v", err)
	}

	res, err := uc.Execute(ctx, UpdateAccountInput{UserID: a.ID, Username: " alice ", Password: "new"})
	if err != nil {
		t.Fatal(err)
	}
	if res.User.Username != "alice" || res.User.Email != "a@example.com" {
		t.Errorf("unexpected user %+v", res.User)
	}
	stored, _ := store.Users().GetByID(ctx, a.ID)
	if stored.PasswordHash != "plain:new" {
		t.Errorf("password hash = %q", stored.PasswordHash)
	}

	res, err = uc.Execute(ctx, UpdateAccountInput{UserID: a.ID})
	if err != nil {
		t.Fatal(err)
	}
	stored, _ = store.Users().GetByID(ctx, a.ID)
	if stored.PasswordHash != "plain:new" || stored.Username != "alice" {
		t.Errorf("empty input must not change anything: %+v", stored)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	u := seed(t, store, "a", "a@example.com")
	uc := NewUpdateProfile(store.Users())

	neg := -1
	if _, err := uc.Execute(ctx, UpdateProfileInput{UserID: u.ID, Profile: domain.Profile{Age: &neg}}); !errors.Is(err, domerrors.ErrInvalidNumber) {
		t.Errorf("negative age: got %v", err)
	}

	name, exp := "Taro", 30
	if _, err := uc.Execute(ctx, UpdateProfileInput{UserID: u.ID, Profile: domain.Profile{DisplayName: &name, ExperienceMonths: &exp}}); err != nil {
		t.Fatal(err)
	}
	stored, _ := store.Users().GetByID(ctx, u.ID)
	if stored.Profile.Name() != "Taro" || stored.Profile.ExperienceText() != "2 years 6 months" {
		t.Errorf("unexpected profile %+v", stored.Profile)
	}
	if stored.Profile.GenderText() != domain.NotSpecified {
		t.Errorf("gender = %q", stored.Profile.GenderText())
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	u := seed(t, store, "a", "a@example.com")
	uc := NewDeleteAccount(store.Users())
	if err := uc.Execute(ctx, DeleteAccountInput{UserID: u.ID}); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.Users().GetByID(ctx, u.ID); got != nil {
		t.Error("user still stored")
	}
	if err := uc.Execute(ctx, DeleteAccountInput{UserID: u.ID}); !errors.Is(err, domerrors.ErrUserNotFound) {
		t.Errorf("second delete: got %v", err)
	}
}
