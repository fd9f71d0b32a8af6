package admin

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

func newCreateUser(store *portstest.Store) *CreateUser {
	register := auth.NewRegisterUser(store.Users(), portstest.PlainHasher{}, nil)
	return NewCreateUser(register, store.Users())
}

func TestSearchUsersPagination(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	create := newCreateUser(store)
	for i := 0; i < 23; i++ {
		_, err := create.Execute(ctx, CreateUserInput{
			Username: fmt.Sprintf("user%02d", i),
			Email:    fmt.Sprintf("user%02d@example.com", i),
			Password: "pw",
			IsAdmin:  i == 0,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	search := NewSearchUsers(store.Users())

	page, err := search.Execute(ctx, ports.UserFilter{}, 3)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 23 || page.Pages != 3 || page.CurrentPage != 3 || len(page.Users) != 3 {
		t.Errorf("unexpected page %+v (len %d)", page.PageInfo, len(page.Users))
	}

	page, _ = search.Execute(ctx, ports.UserFilter{}, 0)
	if page.CurrentPage != 1 || len(page.Users) != PerPage {
		t.Errorf("page 0 should act as page 1: %+v", page.PageInfo)
	}

	page, err = search.Execute(ctx, ports.UserFilter{}, math.MaxInt)
	if err != nil {
		t.Fatal(err)
	}
	if page.CurrentPage != ports.MaxPage || len(page.Users) != 0 || page.Total != 23 {
		t.Errorf("huge page should clamp and come back empty: %+v", page.PageInfo)
	}

	yes := true
	page, _ = search.Execute(ctx, ports.UserFilter{IsAdmin: &yes}, 1)
	if page.Total != 1 || page.Users[0].User.Username != "user00" {
		t.Errorf("admin filter: %+v", page.PageInfo)
	}

	page, _ = search.Execute(ctx, ports.UserFilter{Username: "USER1"}, 1)
	if page.Total != 10 {
		t.Errorf("substring filter total = %d, want 10", page.Total)
	}
}

func TestCreateUserIsActive(t *testing.T) {
	store := portstest.NewStore()
	station := "Shibuya"
	u, err := newCreateUser(store).Execute(context.Background(), CreateUserInput{
		Username: "admin", Email: "admin@example.com", Password: "pw", IsAdmin: true,
		Profile: domain.Profile{NearestStation: &station},
	})
	if err != nil {
		t.Fatal(err)
	}
	stored, _ := store.Users().GetByID(context.Background(), u.ID)
	if !stored.IsActive || !stored.IsAdmin || stored.Profile.StationText() != "Shibuya" {
		t.Errorf("unexpected stored user %+v", stored)
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	create := newCreateUser(store)
	a, _ := create.Execute(ctx, CreateUserInput{Username: "a", Email: "a@example.com", Password: "pw"})
	_, _ = create.Execute(ctx, CreateUserInput{Username: "b", Email: "b@example.com", Password: "pw"})
	update := NewUpdateUser(store.Users())

	if _, err := update.Execute(ctx, UpdateUserInput{UserID: a.ID, Username: "a", Email: "b@example.com"}); !errors.Is(err, domerrors.ErrEmailTaken) {
		t.Errorf("taken email: got %v", err)
	}
	if _, err := update.Execute(ctx, UpdateUserInput{UserID: a.ID, Username: "b", Email: "a@example.com"}); !errors.Is(err, domerrors.ErrUserExists) {
		t.Errorf("taken username: got %v", err)
	}
	u, err := update.Execute(ctx, UpdateUserInput{UserID: a.ID, Username: "alice", Email: "a@example.com", IsAdmin: true})
	if err != nil {
		t.Fatal(err)
	}
	if u.Username != "alice" || !u.IsAdmin {
		t.Errorf("unexpected user %+v", u)
	}
	if _, err := update.Execute(ctx, UpdateUserInput{UserID: domain.NewUserID(uuid.New()), Username: "x", Email: "x@example.com"}); !errors.Is(err, domerrors.ErrUserNotFound) {
		t.Errorf("unknown user: got %v", err)
	}
}
