package retention

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

func addUser(t *testing.T, store *portstest.Store, name string, active bool, age time.Duration) domain.UserID {
	t.Helper()
	created := time.Now().Add(-age)
	u := &domain.User{
		ID:        domain.NewUserID(uuid.New()),
		Username:  name,
		Email:     name + "@example.com",
		IsActive:  active,
		CreatedAt: created,
		UpdatedAt: created,
	}
	if err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u.ID
}

func TestRunPurgeUnconfirmedUsers(t *testing.T) {
	ctx := context.Background()
	store := portstest.NewStore()
	day := 24 * time.Hour
	stale := addUser(t, store, "stale", false, 10*day)
	fresh := addUser(t, store, "fresh", false, time.Hour)
	confirmed := addUser(t, store, "confirmed", true, 30*day)

	n, err := RunPurgeUnconfirmedUsers(ctx, store.Users(), 0)
	if err != nil || n != 0 {
		t.Fatalf("disabled run: n=%d err=%v", n, err)
	}

	n, err = RunPurgeUnconfirmedUsers(ctx, store.Users(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("purged %d, want 1", n)
	}
	if u, _ := store.Users().GetByID(ctx, stale); u != nil {
		t.Error("stale unconfirmed user survived")
	}
	for _, id := range []domain.UserID{fresh, confirmed} {
		if u, _ := store.Users().GetByID(ctx, id); u == nil {
			t.Errorf("user %s should remain", id)
		}
	}
}
