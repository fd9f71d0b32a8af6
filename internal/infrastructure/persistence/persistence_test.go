package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
)

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	stores, err := Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer stores.Close()
	if err := stores.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
	if u, err := stores.Users.GetByUsername(ctx, "nobody"); err != nil || u != nil {
		t.Errorf("empty store lookup: %v %+v", err, u)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"}, zerolog.Nop()); err == nil {
		t.Error("expected error for unknown driver")
	}
}
