// Command create-admin registers a confirmed administrator account.
//
//	create-admin -username root -email root@example.com
//
// The password is read from ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email address")
	flag.Parse()
	password := os.Getenv("ADMIN_PASSWORD")
	if *username == "" || *email == "" || password == "" {
		flag.Usage()
		log.Fatal().Msg("username, email and ADMIN_PASSWORD are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	ctx := context.Background()
	stores, err := persistence.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer stores.Close()

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
	})
	res, err := auth.NewRegisterUser(stores.Users, hasher, nil).Execute(ctx, auth.RegisterUserInput{
		Username: *username,
		Email:    *email,
		Password: password,
		IsAdmin:  true,
		Active:   true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create admin")
	}
	log.Info().Str("user_id", res.User.ID.String()).Str("username", res.User.Username).Msg("admin created")
}
