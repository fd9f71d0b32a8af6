// Package sqlite is a gorm-backed implementation of the repository ports for single-node and
// local use.
package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// Open connects to the SQLite database at dsn and migrates the schema.
func Open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	gLogger := logger.New(gormWriter{log: log}, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gLogger})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	err = gdb.AutoMigrate(
		&userModel{},
		&projectModel{}, &technologyModel{}, &processModel{},
		&individualModel{}, &individualTechnologyModel{}, &individualProcessModel{},
		&linkModel{}, &contactModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return gdb, nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
