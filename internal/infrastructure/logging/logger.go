// Package logging builds the root zerolog logger and reads back its rotated file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
)

// New returns a logger writing to stderr and to the rotated JSON file in cfg.File.
// The returned closer flushes and closes the file.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr}
	if cfg.File == "" {
		return zerolog.New(console).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	log := zerolog.New(zerolog.MultiLevelWriter(console, file)).Level(level).With().Timestamp().Logger()
	return log, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
