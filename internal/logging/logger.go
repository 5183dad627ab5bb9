package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"rentals/internal/config"
)

// Init configures the global zerolog logger. Format "console" writes
// human-readable lines; anything else writes JSON.
func Init(cfg config.LoggingConfig, service, version string) zerolog.Logger {
	return InitWithWriter(cfg, service, version, os.Stdout)
}

// InitWithWriter is Init with an explicit output
func InitWithWriter(cfg config.LoggingConfig, service, version string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Logger()

	return log.Logger
}
