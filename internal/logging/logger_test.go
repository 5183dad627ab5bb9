package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"rentals/internal/config"
)

func TestInitWithWriter_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := InitWithWriter(config.LoggingConfig{Level: "warn", Format: "json"}, "rentals", "test", &buf)

	logger.Info().Msg("dropped")
	logger.Warn().Str("listing_id", "kh-1001").Msg("kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"listing_id":"kh-1001"`)
	assert.Contains(t, out, `"service":"rentals"`)
	assert.Contains(t, out, `"version":"test"`)
}

func TestInitWithWriter_ConsoleAndBadLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	logger := InitWithWriter(config.LoggingConfig{Level: "chatty", Format: "console"}, "rentals", "test", &buf)

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	logger.Info().Msg("server ready")
	assert.Contains(t, buf.String(), "server ready")
	assert.NotContains(t, buf.String(), `"message"`)
}
