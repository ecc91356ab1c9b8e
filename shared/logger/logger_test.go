package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"kingdom/config"
	"kingdom/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestNew_JSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.LogFormat = logger.FormatJSON
	cfg.App.Name = "kingdom"

	var buf bytes.Buffer
	l := logger.New(&buf, cfg)
	l.Info().Str("room", "101").Msg("booked")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kingdom", entry["app"])
	assert.Equal(t, "101", entry["room"])
	assert.Equal(t, "booked", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	cfg := &config.Config{}

	var buf bytes.Buffer
	l := logger.New(&buf, cfg)
	l.Info().Msg("booked")

	assert.Contains(t, buf.String(), "booked")
	assert.False(t, json.Valid(buf.Bytes()))
	assert.NotContains(t, buf.String(), "app=")
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("test error"))

	assert.Contains(t, buf.String(), "test error")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		expected zerolog.Level
	}{
		{name: "trace", logLevel: "trace", expected: zerolog.TraceLevel},
		{name: "debug", logLevel: "debug", expected: zerolog.DebugLevel},
		{name: "warn", logLevel: "warn", expected: zerolog.WarnLevel},
		{name: "error", logLevel: "error", expected: zerolog.ErrorLevel},
		{name: "disabled", logLevel: "disabled", expected: zerolog.Disabled},
		{name: "invalid defaults to info", logLevel: "loud", expected: zerolog.InfoLevel},
		{name: "empty defaults to info", logLevel: "", expected: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)
			log.Logger = zerolog.Nop()

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestInit(t *testing.T) {
	restore(t)

	cfg := &config.Config{}
	cfg.Server.LogLevel = "warn"
	cfg.Server.LogFormat = logger.FormatJSON

	logger.Init(cfg)

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
