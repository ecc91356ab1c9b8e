package logger

import (
	"io"
	"os"
	"time"

	"kingdom/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Init configures the global logger from the server settings: output format, level and
// the app name attached to every entry.
func Init(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(os.Stdout, cfg)
	SetLogLevel(cfg)
}

// New builds a logger writing to w in the configured format. Anything other than json
// falls back to the console writer.
func New(w io.Writer, cfg *config.Config) zerolog.Logger {
	output := w
	if cfg.Server.LogFormat != FormatJSON {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("app", cfg.App.Name)
	}

	return ctx.Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
		log.Debug().Str("loglevel", level.String()).Msg("no usable log level configured, using default")
	}

	zerolog.SetGlobalLevel(level)
}
