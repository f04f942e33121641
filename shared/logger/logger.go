package logger

import (
	"drivingschool/config"
	"drivingschool/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Production writes JSON lines,
// every other environment a human readable console.
func Init(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if cfg.Server.Env == constant.ServerEnvProduction {
		output = os.Stdout
	}

	log.Logger = zerolog.New(output).With().Timestamp().Str("app", cfg.App.Name).Logger()

	SetLogLevel(cfg.Server.LogLevel)
}

// SetLogLevel falls back to trace when level is empty or unknown.
func SetLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.TraceLevel
		log.Trace().Str("loglevel", parsed.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", parsed.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(parsed)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}
