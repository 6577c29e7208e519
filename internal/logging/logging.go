// Package logging configures the zerolog logger used by the CLI.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup loads a .env file if one exists, configures the global logger to
// write to w and sets the level from LOGLEVEL. Every line carries run_id.
// It returns the run id.
func Setup(w io.Writer) string {
	// Load .env file if it exists
	envErr := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	} else {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	runID := uuid.NewString()
	log.Logger = zerolog.New(w).With().Timestamp().Str("run_id", runID).Logger()

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	level, ok := ParseLevel(levelStr)
	zerolog.SetGlobalLevel(level)
	if !ok {
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// report on the .env file only once logging is set up
	if envErr == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found; proceeding with existing environment variables.")
	}
	return runID
}

// ParseLevel maps a LOGLEVEL value to a zerolog level. An empty value means
// info. Unknown values return info and false.
func ParseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, true
	case "", "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "fatal":
		return zerolog.FatalLevel, true
	case "disabled":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
