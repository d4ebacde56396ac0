// Package log builds the process-wide zerolog logger.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns the root logger for the given environment: human-readable
// console output in development, plain JSON in production.
func New(environment string) zerolog.Logger {
	var logger zerolog.Logger
	if environment == "production" {
		logger = zerolog.New(os.Stdout)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	return logger.With().
		Timestamp().
		Str("env", environment).
		Logger()
}
