// Package logging constructs the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable output in DEV and JSON
// everywhere else.
func New(env, appName string) zerolog.Logger {
	var w io.Writer = os.Stdout
	if env == "DEV" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().
		Timestamp().
		Str("app", appName).
		Logger()
}
