// Package log is a thin zerolog.Logger construction helper used by
// cmd/sandwichctl for a console-friendly default logger; the cache,
// cluster and ratelimit packages do not import it. Grounded on gateway/manager.go's
// `log zerolog.Logger` field and session.go's `log *zerolog.Logger`.
package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-writer zerolog.Logger at the given level, matching
// the teacher's own development-mode logger construction rather than the
// bare JSON-to-stdout default zerolog ships with.
func New(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Component returns a child logger tagging every event with a "component"
// field, so log lines from the cache, a cluster's shards, and the rate
// limiter's bucket workers stay distinguishable once merged onto one
// writer.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
