// Package cli implements the swipecard command-line interface.
//
// The CLI finds numbered illustrations in a directory, looks up their title
// and tagline in a CSV file and writes one finished card per illustration.
// It is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - generate: Compose cards for every illustration in a directory
//   - layout: Print the computed boxes of a single card
//   - profiles: List the available card profiles
//   - fonts: Show which font files the profile resolves to
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context and every generate run carries a short run
// id so that interleaved worker output can be told apart.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Done (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// newRunID returns a short identifier for one generate run.
func newRunID() string {
	return uuid.New().String()[:8]
}

// logHooks writes observability events to the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnCardStart(_ context.Context, id string) {
	h.logger.Debug("card start", "id", id)
}

func (h logHooks) OnLayoutComplete(_ context.Context, id string, shrinks int, tight bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout done", "id", id, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout done", "id", id, "shrinks", shrinks, "tight", tight, "duration", d)
}

func (h logHooks) OnCardComplete(_ context.Context, id, outcome string, d time.Duration, _ error) {
	h.logger.Debug("card done", "id", id, "outcome", outcome, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
