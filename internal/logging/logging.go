// Package logging provides structured logging helpers shared across the
// application.
package logging

import (
	"io"
	"log/slog"
)

// NewStructuredLogger creates a slog.Logger writing text output to w at the
// given level. This is the logger used for request logging at the outermost
// layer of the middleware chain.
func NewStructuredLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SafeCloseWithLogging closes c and logs a warning on failure instead of
// swallowing the error. Intended for defer sites where the close error
// cannot change the outcome.
func SafeCloseWithLogging(c io.Closer, logger *slog.Logger, resource string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Warn("failed to close resource", "resource", resource, "error", err)
	}
}
