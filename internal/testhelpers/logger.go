package testhelpers

import (
	"io"
	"log/slog"

	"github.com/myrjola/sixsplit/internal/logging"
)

// NewLogger creates a debug level logger writing to logSink such as the one from NewWriter.
func NewLogger(logSink io.Writer) *slog.Logger {
	return logging.NewLogger(logSink, slog.LevelDebug)
}
