package testutil

import (
	"io"

	"github.com/rahulthapa9024/basic-app/internal/logger"
)

// MakeNoopLogger returns a Logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0, false)
}
