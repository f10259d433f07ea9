// Package testhelpers wires test output into the loggers used by the packages under test.
package testhelpers

import (
	"io"
	"strings"
	"sync"
	"testing"
)

// Writer is an io.Writer that forwards each write to t.Log, so logs only show for failing tests.
type Writer struct {
	t    testing.TB
	mu   sync.Mutex
	done bool
}

// NewWriter creates a Writer bound to t. Writes after t has finished are dropped.
func NewWriter(t testing.TB) io.Writer {
	w := &Writer{t: t, mu: sync.Mutex{}, done: false}
	t.Cleanup(func() {
		w.mu.Lock()
		w.done = true
		w.mu.Unlock()
	})
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.done {
		return len(p), nil
	}
	if output := strings.TrimSuffix(string(p), "\n"); output != "" {
		w.t.Log(output)
	}
	return len(p), nil
}
