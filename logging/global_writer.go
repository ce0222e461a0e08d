package logging

import (
	"io"
	"os"
	"sync"
)

// globalWriter is an io.Writer that delegates to an underlying writer,
// which can be swapped at runtime in a thread-safe manner.
type globalWriter struct {
	mu sync.RWMutex
	w  io.Writer
}

// Write implements the io.Writer interface.
func (gw *globalWriter) Write(p []byte) (n int, err error) {
	gw.mu.RLock()
	defer gw.mu.RUnlock()
	return gw.w.Write(p)
}

func (gw *globalWriter) Set(w io.Writer) io.Writer {
	gw.mu.Lock()
	defer gw.mu.Unlock()
	prev := gw.w
	gw.w = w
	return prev
}

var defaultGlobalWriter = &globalWriter{w: os.Stderr}

// SetGlobalOutput redirects the stderr sink of every logger and returns the
// previous destination. The progress display uses it to keep log lines from
// tearing its frame.
func SetGlobalOutput(w io.Writer) io.Writer {
	return defaultGlobalWriter.Set(w)
}

// GetGlobalOutput returns the shared stderr sink.
func GetGlobalOutput() io.Writer {
	return defaultGlobalWriter
}
