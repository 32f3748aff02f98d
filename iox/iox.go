// Package iox provides I/O helpers for resource cleanup and byte accounting.
package iox

import (
	"io"
	"sync/atomic"
)

// DiscardClose closes c and discards the error.
// Use in defer statements where close errors are unactionable:
//
//	defer iox.DiscardClose(resp.Body)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc returns a cleanup function that closes c.
// Designed for t.Cleanup registration:
//
//	t.Cleanup(iox.CloseFunc(backend))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}

// CountingWriter forwards writes to W and counts the bytes accepted.
// N may be read from another goroutine while writes are in progress.
type CountingWriter struct {
	W io.Writer
	n atomic.Int64
}

// Write implements io.Writer.
func (c *CountingWriter) Write(p []byte) (int, error) {
	n, err := c.W.Write(p)
	c.n.Add(int64(n))
	return n, err
}

// N returns the number of bytes written so far.
func (c *CountingWriter) N() int64 {
	return c.n.Load()
}
