//go:build windows

// Package stderr provides a no-op implementation for Windows.
// Windows audio libraries don't produce the same stderr noise as ALSA.
package stderr

import (
	"io"
	"os"
)

// Capture is a no-op on Windows.
type Capture struct{}

// Start is a no-op on Windows.
func Start() (*Capture, error) {
	return &Capture{}, nil
}

// Lines returns a channel that never receives on Windows.
func (c *Capture) Lines() <-chan string {
	return nil
}

// Original returns os.Stderr.
func (c *Capture) Original() io.Writer {
	return os.Stderr
}

// Stop is a no-op on Windows.
func (c *Capture) Stop() error {
	return nil
}
