//go:build !windows

// Package stderr captures output that C audio libraries (ALSA) write
// straight to file descriptor 2, bypassing Go's os.Stderr. Captured lines are
// handed to the caller instead of interleaving with the player's output.
package stderr

import (
	"bufio"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

const bufferedLines = 100

// Capture holds a redirected stderr.
type Capture struct {
	orig  *os.File
	r, w  *os.File
	lines chan string
	done  chan struct{}
}

// Start redirects file descriptor 2 into a pipe.
// Call it before the audio output is initialised. On error, stderr is left
// untouched and the program can continue without capture.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	fd := int(os.Stderr.Fd())
	origFd, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(origFd)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		orig:  os.NewFile(uintptr(origFd), "stderr"),
		r:     r,
		w:     w,
		lines: make(chan string, bufferedLines),
		done:  make(chan struct{}),
	}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.done)
	defer close(c.lines)

	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// Channel full, drop message to avoid blocking
		}
	}
}

// Lines returns captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Original writes to the real stderr, bypassing capture. It is valid until
// Stop returns.
func (c *Capture) Original() io.Writer {
	return c.orig
}

// Stop restores the original stderr and waits for pending lines to be read.
func (c *Capture) Stop() error {
	err := unix.Dup2(int(c.orig.Fd()), int(os.Stderr.Fd()))
	c.w.Close()
	<-c.done
	c.r.Close()
	c.orig.Close()
	return err
}
