// internal/sequence/repeat.go
package sequence

import (
	"fmt"
	"strings"
)

// RepeatMode defines what happens when a track ends.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota // stop at the end of the queue
	RepeatAll                   // wrap to the first track
	RepeatOne                   // replay the current track
	repeatModeCount
)

// String returns the repeat mode name as used in config files and flags.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// Cycle returns the mode that follows m when the repeat key is pressed
// repeatedly: off -> all -> one -> off.
func (m RepeatMode) Cycle() RepeatMode {
	if m < 0 || m >= repeatModeCount {
		return RepeatOff
	}
	return (m + 1) % repeatModeCount
}

// ParseRepeatMode converts "off", "one" or "all" (any case) to a RepeatMode.
// An empty string parses as RepeatOff.
func ParseRepeatMode(s string) (RepeatMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "off", "none":
		return RepeatOff, nil
	case "all", "queue":
		return RepeatAll, nil
	case "one", "track":
		return RepeatOne, nil
	default:
		return RepeatOff, fmt.Errorf("%w: %q", ErrUnknownRepeatMode, s)
	}
}
