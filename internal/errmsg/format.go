// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Library operations
	OpLibraryScan Op = "scan music files"
	OpTagsRead    Op = "read file tags"

	// Queue operations
	OpQueueAdd    Op = "add to queue"
	OpQueueRemove Op = "remove from queue"
	OpQueueMove   Op = "move queue items"
	OpQueueUndo   Op = "undo queue change"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSkip  Op = "skip track"
	OpPlaybackSeek  Op = "seek"

	// Mode operations
	OpRepeatMode Op = "set repeat mode"

	// Configuration
	OpConfigLoad Op = "load configuration"

	// Initialization
	OpInitialize Op = "initialize application"
	OpMPRIS      Op = "start MPRIS service"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
