// Package notify shows the playing track as a freedesktop desktop
// notification.
package notify

import "time"

// Notification is one desktop notification.
type Notification struct {
	Summary    string
	Body       string
	Icon       string // image path, empty for none
	ReplacesID uint32 // 0 opens a new notification
	Timeout    time.Duration
	Transient  bool // low urgency and kept out of the server's history
}

// Notifier posts and withdraws notifications.
type Notifier interface {
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}
