package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busName  = "org.freedesktop.Notifications"
	busPath  = dbus.ObjectPath("/org/freedesktop/Notifications")
	appName  = "cadence"
	urgLow   = byte(0)
	noExpiry = int32(-1)
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the notification server on the session bus.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}
	return &busNotifier{obj: conn.Object(busName, busPath)}, nil
}

func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	if err := b.obj.Call(busName+".Notify", 0, n.args()...).Store(&id); err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (b *busNotifier) Close(id uint32) error {
	return b.obj.Call(busName+".CloseNotification", 0, id).Err
}

// args returns the Notify call arguments in wire order: app name, replaced
// id, icon, summary, body, actions, hints and timeout in milliseconds.
func (n Notification) args() []any {
	hints := map[string]dbus.Variant{
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Transient {
		hints["urgency"] = dbus.MakeVariant(urgLow)
		hints["transient"] = dbus.MakeVariant(true)
	}

	timeout := noExpiry
	if n.Timeout > 0 {
		timeout = int32(n.Timeout.Milliseconds())
	}
	return []any{appName, n.ReplacesID, n.Icon, n.Summary, n.Body, []string{}, hints, timeout}
}
