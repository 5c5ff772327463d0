package notify

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNowPlaying_SessionBus(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n, err := New()
	require.NoError(t, err)
	np := NewNowPlaying(n)

	require.NoError(t, np.Track("/nonexistent/a.mp3", "Cadence test", "", "", 0))
	first := np.lastID
	require.NotZero(t, first)

	require.NoError(t, np.Track("/nonexistent/b.mp3", "Cadence test 2", "", "", 0))
	require.Equal(t, first, np.lastID, "the server keeps the replaced id")

	require.NoError(t, np.Clear())
}
