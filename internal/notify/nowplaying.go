package notify

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/library"
	"github.com/llehouerou/cadence/internal/sequence"
)

// Track change notifications stay up briefly and never pile up.
const nowPlayingTimeout = 5 * time.Second

// NowPlaying posts one notification per track change. Each notification
// replaces the previous one, so only the current track stays on screen.
type NowPlaying struct {
	notifier Notifier
	lastID   uint32
}

// NewNowPlaying wraps n.
func NewNowPlaying(n Notifier) *NowPlaying {
	return &NowPlaying{notifier: n}
}

// Track announces a track.
func (p *NowPlaying) Track(path, title, artist, album string, duration time.Duration) error {
	body := strings.Join(lo.Compact([]string{artist, album}), " · ")
	if duration > 0 {
		body = strings.Join(lo.Compact([]string{body, sequence.FormatTime(duration)}), "\n")
	}

	id, err := p.notifier.Notify(Notification{
		Summary:    title,
		Body:       body,
		Icon:       library.FindCover(path),
		ReplacesID: p.lastID,
		Timeout:    nowPlayingTimeout,
		Transient:  true,
	})
	if err != nil {
		return err
	}
	if id != 0 {
		p.lastID = id
	}
	return nil
}

// Clear closes the current notification, if any.
func (p *NowPlaying) Clear() error {
	if p.lastID == 0 {
		return nil
	}
	id := p.lastID
	p.lastID = 0
	return p.notifier.Close(id)
}
