package player

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// ErrUnsupportedFormat is returned for files the player cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported format")

// outputRate is the speaker sample rate; tracks at other rates are resampled.
const outputRate = beep.SampleRate(44100)

const resampleQuality = 4

var (
	speakerOnce sync.Once
	errSpeaker  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		errSpeaker = speaker.Init(outputRate, outputRate.N(time.Second/10))
	})
	return errSpeaker
}

// Player plays audio files through the system speaker.
type Player struct {
	mu sync.Mutex

	state     State
	ctrl      *beep.Ctrl
	streamer  beep.StreamSeekCloser
	format    beep.Format
	file      *os.File
	trackInfo *TrackInfo

	// gen changes on every Play and Stop so that the end callback of a
	// replaced track is ignored.
	gen        uint64
	finishedCh chan struct{}
}

// New creates a stopped player. The speaker is initialised on first Play.
func New() *Player {
	return &Player{
		state:      Stopped,
		finishedCh: make(chan struct{}, 1),
	}
}

// Play stops the current track and starts path from the beginning.
func (p *Player) Play(path string) error {
	streamer, format, f, err := decodeFile(path)
	if err != nil {
		return err
	}
	if err := initSpeaker(); err != nil {
		streamer.Close()
		f.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	info, err := ReadTrackInfo(path)
	if err != nil {
		info = &TrackInfo{Path: path, Title: filepath.Base(path)}
	}
	info.Duration = format.SampleRate.D(streamer.Len())

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	// Drop a finish signal left by the previous track.
	select {
	case <-p.finishedCh:
	default:
	}

	var s beep.Streamer = streamer
	if format.SampleRate != outputRate {
		s = beep.Resample(resampleQuality, format.SampleRate, outputRate, streamer)
	}

	p.gen++
	gen := p.gen
	p.file = f
	p.streamer = streamer
	p.format = format
	p.trackInfo = info
	p.ctrl = &beep.Ctrl{Streamer: s}
	p.state = Playing

	// The callback runs with the speaker locked; finishing takes p.mu, so it
	// must not run inline.
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		go p.finished(gen)
	})))
	return nil
}

func (p *Player) finished(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return
	}
	p.releaseLocked()
	p.state = Stopped
	p.signalFinished()
}

func (p *Player) signalFinished() {
	select {
	case p.finishedCh <- struct{}{}:
	default:
	}
}

func (p *Player) releaseLocked() {
	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.ctrl = nil
	p.trackInfo = nil
}

// State returns the current state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// TrackInfo returns a copy of the loaded track's metadata, or nil.
func (p *Player) TrackInfo() *TrackInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.trackInfo == nil {
		return nil
	}
	info := *p.trackInfo
	return &info
}

// Duration returns the loaded track's length.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.trackInfo == nil {
		return 0
	}
	return p.trackInfo.Duration
}

// FinishedChan receives a value when a track plays to its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finishedCh
}
