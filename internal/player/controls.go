package player

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback and releases the track.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.state == Stopped {
		return
	}
	speaker.Clear()
	p.releaseLocked()
	p.state = Stopped
	p.gen++
}

// Pause pauses playback.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanPause() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused playback.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.CanResume() || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Toggle toggles between playing and paused states.
func (p *Player) Toggle() {
	switch p.State() {
	case Playing:
		p.Pause()
	case Paused:
		p.Resume()
	case Stopped:
	}
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	n := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(n)
}

// Seek moves the position by delta. Seeking past the end finishes the track.
func (p *Player) Seek(delta time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	speaker.Lock()
	target := p.streamer.Position() + p.format.SampleRate.N(delta)
	speaker.Unlock()
	return p.seekLocked(target)
}

// SeekTo moves to an absolute position.
func (p *Player) SeekTo(position time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return nil
	}
	return p.seekLocked(p.format.SampleRate.N(position))
}

func (p *Player) seekLocked(target int) error {
	if target >= p.streamer.Len() {
		speaker.Clear()
		p.releaseLocked()
		p.state = Stopped
		p.gen++
		p.signalFinished()
		return nil
	}
	speaker.Lock()
	err := p.streamer.Seek(max(target, 0))
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek to sample %d: %w", target, err)
	}
	return nil
}
