package playback

import "time"

// Emitters are called with s.mu held; sends never block.

func (s *serviceImpl) broadcast(fn func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func (s *serviceImpl) emitState(prev, curr State) {
	if prev == curr {
		return
	}
	e := StateChange{Previous: prev, Current: curr}
	s.broadcast(func(sub *Subscription) { sub.sendState(e) })
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
}

func (s *serviceImpl) emitPosition(pos time.Duration) {
	e := PositionChange{Position: pos}
	s.broadcast(func(sub *Subscription) { sub.sendPosition(e) })
}

func (s *serviceImpl) emitQueueLocked() {
	e := QueueChange{
		Tracks: fromPlaylistTracks(s.queue.Tracks()),
		Index:  s.queue.CurrentIndex(),
	}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}

func (s *serviceImpl) emitModeLocked() {
	e := ModeChange{RepeatMode: s.queue.RepeatMode(), Shuffle: s.queue.Shuffle()}
	s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}

func (s *serviceImpl) emitEnd(e QueueEnd) {
	s.broadcast(func(sub *Subscription) { sub.sendEnd(e) })
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}
