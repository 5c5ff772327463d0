package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber. Events are dropped
// when a channel's buffer is full.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	QueueEnded      <-chan QueueEnd
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	stateCh    chan StateChange
	trackCh    chan TrackChange
	positionCh chan PositionChange
	queueCh    chan QueueChange
	modeCh     chan ModeChange
	endCh      chan QueueEnd
	errorCh    chan ErrorEvent
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		trackCh:    make(chan TrackChange, eventBufferSize),
		positionCh: make(chan PositionChange, eventBufferSize),
		queueCh:    make(chan QueueChange, eventBufferSize),
		modeCh:     make(chan ModeChange, eventBufferSize),
		endCh:      make(chan QueueEnd, eventBufferSize),
		errorCh:    make(chan ErrorEvent, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.TrackChanged = s.trackCh
	s.PositionChanged = s.positionCh
	s.QueueChanged = s.queueCh
	s.ModeChanged = s.modeCh
	s.QueueEnded = s.endCh
	s.Error = s.errorCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// trySend delivers e without blocking.
func trySend[T any](ch chan T, e T) {
	select {
	case ch <- e:
	default:
	}
}

func (s *Subscription) sendState(e StateChange)       { trySend(s.stateCh, e) }
func (s *Subscription) sendTrack(e TrackChange)       { trySend(s.trackCh, e) }
func (s *Subscription) sendPosition(e PositionChange) { trySend(s.positionCh, e) }
func (s *Subscription) sendQueue(e QueueChange)       { trySend(s.queueCh, e) }
func (s *Subscription) sendMode(e ModeChange)         { trySend(s.modeCh, e) }
func (s *Subscription) sendEnd(e QueueEnd)            { trySend(s.endCh, e) }
func (s *Subscription) sendError(e ErrorEvent)        { trySend(s.errorCh, e) }
