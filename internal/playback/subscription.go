package playback

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged    <-chan StateChange
	PositionChanged <-chan Snapshot
	TrackLoaded     <-chan TrackLoaded
	Done            <-chan struct{}

	stateCh    chan StateChange
	positionCh chan Snapshot
	loadedCh   chan TrackLoaded
	doneCh     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:    make(chan StateChange, eventBufferSize),
		positionCh: make(chan Snapshot, eventBufferSize),
		loadedCh:   make(chan TrackLoaded, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.PositionChanged = s.positionCh
	s.TrackLoaded = s.loadedCh
	s.Done = s.doneCh
	return s
}

func (s *Subscription) close() {
	close(s.doneCh)
}

// Sends never block; events are dropped when a subscriber falls behind.

func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}

func (s *Subscription) sendPosition(e Snapshot) {
	select {
	case s.positionCh <- e:
	default:
	}
}

func (s *Subscription) sendLoaded(e TrackLoaded) {
	select {
	case s.loadedCh <- e:
	default:
	}
}
