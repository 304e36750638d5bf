package playback

// State is the playback state of the controller.
//
// Transitions:
//
//	┌──────────┐      play       ┌──────────┐
//	│  Stopped │ ───────────────▶│  Playing │◀──┐
//	└──────────┘                 └──────────┘   │
//	     ▲  ▲                         │ │       │ play
//	     │  │ stop / end of track     │ │ pause │
//	     │  └─────────────────────────┘ ▼       │
//	     │           stop            ┌──────────┐
//	     └───────────────────────────│  Paused  │
//	                                 └──────────┘
//
// Stop is accepted in every state; Stopped -> Stopped is a no-op.
// Pause is only accepted from Playing.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a track is playing or paused.
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Reason tells why a state change happened.
type Reason int

const (
	// ReasonExplicit is a change requested through the controller API.
	ReasonExplicit Reason = iota
	// ReasonFinished is the autonomous stop at the natural end of a track.
	ReasonFinished
	// ReasonReplaced is the stop caused by loading another track.
	ReasonReplaced
)

func (r Reason) String() string {
	switch r {
	case ReasonExplicit:
		return "explicit"
	case ReasonFinished:
		return "finished"
	case ReasonReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}
