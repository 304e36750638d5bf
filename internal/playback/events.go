package playback

import (
	"time"

	"github.com/llehouerou/sift/internal/track"
)

// StateChange is emitted on every state transition.
type StateChange struct {
	Previous State
	Current  State
	Reason   Reason
	Track    *track.Track
}

// Finished reports whether the change is the natural end of a track.
func (e StateChange) Finished() bool {
	return e.Current == StateStopped && e.Reason == ReasonFinished
}

// Snapshot is a read-only view of the playhead, published by the poll and
// after seeks.
type Snapshot struct {
	Position float64 // fraction in [0, 1]
	Time     time.Duration
	Duration time.Duration
}

// TrackLoaded is emitted after a successful Load.
type TrackLoaded struct {
	Track *track.Track
}
