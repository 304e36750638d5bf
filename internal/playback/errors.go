package playback

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingLoaded is returned by Play before a successful Load.
	ErrNothingLoaded = errors.New("nothing loaded")
	// ErrNotPlaying is returned by Pause outside the Playing state.
	ErrNotPlaying = errors.New("not playing")
	// ErrNoDuration is returned by Step when no duration is known.
	ErrNoDuration = errors.New("no duration")
	// ErrNilTrack is returned by Load when given no track.
	ErrNilTrack = errors.New("nil track")
)

// LoadError reports a backend failure to open or start a file.
type LoadError struct {
	Op   string // "open" or "play"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
