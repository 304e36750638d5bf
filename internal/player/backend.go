// Package player is the audio backend: it opens, decodes and renders media
// files and answers position queries.
package player

import (
	"errors"
	"time"
)

// ErrUnsupportedFormat is returned by Open for files no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Handle identifies an opened media file.
type Handle interface {
	Path() string
}

// Backend is the contract the playback controller drives.
// Positions are fractions in [0, 1]. The volume is a level in [0, 1]
// shared by every handle.
type Backend interface {
	Open(path string) (Handle, error)
	Play(h Handle) error
	Pause(h Handle)
	Stop(h Handle)
	IsPlaying(h Handle) bool
	Position(h Handle) float64
	SetPosition(h Handle, pos float64)
	Time(h Handle) time.Duration
	Duration(h Handle) time.Duration
	Release(h Handle)
	SetVolume(level float64)
	Volume() float64
}

// clampFraction bounds pos to [0, 1].
func clampFraction(pos float64) float64 {
	return max(0, min(pos, 1))
}
