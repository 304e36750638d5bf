// Package app is the bubbletea root model: it owns the track list, the
// navigator, the playback controller and the dispatcher, and runs every
// one of them on the event loop goroutine.
package app

import (
	"github.com/llehouerou/sift/internal/mpris"
	"github.com/llehouerou/sift/internal/player"
)

// PollMsg fires the playback position poll for one generation.
type PollMsg struct {
	Gen uint64
}

// RemoteMsg carries a desktop media command into the event loop.
type RemoteMsg struct {
	Command mpris.Command
}

// InfoMsg delivers the tag metadata of a loaded file.
type InfoMsg struct {
	Path string
	Info *player.Info
	Err  error
}

// DropMsg replaces the track list with the given paths, as a paste would.
type DropMsg struct {
	Text string
}
