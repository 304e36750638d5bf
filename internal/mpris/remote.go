// Package mpris exposes the player on the MPRIS D-Bus interface so media
// keys and desktop widgets can drive it.
//
// D-Bus calls arrive on foreign goroutines, so the adapter never touches the
// playback controller. Commands go through a Remote into the UI loop and
// properties are read from the last published Status.
package mpris

import (
	"sync/atomic"
	"time"

	"github.com/llehouerou/sift/internal/playback"
)

// CommandKind names a remote request.
type CommandKind int

const (
	CmdPlay CommandKind = iota
	CmdPause
	CmdPlayPause
	CmdStop
	CmdNext
	CmdPrevious
	CmdSeek        // relative, Offset
	CmdSetPosition // absolute, Offset
	CmdSetVolume   // Volume
)

// Command is a request from the desktop.
type Command struct {
	Kind   CommandKind
	Offset time.Duration
	Volume float64
}

// Remote delivers commands to the owner of the controller.
type Remote interface {
	Send(Command)
}

// RemoteFunc adapts a function to Remote.
type RemoteFunc func(Command)

// Send calls f.
func (f RemoteFunc) Send(c Command) { f(c) }

// Status is what the desktop sees of the player.
type Status struct {
	State    playback.State
	Path     string
	Title    string
	Artist   string
	Album    string
	Rating   int
	Length   time.Duration
	Position time.Duration
	Tracks   int
	Volume   float64
}

type status struct {
	v atomic.Pointer[Status]
}

func (s *status) load() Status {
	if p := s.v.Load(); p != nil {
		return *p
	}
	return Status{}
}

func (s *status) store(st Status) { s.v.Store(&st) }
