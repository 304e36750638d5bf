// Package dispatch turns key presses into calls on the navigator, the
// playback controller and the current track.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/sift/internal/keymap"
	"github.com/llehouerou/sift/internal/navigator"
	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/track"
)

// ErrUnhandled is returned by New when a bound action has no handler.
var ErrUnhandled = errors.New("no handler for action")

// Hooks are the callbacks the dispatcher needs from its owner. Any may be nil.
type Hooks struct {
	// Quit is called by the quit action.
	Quit func()
	// Changed is called after an action edits a track's rating, tags or verdict.
	Changed func(*track.Track)
}

// Dispatcher owns the fixed registry of bound actions.
type Dispatcher struct {
	table    *keymap.Table
	nav      *navigator.Navigator
	ctrl     *playback.Controller
	hooks    Hooks
	registry map[keymap.Key]func() error
}

// New binds every entry of table to its handler. It fails if an action in
// the table has no handler.
func New(table *keymap.Table, nav *navigator.Navigator, ctrl *playback.Controller, hooks Hooks) (*Dispatcher, error) {
	d := &Dispatcher{
		table:    table,
		nav:      nav,
		ctrl:     ctrl,
		hooks:    hooks,
		registry: make(map[keymap.Key]func() error),
	}
	for _, b := range table.Bindings() {
		fn := d.handler(b.Action)
		if fn == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnhandled, b.Action)
		}
		d.registry[b.Key] = fn
	}
	return d, nil
}

func (d *Dispatcher) handler(a keymap.Action) func() error {
	switch a.Name {
	case keymap.Quit:
		return d.quit
	case keymap.PlayNext:
		return func() error { return d.playRelative(1) }
	case keymap.PlayPrevious:
		return func() error { return d.playRelative(-1) }
	case keymap.SeekForward:
		return func() error { return d.seek(a.Seconds) }
	case keymap.SeekBackward:
		return func() error { return d.seek(-a.Seconds) }
	case keymap.TogglePlayPause:
		return d.toggle
	case keymap.Stop:
		return func() error { d.ctrl.Stop(); return nil }
	case keymap.VolumeUp:
		return d.volume(a.Percent)
	case keymap.VolumeDown:
		return d.volume(-a.Percent)
	case keymap.IncrementRating:
		return d.editCurrent(func(t *track.Track) error {
			t.IncrementRating()
			return nil
		})
	case keymap.SetTag:
		tag := a.Tag
		return d.editCurrent(func(t *track.Track) error { return t.ToggleTag(tag) })
	case keymap.MoveToTrash:
		return d.editCurrent(toggleVerdict(track.VerdictTrash))
	case keymap.KeepFile:
		return d.editCurrent(toggleVerdict(track.VerdictKeep))
	}
	return nil
}

// Resolve returns the action bound to k.
func (d *Dispatcher) Resolve(k keymap.Key) (keymap.Action, bool) {
	return d.table.Resolve(k)
}

// Dispatch runs the action bound to k. Unbound keys report false and no error.
func (d *Dispatcher) Dispatch(k keymap.Key) (bool, error) {
	fn, ok := d.registry[k]
	if !ok {
		return false, nil
	}
	a, _ := d.table.Resolve(k)
	log.Debug().Str("key", string(k)).Str("action", a.String()).Msg("dispatch")
	return true, fn()
}

// DispatchTerminal resolves a terminal key string and dispatches it.
func (d *Dispatcher) DispatchTerminal(s string) (bool, error) {
	k, ok := d.table.FromTerminal(s)
	if !ok {
		return false, nil
	}
	return d.Dispatch(k)
}

// Perform runs a, bound or not. Remote controls use it.
func (d *Dispatcher) Perform(a keymap.Action) error {
	fn := d.handler(a)
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrUnhandled, a)
	}
	log.Debug().Str("action", a.String()).Msg("perform")
	return fn()
}

// PlayIndex selects the track at i, loads it and plays it.
func (d *Dispatcher) PlayIndex(i int) error {
	d.nav.Select(navigator.ToIndex(i))
	return d.PlayCurrent()
}

// PlayCurrent loads and plays the navigator's current track.
func (d *Dispatcher) PlayCurrent() error {
	t := d.nav.Current()
	if t == nil {
		return nil
	}
	if err := d.ctrl.Load(t); err != nil {
		return err
	}
	return d.ctrl.Play()
}

func (d *Dispatcher) playRelative(delta int) error {
	d.nav.Select(navigator.By(delta))
	return d.PlayCurrent()
}

func (d *Dispatcher) seek(seconds int) error {
	if d.ctrl.Loaded() == nil {
		return nil
	}
	return d.ctrl.Step(seconds)
}

// toggle plays the navigator's current track when it is not the loaded
// one, and otherwise toggles between playing and paused.
func (d *Dispatcher) toggle() error {
	cur := d.nav.Current()
	if cur == nil && d.ctrl.Loaded() == nil {
		d.nav.Select(navigator.By(1))
		cur = d.nav.Current()
	}
	if cur != nil && cur != d.ctrl.Loaded() {
		if err := d.ctrl.Load(cur); err != nil {
			return err
		}
		return d.ctrl.Play()
	}
	return d.ctrl.Toggle()
}

func (d *Dispatcher) volume(percent int) func() error {
	return func() error {
		d.ctrl.StepVolume(float64(percent) / 100)
		return nil
	}
}

func (d *Dispatcher) quit() error {
	if d.hooks.Quit != nil {
		d.hooks.Quit()
	}
	return nil
}

// editCurrent applies fn to the current track. With no selection it does
// nothing.
func (d *Dispatcher) editCurrent(fn func(*track.Track) error) func() error {
	return func() error {
		t := d.nav.Current()
		if t == nil {
			return nil
		}
		if err := fn(t); err != nil {
			return err
		}
		if d.hooks.Changed != nil {
			d.hooks.Changed(t)
		}
		return nil
	}
}

func toggleVerdict(v track.Verdict) func(*track.Track) error {
	return func(t *track.Track) error {
		if t.Verdict() == v {
			t.SetVerdict(track.VerdictNone)
		} else {
			t.SetVerdict(v)
		}
		return nil
	}
}
