// Package playback drives the audio backend through the Stopped, Playing
// and Paused states and publishes what is happening to subscribers.
//
// A Controller is owned by a single event loop and is not safe for
// concurrent use. Subscriptions may be read from any goroutine.
package playback

import (
	"time"

	"github.com/llehouerou/sift/internal/player"
	"github.com/llehouerou/sift/internal/track"
)

// Controller is the playback state machine.
type Controller struct {
	backend player.Backend
	poll    *Poller

	state    State
	loaded   *track.Track
	handle   player.Handle
	snapshot Snapshot

	subs []*Subscription
}

// Option configures a Controller.
type Option func(*Controller)

// WithPollInterval sets the position poll period.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.poll = NewPoller(d)
	}
}

// New returns a stopped controller with nothing loaded.
func New(backend player.Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: backend,
		poll:    NewPoller(DefaultPollInterval),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Loaded returns the loaded track, or nil.
func (c *Controller) Loaded() *track.Track { return c.loaded }

// Snapshot returns the last published playhead.
func (c *Controller) Snapshot() Snapshot { return c.snapshot }

// PollInterval returns the position poll period.
func (c *Controller) PollInterval() time.Duration { return c.poll.Interval() }

// PollActive reports whether the position poll is running.
func (c *Controller) PollActive() bool { return c.poll.Active() }

// PendingPoll returns a newly started poll generation, once.
func (c *Controller) PendingPoll() (uint64, bool) { return c.poll.TakePending() }

// Load opens t on the backend and makes it the loaded track. The play state
// is left alone unless something was playing or paused, in which case that
// media is stopped first. Failures are returned as *LoadError and leave
// nothing loaded.
func (c *Controller) Load(t *track.Track) error {
	if t == nil {
		return ErrNilTrack
	}

	if c.state.IsActive() {
		c.poll.Stop()
		c.backend.Stop(c.handle)
		c.setState(StateStopped, ReasonReplaced)
	}
	c.release()

	h, err := c.backend.Open(t.Path())
	if err != nil {
		return &LoadError{Op: "open", Path: t.Path(), Err: err}
	}
	c.handle = h
	c.loaded = t
	c.snapshot = Snapshot{Duration: c.backend.Duration(h)}

	for _, s := range c.subs {
		s.sendLoaded(TrackLoaded{Track: t})
	}
	return nil
}

// Play starts or resumes the loaded track and starts the position poll.
// It never loads anything itself.
func (c *Controller) Play() error {
	if c.handle == nil {
		return ErrNothingLoaded
	}
	if c.state == StatePlaying {
		return nil
	}
	if err := c.backend.Play(c.handle); err != nil {
		return &LoadError{Op: "play", Path: c.loaded.Path(), Err: err}
	}
	c.poll.Start()
	c.setState(StatePlaying, ReasonExplicit)
	return nil
}

// Pause pauses playback. Outside Playing it returns ErrNotPlaying and
// changes nothing.
func (c *Controller) Pause() error {
	if c.state != StatePlaying {
		return ErrNotPlaying
	}
	c.backend.Pause(c.handle)
	c.poll.Stop()
	c.setState(StatePaused, ReasonExplicit)
	return nil
}

// Stop stops playback from any state. The loaded track is kept.
func (c *Controller) Stop() {
	c.poll.Stop()
	if c.handle != nil {
		c.backend.Stop(c.handle)
		c.refresh()
		c.publishPosition()
	}
	if c.state != StateStopped {
		c.setState(StateStopped, ReasonExplicit)
	}
}

// Toggle pauses while playing and plays otherwise.
func (c *Controller) Toggle() error {
	if c.state == StatePlaying {
		return c.Pause()
	}
	return c.Play()
}

// SetPosition seeks to a fraction of the track, clamped to [0, 1]. It does
// nothing when no track is loaded.
func (c *Controller) SetPosition(pos float64) {
	if c.handle == nil {
		return
	}
	c.poll.Suspend()
	c.backend.SetPosition(c.handle, max(0, min(pos, 1)))
	c.poll.Resume()

	c.refresh()
	c.publishPosition()
}

// Step seeks by a number of seconds relative to the current time.
func (c *Controller) Step(seconds int) error {
	return c.Seek(time.Duration(seconds) * time.Second)
}

// Seek moves the playhead by offset, which may be negative. It returns
// ErrNoDuration when the length of the loaded track is unknown.
func (c *Controller) Seek(offset time.Duration) error {
	if c.handle == nil {
		return ErrNoDuration
	}
	d := c.backend.Duration(c.handle)
	if d <= 0 {
		return ErrNoDuration
	}
	target := c.backend.Time(c.handle) + offset
	c.SetPosition(float64(target) / float64(d))
	return nil
}

// Volume returns the output level in [0, 1].
func (c *Controller) Volume() float64 { return c.backend.Volume() }

// SetVolume sets the output level, clamped to [0, 1]. It applies to the
// loaded track and to everything loaded later.
func (c *Controller) SetVolume(level float64) {
	c.backend.SetVolume(max(0, min(level, 1)))
}

// StepVolume changes the output level by delta.
func (c *Controller) StepVolume(delta float64) {
	c.SetVolume(c.Volume() + delta)
}

// Tick is one position poll. It returns whether gen is still live and the
// event loop should schedule the next fire. When the backend has stopped on
// its own while the controller is Playing, the controller moves to Stopped
// with ReasonFinished.
func (c *Controller) Tick(gen uint64) bool {
	if !c.poll.Accept(gen) {
		return false
	}
	if c.poll.Suspended() {
		return true
	}

	if c.state == StatePlaying && !c.backend.IsPlaying(c.handle) {
		c.poll.Stop()
		c.refresh()
		c.publishPosition()
		c.setState(StateStopped, ReasonFinished)
		return false
	}

	c.refresh()
	c.publishPosition()
	return true
}

// Subscribe returns a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	s := newSubscription()
	c.subs = append(c.subs, s)
	return s
}

// Close stops playback, releases the backend handle and closes every
// subscription.
func (c *Controller) Close() {
	c.Stop()
	c.release()
	for _, s := range c.subs {
		s.close()
	}
	c.subs = nil
}

func (c *Controller) release() {
	if c.handle != nil {
		c.backend.Release(c.handle)
	}
	c.handle = nil
	c.loaded = nil
	c.snapshot = Snapshot{}
}

func (c *Controller) refresh() {
	c.snapshot = Snapshot{
		Position: c.backend.Position(c.handle),
		Time:     c.backend.Time(c.handle),
		Duration: c.backend.Duration(c.handle),
	}
}

func (c *Controller) publishPosition() {
	for _, s := range c.subs {
		s.sendPosition(c.snapshot)
	}
}

func (c *Controller) setState(next State, reason Reason) {
	prev := c.state
	c.state = next
	e := StateChange{Previous: prev, Current: next, Reason: reason, Track: c.loaded}
	for _, s := range c.subs {
		s.sendState(e)
	}
}
