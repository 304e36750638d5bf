package playback

import "time"

// DefaultPollInterval is the period of the position poll.
const DefaultPollInterval = 100 * time.Millisecond

// Poller is the bookkeeping of the position poll task. The event loop owns
// the actual timer; each timer fire carries the generation it was started
// with, and fires from an older generation are discarded. At most one
// generation is live at a time.
type Poller struct {
	interval  time.Duration
	gen       uint64
	active    bool
	suspended bool
	pending   bool
}

// NewPoller returns an idle poller. A non-positive interval selects
// DefaultPollInterval.
func NewPoller(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval}
}

// Interval returns the poll period.
func (p *Poller) Interval() time.Duration { return p.interval }

// Start begins a new generation. It is a no-op while a poll is active and
// reports whether a new generation was started.
func (p *Poller) Start() (uint64, bool) {
	if p.active {
		return p.gen, false
	}
	p.gen++
	p.active = true
	p.suspended = false
	p.pending = true
	return p.gen, true
}

// Stop ends the current generation.
func (p *Poller) Stop() {
	p.active = false
	p.suspended = false
	p.pending = false
}

// Suspend pauses sampling without ending the generation.
func (p *Poller) Suspend() {
	if p.active {
		p.suspended = true
	}
}

// Resume undoes Suspend.
func (p *Poller) Resume() { p.suspended = false }

// Active reports whether a generation is live.
func (p *Poller) Active() bool { return p.active }

// Suspended reports whether sampling is paused.
func (p *Poller) Suspended() bool { return p.suspended }

// Accept reports whether a timer fire for gen belongs to the live generation.
func (p *Poller) Accept(gen uint64) bool {
	return p.active && gen == p.gen
}

// TakePending returns the generation started since the last call, so the
// event loop can schedule its first timer.
func (p *Poller) TakePending() (uint64, bool) {
	if !p.pending {
		return 0, false
	}
	p.pending = false
	return p.gen, true
}
