// Package notify sends desktop notifications over D-Bus.
package notify

import (
	"fmt"
	"strings"
	"sync"
)

// Urgency is the freedesktop notification priority.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// DefaultTimeout is how long a now-playing bubble stays up, in ms.
const DefaultTimeout int32 = 4000

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string // summary, required
	Body       string // optional, basic markup allowed
	Icon       string // file path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends n and returns its ID, or 0 when notifications are unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// NowPlaying announces loaded tracks, reusing a single bubble.
type NowPlaying struct {
	n Notifier

	mu     sync.Mutex
	lastID uint32
}

// NewNowPlaying wraps n. A nil n disables announcements.
func NewNowPlaying(n Notifier) *NowPlaying {
	return &NowPlaying{n: n}
}

// Announce shows title with an "artist - album" body.
// An empty title falls back to fallback, usually the file name.
func (p *NowPlaying) Announce(title, artist, album, fallback string) error {
	if p == nil || p.n == nil {
		return nil
	}
	if title == "" {
		title = fallback
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	id, err := p.n.Notify(Notification{
		Title:      title,
		Body:       body(artist, album),
		Icon:       "audio-x-generic",
		Timeout:    DefaultTimeout,
		ReplacesID: p.lastID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	p.lastID = id
	return nil
}

// Dismiss closes the current bubble, if any.
func (p *NowPlaying) Dismiss() error {
	if p == nil || p.n == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastID == 0 {
		return nil
	}
	id := p.lastID
	p.lastID = 0
	return p.n.Close(id)
}

func body(artist, album string) string {
	parts := make([]string, 0, 2)
	for _, s := range []string{artist, album} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " - ")
}
