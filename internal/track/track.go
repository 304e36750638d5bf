// Package track holds the audio files being sorted and the per-file
// metadata (rating, tags, verdict) the user attaches to them.
package track

import (
	"errors"
	"fmt"
	"path/filepath"
)

// MaxRating is the highest rating a track can reach. Incrementing past it
// wraps back to zero.
const MaxRating = 5

// ErrUnknownTag is returned when a tag is not part of the vocabulary.
var ErrUnknownTag = errors.New("unknown tag")

// Verdict is the sorting decision taken on a track.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictTrash
	VerdictKeep
)

func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictTrash:
		return "trash"
	case VerdictKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// Track is one audio file. The path never changes; rating, tags and verdict
// are mutated in place by user actions.
type Track struct {
	path    string
	rating  int
	tags    map[string]struct{}
	verdict Verdict
	vocab   *Vocabulary
}

func newTrack(path string, vocab *Vocabulary) *Track {
	return &Track{
		path:  path,
		tags:  make(map[string]struct{}),
		vocab: vocab,
	}
}

// Path returns the file path of the track.
func (t *Track) Path() string { return t.path }

// Name returns the base name of the file.
func (t *Track) Name() string { return filepath.Base(t.path) }

// Rating returns the current rating, always in [0, MaxRating].
func (t *Track) Rating() int { return t.rating }

// IncrementRating raises the rating by one, wrapping to zero after MaxRating.
func (t *Track) IncrementRating() {
	t.rating = (t.rating + 1) % (MaxRating + 1)
}

// SetRating sets the rating, clamped to [0, MaxRating].
func (t *Track) SetRating(r int) {
	t.rating = max(0, min(r, MaxRating))
}

// HasTag reports whether the track carries tag.
func (t *Track) HasTag(tag string) bool {
	_, ok := t.tags[tag]
	return ok
}

// ToggleTag adds tag if it is missing and removes it otherwise.
func (t *Track) ToggleTag(tag string) error {
	if !t.vocab.Contains(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	if t.HasTag(tag) {
		delete(t.tags, tag)
	} else {
		t.tags[tag] = struct{}{}
	}
	return nil
}

// SetTags replaces the tag set. Tags outside the vocabulary are dropped.
func (t *Track) SetTags(tags []string) {
	clear(t.tags)
	for _, tag := range tags {
		if t.vocab.Contains(tag) {
			t.tags[tag] = struct{}{}
		}
	}
}

// Tags returns the track's tags in vocabulary order.
func (t *Track) Tags() []string {
	out := make([]string, 0, len(t.tags))
	for _, tag := range t.vocab.Tags() {
		if t.HasTag(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// Verdict returns the sorting decision for the track.
func (t *Track) Verdict() Verdict { return t.verdict }

// SetVerdict records a sorting decision.
func (t *Track) SetVerdict(v Verdict) { t.verdict = v }
