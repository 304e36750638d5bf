package track

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned by List.Get for indices outside [0, Len).
var ErrIndexOutOfRange = errors.New("index out of range")

// List is an ordered, index-addressable set of tracks. Its length is fixed
// at construction; loading another folder builds a new List.
type List struct {
	tracks []*Track
	vocab  *Vocabulary
}

// Build creates one track per path, in order, with rating 0 and no tags.
// An empty path list yields an empty, valid List.
func Build(paths []string, vocab *Vocabulary) *List {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	l := &List{
		tracks: make([]*Track, len(paths)),
		vocab:  vocab,
	}
	for i, p := range paths {
		l.tracks[i] = newTrack(p, vocab)
	}
	return l
}

// Get returns the track at index i.
func (l *List) Get(i int) (*Track, error) {
	if i < 0 || i >= len(l.tracks) {
		return nil, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(l.tracks))
	}
	return l.tracks[i], nil
}

// Len returns the number of tracks.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.tracks)
}

// Tracks returns the tracks in order. The slice must not be modified.
func (l *List) Tracks() []*Track {
	if l == nil {
		return nil
	}
	return l.tracks
}

// IndexOf returns the index of the track with the given path, or -1.
func (l *List) IndexOf(path string) int {
	for i, t := range l.Tracks() {
		if t.path == path {
			return i
		}
	}
	return -1
}

// Vocabulary returns the tag vocabulary shared by the list's tracks.
func (l *List) Vocabulary() *Vocabulary { return l.vocab }
