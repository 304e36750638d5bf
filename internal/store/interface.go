package store

import "github.com/llehouerou/sift/internal/track"

// Interface is the store contract used by the application.
type Interface interface {
	Hydrate(list *track.List) error
	Save(t *track.Track)
	Marked() ([]Record, error)
	Forget(path string) error
	Close() error
}

var _ Interface = (*Store)(nil)
