package store

import (
	"slices"
	"strings"

	"github.com/llehouerou/sift/internal/track"
)

// Mock is an in-memory Interface for tests.
type Mock struct {
	Records map[string]Record
	Saves   int
	closed  bool
}

// NewMock creates an empty mock store.
func NewMock() *Mock {
	return &Mock{Records: make(map[string]Record)}
}

func (m *Mock) Hydrate(list *track.List) error {
	for _, t := range list.Tracks() {
		if rec, ok := m.Records[t.Path()]; ok {
			t.SetRating(rec.Rating)
			t.SetTags(rec.Tags)
			t.SetVerdict(rec.Verdict)
		}
	}
	return nil
}

func (m *Mock) Save(t *track.Track) {
	m.Saves++
	m.Records[t.Path()] = RecordOf(t)
}

func (m *Mock) Marked() ([]Record, error) {
	var out []Record
	for _, rec := range m.Records {
		if rec.Verdict != track.VerdictNone {
			out = append(out, rec)
		}
	}
	slices.SortFunc(out, func(a, b Record) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

func (m *Mock) Forget(path string) error {
	delete(m.Records, path)
	return nil
}

func (m *Mock) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool { return m.closed }

var _ Interface = (*Mock)(nil)
