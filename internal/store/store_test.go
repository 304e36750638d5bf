package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/sift/internal/track"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func buildList(paths ...string) *track.List {
	return track.Build(paths, track.DefaultVocabulary())
}

func TestStore_SaveFlushHydrate(t *testing.T) {
	s := setupTestStore(t)

	l := buildList("/m/a.mp3", "/m/b.flac")
	a, _ := l.Get(0)
	a.SetRating(3)
	require.NoError(t, a.ToggleTag("Deep"))
	require.NoError(t, a.ToggleTag("Catas"))
	a.SetVerdict(track.VerdictKeep)

	s.Save(a)
	require.NoError(t, s.Flush())

	fresh := buildList("/m/b.flac", "/m/a.mp3")
	require.NoError(t, s.Hydrate(fresh))

	got, _ := fresh.Get(1)
	assert.Equal(t, 3, got.Rating())
	assert.Equal(t, []string{"Catas", "Deep"}, got.Tags())
	assert.Equal(t, track.VerdictKeep, got.Verdict())

	other, _ := fresh.Get(0)
	assert.Equal(t, 0, other.Rating())
	assert.Empty(t, other.Tags())
}

func TestStore_SaveCoalescesLastWins(t *testing.T) {
	s := setupTestStore(t)

	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetRating(1)
	s.Save(a)
	a.SetRating(4)
	require.NoError(t, a.ToggleTag("Fun"))
	s.Save(a)

	// Pending saves are visible before they are written.
	rec, ok, err := s.Get("/m/a.mp3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, rec.Rating)

	require.NoError(t, s.Flush())
	rec, ok, err = s.Get("/m/a.mp3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, rec.Rating)
	assert.Equal(t, []string{"Fun"}, rec.Tags)
}

func TestStore_TagsReplacedOnSave(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Put(Record{Path: "/m/a.mp3", Tags: []string{"Deep", "Hard"}}))
	require.NoError(t, s.Put(Record{Path: "/m/a.mp3", Tags: []string{"Retro"}}))

	rec, _, err := s.Get("/m/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Retro"}, rec.Tags)
}

func TestStore_Marked(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.Put(Record{Path: "/m/c.mp3", Verdict: track.VerdictTrash}))
	require.NoError(t, s.Put(Record{Path: "/m/b.mp3"}))
	require.NoError(t, s.Put(Record{Path: "/m/a.mp3", Rating: 2, Tags: []string{"Fun"}, Verdict: track.VerdictKeep}))

	marks, err := s.Marked()
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, "/m/a.mp3", marks[0].Path)
	assert.Equal(t, track.VerdictKeep, marks[0].Verdict)
	assert.Equal(t, []string{"Fun"}, marks[0].Tags)
	assert.Equal(t, "/m/c.mp3", marks[1].Path)
}

func TestStore_MarkedIncludesPending(t *testing.T) {
	s := setupTestStore(t)

	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetVerdict(track.VerdictTrash)
	s.Save(a)

	marks, err := s.Marked()
	require.NoError(t, err)
	assert.Len(t, marks, 1)
}

func TestStore_Forget(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Put(Record{Path: "/m/a.mp3", Tags: []string{"Fun"}, Verdict: track.VerdictTrash}))

	require.NoError(t, s.Forget("/m/a.mp3"))
	_, ok, err := s.Get("/m/a.mp3")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ClosePersistsPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sift.db")

	s, err := OpenPath(path)
	require.NoError(t, err)
	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetRating(5)
	s.Save(a)
	require.NoError(t, s.Close())

	s, err = OpenPath(path)
	require.NoError(t, err)
	defer s.Close()
	rec, ok, err := s.Get("/m/a.mp3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, rec.Rating)
}

func TestStore_FailedFlushKeepsPending(t *testing.T) {
	s := setupTestStore(t)

	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetRating(4)
	s.Save(a)

	_, err := s.db.Exec(`ALTER TABLE track_meta RENAME TO track_meta_off`)
	require.NoError(t, err)
	require.Error(t, s.Flush())

	_, err = s.db.Exec(`ALTER TABLE track_meta_off RENAME TO track_meta`)
	require.NoError(t, err)
	require.NoError(t, s.Flush())

	var rating int
	require.NoError(t, s.db.QueryRow(
		`SELECT rating FROM track_meta WHERE path = ?`, "/m/a.mp3",
	).Scan(&rating))
	assert.Equal(t, 4, rating)
}

func TestStore_RequeueKeepsNewerSave(t *testing.T) {
	s := setupTestStore(t)

	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetRating(5)
	s.Save(a)

	s.requeue(map[string]Record{"/m/a.mp3": {Path: "/m/a.mp3", Rating: 2}})
	rec, ok, err := s.Get("/m/a.mp3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, rec.Rating)
}

func TestStore_CloseReportsFailedFlush(t *testing.T) {
	s, err := OpenPath(":memory:")
	require.NoError(t, err)

	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetRating(1)
	s.Save(a)
	_, err = s.db.Exec(`DROP TABLE track_meta`)
	require.NoError(t, err)

	assert.Error(t, s.Close())
}

func TestInitSchema_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, initSchema(s.db))

	var version int
	require.NoError(t, s.db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestMock_Interface(t *testing.T) {
	m := NewMock()
	l := buildList("/m/a.mp3")
	a, _ := l.Get(0)
	a.SetVerdict(track.VerdictKeep)
	m.Save(a)

	fresh := buildList("/m/a.mp3")
	require.NoError(t, m.Hydrate(fresh))
	got, _ := fresh.Get(0)
	assert.Equal(t, track.VerdictKeep, got.Verdict())

	marks, _ := m.Marked()
	assert.Len(t, marks, 1)
	require.NoError(t, m.Close())
	assert.True(t, m.Closed())
}
