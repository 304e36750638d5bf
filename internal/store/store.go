// Package store persists ratings, tags and verdicts between sessions in a
// sqlite database under the XDG data directory.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/sift/internal/db"
	"github.com/llehouerou/sift/internal/track"
)

const (
	appName      = "sift"
	dbFileName   = "sift.db"
	saveDebounce = 500 * time.Millisecond
)

// Record is the persisted state of one file.
type Record struct {
	Path    string
	Rating  int
	Tags    []string
	Verdict track.Verdict
}

// RecordOf captures the current state of t.
func RecordOf(t *track.Track) Record {
	return Record{
		Path:    t.Path(),
		Rating:  t.Rating(),
		Tags:    t.Tags(),
		Verdict: t.Verdict(),
	}
}

// Store is the sqlite-backed metadata store.
type Store struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]Record
	closed    bool
}

// Open opens the database at its default location, creating it if needed.
func Open() (*Store, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens the database at path. ":memory:" is accepted.
func OpenPath(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if path == ":memory:" {
		// Every connection would get its own empty database.
		conn.SetMaxOpenConns(1)
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: conn, pending: make(map[string]Record)}, nil
}

// Close flushes pending saves and closes the database. Saves that could
// not be written are reported in the returned error.
func (s *Store) Close() error {
	flushErr := s.Flush()

	s.saveMu.Lock()
	s.closed = true
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	s.saveMu.Unlock()

	if flushErr != nil {
		flushErr = fmt.Errorf("flush metadata: %w", flushErr)
	}
	return errors.Join(flushErr, s.db.Close())
}

// Hydrate applies stored ratings, tags and verdicts to the tracks of list.
func (s *Store) Hydrate(list *track.List) error {
	for _, t := range list.Tracks() {
		rec, ok, err := s.Get(t.Path())
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		t.SetRating(rec.Rating)
		t.SetTags(rec.Tags)
		t.SetVerdict(rec.Verdict)
	}
	return nil
}

// Get returns the stored record for path.
func (s *Store) Get(path string) (Record, bool, error) {
	s.saveMu.Lock()
	rec, ok := s.pending[path]
	s.saveMu.Unlock()
	if ok {
		return rec, true, nil
	}

	rec = Record{Path: path}
	var verdict int
	err := s.db.QueryRow(
		`SELECT rating, verdict FROM track_meta WHERE path = ?`, path,
	).Scan(&rec.Rating, &verdict)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	rec.Verdict = track.Verdict(verdict)

	rec.Tags, err = s.tags(path)
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *Store) tags(path string) ([]string, error) {
	rows, err := s.db.Query(`SELECT tag FROM track_tags WHERE path = ? ORDER BY tag`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Save schedules t to be written. Repeated saves within the debounce window
// are coalesced; the last state of each file wins.
func (s *Store) Save(t *track.Track) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.pending[t.Path()] = RecordOf(t)
	s.scheduleLocked()
}

// scheduleLocked (re)arms the debounce timer. saveMu must be held.
func (s *Store) scheduleLocked() {
	if s.closed {
		return
	}
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}
	s.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := s.Flush(); err != nil {
			log.Warn().Err(err).Msg("save metadata, will retry")
		}
	})
}

// Flush writes every pending save now. When the write fails the records
// stay pending and a retry is scheduled.
func (s *Store) Flush() error {
	s.saveMu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	pending := s.pending
	s.pending = make(map[string]Record)
	s.saveMu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	err := db.WithTx(s.db, func(tx *sql.Tx) error {
		for _, rec := range pending {
			if err := putRecord(tx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.requeue(pending)
	}
	return err
}

// requeue puts back records whose write failed. Saves made meanwhile are
// newer and win.
func (s *Store) requeue(recs map[string]Record) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	for path, rec := range recs {
		if _, ok := s.pending[path]; !ok {
			s.pending[path] = rec
		}
	}
	s.scheduleLocked()
}

// Put writes rec immediately.
func (s *Store) Put(rec Record) error {
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		return putRecord(tx, rec)
	})
}

func putRecord(tx *sql.Tx, rec Record) error {
	_, err := tx.Exec(`
		INSERT INTO track_meta (path, rating, verdict, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			rating = excluded.rating,
			verdict = excluded.verdict,
			updated_at = excluded.updated_at
	`, rec.Path, rec.Rating, int(rec.Verdict), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("save %s: %w", rec.Path, err)
	}

	if _, err := tx.Exec(`DELETE FROM track_tags WHERE path = ?`, rec.Path); err != nil {
		return err
	}
	for _, tag := range rec.Tags {
		if _, err := tx.Exec(`INSERT INTO track_tags (path, tag) VALUES (?, ?)`, rec.Path, tag); err != nil {
			return err
		}
	}
	return nil
}

// Marked returns every record with a verdict, ordered by path.
func (s *Store) Marked() ([]Record, error) {
	if err := s.Flush(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT path, rating, verdict FROM track_meta
		WHERE verdict != ?
		ORDER BY path
	`, int(track.VerdictNone))
	if err != nil {
		return nil, err
	}

	var recs []Record
	for rows.Next() {
		var rec Record
		var verdict int
		if err := rows.Scan(&rec.Path, &rec.Rating, &verdict); err != nil {
			rows.Close()
			return nil, err
		}
		rec.Verdict = track.Verdict(verdict)
		recs = append(recs, rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recs {
		if recs[i].Tags, err = s.tags(recs[i].Path); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// Forget removes everything stored about path.
func (s *Store) Forget(path string) error {
	s.saveMu.Lock()
	delete(s.pending, path)
	s.saveMu.Unlock()

	return db.WithTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM track_meta WHERE path = ?`, path); err != nil {
			return err
		}
		_, err := tx.Exec(`DELETE FROM track_tags WHERE path = ?`, path)
		return err
	})
}
