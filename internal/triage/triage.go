// Package triage applies the verdicts recorded while listening: files
// marked for the trash or for keeping are moved to their directories.
package triage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/llehouerou/sift/internal/store"
	"github.com/llehouerou/sift/internal/tags"
	"github.com/llehouerou/sift/internal/track"
)

// maxSuffix bounds the search for a free destination name.
const maxSuffix = 1000

// Options controls Apply.
type Options struct {
	// WriteTags stores rating and tags in the file before moving it.
	WriteTags bool
	// DryRun reports what would happen without touching files.
	DryRun bool
}

// Result is the outcome for one file.
type Result struct {
	Record store.Record
	Dest   string
	Err    error
}

// Report summarises an Apply run.
type Report struct {
	Results []Result
}

// Moved returns the number of files moved.
func (r Report) Moved() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results that failed.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Sorter moves marked files.
type Sorter struct {
	trashDir string
	keepDir  string
}

// New returns a sorter. An empty keepDir leaves kept files in place.
func New(trashDir, keepDir string) *Sorter {
	return &Sorter{trashDir: trashDir, keepDir: keepDir}
}

func (s *Sorter) destDir(v track.Verdict) string {
	switch v {
	case track.VerdictNone:
		return ""
	case track.VerdictTrash:
		return s.trashDir
	case track.VerdictKeep:
		return s.keepDir
	}
	return ""
}

// Apply processes recs in order. Each file is handled independently; a
// failure is recorded in the report and does not stop the run. The context
// is checked between files.
func (s *Sorter) Apply(ctx context.Context, recs []store.Record, opts Options) (Report, error) {
	var rep Report
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		dir := s.destDir(rec.Verdict)
		if dir == "" {
			continue
		}
		res := Result{Record: rec}
		res.Dest, res.Err = s.applyOne(rec, dir, opts)
		if res.Err != nil {
			log.Warn().Err(res.Err).Str("path", rec.Path).Msg("triage")
		} else {
			log.Info().Str("path", rec.Path).Str("dest", res.Dest).Stringer("verdict", rec.Verdict).Msg("triage")
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

func (s *Sorter) applyOne(rec store.Record, dir string, opts Options) (string, error) {
	if _, err := os.Stat(rec.Path); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	dest, err := freeName(dir, filepath.Base(rec.Path))
	if err != nil {
		return "", err
	}
	if opts.DryRun {
		return dest, nil
	}

	m := tags.Marks{Rating: rec.Rating, Labels: rec.Tags}
	if opts.WriteTags && !m.Empty() {
		if err := tags.WriteMarks(rec.Path, m); err != nil {
			return "", err
		}
	}

	if err := moveFile(rec.Path, dest); err != nil {
		return "", fmt.Errorf("move file: %w", err)
	}
	return dest, nil
}

// freeName returns dir/name, or dir/name (n).ext when taken.
func freeName(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	candidate := filepath.Join(dir, name)
	for i := 1; i <= maxSuffix; i++ {
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}
	return "", fmt.Errorf("no free name for %s in %s", name, dir)
}

// moveFile renames src to dst, or copies and deletes across filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
