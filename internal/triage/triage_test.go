package triage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/sift/internal/store"
	"github.com/llehouerou/sift/internal/track"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestApply_MovesByVerdict(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "in")
	trash := filepath.Join(root, "trash")
	keep := filepath.Join(root, "keep")
	writeFile(t, filepath.Join(src, "a.mp3"), "a")
	writeFile(t, filepath.Join(src, "b.flac"), "b")
	writeFile(t, filepath.Join(src, "c.mp3"), "c")

	recs := []store.Record{
		{Path: filepath.Join(src, "a.mp3"), Verdict: track.VerdictTrash},
		{Path: filepath.Join(src, "b.flac"), Verdict: track.VerdictKeep},
		{Path: filepath.Join(src, "c.mp3"), Verdict: track.VerdictNone},
	}
	rep, err := New(trash, keep).Apply(context.Background(), recs, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Moved())
	assert.Empty(t, rep.Failed())
	assert.FileExists(t, filepath.Join(trash, "a.mp3"))
	assert.FileExists(t, filepath.Join(keep, "b.flac"))
	assert.FileExists(t, filepath.Join(src, "c.mp3"))
	assert.NoFileExists(t, filepath.Join(src, "a.mp3"))
}

func TestApply_CollisionGetsSuffix(t *testing.T) {
	root := t.TempDir()
	trash := filepath.Join(root, "trash")
	writeFile(t, filepath.Join(trash, "a.mp3"), "old")
	writeFile(t, filepath.Join(trash, "a (1).mp3"), "old")
	writeFile(t, filepath.Join(root, "a.mp3"), "new")

	rep, err := New(trash, "").Apply(context.Background(), []store.Record{
		{Path: filepath.Join(root, "a.mp3"), Verdict: track.VerdictTrash},
	}, Options{})
	require.NoError(t, err)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, filepath.Join(trash, "a (2).mp3"), rep.Results[0].Dest)

	data, err := os.ReadFile(filepath.Join(trash, "a.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data), "existing file must not be overwritten")
}

func TestApply_NoKeepDirLeavesKeptFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), "a")

	rep, err := New(filepath.Join(root, "trash"), "").Apply(context.Background(), []store.Record{
		{Path: filepath.Join(root, "a.mp3"), Verdict: track.VerdictKeep},
	}, Options{})
	require.NoError(t, err)
	assert.Empty(t, rep.Results)
	assert.FileExists(t, filepath.Join(root, "a.mp3"))
}

func TestApply_MissingFileIsReported(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.mp3"), "b")

	rep, err := New(filepath.Join(root, "trash"), "").Apply(context.Background(), []store.Record{
		{Path: filepath.Join(root, "gone.mp3"), Verdict: track.VerdictTrash},
		{Path: filepath.Join(root, "b.mp3"), Verdict: track.VerdictTrash},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Moved())
	require.Len(t, rep.Failed(), 1)
	assert.Equal(t, filepath.Join(root, "gone.mp3"), rep.Failed()[0].Record.Path)
}

func TestApply_DryRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), "a")

	rep, err := New(filepath.Join(root, "trash"), "").Apply(context.Background(), []store.Record{
		{Path: filepath.Join(root, "a.mp3"), Verdict: track.VerdictTrash},
	}, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Moved())
	assert.FileExists(t, filepath.Join(root, "a.mp3"))
}

func TestApply_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(t.TempDir(), "").Apply(ctx, []store.Record{
		{Path: "/m/a.mp3", Verdict: track.VerdictTrash},
	}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCopyFile_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src"), "new")
	writeFile(t, filepath.Join(root, "dst"), "old")

	assert.Error(t, copyFile(filepath.Join(root, "src"), filepath.Join(root, "dst")))
}
