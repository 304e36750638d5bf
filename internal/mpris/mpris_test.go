//go:build linux

package mpris

import (
	"strings"
	"testing"
	"time"

	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/sift/internal/playback"
)

type recorder struct{ cmds []Command }

func (r *recorder) Send(c Command) { r.cmds = append(r.cmds, c) }

func newPlayer() (*playerAdapter, *recorder) {
	r := &recorder{}
	return &playerAdapter{remote: r, status: &status{}}, r
}

func TestPlayerAdapter_Commands(t *testing.T) {
	p, r := newPlayer()

	require.NoError(t, p.Play())
	require.NoError(t, p.PlayPause())
	require.NoError(t, p.Next())
	require.NoError(t, p.Previous())
	require.NoError(t, p.Pause())
	require.NoError(t, p.Stop())
	require.NoError(t, p.Seek(types.Microseconds(-5_000_000)))

	want := []Command{
		{Kind: CmdPlay}, {Kind: CmdPlayPause}, {Kind: CmdNext},
		{Kind: CmdPrevious}, {Kind: CmdPause}, {Kind: CmdStop},
		{Kind: CmdSeek, Offset: -5 * time.Second},
	}
	assert.Equal(t, want, r.cmds)
}

func TestPlayerAdapter_SetPositionChecksTrackID(t *testing.T) {
	p, r := newPlayer()
	p.status.store(Status{Path: "/m/a.mp3", Length: time.Minute})

	require.NoError(t, p.SetPosition(formatTrackID("/m/b.mp3"), 1_000_000))
	assert.Empty(t, r.cmds)

	require.NoError(t, p.SetPosition(formatTrackID("/m/a.mp3"), 2_000_000))
	assert.Equal(t, []Command{{Kind: CmdSetPosition, Offset: 2 * time.Second}}, r.cmds)
}

func TestPlayerAdapter_Volume(t *testing.T) {
	p, r := newPlayer()
	p.status.store(Status{Volume: 0.6})

	v, err := p.Volume()
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v, 1e-9)

	require.NoError(t, p.SetVolume(0.3))
	require.NoError(t, p.SetVolume(1.8))
	require.NoError(t, p.SetVolume(-1))
	assert.Equal(t, []Command{
		{Kind: CmdSetVolume, Volume: 0.3},
		{Kind: CmdSetVolume, Volume: 1},
		{Kind: CmdSetVolume, Volume: 0},
	}, r.cmds)
}

func TestPlayerAdapter_Properties(t *testing.T) {
	p, _ := newPlayer()

	st, err := p.PlaybackStatus()
	require.NoError(t, err)
	assert.Equal(t, types.PlaybackStatusStopped, st)
	meta, err := p.Metadata()
	require.NoError(t, err)
	assert.Equal(t, types.Metadata{}, meta)
	can, _ := p.CanPlay()
	assert.False(t, can)

	p.status.store(Status{
		State:    playback.StatePlaying,
		Path:     "/m/a.mp3",
		Title:    "Song",
		Artist:   "Band",
		Rating:   4,
		Length:   90 * time.Second,
		Position: 3 * time.Second,
		Tracks:   2,
	})

	st, _ = p.PlaybackStatus()
	assert.Equal(t, types.PlaybackStatusPlaying, st)
	meta, _ = p.Metadata()
	assert.Equal(t, "Song", meta.Title)
	assert.Equal(t, []string{"Band"}, meta.Artist)
	assert.InDelta(t, 0.8, meta.UserRating, 1e-9)
	assert.Equal(t, types.Microseconds(90_000_000), meta.Length)
	assert.True(t, strings.HasPrefix(string(meta.TrackId), "/org/sift/Track/"))
	pos, _ := p.Position()
	assert.Equal(t, int64(3_000_000), pos)
	can, _ = p.CanGoNext()
	assert.True(t, can)
	can, _ = p.CanSeek()
	assert.True(t, can)
}

func TestPlaybackStatus(t *testing.T) {
	assert.Equal(t, types.PlaybackStatusPaused, playbackStatus(playback.StatePaused))
	assert.Equal(t, types.PlaybackStatusStopped, playbackStatus(playback.StateStopped))
}
