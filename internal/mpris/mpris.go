//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/track"
)

// Adapter serves the MPRIS root and player interfaces.
type Adapter struct {
	server *server.Server
	status *status
}

// New starts serving on the session bus.
func New(remote Remote) (*Adapter, error) {
	st := &status{}
	a := &Adapter{
		status: st,
		server: server.NewServer("sift", &rootAdapter{}, &playerAdapter{remote: remote, status: st}),
	}
	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn().Err(err).Msg("mpris listen")
		}
	}()
	return a, nil
}

// Update publishes the player state read by D-Bus clients.
func (a *Adapter) Update(s Status) {
	a.status.store(s)
}

// Close releases the bus name.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

type rootAdapter struct{}

func (r *rootAdapter) Raise() error            { return nil }
func (r *rootAdapter) Quit() error             { return nil }
func (r *rootAdapter) CanQuit() (bool, error)  { return false, nil }
func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return "Sift", nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/aiff"}, nil
}

type playerAdapter struct {
	remote Remote
	status *status
}

func (p *playerAdapter) send(k CommandKind, offset time.Duration) error {
	p.remote.Send(Command{Kind: k, Offset: offset})
	return nil
}

func (p *playerAdapter) Next() error      { return p.send(CmdNext, 0) }
func (p *playerAdapter) Previous() error  { return p.send(CmdPrevious, 0) }
func (p *playerAdapter) Pause() error     { return p.send(CmdPause, 0) }
func (p *playerAdapter) PlayPause() error { return p.send(CmdPlayPause, 0) }
func (p *playerAdapter) Stop() error      { return p.send(CmdStop, 0) }
func (p *playerAdapter) Play() error      { return p.send(CmdPlay, 0) }

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.send(CmdSeek, time.Duration(offset)*time.Microsecond)
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	// Stale track IDs must be ignored.
	if trackID != formatTrackID(p.status.load().Path) {
		return nil
	}
	return p.send(CmdSetPosition, time.Duration(position)*time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.status.load().State), nil
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateStopped:
	}
	return types.PlaybackStatusStopped
}

func (p *playerAdapter) Rate() (float64, error)  { return 1.0, nil }
func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	s := p.status.load()
	if s.Path == "" {
		return types.Metadata{}, nil
	}
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(s.Path)),
		Length:  types.Microseconds(s.Length.Microseconds()),
		Title:   s.Title,
		Album:   s.Album,
		Url:     "file://" + s.Path,
	}
	if s.Rating > 0 {
		meta.UserRating = float64(s.Rating) / float64(track.MaxRating)
	}
	if s.Artist != "" {
		meta.Artist = []string{s.Artist}
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) { return p.status.load().Volume, nil }

// SetVolume clamps the level to [0, 1]; MPRIS allows louder than full.
func (p *playerAdapter) SetVolume(level float64) error {
	p.remote.Send(Command{Kind: CmdSetVolume, Volume: max(0, min(level, 1))})
	return nil
}

func (p *playerAdapter) Position() (int64, error) {
	return p.status.load().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }
func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

// The list is circular, so next and previous exist whenever it is non-empty.
func (p *playerAdapter) CanGoNext() (bool, error)     { return p.status.load().Tracks > 0, nil }
func (p *playerAdapter) CanGoPrevious() (bool, error) { return p.status.load().Tracks > 0, nil }
func (p *playerAdapter) CanPlay() (bool, error)       { return p.status.load().Tracks > 0, nil }

func (p *playerAdapter) CanPause() (bool, error) {
	return p.status.load().State == playback.StatePlaying, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return p.status.load().Length > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func formatTrackID(path string) string {
	if path == "" {
		return "/org/mpris/MediaPlayer2/TrackList/NoTrack"
	}
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/sift/Track/%x", h.Sum64())
}
