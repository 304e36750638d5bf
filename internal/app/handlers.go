package app

import (
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/sift/internal/errmsg"
	"github.com/llehouerou/sift/internal/keymap"
	"github.com/llehouerou/sift/internal/lister"
	"github.com/llehouerou/sift/internal/mpris"
	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/track"
	"github.com/llehouerou/sift/internal/ui/layout"
)

// maxEventRounds bounds how many times a track end may chain into the next
// load within one update, for folders where every file fails to play.
const maxEventRounds = 4

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	m.errMsg = ""

	handled, err := m.disp.DispatchTerminal(s)
	if err != nil {
		m.fail(err)
		return nil
	}
	if handled {
		return nil
	}

	switch s {
	case "ctrl+c":
		m.sess.quit = true
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	default:
		log.Debug().Str("key", s).Msg("unbound key")
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	row := layout.ListRow(msg.Y, m.layoutOpts())
	i, ok := m.tracks.HandleMouse(msg, row, m.List().Len())
	if !ok {
		return nil
	}
	m.errMsg = ""
	if err := m.disp.PlayIndex(i); err != nil {
		m.fail(err)
	}
	return nil
}

func (m *Model) handleDrop(text string) tea.Cmd {
	paths, err := lister.ParseDrop(text)
	if err != nil {
		m.errMsg = errmsg.Format(errmsg.OpFilesDrop, err)
		return nil
	}
	if len(paths) == 0 {
		return nil
	}
	m.errMsg = ""
	m.setList(paths, "")
	return nil
}

func (m *Model) handleRemote(c mpris.Command) tea.Cmd {
	var err error
	switch c.Kind {
	case mpris.CmdPlay:
		if m.ctrl.State() != playback.StatePlaying {
			err = m.disp.Perform(keymap.Action{Name: keymap.TogglePlayPause})
		}
	case mpris.CmdPause:
		if m.ctrl.State() == playback.StatePlaying {
			err = m.ctrl.Pause()
		}
	case mpris.CmdPlayPause:
		err = m.disp.Perform(keymap.Action{Name: keymap.TogglePlayPause})
	case mpris.CmdStop:
		m.ctrl.Stop()
	case mpris.CmdNext:
		err = m.disp.Perform(keymap.Action{Name: keymap.PlayNext})
	case mpris.CmdPrevious:
		err = m.disp.Perform(keymap.Action{Name: keymap.PlayPrevious})
	case mpris.CmdSeek:
		if m.ctrl.Loaded() != nil {
			err = m.ctrl.Seek(c.Offset)
		}
	case mpris.CmdSetPosition:
		if d := m.ctrl.Snapshot().Duration; d > 0 {
			m.ctrl.SetPosition(float64(c.Offset) / float64(d))
		}
	case mpris.CmdSetVolume:
		m.ctrl.SetVolume(c.Volume)
	}
	if err != nil {
		m.fail(err)
	}
	return nil
}

func (m *Model) handleInfo(msg InfoMsg) {
	t := m.ctrl.Loaded()
	if t == nil || t.Path() != msg.Path {
		return
	}
	if msg.Err != nil {
		log.Debug().Err(msg.Err).Str("path", msg.Path).Msg("read info")
		return
	}
	m.info = msg.Info
	if m.notify != nil {
		if err := m.notify.Announce(msg.Info.Title, msg.Info.Artist, msg.Info.Album, t.Name()); err != nil {
			log.Debug().Err(err).Msg("notification")
		}
	}
	m.publish()
}

// drainEvents handles everything the controller published since the last
// call. Reactions may publish more, so it loops until the channels are empty.
func (m *Model) drainEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for range maxEventRounds {
		more := false
		for {
			select {
			case e := <-m.sub.StateChanged:
				more = m.onStateChange(e) || more
				continue
			case e := <-m.sub.TrackLoaded:
				cmds = append(cmds, m.onTrackLoaded(e.Track))
				continue
			case <-m.sub.PositionChanged:
				continue
			default:
			}
			break
		}
		if !more {
			break
		}
	}
	return cmds
}

// onStateChange reacts to a natural track end. It reports whether it
// started another track.
func (m *Model) onStateChange(e playback.StateChange) bool {
	log.Debug().
		Stringer("from", e.Previous).
		Stringer("to", e.Current).
		Stringer("reason", e.Reason).
		Msg("playback state")
	if !e.Finished() || !m.cfg.AdvanceOnTrackEnd() || m.List().Len() == 0 {
		return false
	}
	if err := m.disp.Perform(keymap.Action{Name: keymap.PlayNext}); err != nil {
		m.fail(err)
	}
	return true
}

func (m *Model) onTrackLoaded(t *track.Track) tea.Cmd {
	log.Info().Str("path", t.Path()).Msg("track loaded")
	m.info = nil
	m.loadErr = ""
	return ReadInfoCmd(t.Path())
}

// fail puts err on the error line. Load failures also replace the player bar.
func (m *Model) fail(err error) {
	var le *playback.LoadError
	switch {
	case errors.As(err, &le):
		op := errmsg.OpTrackLoad
		if le.Op == "play" {
			op = errmsg.OpPlaybackStart
		}
		m.loadErr = errmsg.FormatWith(op, filepath.Base(le.Path), le.Err)
		m.errMsg = m.loadErr
		log.Warn().Err(err).Msg("load failed")
	case errors.Is(err, playback.ErrNoDuration):
		m.errMsg = errmsg.Format(errmsg.OpPlaybackSeek, err)
	case errors.Is(err, playback.ErrNotPlaying), errors.Is(err, playback.ErrNothingLoaded):
		m.errMsg = errmsg.Format(errmsg.OpPlaybackStart, err)
	default:
		m.errMsg = errmsg.Format(errmsg.OpMarkUpdate, err)
		log.Warn().Err(err).Msg("action failed")
	}
}
