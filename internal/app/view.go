package app

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/sift/internal/mpris"
	"github.com/llehouerou/sift/internal/track"
	"github.com/llehouerou/sift/internal/ui/headerbar"
	"github.com/llehouerou/sift/internal/ui/layout"
	"github.com/llehouerou/sift/internal/ui/playerbar"
	"github.com/llehouerou/sift/internal/ui/render"
	"github.com/llehouerou/sift/internal/ui/styles"
	"github.com/llehouerou/sift/internal/ui/tagbar"
	"github.com/llehouerou/sift/internal/ui/tracklist"
)

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sections := []string{
		headerbar.Render(m.headerState(), m.width),
		m.tracks.Render(m.listView()),
	}
	if m.vocab.Len() > 0 {
		sections = append(sections, tagbar.Render(m.vocab, m.nav.Current(), m.tagKeys, m.width))
	}
	if bar := m.renderPlayerBar(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections,
		styles.T().S().Error.Render(render.Fit(render.Sanitize(m.errMsg), m.width)),
		m.help.View(m.helpMap),
	)
	return strings.Join(sections, "\n")
}

func (m Model) renderPlayerBar() string {
	if m.loadErr != "" {
		return playerbar.RenderError(m.loadErr, m.width)
	}
	t := m.ctrl.Loaded()
	if t == nil {
		return ""
	}
	s := playerbar.NewState(m.ctrl.State(), m.ctrl.Snapshot(), t.Name(), m.info)
	s.Volume = m.volumePercent()
	s.Muted = s.Volume == 0
	return playerbar.Render(s, m.width)
}

func (m Model) headerState() headerbar.State {
	s := headerbar.State{Source: m.source, Tracks: m.List().Len()}
	for _, t := range m.List().Tracks() {
		switch t.Verdict() {
		case track.VerdictTrash:
			s.Trash++
		case track.VerdictKeep:
			s.Keep++
		case track.VerdictNone:
		}
	}
	return s
}

func (m Model) listView() tracklist.View {
	v := tracklist.View{
		List:     m.List(),
		Selected: -1,
		Loaded:   m.ctrl.Loaded(),
		State:    m.ctrl.State(),
	}
	if i, ok := m.nav.Index(); ok {
		v.Selected = i
	}
	return v
}

// layoutOpts returns the heights of the components around the track panel
// as they will be drawn.
func (m Model) layoutOpts() layout.Opts {
	o := layout.Opts{
		HeaderHeight:  headerbar.Height,
		MessageHeight: 1,
		HelpHeight:    lipgloss.Height(m.help.View(m.helpMap)),
	}
	if m.vocab.Len() > 0 {
		o.TagBarHeight = tagbar.Height
	}
	if m.loadErr != "" || m.ctrl.Loaded() != nil {
		o.PlayerBarHeight = playerbar.Height
	}
	return o
}

// resize recomputes component sizes after the window or the chrome changed.
func (m *Model) resize() {
	m.help.Width = m.width
	m.tracks.SetSize(m.width, layout.PanelHeight(m.height, m.layoutOpts()))
	m.followSelection()
}

func (m *Model) followSelection() {
	m.tracks.Follow(m.listView())
}

// publish hands the current playback status to the remote control surface.
func (m Model) publish() {
	if m.status == nil {
		return
	}
	s := mpris.Status{
		State:  m.ctrl.State(),
		Tracks: m.List().Len(),
		Volume: m.ctrl.Volume(),
	}
	if t := m.ctrl.Loaded(); t != nil {
		snap := m.ctrl.Snapshot()
		s.Path = t.Path()
		s.Title = t.Name()
		s.Rating = t.Rating()
		s.Length = snap.Duration
		s.Position = snap.Time
		if m.info != nil {
			s.Title = m.info.Title
			s.Artist = m.info.Artist
			s.Album = m.info.Album
		}
	}
	m.status.Update(s)
}

func (m Model) volumePercent() int {
	return int(math.Round(m.ctrl.Volume() * 100))
}
