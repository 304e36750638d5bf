// Package tracklist renders the folder's tracks with their marks.
package tracklist

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/sift/internal/icons"
	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/track"
	"github.com/llehouerou/sift/internal/ui"
	"github.com/llehouerou/sift/internal/ui/render"
	"github.com/llehouerou/sift/internal/ui/scroll"
	"github.com/llehouerou/sift/internal/ui/styles"
)

const (
	ratingWidth  = track.MaxRating
	verdictWidth = 5
	markerWidth  = 2
	colGap       = 2
	wheelStep    = 3
)

// View is what the list needs to know about the rest of the app.
type View struct {
	List     *track.List
	Selected int // -1 when nothing is selected
	Loaded   *track.Track
	State    playback.State
}

// Model is the scrollable track panel.
type Model struct {
	ui.Base
	window scroll.Window
}

// New creates an empty panel.
func New() Model {
	return Model{window: scroll.New(ui.ScrollMargin)}
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}

// Follow scrolls so that the selected row stays visible.
func (m *Model) Follow(v View) {
	m.window.Follow(v.Selected, v.List.Len(), m.listHeight())
}

// Reset scrolls back to the top, after a new folder is loaded.
func (m *Model) Reset() {
	m.window.Reset()
}

// HandleMouse scrolls on wheel events. A left click on a row returns its
// index and true.
func (m *Model) HandleMouse(msg tea.MouseMsg, row, listLen int) (int, bool) {
	if msg.Action != tea.MouseActionPress {
		return 0, false
	}
	switch msg.Button { //nolint:exhaustive // only wheel and left click matter
	case tea.MouseButtonWheelUp:
		m.window.Scroll(-wheelStep, listLen, m.listHeight())
	case tea.MouseButtonWheelDown:
		m.window.Scroll(wheelStep, listLen, m.listHeight())
	case tea.MouseButtonLeft:
		return m.window.IndexAt(row, listLen, m.listHeight())
	}
	return 0, false
}

// Render draws the bordered panel.
func (m Model) Render(v View) string {
	width := max(m.Width()-2, 0)
	height := m.listHeight()
	n := v.List.Len()
	cols := columnsFor(width, n)

	s := styles.T().S()
	lines := make([]string, 0, height+ui.HeaderHeight)
	lines = append(lines,
		s.Muted.Render(cols.header()),
		s.Subtle.Render(render.Separator(width)),
	)

	if n == 0 {
		lines = append(lines, s.Muted.Render(render.Fit("Drop audio files or a folder here", width)))
	}
	start, end := m.window.VisibleRange(n, height)
	for i := start; i < end; i++ {
		t, _ := v.List.Get(i)
		lines = append(lines, cols.row(i, t, v))
	}
	for len(lines) < height+ui.HeaderHeight {
		lines = append(lines, render.Fit("", width))
	}

	return s.Panel.Width(width).Render(strings.Join(lines, "\n"))
}

type columns struct {
	index, name, tags int
	width             int
}

func columnsFor(width, n int) columns {
	c := columns{width: width, index: len(strconv.Itoa(max(n, 1)))}
	rest := width - markerWidth - c.index - ratingWidth - verdictWidth - 4*colGap
	c.tags = max(rest*2/5, 0)
	c.name = max(rest-c.tags, 1)
	return c
}

func (c columns) join(marker, index, name, rating, tags, verdict string) string {
	gap := strings.Repeat(" ", colGap)
	line := render.Fit(marker, markerWidth) +
		render.Fit(index, c.index) + gap +
		render.Fit(name, c.name) + gap +
		render.Fit(rating, ratingWidth) + gap +
		render.Fit(tags, c.tags) + gap +
		render.Fit(verdict, verdictWidth)
	return render.Fit(line, c.width)
}

func (c columns) header() string {
	return c.join("", "#", "File", "Rate", "Tags", "")
}

func (c columns) row(i int, t *track.Track, v View) string {
	s := styles.T().S()
	marker := ""
	if t == v.Loaded {
		marker = stateSymbol(v.State)
	}
	name := icons.FormatAudio(render.Sanitize(t.Name()))
	index := fmt.Sprintf("%*d", c.index, i+1)
	tags := strings.Join(t.Tags(), ", ")
	verdict := verdictLabel(t.Verdict())

	if i == v.Selected {
		line := c.join(marker, index, name, Stars(t.Rating()), tags, verdict)
		style := s.Cursor
		if t == v.Loaded {
			style = style.Foreground(styles.T().Primary).Bold(true)
		}
		return style.Render(line)
	}

	nameStyle := s.Base
	if t == v.Loaded {
		nameStyle = s.Playing
	}
	verdictStyle := s.Success
	if t.Verdict() == track.VerdictTrash {
		verdictStyle = s.Error
	}
	return c.join(
		s.Playing.Render(marker),
		s.Muted.Render(index),
		nameStyle.Render(render.TruncateEllipsis(name, c.name)),
		s.Star.Render(Stars(t.Rating())),
		s.Tag.Render(render.TruncateEllipsis(tags, c.tags)),
		verdictStyle.Render(verdict),
	)
}

// Stars draws a rating as filled and empty stars.
func Stars(rating int) string {
	rating = min(max(rating, 0), track.MaxRating)
	return strings.Repeat(icons.Star(), rating) + strings.Repeat(icons.NoStar(), track.MaxRating-rating)
}

func stateSymbol(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return icons.Play()
	case playback.StatePaused:
		return icons.Pause()
	case playback.StateStopped:
	}
	return icons.Stop()
}

func verdictLabel(v track.Verdict) string {
	switch v {
	case track.VerdictTrash:
		return icons.Trash()
	case track.VerdictKeep:
		return icons.Keep()
	case track.VerdictNone:
	}
	return ""
}
