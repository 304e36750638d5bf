// Package playerbar renders the loaded track, playback state and progress.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/sift/internal/icons"
	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/player"
	"github.com/llehouerou/sift/internal/ui/render"
)

// Height is the bordered single-line bar.
const Height = 3

const (
	separator = "   "
	minBar    = 10
)

// State holds everything needed to render the player bar.
type State struct {
	State    playback.State
	Name     string // file name, used when tags have no title
	Title    string
	Artist   string
	Album    string
	Size     int64
	Position time.Duration
	Duration time.Duration
	Volume   int  // percent, shown when below full
	Muted    bool // takes precedence over Volume
}

// NewState builds a State from the controller snapshot and the loaded
// file's info. info may be nil while it is being read.
func NewState(state playback.State, snap playback.Snapshot, name string, info *player.Info) State {
	s := State{
		State:    state,
		Name:     name,
		Position: snap.Time,
		Duration: snap.Duration,
	}
	if info != nil {
		s.Title = info.Title
		s.Artist = info.Artist
		s.Album = info.Album
		s.Size = info.Size
	}
	return s
}

// Render returns the bar for the given width. An unnamed state renders
// nothing: no track is loaded.
func Render(s State, width int) string {
	if s.Name == "" && s.Title == "" {
		return ""
	}
	inner := max(width-6, 0)

	status := statusStyle().Render(symbol(s.State))
	clock := Clock(s.Position, s.Duration)
	size := ""
	if s.Size > 0 {
		size = humanize.IBytes(uint64(s.Size))
	}
	if vol := volumeLabel(s); vol != "" {
		clock += separator + vol
	}

	title := s.Title
	if title == "" {
		title = s.Name
	}
	info := strings.Join(nonEmpty(s.Artist, s.Album), " · ")

	fixed := lipgloss.Width(status) + 2 + len(separator) + lipgloss.Width(clock)
	if size != "" {
		fixed += len(separator) + lipgloss.Width(size)
	}
	room := max(inner-fixed-minBar-len(separator), 10)

	var text strings.Builder
	titleW := min(lipgloss.Width(title), room)
	text.WriteString(titleStyle().Render(render.TruncateEllipsis(title, titleW)))
	used := titleW
	if info != "" && room-used > len(separator)+3 {
		infoW := min(lipgloss.Width(info), room-used-len(separator))
		text.WriteString(separator)
		text.WriteString(artistStyle().Render(render.TruncateEllipsis(info, infoW)))
		used += len(separator) + infoW
	}

	bar := ProgressBar(s.Position, s.Duration, inner-used-fixed-len(separator))

	var b strings.Builder
	b.WriteString(text.String())
	b.WriteString(separator)
	b.WriteString(status)
	b.WriteString("  ")
	b.WriteString(bar)
	b.WriteString(separator)
	b.WriteString(timeStyle().Render(clock))
	if size != "" {
		b.WriteString(separator)
		b.WriteString(metaStyle().Render(size))
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(render.TruncateEllipsis(b.String(), inner))
}

func volumeLabel(s State) string {
	switch {
	case s.Muted:
		return "muted"
	case s.Volume > 0 && s.Volume < 100:
		return fmt.Sprintf("vol %d%%", s.Volume)
	default:
		return ""
	}
}

// RenderError shows a failed load in place of the bar.
func RenderError(msg string, width int) string {
	inner := max(width-6, 0)
	return barStyle().Padding(0, 2).Width(width - 2).Render(errorStyle().Render(render.TruncateEllipsis(msg, inner)))
}

func symbol(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return icons.Play()
	case playback.StatePaused:
		return icons.Pause()
	case playback.StateStopped:
	}
	return icons.Stop()
}

func nonEmpty(ss ...string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
