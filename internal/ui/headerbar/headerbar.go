// Package headerbar renders the one-line title bar.
package headerbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/sift/internal/ui/render"
	"github.com/llehouerou/sift/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// State is what the header shows.
type State struct {
	Source string // folder or "n dropped files"
	Tracks int
	Trash  int
	Keep   int
}

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

// Render returns the header bar string for the given width.
func Render(s State, width int) string {
	if width < 20 {
		return ""
	}
	st := styles.T().S()
	sep := separatorStyle.Render(" │ ")

	right := []string{st.Muted.Render(fmt.Sprintf("%d tracks", s.Tracks))}
	if s.Trash > 0 {
		right = append(right, st.Error.Render(fmt.Sprintf("%d trash", s.Trash)))
	}
	if s.Keep > 0 {
		right = append(right, st.Success.Render(fmt.Sprintf("%d keep", s.Keep)))
	}
	rightText := strings.Join(right, sep)

	left := styles.Gradient("sift", styles.T().Primary, styles.T().Secondary)
	if s.Source != "" {
		room := width - lipgloss.Width(left) - lipgloss.Width(sep) - lipgloss.Width(rightText) - 1
		if room > 3 {
			left += sep + st.Base.Render(render.TruncateEllipsis(render.Sanitize(s.Source), room))
		}
	}
	return render.Row(left, rightText, width)
}
