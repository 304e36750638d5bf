// Package layout provides pure functions for UI dimension calculations.
//
// The screen stacks, top to bottom: header, track panel, tag bar,
// player bar, message line and help footer.
package layout

import "github.com/llehouerou/sift/internal/ui"

// MinPanelHeight keeps the track panel usable on tiny terminals.
const MinPanelHeight = ui.PanelOverhead + 1

// Opts are the heights of everything around the track panel.
// Zero means the component is hidden.
type Opts struct {
	HeaderHeight    int
	TagBarHeight    int
	PlayerBarHeight int
	MessageHeight   int
	HelpHeight      int
}

func (o Opts) chrome() int {
	return o.HeaderHeight + o.TagBarHeight + o.PlayerBarHeight + o.MessageHeight + o.HelpHeight
}

// PanelHeight is the height left for the bordered track panel.
func PanelHeight(windowHeight int, o Opts) int {
	return max(windowHeight-o.chrome(), MinPanelHeight)
}

// ListHeight is the number of track rows the panel can show.
func ListHeight(windowHeight int, o Opts) int {
	return PanelHeight(windowHeight, o) - ui.PanelOverhead
}

// ListTop returns the 0-based screen row of the first track row:
// below the header, the panel's top border, column header and separator.
func ListTop(o Opts) int {
	return o.HeaderHeight + ui.PanelOverhead - 1
}

// ListRow converts a 0-based screen row to a row inside the track list.
// The result may be out of range; callers check against ListHeight.
func ListRow(y int, o Opts) int {
	return y - ListTop(o)
}
