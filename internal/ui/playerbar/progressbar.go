package playerbar

import (
	"time"

	"github.com/llehouerou/sift/internal/ui"
	"github.com/llehouerou/sift/internal/ui/render"
	"github.com/llehouerou/sift/internal/ui/styles"
)

const (
	filledGlyph = "━"
	emptyGlyph  = "─"
)

// ProgressBar renders a width-cell bar for position within duration, with a
// gradient from the primary to the secondary color.
func ProgressBar(position, duration time.Duration, width int) string {
	width = max(width, ui.MinProgressBarWidth)
	var ratio float64
	if duration > 0 {
		ratio = min(float64(position)/float64(duration), 1)
	}
	filled := int(float64(width) * ratio)
	t := styles.T()
	return styles.GradientBar(width, filled, filledGlyph, emptyGlyph, t.Primary, t.Secondary)
}

// Clock renders "m:ss / m:ss".
func Clock(position, duration time.Duration) string {
	return render.Clock(position) + " / " + render.Clock(duration)
}
