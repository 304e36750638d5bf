// Package tagbar renders the tag vocabulary with the selected track's tags lit.
package tagbar

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/sift/internal/track"
	"github.com/llehouerou/sift/internal/ui/render"
	"github.com/llehouerou/sift/internal/ui/styles"
)

// Height is the fixed height of the tag bar.
const Height = 1

// Render lays out every tag as "key:Tag". keys maps tags to the label of
// their binding; unbound tags show without a key. t may be nil.
func Render(vocab *track.Vocabulary, t *track.Track, keys map[string]string, width int) string {
	if vocab == nil || width <= 0 {
		return ""
	}
	s := styles.T().S()

	parts := make([]string, 0, vocab.Len())
	for _, tag := range vocab.Tags() {
		label := tag
		if k, ok := keys[tag]; ok {
			label = k + ":" + tag
		}
		if t != nil && t.HasTag(tag) {
			parts = append(parts, s.Tag.Render(label))
		} else {
			parts = append(parts, s.Subtle.Render(label))
		}
	}

	line := strings.Join(parts, " ")
	if ansi.StringWidth(line) > width {
		return render.TruncateEllipsis(line, width)
	}
	return line
}
