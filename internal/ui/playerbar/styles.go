package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/sift/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.T().S().Panel
}

func titleStyle() lipgloss.Style  { return styles.T().S().Title }
func artistStyle() lipgloss.Style { return styles.T().S().Muted }
func metaStyle() lipgloss.Style   { return styles.T().S().Subtle }
func timeStyle() lipgloss.Style   { return styles.T().S().Base }
func errorStyle() lipgloss.Style  { return styles.T().S().Error }
func statusStyle() lipgloss.Style { return styles.T().S().Playing }
