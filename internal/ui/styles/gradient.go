package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders text with a horizontal color gradient, one color per
// grapheme cluster.
func Gradient(text string, from, to lipgloss.Color) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 1 {
		return lipgloss.NewStyle().Foreground(from).Render(text)
	}

	colors := Blend(len(clusters), from, to)
	var b strings.Builder
	for i, cluster := range clusters {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(cluster))
	}
	return b.String()
}

// GradientBar renders a width-cell bar whose first filled cells fade from
// from to to. Remaining cells use the empty glyph in the subtle color.
func GradientBar(width, filled int, fill, empty string, from, to lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled = min(max(filled, 0), width)
	colors := Blend(width, from, to)

	var b strings.Builder
	for i := range filled {
		b.WriteString(lipgloss.NewStyle().Foreground(colors[i]).Render(fill))
	}
	if rest := width - filled; rest > 0 {
		b.WriteString(T().S().Subtle.Render(strings.Repeat(empty, rest)))
	}
	return b.String()
}

// Blend returns size colors evenly spaced between from and to.
// Blending is done in HCL space for perceptually uniform steps.
func Blend(size int, from, to lipgloss.Color) []lipgloss.Color {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []lipgloss.Color{from}
	}

	c1, _ := colorful.MakeColor(toColor(from))
	c2, _ := colorful.MakeColor(toColor(to))

	out := make([]lipgloss.Color, size)
	for i := range size {
		t := float64(i) / float64(size-1)
		out[i] = lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
	}
	return out
}

// toColor parses a #rrggbb lipgloss color. ANSI indexes fall back to gray.
func toColor(c lipgloss.Color) color.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		if col, err := colorful.Hex(hex); err == nil {
			return col
		}
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}
