package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

func TestBlend(t *testing.T) {
	got := Blend(3, "#000000", "#ffffff")
	if len(got) != 3 {
		t.Fatalf("Blend() returned %d colors, want 3", len(got))
	}
	if !near(t, got[0], "#000000") || !near(t, got[2], "#ffffff") {
		t.Errorf("Blend() endpoints = %s, %s", got[0], got[2])
	}
	if got[1] == got[0] || got[1] == got[2] {
		t.Errorf("Blend() middle = %s, want an intermediate color", got[1])
	}

	if len(Blend(0, "#000000", "#ffffff")) != 0 {
		t.Error("Blend(0) should be empty")
	}
	if one := Blend(1, "#123456", "#ffffff"); len(one) != 1 || one[0] != "#123456" {
		t.Errorf("Blend(1) = %v", one)
	}
}

func near(t *testing.T, got lipgloss.Color, want string) bool {
	t.Helper()
	a, err := colorful.Hex(string(got))
	if err != nil {
		t.Fatalf("bad color %q: %v", got, err)
	}
	b, _ := colorful.Hex(want)
	return a.DistanceRgb(b) < 0.02
}

func TestBlend_ANSIFallback(t *testing.T) {
	got := Blend(2, lipgloss.Color("240"), "#ffffff")
	if !near(t, got[0], "#808080") {
		t.Errorf("ANSI color blended from %s, want gray", got[0])
	}
}

func TestGradient_KeepsText(t *testing.T) {
	if Gradient("", "#000000", "#ffffff") != "" {
		t.Error("Gradient(\"\") should be empty")
	}
	out := Gradient("héllo", "#a78bfa", "#f1a208")
	if ansi.Strip(out) != "héllo" {
		t.Errorf("Gradient() text = %q", ansi.Strip(out))
	}
}

func TestGradientBar(t *testing.T) {
	out := ansi.Strip(GradientBar(6, 2, "━", "─", "#a78bfa", "#f1a208"))
	if out != "━━────" {
		t.Errorf("GradientBar() = %q", out)
	}
	if ansi.Strip(GradientBar(3, 9, "━", "─", "#000000", "#ffffff")) != "━━━" {
		t.Error("GradientBar() should clamp filled to width")
	}
	if GradientBar(0, 1, "━", "─", "#000000", "#ffffff") != "" {
		t.Error("GradientBar(0) should be empty")
	}
}

func TestTheme_Styles(t *testing.T) {
	s := T().S()
	if s != T().S() {
		t.Error("S() should cache its styles")
	}
	if !strings.Contains(s.Panel.Render("x"), "╭") {
		t.Error("Panel should use a rounded border")
	}
}
