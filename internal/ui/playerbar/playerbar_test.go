package playerbar

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/sift/internal/playback"
	"github.com/llehouerou/sift/internal/player"
)

func TestNewState(t *testing.T) {
	snap := playback.Snapshot{Position: 0.5, Time: 30 * time.Second, Duration: time.Minute}
	s := NewState(playback.StatePaused, snap, "a.mp3", &player.Info{Title: "Song", Size: 2048})
	if s.Title != "Song" || s.Size != 2048 || s.Position != 30*time.Second || s.Duration != time.Minute {
		t.Errorf("NewState() = %+v", s)
	}
	if s := NewState(playback.StateStopped, snap, "a.mp3", nil); s.Title != "" || s.Name != "a.mp3" {
		t.Errorf("NewState(nil info) = %+v", s)
	}
}

func TestRender_Empty(t *testing.T) {
	if Render(State{}, 80) != "" {
		t.Error("Render() with nothing loaded should be empty")
	}
}

func TestRender(t *testing.T) {
	s := State{
		State:    playback.StatePlaying,
		Name:     "demo.flac",
		Artist:   "Band",
		Album:    "Tape",
		Size:     3 * 1024 * 1024,
		Position: 65 * time.Second,
		Duration: 3 * time.Minute,
	}
	out := Render(s, 100)
	if h := lipgloss.Height(out); h != Height {
		t.Errorf("height = %d, want %d", h, Height)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"demo.flac", "Band · Tape", "▶", "1:05 / 3:00", "3.0 MiB"} {
		if !strings.Contains(plain, want) {
			t.Errorf("Render() missing %q in %q", want, plain)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 100 {
			t.Errorf("line width = %d, want <= 100", w)
		}
	}
}

func TestRender_Volume(t *testing.T) {
	base := State{State: playback.StatePlaying, Name: "demo.flac", Duration: time.Minute}
	tests := []struct {
		name   string
		volume int
		muted  bool
		want   string
	}{
		{"full is hidden", 100, false, ""},
		{"attenuated", 40, false, "vol 40%"},
		{"muted", 0, true, "muted"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Volume, s.Muted = tt.volume, tt.muted
			plain := ansi.Strip(Render(s, 100))
			if tt.want == "" {
				if strings.Contains(plain, "vol") || strings.Contains(plain, "muted") {
					t.Errorf("Render() shows volume in %q", plain)
				}
				return
			}
			if !strings.Contains(plain, tt.want) {
				t.Errorf("Render() missing %q in %q", tt.want, plain)
			}
		})
	}
}

func TestRender_Narrow(t *testing.T) {
	s := State{State: playback.StatePaused, Title: strings.Repeat("long title ", 10), Duration: time.Minute}
	out := Render(s, 50)
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 50 {
			t.Errorf("line width = %d, want <= 50", w)
		}
	}
	if !strings.Contains(ansi.Strip(out), "⏸") {
		t.Error("paused bar should show the pause symbol")
	}
}

func TestProgressBar(t *testing.T) {
	got := ansi.Strip(ProgressBar(30*time.Second, time.Minute, 10))
	if got != strings.Repeat(filledGlyph, 5)+strings.Repeat(emptyGlyph, 5) {
		t.Errorf("ProgressBar() = %q", got)
	}
	if got := ansi.Strip(ProgressBar(0, 0, 2)); got != strings.Repeat(emptyGlyph, 5) {
		t.Errorf("ProgressBar() without duration = %q", got)
	}
	if got := ansi.Strip(ProgressBar(2*time.Minute, time.Minute, 6)); got != strings.Repeat(filledGlyph, 6) {
		t.Errorf("ProgressBar() past the end = %q", got)
	}
}

func TestRenderError(t *testing.T) {
	out := ansi.Strip(RenderError("Failed to load track: unsupported format", 80))
	if !strings.Contains(out, "unsupported format") {
		t.Errorf("RenderError() = %q", out)
	}
}
