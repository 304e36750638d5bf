package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/sift/internal/player"
)

// PollCmd schedules the next position poll for gen.
func PollCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollMsg{Gen: gen}
	})
}

// ReadInfoCmd reads the tags of path off the event loop.
func ReadInfoCmd(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := player.ReadInfo(path)
		return InfoMsg{Path: path, Info: info, Err: err}
	}
}
