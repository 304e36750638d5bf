package app

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/sift/internal/mpris"
)

// Sender is the part of tea.Program the bridge needs.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards MPRIS commands into a program. It exists before the
// program does, so commands arriving before Attach are dropped.
type Bridge struct {
	p atomic.Pointer[Sender]
}

var _ mpris.Remote = (*Bridge)(nil)

// Attach starts forwarding to s.
func (b *Bridge) Attach(s Sender) {
	b.p.Store(&s)
}

// Send implements mpris.Remote.
func (b *Bridge) Send(c mpris.Command) {
	if p := b.p.Load(); p != nil {
		(*p).Send(RemoteMsg{Command: c})
	}
}
