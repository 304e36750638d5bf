package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Paste {
			cmd = m.handleDrop(string(msg.Runes))
			break
		}
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case DropMsg:
		cmd = m.handleDrop(msg.Text)

	case PollMsg:
		if m.ctrl.Tick(msg.Gen) {
			cmd = PollCmd(m.ctrl.PollInterval(), msg.Gen)
		}

	case RemoteMsg:
		cmd = m.handleRemote(msg.Command)

	case InfoMsg:
		m.handleInfo(msg)
		return m, nil

	default:
		return m, nil
	}

	after := m.settle()
	return m, tea.Batch(cmd, after)
}

// settle runs after anything that may have touched playback or marks: it
// persists edited tracks, reacts to controller events, starts a pending poll
// chain and republishes the status.
func (m *Model) settle() tea.Cmd {
	var cmds []tea.Cmd

	for _, t := range m.sess.changed {
		m.store.Save(t)
	}
	m.sess.changed = m.sess.changed[:0]

	cmds = append(cmds, m.drainEvents()...)

	if gen, ok := m.ctrl.PendingPoll(); ok {
		cmds = append(cmds, PollCmd(m.ctrl.PollInterval(), gen))
	}

	m.resize()
	m.publish()

	if m.sess.quit {
		log.Info().Msg("quit")
		cmds = append(cmds, tea.Quit)
	}
	return tea.Batch(cmds...)
}
