package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// grabState is the transient source/target pair of a line move. It is
// never persisted; only the final ReorderLines is.
type grabState struct {
	noteID   string
	from, to int
	mouse    bool
}

func (m Model) startGrab(i int, mouse bool) Model {
	m.stopEditing()
	m.cursor = i
	m.grab = grabState{noteID: m.manager.Active().ID, from: i, to: i, mouse: mouse}
	m.mode = modeGrab
	return m
}

func (m Model) updateGrab(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.manager.Active().Lines)
	switch {
	case key.Matches(msg, m.keys.Up):
		m.grab.to = max(0, m.grab.to-1)
	case key.Matches(msg, m.keys.Down):
		m.grab.to = min(n-1, m.grab.to+1)
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Grab):
		return m.drop(), nil
	case key.Matches(msg, m.keys.Cancel):
		return m.cancelGrab(), nil
	}
	m.cursor = m.grab.to
	return m, nil
}

func (m Model) cancelGrab() Model {
	if m.grab.noteID == m.manager.Active().ID {
		m.cursor = m.grab.from
	}
	m.grab = grabState{}
	m.mode = modeNormal
	return m
}

// drop commits the move in the note it was grabbed from and clears the grab.
func (m Model) drop() Model {
	g := m.grab
	m.grab = grabState{}
	m.mode = modeNormal
	if err := m.manager.ReorderLines(g.noteID, g.from, g.to); err != nil {
		m.log.Warn("reorder lines", "err", err)
		return m
	}
	if g.noteID == m.manager.Active().ID {
		m.cursor = g.to
	}
	return m
}

// nudge moves the cursor line one step without entering grab mode.
func (m Model) nudge(delta int) Model {
	to := m.cursor + delta
	if to < 0 || to >= len(m.manager.Active().Lines) {
		return m
	}
	if err := m.manager.ReorderLines(m.manager.Active().ID, m.cursor, to); err != nil {
		m.log.Warn("reorder lines", "err", err)
		return m
	}
	m.cursor = to
	return m
}
