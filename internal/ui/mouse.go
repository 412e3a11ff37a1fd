package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modeThemePicker, modeHelp:
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.mode == modeNormal {
			m.cursor--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.mode == modeNormal {
			m.cursor++
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.mode == modeGrab && m.grab.mouse {
			if i := m.lineAt(msg.Y); i >= 0 {
				m.grab.to = i
			}
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.mode == modeGrab && m.grab.mouse {
			return m.drop(), nil
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// a press ends a keyboard grab before doing anything else
		if m.mode == modeGrab && !m.grab.mouse {
			m = m.cancelGrab()
		}
		if msg.Y == rowTabs {
			return m.clickTabs(msg.X)
		}
		return m.clickLines(msg.X, msg.Y)
	}
	return m, nil
}

func (m Model) clickLines(x, y int) (Model, tea.Cmd) {
	// any click outside the tab bar blurs the title editor
	if m.mode == modeEditTitle {
		m = m.commitTitle()
	}
	i := m.lineAt(y)
	if i < 0 {
		if m.mode == modeEditLine {
			m.stopEditing()
		}
		return m, nil
	}
	if x < gripWidth {
		return m.startGrab(i, true), nil
	}
	if m.mode == modeEditLine && m.cursor == i {
		return m, nil
	}
	double := m.isDoubleClick("line:" + m.manager.Active().Lines[i].ID)
	if m.mode == modeEditLine || double {
		return m.startLineEdit(i)
	}
	m.cursor = i
	return m, nil
}
