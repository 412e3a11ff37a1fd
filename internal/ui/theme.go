package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/faaadelmr/noted/internal/notify"
	"github.com/faaadelmr/noted/internal/theme"
)

func (m Model) updateThemePicker(msg tea.KeyMsg) (Model, tea.Cmd) {
	all := theme.All()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.picker = (m.picker - 1 + len(all)) % len(all)
	case key.Matches(msg, m.keys.Down):
		m.picker = (m.picker + 1) % len(all)
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Theme):
		m.mode = modeNormal
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeNormal
		return m.applyTheme(all[m.picker])
	}
	return m, nil
}

func (m Model) applyTheme(t theme.Theme) (Model, tea.Cmd) {
	if t.ID == m.theme.ID {
		return m, nil
	}
	m.setTheme(t)
	if m.store != nil {
		if err := m.store.SaveTheme(t.ID); err != nil {
			m.log.Error("save theme", "err", err)
			return m.showToast(notify.SaveFailed(err))
		}
	}
	return m.showToast(notify.ThemeChanged(t.Name))
}

func (m Model) renderThemePicker() string {
	var b strings.Builder
	for i, t := range theme.All() {
		swatch := t.Styles().AppName.Render("●")
		label := swatch + " " + t.Name
		if t.ID == m.theme.ID {
			label += m.st.Hint.Render("  (current)")
		}
		if i == m.picker {
			label = m.st.Selected.Render(" " + t.Name + " ")
		} else {
			label = " " + label
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.Hint.Render("↑/↓ choose · enter apply · esc close"))
	return m.modal("Theme", b.String())
}
