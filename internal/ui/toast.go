package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faaadelmr/noted/internal/notify"
)

type toast struct {
	msg notify.Message
}

// showToast replaces any visible toast with msg and schedules its expiry.
// The desktop notifier sees every message too.
func (m Model) showToast(msg notify.Message) (Model, tea.Cmd) {
	if err := m.notifier.Publish(msg); err != nil {
		m.log.Debug("desktop notification failed", "err", err)
	}
	m.toastSeq++
	m.toast = &toast{msg: msg}
	seq := m.toastSeq
	return m, tea.Tick(m.toastTime, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	box := m.st.Toast
	if m.toast.msg.Kind == notify.KindError {
		box = m.st.ToastError
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.st.ToastTitle.Render(m.toast.msg.Title),
		m.st.Hint.Render(m.toast.msg.Description),
	))
}
