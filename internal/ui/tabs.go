package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/faaadelmr/noted/internal/notes"
)

const (
	maxTabTitle = 20
	closeGlyph  = "×"
	addGlyph    = "+"
)

// same rules the textinput applies to what it is given
var titleSan = runeutil.NewSanitizer(runeutil.ReplaceTabs(" "), runeutil.ReplaceNewlines(" "))

// tabSpan is the horizontal extent of one rendered tab.
type tabSpan struct {
	noteID     string
	start, end int // [start, end) of the title, padding included
	closeX     int
}

// tabLayout renders the tab bar pieces and records where each one landed,
// so mouse hit-testing uses exactly what View drew.
func (m Model) tabLayout() (parts []string, spans []tabSpan, addX int) {
	col := m.manager.Snapshot()
	x := 0
	for _, n := range col.Notes {
		active := n.ID == col.ActiveID

		var title string
		switch {
		case active && m.mode == modeEditTitle && m.editNoteID == n.ID:
			title = m.st.TabActive.Render(m.input.View())
		case active:
			title = m.st.TabActive.Render(ansi.Truncate(n.Title, maxTabTitle, "…"))
		default:
			title = m.st.Tab.Render(ansi.Truncate(n.Title, maxTabTitle, "…"))
		}
		w := ansi.StringWidth(title)
		spans = append(spans, tabSpan{noteID: n.ID, start: x, end: x + w, closeX: x + w})
		parts = append(parts, title, m.st.TabClose.Render(closeGlyph), " ")
		x += w + ansi.StringWidth(closeGlyph) + 1
	}
	parts = append(parts, m.st.TabAdd.Render(addGlyph))
	// TabAdd pads one cell on each side
	addX = x + 1
	return parts, spans, addX
}

func (m Model) renderTabs() string {
	parts, _, _ := m.tabLayout()
	return ansi.Truncate(strings.Join(parts, ""), m.width, "…")
}

// clickTabs handles a left press on the tab bar row.
func (m Model) clickTabs(x int) (Model, tea.Cmd) {
	_, spans, addX := m.tabLayout()
	if x == addX || x == addX-1 || x == addX+1 {
		if m.mode == modeEditTitle {
			m = m.commitTitle()
		}
		m.manager.CreateNote()
		m.cursor, m.offset = 0, 0
		return m.startTitleEdit()
	}
	for _, s := range spans {
		switch {
		case x == s.closeX:
			if m.mode == modeEditTitle {
				m = m.commitTitle()
			}
			return m.removeNote(s.noteID)
		case x >= s.start && x < s.end:
			if m.mode == modeEditTitle && m.editNoteID == s.noteID {
				return m, nil
			}
			if m.mode == modeEditTitle {
				m = m.commitTitle()
			}
			double := m.isDoubleClick("tab:" + s.noteID)
			m = m.activate(s.noteID)
			if double {
				return m.startTitleEdit()
			}
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) isDoubleClick(target string) bool {
	now := m.now()
	double := m.lastClick.target == target && now.Sub(m.lastClick.at) <= doubleClick
	if double {
		m.lastClick = click{}
	} else {
		m.lastClick = click{target: target, at: now}
	}
	return double
}

// Title editing: viewing -> editing on double-click, r or F2; back to
// viewing on enter, esc or blur, always committing the typed title.

func (m Model) startTitleEdit() (Model, tea.Cmd) {
	m.stopEditing()
	active := m.manager.Active()
	m.mode = modeEditTitle
	m.editNoteID = active.ID
	m.input.CharLimit = 0
	m.input.Width = maxTabTitle + 10
	m.titleBuf = newTextBuf(active.Title, titleSan)
	m.input.SetValue(m.titleBuf.Shown())
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

// commitTitle stores the typed title; an untouched title is left as is.
func (m Model) commitTitle() Model {
	if m.titleBuf.Apply(m.input.Value()) {
		err := m.manager.RenameNote(m.editNoteID, m.titleBuf.Text())
		if err != nil && !errors.Is(err, notes.ErrNoteNotFound) {
			m.log.Warn("rename note", "err", err)
		}
	}
	m.stopEditing()
	return m
}

func (m Model) updateEditTitle(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm, m.keys.Cancel) {
		return m.commitTitle(), nil
	}
	if msg.String() == "ctrl+c" {
		return m.commitTitle(), tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
