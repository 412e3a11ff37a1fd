package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faaadelmr/noted/internal/notes"
)

const gripGlyph = "⠿"

// same rules the textarea applies to what it is given
var lineSan = runeutil.NewSanitizer()

func newEditor() textarea.Model {
	ed := textarea.New()
	ed.Prompt = ""
	ed.Placeholder = "empty line"
	ed.ShowLineNumbers = false
	ed.EndOfBufferCharacter = ' '
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.MaxWidth = 0
	ed.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ed.SetHeight(1)
	return ed
}

func (m Model) textWidth() int { return max(1, m.width-gripWidth) }

// lineText renders a line that is not being edited.
func (m Model) lineText(i int) string {
	l := m.manager.Active().Lines[i]
	var text string
	switch {
	case l.Text == "" && i == m.cursor:
		text = m.st.Placeholder.Render("empty line")
	case l.Style == notes.StyleHeading:
		text = m.st.Heading.Render(displayText(l.Text))
	default:
		text = m.st.Line.Render(displayText(l.Text))
	}
	return lipgloss.NewStyle().Width(m.textWidth()).Render(text)
}

func displayText(s string) string { return string(lineSan.Sanitize([]rune(s))) }

// lineRows is how many screen rows line i takes.
func (m Model) lineRows(i int) int {
	if m.mode == modeEditLine && m.manager.Active().Lines[i].ID == m.editLineID {
		return m.editor.Height()
	}
	return lipgloss.Height(m.lineText(i))
}

func (m Model) renderLines(height int) string {
	active := m.manager.Active()

	var rows []string
	for i := m.offset; i < len(active.Lines) && len(rows) < height; i++ {
		l := active.Lines[i]

		grip := m.st.Grip.Render(gripGlyph)
		if m.mode == modeGrab {
			switch i {
			case m.grab.from:
				grip = m.st.GripActive.Render(gripGlyph)
			case m.grab.to:
				grip = m.st.DropTarget.Render("▸")
			}
		}

		var block string
		if m.mode == modeEditLine && l.ID == m.editLineID {
			block = m.editor.View()
		} else {
			block = m.lineText(i)
		}

		for j, text := range strings.Split(block, "\n") {
			g := strings.Repeat(" ", gripWidth-1)
			if j == 0 {
				g = grip
			}
			row := g + " " + text
			if i == m.cursor && m.mode != modeEditLine {
				row = m.st.Cursor.Width(m.width).MaxWidth(m.width).Render(row)
			}
			rows = append(rows, row)
		}
	}
	if len(rows) > height {
		rows = rows[:height]
	}
	return strings.Join(rows, "\n")
}

// lineAt maps a screen row to a line index, or -1.
func (m Model) lineAt(y int) int {
	if y < linesTop || y >= linesTop+m.linesHeight() {
		return -1
	}
	row := linesTop
	lines := m.manager.Active().Lines
	for i := m.offset; i < len(lines); i++ {
		row += m.lineRows(i)
		if y < row {
			return i
		}
	}
	return -1
}

func (m Model) startLineEdit(i int) (Model, tea.Cmd) {
	active := m.manager.Active()
	if i < 0 || i >= len(active.Lines) {
		return m, nil
	}
	m.stopEditing()
	l := active.Lines[i]
	m.cursor = i
	m.mode = modeEditLine
	m.editNoteID = active.ID
	m.editLineID = l.ID

	text := m.st.Line
	if l.Style == notes.StyleHeading {
		text = m.st.Heading
	}
	m.editor.FocusedStyle.Text = text
	m.editor.FocusedStyle.CursorLine = text
	m.editor.SetWidth(m.textWidth())

	m.lineBuf = newTextBuf(l.Text, lineSan)
	m.editor.SetValue(m.lineBuf.Shown())
	m.fitEditor()
	cmd := m.editor.Focus()
	return m, cmd
}

// fitEditor grows the textarea to the rows its value wraps to. Wrapping
// one column short keeps room for the cursor at a row end.
func (m *Model) fitEditor() {
	w := max(1, m.editor.Width()-1)
	rows := 0
	for _, l := range strings.Split(m.editor.Value(), "\n") {
		rows += lipgloss.Height(lipgloss.NewStyle().Width(w).Render(l))
	}
	m.editor.SetHeight(min(max(1, rows), m.linesHeight()))
}

func (m Model) insertAfter(noteID, afterID string) (Model, tea.Cmd) {
	l, err := m.manager.InsertLine(noteID, afterID)
	if err != nil {
		m.log.Warn("insert line", "err", err)
		return m, nil
	}
	m.focusLine(l.ID)
	return m.startLineEdit(m.cursor)
}

func (m Model) updateEditLine(msg tea.KeyMsg) (Model, tea.Cmd) {
	noteID, lineID := m.editNoteID, m.editLineID
	info := m.editor.LineInfo()

	switch {
	case msg.String() == "ctrl+c":
		m.stopEditing()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m.insertAfter(noteID, lineID)
	case msg.Type == tea.KeyUp && m.editor.Line() == 0 && info.RowOffset == 0:
		return m.startLineEdit(m.cursor - 1)
	case msg.Type == tea.KeyDown && m.editor.Line() == m.editor.LineCount()-1 && info.RowOffset+1 >= info.Height:
		return m.startLineEdit(m.cursor + 1)
	case msg.Type == tea.KeyBackspace && m.editor.Value() == "":
		if len(m.manager.Active().Lines) <= 1 {
			return m, nil
		}
		focus, err := m.manager.RemoveLine(noteID, lineID)
		if err != nil {
			m.log.Warn("remove line", "err", err)
			return m, nil
		}
		m.focusLine(focus)
		return m.startLineEdit(m.cursor)
	}
	return m.updateEditor(msg)
}

// updateEditor feeds msg to the textarea and stores any text change.
func (m Model) updateEditor(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.fitEditor()
	if !m.lineBuf.Apply(m.editor.Value()) {
		return m, cmd
	}
	if err := m.manager.EditLineText(m.editNoteID, m.editLineID, m.lineBuf.Text()); err != nil {
		m.log.Warn("edit line", "err", err)
		m.stopEditing()
	}
	return m, cmd
}
