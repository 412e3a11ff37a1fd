package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faaadelmr/noted/internal/clipboard"
	"github.com/faaadelmr/noted/internal/config"
	"github.com/faaadelmr/noted/internal/notes"
	"github.com/faaadelmr/noted/internal/notify"
	"github.com/faaadelmr/noted/internal/store"
	"github.com/faaadelmr/noted/internal/theme"
	"github.com/faaadelmr/noted/internal/version"
)

type mode int

const (
	modeNormal mode = iota
	modeEditLine
	modeEditTitle
	modeGrab
	modeThemePicker
	modeHelp
)

// screen rows
const (
	rowHeader = 0
	rowTabs   = 1
	linesTop  = 3

	gripWidth   = 2
	doubleClick = 400 * time.Millisecond
)

// Deps is what the TUI needs from the rest of the program.
type Deps struct {
	Config    config.Config
	Store     *store.Store // nil disables persistence
	Manager   *notes.Manager
	Theme     string
	Clipboard *clipboard.Copier
	Notifier  *notify.Notifier
	Changes   <-chan struct{} // external store changes, may be nil
	Log       *slog.Logger
}

type Model struct {
	manager   *notes.Manager
	store     *store.Store
	persist   *saver
	clip      *clipboard.Copier
	notifier  *notify.Notifier
	changes   <-chan struct{}
	log       *slog.Logger
	toastTime time.Duration

	width, height int
	mode          mode

	cursor int
	offset int

	input      textinput.Model
	editor     textarea.Model
	titleBuf   textBuf
	lineBuf    textBuf
	editLineID string
	editNoteID string

	grab   grabState
	picker int

	theme theme.Theme
	st    theme.Styles
	keys  keyMap
	help  help.Model

	toast    *toast
	toastSeq int

	lastClick click
	now       func() time.Time
}

type click struct {
	target string
	at     time.Time
}

// saver is the manager subscription that persists every mutation. The
// last failure is kept so Update can surface it as a toast.
type saver struct {
	store *store.Store
	log   *slog.Logger
	err   error
	stop  func()
}

func (s *saver) save(c notes.Collection) {
	if err := s.store.SaveCollection(c); err != nil {
		s.log.Error("save failed", "err", err)
		s.err = err
	}
}

func (s *saver) takeErr() error {
	if s == nil {
		return nil
	}
	err := s.err
	s.err = nil
	return err
}

// New builds the model and subscribes it to the manager for persistence.
func New(d Deps) Model {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Clipboard == nil {
		d.Clipboard = clipboard.New(d.Config.Clipboard.OSC52)
	}
	dur := d.Config.Toast.Duration
	if dur <= 0 {
		dur = 2 * time.Second
	}

	in := textinput.New()
	in.Prompt = ""

	m := Model{
		manager:   d.Manager,
		store:     d.Store,
		clip:      d.Clipboard,
		notifier:  d.Notifier,
		changes:   d.Changes,
		log:       d.Log,
		toastTime: dur,
		input:     in,
		editor:    newEditor(),
		keys:      defaultKeys(),
		help:      help.New(),
		now:       time.Now,
	}
	if d.Store != nil {
		m.persist = &saver{store: d.Store, log: d.Log}
		m.persist.stop = d.Manager.Subscribe(m.persist.save)
	}
	m.setTheme(theme.Resolve(d.Theme))
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, d Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Changes == nil && d.Store != nil && d.Config.Store.Watch {
		ch, err := d.Store.Watch(ctx)
		switch {
		case err == nil:
			d.Changes = ch
		case errors.Is(err, store.ErrNotWatchable):
		default:
			d.Log.Warn("store watch disabled", "err", err)
		}
	}

	m := New(d)
	if m.persist != nil {
		defer m.persist.stop()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m *Model) setTheme(t theme.Theme) {
	m.theme = t
	m.st = t.Styles()
	m.input.TextStyle = m.st.Line
	m.input.Cursor.Style = m.st.Cursor
	m.editor.FocusedStyle.Placeholder = m.st.Placeholder
	m.editor.FocusedStyle.CursorLine = m.st.Line
	m.editor.FocusedStyle.Text = m.st.Line
	m.editor.Cursor.Style = m.st.Cursor
	m.help.Styles.ShortKey = m.st.AppName
	m.help.Styles.ShortDesc = m.st.Hint
	m.help.Styles.FullKey = m.st.AppName
	m.help.Styles.FullDesc = m.st.Hint
}

type storeChangedMsg struct{}

type toastExpiredMsg struct{ seq int }

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if err := next.persist.takeErr(); err != nil {
		var tcmd tea.Cmd
		next, tcmd = next.showToast(notify.SaveFailed(err))
		cmd = tea.Batch(cmd, tcmd)
	}
	next.clampCursor()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.editor.SetWidth(m.textWidth())
		m.fitEditor()
		return m, nil

	case toastExpiredMsg:
		if m.toast != nil && msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case storeChangedMsg:
		return m.reload()

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case modeEditLine:
			return m.updateEditLine(msg)
		case modeEditTitle:
			return m.updateEditTitle(msg)
		case modeGrab:
			return m.updateGrab(msg)
		case modeThemePicker:
			return m.updateThemePicker(msg)
		case modeHelp:
			if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
				m.mode = modeNormal
			}
			return m, nil
		}
		return m.updateNormal(msg)
	}

	// cursor blink, paste and friends
	switch m.mode {
	case modeEditLine:
		return m.updateEditor(msg)
	case modeEditTitle:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	active := m.manager.Active()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(-1), nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(1), nil
	case key.Matches(msg, m.keys.GotoTab):
		i := int(msg.Runes[0] - '1')
		col := m.manager.Snapshot()
		if i < len(col.Notes) {
			m = m.activate(col.Notes[i].ID)
		}
	case key.Matches(msg, m.keys.NewNote):
		m.manager.CreateNote()
		m.cursor = 0
		return m.startTitleEdit()
	case key.Matches(msg, m.keys.CloseNote):
		return m.removeNote(active.ID)
	case key.Matches(msg, m.keys.Rename):
		return m.startTitleEdit()
	case key.Matches(msg, m.keys.Edit):
		return m.startLineEdit(m.cursor)
	case key.Matches(msg, m.keys.Insert):
		return m.insertAfter(active.ID, m.cursorLineID())
	case key.Matches(msg, m.keys.Heading):
		if _, err := m.manager.ToggleLineStyle(active.ID, m.cursorLineID()); err != nil {
			m.log.Warn("toggle style", "err", err)
		}
	case key.Matches(msg, m.keys.Delete):
		focus, err := m.manager.RemoveLine(active.ID, m.cursorLineID())
		if err != nil {
			m.log.Warn("remove line", "err", err)
			break
		}
		m.focusLine(focus)
	case key.Matches(msg, m.keys.Copy):
		return m.copyLine()
	case key.Matches(msg, m.keys.Grab):
		return m.startGrab(m.cursor, false), nil
	case key.Matches(msg, m.keys.MoveUp):
		return m.nudge(-1), nil
	case key.Matches(msg, m.keys.MoveDown):
		return m.nudge(1), nil
	case key.Matches(msg, m.keys.Theme):
		m.picker = theme.Index(m.theme.ID)
		m.mode = modeThemePicker
	case key.Matches(msg, m.keys.Help):
		m.mode = modeHelp
	}
	return m, nil
}

func (m Model) switchTab(delta int) Model {
	col := m.manager.Snapshot()
	i := col.Index(col.ActiveID) + delta
	n := len(col.Notes)
	i = ((i % n) + n) % n
	return m.activate(col.Notes[i].ID)
}

func (m Model) activate(id string) Model {
	if m.manager.Active().ID == id {
		return m
	}
	if err := m.manager.SetActive(id); err != nil {
		m.log.Warn("set active", "err", err)
		return m
	}
	m.cursor, m.offset = 0, 0
	return m
}

func (m Model) removeNote(id string) (Model, tea.Cmd) {
	n, err := m.manager.Note(id)
	if err != nil {
		return m, nil
	}
	if err := m.manager.RemoveNote(id); err != nil {
		m.log.Warn("remove note", "err", err)
		return m, nil
	}
	m.cursor, m.offset = 0, 0
	return m.showToast(notify.NoteRemoved(n.Title))
}

func (m Model) copyLine() (Model, tea.Cmd) {
	active := m.manager.Active()
	if m.cursor < 0 || m.cursor >= len(active.Lines) {
		return m, nil
	}
	if err := m.clip.Copy(active.Lines[m.cursor].Text); err != nil {
		m.log.Warn("copy failed", "err", err)
		return m.showToast(notify.CopyFailed(err))
	}
	return m.showToast(notify.Copied())
}

// reload swaps in whatever another process wrote to the store.
func (m Model) reload() (Model, tea.Cmd) {
	if m.store == nil {
		return m, m.waitForChange()
	}
	st, err := m.store.Load()
	if err != nil {
		m.log.Error("reload failed", "err", err)
		return m, m.waitForChange()
	}
	// a title being typed is committed on top of what was loaded
	var titleID, title string
	if m.mode == modeEditTitle && m.titleBuf.Apply(m.input.Value()) {
		titleID, title = m.editNoteID, m.titleBuf.Text()
	}
	m.stopEditing()
	m.manager.Replace(st.Notes)
	if titleID != "" {
		if err := m.manager.RenameNote(titleID, title); err != nil && !errors.Is(err, notes.ErrNoteNotFound) {
			m.log.Warn("rename note", "err", err)
		}
	}
	if st.Theme != "" && st.Theme != m.theme.ID {
		m.setTheme(theme.Resolve(st.Theme))
	}
	m.clampCursor()
	m, cmd := m.showToast(notify.Reloaded())
	return m, tea.Batch(cmd, m.waitForChange())
}

func (m *Model) stopEditing() {
	if m.mode == modeEditLine || m.mode == modeEditTitle || m.mode == modeGrab {
		m.mode = modeNormal
	}
	m.input.Blur()
	m.editor.Blur()
	m.editLineID, m.editNoteID = "", ""
	m.grab = grabState{}
}

func (m Model) cursorLineID() string {
	lines := m.manager.Active().Lines
	if m.cursor < 0 || m.cursor >= len(lines) {
		return ""
	}
	return lines[m.cursor].ID
}

// focusLine moves the cursor to the line with id, or to the top when id
// is empty.
func (m *Model) focusLine(id string) {
	if id == "" {
		m.cursor = 0
		return
	}
	if i := m.manager.Active().LineIndex(id); i >= 0 {
		m.cursor = i
	}
}

func (m *Model) clampCursor() {
	n := len(m.manager.Active().Lines)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.offset < 0 {
		m.offset = 0
	}
	// scroll until the whole cursor line fits, or it is the top line
	h := m.linesHeight()
	for m.offset < m.cursor && m.rowsBetween(m.offset, m.cursor) > h {
		m.offset++
	}
}

// rowsBetween is the screen rows taken by lines from..to inclusive.
func (m Model) rowsBetween(from, to int) int {
	rows := 0
	for i := from; i <= to; i++ {
		rows += m.lineRows(i)
	}
	return rows
}

func (m Model) linesHeight() int {
	h := m.height - linesTop - 1
	if m.toast != nil {
		h -= lipgloss.Height(m.renderToast())
	}
	return max(1, h)
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	top := m.renderTopBar()
	tabs := m.renderTabs()
	sep := m.st.Hint.Render(strings.Repeat("─", m.width))
	status := m.statusBar()

	body := lipgloss.NewStyle().Height(m.linesHeight()).Render(m.renderLines(m.linesHeight()))
	parts := []string{top, tabs, sep, body}
	if m.toast != nil {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.renderToast()))
	}
	parts = append(parts, status)
	ui := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// overlays
	switch m.mode {
	case modeThemePicker:
		ui = overlayCenter(ui, m.renderThemePicker(), m.width, m.height)
	case modeHelp:
		ui = overlayCenter(ui, m.modal("Keys", m.help.FullHelpView(m.keys.FullHelp())), m.width, m.height)
	}
	return ui
}

func (m Model) renderTopBar() string {
	left := m.st.AppName.Render("noted")
	right := m.st.Hint.Render(m.theme.Name + " · " + version.Short())
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return m.st.TopBar.Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) statusBar() string {
	var hints string
	switch m.mode {
	case modeEditLine:
		hints = "enter new line · alt+enter line break · backspace on empty line deletes · esc done"
	case modeEditTitle:
		hints = "enter/esc save title"
	case modeGrab:
		hints = m.help.View(grabKeys{m.keys})
	default:
		hints = m.help.View(m.keys)
	}
	active := m.manager.Active()
	pos := m.st.Hint.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(active.Lines)))
	gap := max(1, m.width-lipgloss.Width(hints)-lipgloss.Width(pos)-2)
	return m.st.StatusBar.Width(m.width).MaxWidth(m.width).Render(hints + strings.Repeat(" ", gap) + pos)
}

func (m Model) modal(title, content string) string {
	box := lipgloss.JoinVertical(lipgloss.Left,
		m.st.ModalTitle.Render(title),
		content,
	)
	return m.st.ModalBox.Render(box)
}
