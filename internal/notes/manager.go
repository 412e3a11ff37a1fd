package notes

import (
	"errors"
	"log/slog"
	"strings"
)

var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrLineNotFound    = errors.New("line not found")
	ErrIndexOutOfRange = errors.New("line index out of range")
)

// Manager owns a Collection and applies mutations to it. After every
// committed mutation each subscriber receives a snapshot; persistence is
// wired in that way rather than called from here.
//
// A Manager is not safe for concurrent use; the UI drives it from its
// single update loop.
type Manager struct {
	col    Collection
	ids    IDSource
	log    *slog.Logger
	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(Collection)
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDSource overrides the id generator.
func WithIDSource(ids IDSource) Option {
	return func(m *Manager) { m.ids = ids }
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager takes ownership of a copy of col. The collection is
// normalized first, so an empty or inconsistent input still yields a
// usable manager.
func NewManager(col Collection, opts ...Option) *Manager {
	m := &Manager{ids: UUIDSource{}, log: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	m.col = Normalize(col.Clone(), m.ids)
	return m
}

// Subscribe registers fn to run after each mutation. The returned func
// removes it.
func (m *Manager) Subscribe(fn func(Collection)) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) commit(op string) {
	m.log.Debug("notes mutation", "op", op, "notes", len(m.col.Notes), "active", m.col.ActiveID)
	for _, s := range m.subs {
		s.fn(m.col.Clone())
	}
}

// Snapshot returns a deep copy of the current collection.
func (m *Manager) Snapshot() Collection { return m.col.Clone() }

// Active returns a copy of the active note.
func (m *Manager) Active() Note {
	n, _ := m.col.Active()
	return n.Clone()
}

// Note returns a copy of the note with id.
func (m *Manager) Note(id string) (Note, error) {
	i := m.col.Index(id)
	if i < 0 {
		return Note{}, ErrNoteNotFound
	}
	return m.col.Notes[i].Clone(), nil
}

// Replace swaps in a collection loaded from elsewhere, e.g. after the
// store changed underneath us. Subscribers are not notified.
func (m *Manager) Replace(col Collection) {
	m.col = Normalize(col.Clone(), m.ids)
}

// SetActive makes the note with id the active one.
func (m *Manager) SetActive(id string) error {
	if m.col.Index(id) < 0 {
		return ErrNoteNotFound
	}
	if m.col.ActiveID == id {
		return nil
	}
	m.col.ActiveID = id
	m.commit("set-active")
	return nil
}

// CreateNote appends an untitled note with one blank line and activates it.
func (m *Manager) CreateNote() Note {
	n := Note{ID: m.freshNoteID(), Title: DefaultTitle}
	n.Lines = []Line{{ID: m.freshLineID(n), Style: StyleNormal}}
	m.col.Notes = append(m.col.Notes, n)
	m.col.ActiveID = n.ID
	m.commit("create-note")
	return n.Clone()
}

// RemoveNote deletes a note. Removing the last note leaves a fresh
// untitled one. Removing the active note activates its predecessor, or
// the first note when it had none.
func (m *Manager) RemoveNote(id string) error {
	idx := m.col.Index(id)
	if idx < 0 {
		return ErrNoteNotFound
	}
	m.col.Notes = append(m.col.Notes[:idx], m.col.Notes[idx+1:]...)

	switch {
	case len(m.col.Notes) == 0:
		n := Note{ID: m.freshNoteID(), Title: DefaultTitle}
		n.Lines = []Line{{ID: m.freshLineID(n), Style: StyleNormal}}
		m.col.Notes = []Note{n}
		m.col.ActiveID = n.ID
	case m.col.ActiveID == id:
		m.col.ActiveID = m.col.Notes[max(0, idx-1)].ID
	}
	m.commit("remove-note")
	return nil
}

// RenameNote sets a note's title. A blank title becomes DefaultTitle.
func (m *Manager) RenameNote(id, title string) error {
	idx := m.col.Index(id)
	if idx < 0 {
		return ErrNoteNotFound
	}
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	m.col.Notes[idx].Title = title
	m.commit("rename-note")
	return nil
}

// InsertLine adds a blank normal line right after afterLineID, or at the
// end when afterLineID is empty.
func (m *Manager) InsertLine(noteID, afterLineID string) (Line, error) {
	n, err := m.note(noteID)
	if err != nil {
		return Line{}, err
	}
	at := len(n.Lines)
	if afterLineID != "" {
		i := n.LineIndex(afterLineID)
		if i < 0 {
			return Line{}, ErrLineNotFound
		}
		at = i + 1
	}
	l := Line{ID: m.freshLineID(*n), Style: StyleNormal}
	n.Lines = append(n.Lines, Line{})
	copy(n.Lines[at+1:], n.Lines[at:])
	n.Lines[at] = l
	m.commit("insert-line")
	return l, nil
}

// EditLineText replaces a line's text verbatim.
func (m *Manager) EditLineText(noteID, lineID, text string) error {
	l, err := m.line(noteID, lineID)
	if err != nil {
		return err
	}
	if l.Text == text {
		return nil
	}
	l.Text = text
	m.commit("edit-line")
	return nil
}

// ToggleLineStyle flips a line between normal and heading and returns the
// new style.
func (m *Manager) ToggleLineStyle(noteID, lineID string) (Style, error) {
	l, err := m.line(noteID, lineID)
	if err != nil {
		return "", err
	}
	l.Style = l.Style.Toggle()
	m.commit("toggle-style")
	return l.Style, nil
}

// SetLineStyle sets a line's style explicitly.
func (m *Manager) SetLineStyle(noteID, lineID string, style Style) error {
	style, err := ParseStyle(string(style))
	if err != nil {
		return err
	}
	l, err := m.line(noteID, lineID)
	if err != nil {
		return err
	}
	if l.Style == style {
		return nil
	}
	l.Style = style
	m.commit("set-style")
	return nil
}

// RemoveLine deletes a line. A note never ends up empty: removing its only
// line leaves a fresh blank one. When the removed line was not the first,
// focusID names the line that preceded it so the caller can move focus.
func (m *Manager) RemoveLine(noteID, lineID string) (focusID string, err error) {
	n, err := m.note(noteID)
	if err != nil {
		return "", err
	}
	i := n.LineIndex(lineID)
	if i < 0 {
		return "", ErrLineNotFound
	}
	if i > 0 {
		focusID = n.Lines[i-1].ID
	}
	n.Lines = append(n.Lines[:i], n.Lines[i+1:]...)
	if len(n.Lines) == 0 {
		n.Lines = []Line{{ID: m.freshLineID(*n), Style: StyleNormal}}
	}
	m.commit("remove-line")
	return focusID, nil
}

// ReorderLines moves the line at from so that it ends up at to; the other
// lines keep their relative order.
func (m *Manager) ReorderLines(noteID string, from, to int) error {
	n, err := m.note(noteID)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(n.Lines) || to < 0 || to >= len(n.Lines) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	moved := n.Lines[from]
	n.Lines = append(n.Lines[:from], n.Lines[from+1:]...)
	n.Lines = append(n.Lines[:to], append([]Line{moved}, n.Lines[to:]...)...)
	m.commit("reorder-lines")
	return nil
}

func (m *Manager) note(id string) (*Note, error) {
	i := m.col.Index(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	return &m.col.Notes[i], nil
}

func (m *Manager) line(noteID, lineID string) (*Line, error) {
	n, err := m.note(noteID)
	if err != nil {
		return nil, err
	}
	i := n.LineIndex(lineID)
	if i < 0 {
		return nil, ErrLineNotFound
	}
	return &n.Lines[i], nil
}

func (m *Manager) freshNoteID() string {
	for {
		id := m.ids.NoteID()
		if m.col.Index(id) < 0 {
			return id
		}
	}
}

func (m *Manager) freshLineID(n Note) string {
	for {
		id := m.ids.LineID()
		if n.LineIndex(id) < 0 {
			return id
		}
	}
}
