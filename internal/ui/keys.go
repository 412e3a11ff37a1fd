package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding
	GotoTab   key.Binding
	NewNote   key.Binding
	CloseNote key.Binding
	Rename    key.Binding
	Edit      key.Binding
	Insert    key.Binding
	Heading   key.Binding
	Delete    key.Binding
	Copy      key.Binding
	Grab      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding

	// grab, edit and modal modes
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PrevTab:   key.NewBinding(key.WithKeys("h", "left", "shift+tab"), key.WithHelp("←/h", "prev tab")),
		NextTab:   key.NewBinding(key.WithKeys("l", "right", "tab"), key.WithHelp("→/l", "next tab")),
		GotoTab:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to tab")),
		NewNote:   key.NewBinding(key.WithKeys("t", "ctrl+n", "+"), key.WithHelp("t", "new note")),
		CloseNote: key.NewBinding(key.WithKeys("X", "ctrl+w"), key.WithHelp("X", "delete note")),
		Rename:    key.NewBinding(key.WithKeys("r", "f2"), key.WithHelp("r", "rename")),
		Edit:      key.NewBinding(key.WithKeys("enter", "i", "e"), key.WithHelp("enter", "edit line")),
		Insert:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "new line")),
		Heading:   key.NewBinding(key.WithKeys("s", "#"), key.WithHelp("s", "heading")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete line")),
		Copy:      key.NewBinding(key.WithKeys("y", "c"), key.WithHelp("y", "copy line")),
		Grab:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move line")),
		MoveUp:    key.NewBinding(key.WithKeys("K", "alt+up"), key.WithHelp("K", "line up")),
		MoveDown:  key.NewBinding(key.WithKeys("J", "alt+down"), key.WithHelp("J", "line down")),
		Theme:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Insert, k.Heading, k.Grab, k.Copy, k.NewNote, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevTab, k.NextTab, k.GotoTab},
		{k.Edit, k.Insert, k.Heading, k.Delete, k.Copy},
		{k.Grab, k.MoveUp, k.MoveDown},
		{k.NewNote, k.Rename, k.CloseNote, k.Theme, k.Help, k.Quit},
	}
}

// grabKeys is the help line shown while a line is being moved.
type grabKeys struct{ k keyMap }

func (g grabKeys) ShortHelp() []key.Binding {
	return []key.Binding{g.k.Up, g.k.Down, g.k.Confirm, g.k.Cancel}
}

func (g grabKeys) FullHelp() [][]key.Binding { return [][]key.Binding{g.ShortHelp()} }
