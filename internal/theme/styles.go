package theme

import "github.com/charmbracelet/lipgloss"

// Styles is everything the TUI renders with, derived from one palette.
type Styles struct {
	TopBar    lipgloss.Style
	AppName   lipgloss.Style
	StatusBar lipgloss.Style
	Hint      lipgloss.Style

	Tab       lipgloss.Style
	TabActive lipgloss.Style
	TabAdd    lipgloss.Style
	TabClose  lipgloss.Style

	Line        lipgloss.Style
	Heading     lipgloss.Style
	Placeholder lipgloss.Style
	Cursor      lipgloss.Style
	Grip        lipgloss.Style
	GripActive  lipgloss.Style
	DropTarget  lipgloss.Style

	Toast      lipgloss.Style
	ToastTitle lipgloss.Style
	ToastError lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	Selected   lipgloss.Style
}

// Styles builds the lipgloss styles for t.
func (t Theme) Styles() Styles {
	p := t.Palette
	return Styles{
		TopBar:    lipgloss.NewStyle().Foreground(p.Foreground).Bold(true).Padding(0, 1),
		AppName:   lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		StatusBar: lipgloss.NewStyle().Foreground(p.Muted).Background(p.Surface).Padding(0, 1),
		Hint:      lipgloss.NewStyle().Faint(true).Foreground(p.Muted),

		Tab:       lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Foreground(p.Primary).Background(p.Surface).Bold(true).Padding(0, 1),
		TabAdd:    lipgloss.NewStyle().Foreground(p.Accent).Padding(0, 1),
		TabClose:  lipgloss.NewStyle().Foreground(p.Danger),

		Line:        lipgloss.NewStyle().Foreground(p.Foreground),
		Heading:     lipgloss.NewStyle().Foreground(p.Primary).Bold(true).Underline(true),
		Placeholder: lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Cursor:      lipgloss.NewStyle().Background(p.Surface),
		Grip:        lipgloss.NewStyle().Foreground(p.Muted).Faint(true),
		GripActive:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		DropTarget:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),

		Toast:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(0, 1),
		ToastTitle: lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		ToastError: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Danger).Padding(0, 1),

		ModalBox:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Primary).Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(p.Primary).Bold(true).MarginBottom(1),
		Selected:   lipgloss.NewStyle().Foreground(p.Background).Background(p.Primary).Bold(true),
	}
}
