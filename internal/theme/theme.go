// Package theme holds the fixed palette of visual themes. Themes are
// persisted by ID, so IDs never change once released.
package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the raw colors of one theme.
type Palette struct {
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Accent     lipgloss.Color
	Danger     lipgloss.Color
}

type Theme struct {
	ID      string
	Name    string
	Palette Palette
}

// DefaultID is used when nothing (or something unknown) is stored.
const DefaultID = "theme-default"

var themes = []Theme{
	{
		ID:   DefaultID,
		Name: "Default",
		Palette: Palette{
			Primary: "#89B4FA", Foreground: "#CDD6F4", Muted: "#6C7086",
			Background: "#1E1E2E", Surface: "#313244", Accent: "#CBA6F7", Danger: "#F38BA8",
		},
	},
	{
		ID:   "theme-rose",
		Name: "Rose",
		Palette: Palette{
			Primary: "#F5C2E7", Foreground: "#F2CDCD", Muted: "#9C7A86",
			Background: "#2A1E24", Surface: "#3D2A33", Accent: "#EBA0AC", Danger: "#F38BA8",
		},
	},
	{
		ID:   "theme-green",
		Name: "Green",
		Palette: Palette{
			Primary: "#A6E3A1", Foreground: "#D5F0D2", Muted: "#6F8F6C",
			Background: "#1B261C", Surface: "#2A3A2B", Accent: "#94E2D5", Danger: "#F38BA8",
		},
	},
	{
		ID:   "theme-orange",
		Name: "Orange",
		Palette: Palette{
			Primary: "#FAB387", Foreground: "#F9E2AF", Muted: "#9A7B62",
			Background: "#2B2018", Surface: "#3E2E22", Accent: "#F9E2AF", Danger: "#F38BA8",
		},
	},
	{
		ID:   "dark",
		Name: "Dark",
		Palette: Palette{
			Primary: "#BAC2DE", Foreground: "#A6ADC8", Muted: "#585B70",
			Background: "#11111B", Surface: "#181825", Accent: "#74C7EC", Danger: "#EBA0AC",
		},
	},
}

// All returns the palette in display order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Lookup finds a theme by ID (case-insensitive) or display name.
func Lookup(id string) (Theme, bool) {
	id = strings.TrimSpace(id)
	for _, t := range themes {
		if strings.EqualFold(t.ID, id) || strings.EqualFold(t.Name, id) {
			return t, true
		}
	}
	return Theme{}, false
}

// Resolve returns the theme for id, falling back to the default.
func Resolve(id string) Theme {
	if t, ok := Lookup(id); ok {
		return t
	}
	return themes[0]
}

// Index is the theme's position in All, or 0.
func Index(id string) int {
	for i, t := range themes {
		if t.ID == id {
			return i
		}
	}
	return 0
}
