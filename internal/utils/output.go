package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/faaadelmr/noted/internal/notes"
	"github.com/faaadelmr/noted/internal/theme"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatDefault  OutputFormat = "default"
	FormatPlain    OutputFormat = "plain"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatYAML     OutputFormat = "yaml"
)

// Formats lists the accepted --format values.
var Formats = []OutputFormat{FormatDefault, FormatPlain, FormatMarkdown, FormatJSON, FormatYAML}

// ParseFormat validates a --format value.
func ParseFormat(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "default":
		return FormatDefault, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format  OutputFormat
	Width   int
	ShowIDs bool
	Color   bool
	Theme   string
}

// DefaultRenderConfig returns a default render configuration
func DefaultRenderConfig() *RenderConfig {
	width := 100
	if colEnv := os.Getenv("COLUMNS"); colEnv != "" {
		if v, err := strconv.Atoi(colEnv); err == nil && v > 40 {
			width = v
		}
	}
	return &RenderConfig{
		Format: FormatDefault,
		Width:  width,
		Color:  os.Getenv("NO_COLOR") == "",
		Theme:  theme.DefaultID,
	}
}

// Renderer handles output formatting
type Renderer struct {
	config *RenderConfig
	styles *Styles
}

// Styles contains lipgloss styles for different elements
type Styles struct {
	Title     lipgloss.Style
	Separator lipgloss.Style
	Meta      lipgloss.Style
	Active    lipgloss.Style
	Heading   lipgloss.Style
	Text      lipgloss.Style
}

// NewRenderer creates a new renderer with the given config
func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = DefaultRenderConfig()
	}
	return &Renderer{config: config, styles: initStyles(config)}
}

func initStyles(c *RenderConfig) *Styles {
	if !c.Color {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:     plain.Bold(true),
			Separator: plain,
			Meta:      plain,
			Active:    plain.Bold(true),
			Heading:   plain.Bold(true),
			Text:      plain,
		}
	}
	st := theme.Resolve(c.Theme).Styles()
	return &Styles{
		Title:     st.AppName,
		Separator: st.Hint,
		Meta:      st.Hint,
		Active:    st.TabActive.UnsetPadding().UnsetBackground(),
		Heading:   st.Heading,
		Text:      st.Line,
	}
}

// exportLine / exportNote are the machine-readable shapes for json and yaml.
type exportLine struct {
	ID    string `json:"id" yaml:"id"`
	Text  string `json:"text" yaml:"text"`
	Style string `json:"style" yaml:"style"`
}

type exportNote struct {
	ID     string       `json:"id" yaml:"id"`
	Title  string       `json:"title" yaml:"title"`
	Active bool         `json:"active,omitempty" yaml:"active,omitempty"`
	Lines  []exportLine `json:"lines" yaml:"lines"`
}

func toExport(n notes.Note, active bool) exportNote {
	out := exportNote{ID: n.ID, Title: n.Title, Active: active, Lines: make([]exportLine, len(n.Lines))}
	for i, l := range n.Lines {
		out.Lines[i] = exportLine{ID: l.ID, Text: l.Text, Style: string(l.Style)}
	}
	return out
}

// RenderNote renders one note according to the configured format
func (r *Renderer) RenderNote(n notes.Note, active bool) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return marshalJSON(toExport(n, active))
	case FormatYAML:
		return marshalYAML(toExport(n, active))
	case FormatPlain:
		return n.PlainText() + "\n", nil
	case FormatMarkdown:
		return renderMarkdown(n), nil
	default:
		return r.renderDefault(n, active), nil
	}
}

// RenderCollection renders every note, in order.
func (r *Renderer) RenderCollection(c notes.Collection) (string, error) {
	switch r.config.Format {
	case FormatJSON, FormatYAML:
		all := make([]exportNote, len(c.Notes))
		for i, n := range c.Notes {
			all[i] = toExport(n, n.ID == c.ActiveID)
		}
		if r.config.Format == FormatJSON {
			return marshalJSON(all)
		}
		return marshalYAML(all)
	}
	var b strings.Builder
	for i, n := range c.Notes {
		if i > 0 {
			b.WriteString("\n")
		}
		s, err := r.RenderNote(n, n.ID == c.ActiveID)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// RenderList renders the note index used by `note ls`.
func (r *Renderer) RenderList(c notes.Collection) (string, error) {
	switch r.config.Format {
	case FormatJSON, FormatYAML:
		return r.RenderCollection(c)
	}
	var b strings.Builder
	for i, n := range c.Notes {
		marker := "  "
		title := r.styles.Text.Render(n.Title)
		if n.ID == c.ActiveID {
			marker = "* "
			title = r.styles.Active.Render(n.Title)
		}
		b.WriteString(fmt.Sprintf("%s%2d  %s  %s", marker, i+1, title,
			r.styles.Meta.Render(fmt.Sprintf("(%d lines)", len(n.Lines)))))
		if r.config.ShowIDs {
			b.WriteString("  " + r.styles.Meta.Render(n.ID))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// renderDefault renders a note for the terminal
func (r *Renderer) renderDefault(n notes.Note, active bool) string {
	var b strings.Builder

	title := r.styles.Title.Render(n.Title)
	if active {
		title += " " + r.styles.Meta.Render("(active)")
	}
	if r.config.ShowIDs {
		title += "  " + r.styles.Meta.Render(n.ID)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(r.styles.Separator.Render(strings.Repeat("─", min(r.config.Width, 80))))
	b.WriteString("\n")

	for i, l := range n.Lines {
		num := r.styles.Meta.Render(fmt.Sprintf("%3d ", i+1))
		text := r.styles.Text.Render(l.Text)
		if l.Style == notes.StyleHeading {
			text = r.styles.Heading.Render(l.Text)
		}
		b.WriteString(num + text)
		if r.config.ShowIDs {
			b.WriteString("  " + r.styles.Meta.Render(l.ID))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderMarkdown(n notes.Note) string {
	var b strings.Builder
	b.WriteString("# " + n.Title + "\n\n")
	for _, l := range n.Lines {
		if l.Style == notes.StyleHeading {
			b.WriteString("## " + l.Text + "\n")
			continue
		}
		b.WriteString(l.Text + "\n")
	}
	return b.String()
}

func marshalJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data) + "\n", nil
}

func marshalYAML(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}
