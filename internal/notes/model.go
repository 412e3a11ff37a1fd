package notes

import (
	"fmt"
	"strings"
)

// Style is the display style of a single line.
type Style string

const (
	StyleNormal  Style = "normal"
	StyleHeading Style = "heading"
)

// DefaultTitle is used for new notes and for renames to a blank title.
const DefaultTitle = "Untitled"

// Toggle flips between normal and heading.
func (s Style) Toggle() Style {
	if s == StyleHeading {
		return StyleNormal
	}
	return StyleHeading
}

// ParseStyle accepts "normal" or "heading" (case-insensitive).
// An empty string is treated as normal, matching data written before styles existed.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return StyleNormal, nil
	case "heading":
		return StyleHeading, nil
	}
	return "", fmt.Errorf("unknown line style %q (want normal|heading)", s)
}

// Line is one editable unit of text within a note.
type Line struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Note is one tab: a title plus an ordered list of lines.
type Note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// Collection is the ordered set of notes plus the active note pointer.
type Collection struct {
	Notes    []Note
	ActiveID string
}

// Clone returns a deep copy.
func (c Collection) Clone() Collection {
	out := Collection{ActiveID: c.ActiveID, Notes: make([]Note, len(c.Notes))}
	for i, n := range c.Notes {
		out.Notes[i] = n.Clone()
	}
	return out
}

// Clone returns a deep copy.
func (n Note) Clone() Note {
	lines := make([]Line, len(n.Lines))
	copy(lines, n.Lines)
	n.Lines = lines
	return n
}

// Index returns the position of the note with id, or -1.
func (c Collection) Index(id string) int {
	for i, n := range c.Notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// Active returns the active note.
func (c Collection) Active() (Note, bool) {
	if i := c.Index(c.ActiveID); i >= 0 {
		return c.Notes[i], true
	}
	return Note{}, false
}

// LineIndex returns the position of the line with id, or -1.
func (n Note) LineIndex(id string) int {
	for i, l := range n.Lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// PlainText joins line texts with newlines.
func (n Note) PlainText() string {
	texts := make([]string, len(n.Lines))
	for i, l := range n.Lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}
