package notes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// BodyKind tags which persisted shape a note body was read from.
type BodyKind int

const (
	// BodyLines is the current shape: a list of {id, text, style} objects.
	BodyLines BodyKind = iota
	// BodyLegacy is the old shape: one newline-joined string under "content".
	BodyLegacy
)

func (k BodyKind) String() string {
	if k == BodyLegacy {
		return "legacy"
	}
	return "lines"
}

// RawLine is a line as found in storage. Style and ID may be missing.
type RawLine struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Style string `json:"style,omitempty"`
}

// RawNote is a note as found in storage, before migration. Exactly one of
// Content (BodyLegacy) or Lines (BodyLines) is meaningful, selected by Kind.
type RawNote struct {
	ID      string
	Title   string
	Kind    BodyKind
	Content string
	Lines   []RawLine
}

// UnmarshalJSON decodes every shape that has ever been persisted:
// {"lines": [...]}, {"content": [...]} and {"content": "a\nb"}.
func (r *RawNote) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID      string          `json:"id"`
		Title   string          `json:"title"`
		Content json.RawMessage `json:"content"`
		Lines   json.RawMessage `json:"lines"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = RawNote{ID: aux.ID, Title: aux.Title, Kind: BodyLines}

	body := aux.Lines
	if isNull(body) {
		body = aux.Content
	}
	body = bytes.TrimSpace(body)
	switch {
	case isNull(body):
		return nil
	case body[0] == '"':
		r.Kind = BodyLegacy
		return json.Unmarshal(body, &r.Content)
	case body[0] == '[':
		return json.Unmarshal(body, &r.Lines)
	}
	return fmt.Errorf("note %q: unsupported body %.20s", aux.ID, body)
}

func isNull(b json.RawMessage) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

// FromNote wraps an already-structured note so it can go back through
// MigrateLegacy.
func FromNote(n Note) RawNote {
	r := RawNote{ID: n.ID, Title: n.Title, Kind: BodyLines, Lines: make([]RawLine, len(n.Lines))}
	for i, l := range n.Lines {
		r.Lines[i] = RawLine{ID: l.ID, Text: l.Text, Style: string(l.Style)}
	}
	return r
}

// MigrateLegacy normalizes a stored note to the current shape. Legacy
// bodies are split on "\n" into normal lines; structured bodies get
// missing styles set to normal and missing or duplicate line ids filled
// in. Ids it has to invent are derived from the note id and the line
// position, so the same input always yields the same output and running
// it on its own output changes nothing.
func MigrateLegacy(r RawNote) Note {
	n := Note{ID: r.ID, Title: r.Title}
	seen := make(map[string]bool)

	switch r.Kind {
	case BodyLegacy:
		for i, text := range strings.Split(r.Content, "\n") {
			id := derivedLineID(r.ID, i, seen)
			n.Lines = append(n.Lines, Line{ID: id, Text: text, Style: StyleNormal})
		}
	default:
		for i, rl := range r.Lines {
			id := rl.ID
			if id == "" || seen[id] {
				id = derivedLineID(r.ID, i, seen)
			}
			seen[id] = true
			style, err := ParseStyle(rl.Style)
			if err != nil {
				style = StyleNormal
			}
			n.Lines = append(n.Lines, Line{ID: id, Text: rl.Text, Style: style})
		}
	}

	if len(n.Lines) == 0 {
		n.Lines = []Line{{ID: derivedLineID(r.ID, 0, seen), Style: StyleNormal}}
	}
	return n
}

func derivedLineID(noteID string, i int, seen map[string]bool) string {
	id := fmt.Sprintf("%s-line-%d", noteID, i+1)
	for seen[id] {
		id += "x"
	}
	seen[id] = true
	return id
}
