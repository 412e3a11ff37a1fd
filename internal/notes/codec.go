package notes

import (
	"encoding/json"
	"fmt"
)

// DecodeNotes parses a stored notes payload, migrating every note to the
// current shape before returning.
func DecodeNotes(data []byte) ([]Note, error) {
	var raw []RawNote
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	out := make([]Note, 0, len(raw))
	for _, r := range raw {
		out = append(out, MigrateLegacy(r))
	}
	return out, nil
}

// EncodeNotes produces the current persisted shape.
func EncodeNotes(ns []Note) ([]byte, error) {
	if ns == nil {
		ns = []Note{}
	}
	return json.Marshal(ns)
}

// Normalize enforces the collection invariants: at least one note, every
// note has a unique non-empty id and at least one line, line ids are
// unique within their note, and ActiveID names a member (the first note
// when it does not).
func Normalize(c Collection, ids IDSource) Collection {
	seenNotes := make(map[string]bool)
	notes := c.Notes[:0:0]
	for _, n := range c.Notes {
		if n.ID == "" {
			n.ID = ids.NoteID()
			for seenNotes[n.ID] {
				n.ID = ids.NoteID()
			}
		}
		if seenNotes[n.ID] {
			continue
		}
		seenNotes[n.ID] = true

		seenLines := make(map[string]bool)
		lines := n.Lines[:0:0]
		for _, l := range n.Lines {
			for l.ID == "" || seenLines[l.ID] {
				l.ID = ids.LineID()
			}
			seenLines[l.ID] = true
			if l.Style != StyleHeading {
				l.Style = StyleNormal
			}
			lines = append(lines, l)
		}
		if len(lines) == 0 {
			lines = append(lines, newLine(ids))
		}
		n.Lines = lines
		notes = append(notes, n)
	}
	if len(notes) == 0 {
		notes = append(notes, NewNote(ids))
	}
	c.Notes = notes
	if c.Index(c.ActiveID) < 0 {
		c.ActiveID = c.Notes[0].ID
	}
	return c
}

// DecodeCollection decodes a stored notes payload together with the stored
// active note id and normalizes the result.
func DecodeCollection(notesJSON []byte, activeID string, ids IDSource) (Collection, error) {
	ns, err := DecodeNotes(notesJSON)
	if err != nil {
		return Collection{}, err
	}
	return Normalize(Collection{Notes: ns, ActiveID: activeID}, ids), nil
}
