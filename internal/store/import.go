package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/faaadelmr/noted/internal/notes"
)

// Import reads a browser localStorage dump (a JSON object of key to string
// value) and writes the known keys. Notes are decoded and migrated first,
// so a legacy dump lands in the current shape. It returns the imported
// state.
func (s *Store) Import(r io.Reader) (State, error) {
	var dump map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return State{}, fmt.Errorf("import: %w", err)
	}

	raw, ok := dump[KeyNotes]
	if !ok {
		return State{}, fmt.Errorf("import: no %q key in dump", KeyNotes)
	}
	// localStorage values are strings; accept an inlined array too
	payload, err := unquote(raw)
	if err != nil {
		return State{}, fmt.Errorf("import %s: %w", KeyNotes, err)
	}
	ns, err := notes.DecodeNotes(payload)
	if err != nil {
		return State{}, fmt.Errorf("import: %w", err)
	}

	st := State{Notes: notes.Collection{Notes: ns}}
	if v, ok := dump[KeyActive]; ok {
		b, err := unquote(v)
		if err != nil {
			return State{}, fmt.Errorf("import %s: %w", KeyActive, err)
		}
		st.Notes.ActiveID = string(b)
	}
	if v, ok := dump[KeyTheme]; ok {
		b, err := unquote(v)
		if err != nil {
			return State{}, fmt.Errorf("import %s: %w", KeyTheme, err)
		}
		st.Theme = string(b)
	}
	st.Notes = notes.Normalize(st.Notes, notes.UUIDSource{})

	if err := s.Save(st); err != nil {
		return State{}, err
	}
	return st, nil
}

func unquote(raw json.RawMessage) ([]byte, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s), nil
	}
	if len(raw) > 0 && (raw[0] == '[' || raw[0] == '{') {
		return raw, nil
	}
	return nil, fmt.Errorf("unexpected value %.20s", raw)
}
