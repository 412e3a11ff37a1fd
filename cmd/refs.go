package cmd

import (
	"fmt"
	"strconv"

	"github.com/faaadelmr/noted/internal/notes"
)

// resolveNote finds a note by id, falling back to a 1-based position.
func resolveNote(c notes.Collection, ref string) (notes.Note, error) {
	if i := c.Index(ref); i >= 0 {
		return c.Notes[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.Notes) {
		return c.Notes[n-1], nil
	}
	return notes.Note{}, fmt.Errorf("%w: %q", notes.ErrNoteNotFound, ref)
}

// resolveLine finds a line of n by id or 1-based position and returns its
// index.
func resolveLine(n notes.Note, ref string) (int, error) {
	if i := n.LineIndex(ref); i >= 0 {
		return i, nil
	}
	if p, err := strconv.Atoi(ref); err == nil && p >= 1 && p <= len(n.Lines) {
		return p - 1, nil
	}
	return -1, fmt.Errorf("%w: %q in note %q", notes.ErrLineNotFound, ref, n.Title)
}
