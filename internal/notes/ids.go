package notes

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource generates ids for new notes and lines.
type IDSource interface {
	NoteID() string
	LineID() string
}

// UUIDSource is the production IDSource.
type UUIDSource struct{}

func (UUIDSource) NoteID() string { return "note-" + uuid.NewString() }
func (UUIDSource) LineID() string { return "line-" + uuid.NewString() }

// SequenceSource hands out note-1, note-2, ... and line-1, line-2, ...
// Used by tests and anywhere reproducible ids matter.
type SequenceSource struct {
	notes, lines int
}

func (s *SequenceSource) NoteID() string {
	s.notes++
	return fmt.Sprintf("note-%d", s.notes)
}

func (s *SequenceSource) LineID() string {
	s.lines++
	return fmt.Sprintf("line-%d", s.lines)
}
