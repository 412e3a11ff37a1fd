package notes

// Welcome is the collection shown on first run and after a failed load.
func Welcome() Collection {
	return Collection{
		ActiveID: "note-1",
		Notes: []Note{{
			ID:    "note-1",
			Title: "Welcome",
			Lines: []Line{
				{ID: "line-1-1", Text: "Welcome to noted!", Style: StyleHeading},
				{ID: "line-1-2", Text: "This is a tab-based notes app that helps you stay organized.", Style: StyleNormal},
				{ID: "line-1-3", Text: "Double-click a tab title (or press r) to rename it.", Style: StyleNormal},
				{ID: "line-1-4", Text: "Press o or Enter to add a new line.", Style: StyleNormal},
				{ID: "line-1-5", Text: "Drag the grip (or press m) to reorder lines.", Style: StyleNormal},
			},
		}},
	}
}

// NewNote builds an untitled note with one blank line.
func NewNote(ids IDSource) Note {
	return Note{
		ID:    ids.NoteID(),
		Title: DefaultTitle,
		Lines: []Line{newLine(ids)},
	}
}

func newLine(ids IDSource) Line {
	return Line{ID: ids.LineID(), Style: StyleNormal}
}
