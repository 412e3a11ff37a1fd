package notes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, col Collection) *Manager {
	t.Helper()
	return NewManager(col, WithIDSource(&SequenceSource{}))
}

func abcNote() Collection {
	return Collection{
		ActiveID: "n1",
		Notes: []Note{{
			ID:    "n1",
			Title: "ABC",
			Lines: []Line{
				{ID: "A", Text: "a", Style: StyleNormal},
				{ID: "B", Text: "b", Style: StyleNormal},
				{ID: "C", Text: "c", Style: StyleHeading},
			},
		}},
	}
}

func lineIDs(n Note) []string {
	ids := make([]string, len(n.Lines))
	for i, l := range n.Lines {
		ids[i] = l.ID
	}
	return ids
}

func TestCreateNote(t *testing.T) {
	m := newTestManager(t, Welcome())

	n := m.CreateNote()

	snap := m.Snapshot()
	require.Len(t, snap.Notes, 2)
	assert.Equal(t, n.ID, snap.ActiveID)
	assert.Equal(t, DefaultTitle, n.Title)
	require.Len(t, n.Lines, 1)
	assert.Equal(t, "", n.Lines[0].Text)
	assert.Equal(t, StyleNormal, n.Lines[0].Style)
	assert.NotEqual(t, "note-1", n.ID, "generated id must not collide with the welcome note")
}

func TestRemoveNote_LastNoteLeavesDefault(t *testing.T) {
	m := newTestManager(t, Welcome())

	require.NoError(t, m.RemoveNote("note-1"))

	snap := m.Snapshot()
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, DefaultTitle, snap.Notes[0].Title)
	assert.Equal(t, snap.Notes[0].ID, snap.ActiveID)
	assert.Len(t, snap.Notes[0].Lines, 1)
}

func TestRemoveNote_ActiveMovesToPredecessor(t *testing.T) {
	three := Collection{ActiveID: "N1", Notes: []Note{
		{ID: "N1", Title: "1"}, {ID: "N2", Title: "2"}, {ID: "N3", Title: "3"},
	}}

	t.Run("first removed activates new first", func(t *testing.T) {
		m := newTestManager(t, three)
		require.NoError(t, m.RemoveNote("N1"))
		assert.Equal(t, "N2", m.Snapshot().ActiveID)
	})

	t.Run("middle removed activates predecessor", func(t *testing.T) {
		m := newTestManager(t, three)
		require.NoError(t, m.SetActive("N2"))
		require.NoError(t, m.RemoveNote("N2"))
		assert.Equal(t, "N1", m.Snapshot().ActiveID)
	})

	t.Run("inactive removed keeps active", func(t *testing.T) {
		m := newTestManager(t, three)
		require.NoError(t, m.RemoveNote("N3"))
		assert.Equal(t, "N1", m.Snapshot().ActiveID)
	})

	t.Run("unknown id", func(t *testing.T) {
		m := newTestManager(t, three)
		assert.ErrorIs(t, m.RemoveNote("nope"), ErrNoteNotFound)
		assert.Len(t, m.Snapshot().Notes, 3)
	})
}

func TestRenameNote(t *testing.T) {
	m := newTestManager(t, abcNote())

	require.NoError(t, m.RenameNote("n1", "Groceries"))
	assert.Equal(t, "Groceries", m.Active().Title)

	require.NoError(t, m.RenameNote("n1", "   "))
	assert.Equal(t, DefaultTitle, m.Active().Title)

	assert.ErrorIs(t, m.RenameNote("x", "t"), ErrNoteNotFound)
}

func TestInsertLine(t *testing.T) {
	m := newTestManager(t, abcNote())

	l, err := m.InsertLine("n1", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", l.ID, "B", "C"}, lineIDs(m.Active()))
	assert.Equal(t, StyleNormal, l.Style)

	end, err := m.InsertLine("n1", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", l.ID, "B", "C", end.ID}, lineIDs(m.Active()))

	_, err = m.InsertLine("n1", "missing")
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestInsertLine_AppendsNextToBlankLine(t *testing.T) {
	m := newTestManager(t, Collection{Notes: []Note{{ID: "n", Lines: []Line{{ID: "only"}}}}})

	_, err := m.InsertLine("n", "")
	require.NoError(t, err)

	assert.Len(t, m.Active().Lines, 2)
}

func TestEditLineText(t *testing.T) {
	m := newTestManager(t, abcNote())

	long := string(make([]byte, 10000))
	require.NoError(t, m.EditLineText("n1", "B", "  spaced\ttext  "))
	require.NoError(t, m.EditLineText("n1", "C", long))

	n := m.Active()
	assert.Equal(t, "  spaced\ttext  ", n.Lines[1].Text)
	assert.Equal(t, long, n.Lines[2].Text)
	assert.ErrorIs(t, m.EditLineText("n1", "Z", "x"), ErrLineNotFound)
}

func TestLineStyle(t *testing.T) {
	m := newTestManager(t, abcNote())

	s, err := m.ToggleLineStyle("n1", "A")
	require.NoError(t, err)
	assert.Equal(t, StyleHeading, s)

	s, err = m.ToggleLineStyle("n1", "A")
	require.NoError(t, err)
	assert.Equal(t, StyleNormal, s)

	require.NoError(t, m.SetLineStyle("n1", "C", StyleNormal))
	assert.Equal(t, StyleNormal, m.Active().Lines[2].Style)

	assert.Error(t, m.SetLineStyle("n1", "C", Style("title")))
}

func TestRemoveLine(t *testing.T) {
	m := newTestManager(t, abcNote())

	focus, err := m.RemoveLine("n1", "B")
	require.NoError(t, err)
	assert.Equal(t, "A", focus)
	assert.Equal(t, []string{"A", "C"}, lineIDs(m.Active()))

	focus, err = m.RemoveLine("n1", "A")
	require.NoError(t, err)
	assert.Empty(t, focus, "first line has no predecessor to focus")
}

func TestRemoveLine_OnlyLineIsReplaced(t *testing.T) {
	m := newTestManager(t, Collection{Notes: []Note{{ID: "n", Lines: []Line{{ID: "A", Text: "a"}}}}})

	_, err := m.RemoveLine("n", "A")
	require.NoError(t, err)

	n := m.Active()
	require.Len(t, n.Lines, 1)
	assert.NotEqual(t, "A", n.Lines[0].ID)
	assert.Equal(t, "", n.Lines[0].Text)
	assert.Equal(t, StyleNormal, n.Lines[0].Style)
}

func TestReorderLines(t *testing.T) {
	m := newTestManager(t, abcNote())

	require.NoError(t, m.ReorderLines("n1", 0, 2))
	assert.Equal(t, []string{"B", "C", "A"}, lineIDs(m.Active()))

	require.NoError(t, m.ReorderLines("n1", 2, 0))
	assert.Equal(t, []string{"A", "B", "C"}, lineIDs(m.Active()))

	require.NoError(t, m.ReorderLines("n1", 2, 1))
	assert.Equal(t, []string{"A", "C", "B"}, lineIDs(m.Active()))

	assert.ErrorIs(t, m.ReorderLines("n1", 0, 3), ErrIndexOutOfRange)
	assert.ErrorIs(t, m.ReorderLines("n1", -1, 0), ErrIndexOutOfRange)
}

func TestReorderLines_RoundTrip(t *testing.T) {
	base := Collection{Notes: []Note{{ID: "n"}}}
	for i := 0; i < 6; i++ {
		base.Notes[0].Lines = append(base.Notes[0].Lines, Line{ID: string(rune('a' + i))})
	}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			if i == j {
				continue
			}
			m := newTestManager(t, base)
			want := lineIDs(m.Active())
			require.NoError(t, m.ReorderLines("n", i, j))
			require.NoError(t, m.ReorderLines("n", j, i))
			assert.Equal(t, want, lineIDs(m.Active()), "move %d->%d and back", i, j)
		}
	}
}

func TestLineCountNeverZero(t *testing.T) {
	m := newTestManager(t, abcNote())
	r := rand.New(rand.NewSource(7))

	for step := 0; step < 500; step++ {
		n := m.Active()
		target := n.Lines[r.Intn(len(n.Lines))].ID
		if r.Intn(3) == 0 {
			_, err := m.InsertLine(n.ID, target)
			require.NoError(t, err)
		} else {
			_, err := m.RemoveLine(n.ID, target)
			require.NoError(t, err)
		}
		require.GreaterOrEqual(t, len(m.Active().Lines), 1, "step %d", step)
	}
}

func TestSubscribe(t *testing.T) {
	m := newTestManager(t, abcNote())

	var got []Collection
	unsubscribe := m.Subscribe(func(c Collection) { got = append(got, c) })

	require.NoError(t, m.EditLineText("n1", "A", "changed"))
	require.NoError(t, m.ReorderLines("n1", 1, 1))
	assert.ErrorIs(t, m.EditLineText("n1", "nope", "x"), ErrLineNotFound)
	require.Len(t, got, 1, "no-ops and failures must not notify")
	assert.Equal(t, "changed", got[0].Notes[0].Lines[0].Text)

	got[0].Notes[0].Lines[0].Text = "mutated by subscriber"
	assert.Equal(t, "changed", m.Active().Lines[0].Text, "subscribers get a copy")

	unsubscribe()
	m.CreateNote()
	assert.Len(t, got, 1)
}

func TestNewManager_NormalizesInput(t *testing.T) {
	m := newTestManager(t, Collection{ActiveID: "ghost"})

	snap := m.Snapshot()
	require.Len(t, snap.Notes, 1)
	assert.Equal(t, snap.Notes[0].ID, snap.ActiveID)
}
