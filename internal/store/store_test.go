package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faaadelmr/noted/internal/notes"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir := t.TempDir()
	sqlite, err := Open("sqlite", filepath.Join(dir, "noted.db"))
	require.NoError(t, err)
	file, err := Open("json", filepath.Join(dir, "noted.json"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlite.Close()
		_ = file.Close()
	})
	return map[string]KV{"memory": NewMemory(), "sqlite": sqlite, "json": file}
}

func TestLoad_Empty(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st, err := New(kv, nil).Load()
			require.NoError(t, err)
			assert.Equal(t, notes.Welcome(), st.Notes)
			assert.Empty(t, st.Theme)
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv, nil)
			want := notes.Collection{
				ActiveID: "b",
				Notes: []notes.Note{
					{ID: "a", Title: "A", Lines: []notes.Line{{ID: "1", Text: "x", Style: notes.StyleHeading}}},
					{ID: "b", Title: "B", Lines: []notes.Line{{ID: "2", Text: "y", Style: notes.StyleNormal}}},
				},
			}
			require.NoError(t, s.Save(State{Notes: want, Theme: "dark"}))

			got, err := New(kv, nil).Load()
			require.NoError(t, err)
			assert.Equal(t, want, got.Notes)
			assert.Equal(t, "dark", got.Theme)
		})
	}
}

func TestLoad_MalformedFallsBackToDefaults(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.Set(KeyNotes, `[{"id":"a", "lines": [`))
	require.NoError(t, kv.Set(KeyActive, "a"))

	st, err := New(kv, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, notes.Welcome(), st.Notes)
}

func TestLoad_MigratesLegacyAndRepairsActive(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.Set(KeyNotes, `[{"id":"old","title":"Old","content":"x\ny\nz"}]`))
	require.NoError(t, kv.Set(KeyActive, "deleted-long-ago"))

	st, err := New(kv, nil).Load()
	require.NoError(t, err)

	require.Len(t, st.Notes.Notes, 1)
	n := st.Notes.Notes[0]
	assert.Equal(t, "old", st.Notes.ActiveID)
	require.Len(t, n.Lines, 3)
	assert.Equal(t, "z", n.Lines[2].Text)
	assert.Equal(t, notes.StyleNormal, n.Lines[2].Style)
}

func TestLoad_EmptyListGetsDefaultNote(t *testing.T) {
	kv := NewMemory()
	require.NoError(t, kv.Set(KeyNotes, `[]`))

	st, err := New(kv, nil).Load()
	require.NoError(t, err)
	require.Len(t, st.Notes.Notes, 1)
	assert.Equal(t, notes.DefaultTitle, st.Notes.Notes[0].Title)
}

func TestManagerSubscriptionPersists(t *testing.T) {
	kv := NewMemory()
	s := New(kv, nil)
	st, err := s.Load()
	require.NoError(t, err)

	m := notes.NewManager(st.Notes)
	m.Subscribe(func(c notes.Collection) { require.NoError(t, s.SaveCollection(c)) })
	created := m.CreateNote()
	require.NoError(t, m.RenameNote(created.ID, "Shopping"))

	again, err := New(kv, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.Notes.ActiveID)
	active, ok := again.Notes.Active()
	require.True(t, ok)
	assert.Equal(t, "Shopping", active.Title)
}

func TestChanged(t *testing.T) {
	kv := NewMemory()
	mine := New(kv, nil)
	st, err := mine.Load()
	require.NoError(t, err)

	changed, err := mine.Changed()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, mine.SaveTheme("dark"))
	changed, err = mine.Changed()
	require.NoError(t, err)
	assert.False(t, changed, "own writes are not external changes")

	other := New(kv, nil)
	st.Notes.Notes[0].Title = "edited elsewhere"
	require.NoError(t, other.SaveCollection(st.Notes))

	changed, err = mine.Changed()
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = mine.Load()
	require.NoError(t, err)
	changed, err = mine.Changed()
	require.NoError(t, err)
	assert.False(t, changed, "reloading acknowledges the change")
}

func TestWatch_ExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noted.json")
	kv, err := OpenFile(path)
	require.NoError(t, err)

	mine := New(kv, nil)
	st, err := mine.Load()
	require.NoError(t, err)
	require.NoError(t, mine.SaveCollection(st.Notes))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := mine.Watch(ctx)
	require.NoError(t, err)

	// our own write must not signal
	require.NoError(t, mine.SaveTheme("theme-green"))
	select {
	case <-ch:
		t.Fatal("self-write reported as external change")
	case <-time.After(500 * time.Millisecond):
	}

	other := New(kv, nil)
	st.Notes.Notes[0].Title = "from the cli"
	require.NoError(t, other.SaveCollection(st.Notes))

	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("external write not reported")
	}

	cancel()
	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func TestWatch_MemoryNotWatchable(t *testing.T) {
	_, err := New(NewMemory(), nil).Watch(context.Background())
	assert.ErrorIs(t, err, ErrNotWatchable)
}

func TestImport(t *testing.T) {
	dump := `{
		"sipaling-noted-notes": "[{\"id\":\"note-1\",\"title\":\"Catatan\",\"content\":\"a\\nb\"},{\"id\":\"note-2\",\"title\":\"Two\",\"lines\":[{\"id\":\"l\",\"text\":\"t\"}]}]",
		"sipaling-noted-activeTabId": "note-2",
		"sipaling-noted-theme": "theme-rose",
		"unrelated": "ignored"
	}`
	kv := NewMemory()
	s := New(kv, nil)

	st, err := s.Import(strings.NewReader(dump))
	require.NoError(t, err)
	assert.Equal(t, "note-2", st.Notes.ActiveID)
	assert.Equal(t, "theme-rose", st.Theme)

	loaded, err := New(kv, nil).Load()
	require.NoError(t, err)
	require.Len(t, loaded.Notes.Notes, 2)
	assert.Len(t, loaded.Notes.Notes[0].Lines, 2)
	assert.Equal(t, notes.StyleNormal, loaded.Notes.Notes[1].Lines[0].Style)
	assert.Equal(t, "theme-rose", loaded.Theme)
}

func TestImport_Errors(t *testing.T) {
	s := New(NewMemory(), nil)

	_, err := s.Import(strings.NewReader(`not json`))
	assert.Error(t, err)

	_, err = s.Import(strings.NewReader(`{"other": "x"}`))
	assert.Error(t, err)

	_, err = s.Import(strings.NewReader(`{"sipaling-noted-notes": "[{"}`))
	assert.Error(t, err)
}
