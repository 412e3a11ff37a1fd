package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faaadelmr/noted/internal/notes"
)

type testEnv struct {
	config string
	store  string
}

func newEnv(t *testing.T, storeName string) testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	yaml := "log:\n  file: " + filepath.Join(dir, "noted.log") + "\nstore:\n  watch: false\n"
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o644))
	return testEnv{config: cfg, store: filepath.Join(dir, storeName)}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := e.runApp(t, args...)
	return out, err
}

func (e testEnv) runApp(t *testing.T, args ...string) (string, *app, error) {
	t.Helper()
	root, a := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", e.config, "--store", e.store}, args...))
	err := a.execute(context.Background(), root)
	return out.String(), a, err
}

func (e testEnv) must(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestFirstRunShowsWelcome(t *testing.T) {
	env := newEnv(t, "noted.json")
	out := env.must(t, "show", "--format", "plain")
	assert.Equal(t, notes.Welcome().Notes[0].PlainText()+"\n", out)
}

func TestNoteAndLineWorkflow(t *testing.T) {
	for _, name := range []string{"noted.json", "noted.db"} {
		t.Run(name, func(t *testing.T) {
			env := newEnv(t, name)

			id := strings.TrimSpace(env.must(t, "note", "new", "Groceries"))
			assert.NotEmpty(t, id)

			ls := env.must(t, "note", "ls", "--no-color")
			assert.Contains(t, ls, "Welcome")
			assert.Contains(t, ls, "* ")
			assert.Contains(t, ls, "Groceries")

			env.must(t, "line", "set", "2", "1", "Fruit")
			env.must(t, "line", "style", "2", "1", "--heading")
			env.must(t, "line", "add", "2", "apples")
			assert.Equal(t, "# Groceries\n\n## Fruit\napples\n", env.must(t, "show", "2", "--format", "markdown"))

			env.must(t, "line", "mv", "2", "2", "1")
			assert.Equal(t, "apples\nFruit\n", env.must(t, "show", id, "--format", "plain"))

			env.must(t, "line", "add", "2", "pears", "--after", "1")
			assert.Equal(t, "apples\npears\nFruit\n", env.must(t, "show", "--format", "plain"))

			env.must(t, "line", "rm", "2", "1")
			env.must(t, "line", "rm", "2", "1")
			assert.Equal(t, "Fruit\n", env.must(t, "show", "--format", "plain"))

			assert.Equal(t, "normal\n", env.must(t, "line", "style", "2", "1"))
		})
	}
}

func TestNoteUseRenameRemove(t *testing.T) {
	env := newEnv(t, "noted.json")
	env.must(t, "note", "new", "Second")

	env.must(t, "note", "use", "1")
	env.must(t, "note", "rename", "1", "Inbox")

	var got []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Active bool   `json:"active"`
	}
	require.NoError(t, json.Unmarshal([]byte(env.must(t, "show", "--all", "--format", "json")), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Inbox", got[0].Title)
	assert.True(t, got[0].Active)

	env.must(t, "note", "rename", "2")
	env.must(t, "note", "rm", "1")
	ls := env.must(t, "note", "ls", "--format", "json")
	assert.Contains(t, ls, notes.DefaultTitle)
	assert.NotContains(t, ls, "Inbox")
}

func TestRefErrors(t *testing.T) {
	env := newEnv(t, "noted.json")

	_, err := env.run(t, "note", "rm", "99")
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)

	_, err = env.run(t, "line", "set", "1", "42", "x")
	assert.ErrorIs(t, err, notes.ErrLineNotFound)

	_, err = env.run(t, "line", "mv", "1", "1", "9")
	assert.ErrorIs(t, err, notes.ErrIndexOutOfRange)

	_, err = env.run(t, "show", "--format", "csv")
	assert.Error(t, err)
}

func TestFailedCommandReleasesStore(t *testing.T) {
	env := newEnv(t, "noted.db")
	env.must(t, "note", "new", "First")

	_, a, err := env.runApp(t, "note", "rm", "99")
	require.ErrorIs(t, err, notes.ErrNoteNotFound)
	assert.Nil(t, a.store)
	assert.Nil(t, a.logCloser)

	// the file is usable right away by the next command
	out := env.must(t, "note", "ls")
	assert.Contains(t, out, "First")
}

func TestTheme(t *testing.T) {
	env := newEnv(t, "noted.json")

	assert.Contains(t, env.must(t, "theme", "ls"), "* theme-default")
	env.must(t, "theme", "set", "Rose")
	assert.Contains(t, env.must(t, "theme", "ls"), "* theme-rose")

	_, err := env.run(t, "theme", "set", "neon")
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	env := newEnv(t, "noted.json")
	dump := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(dump, []byte(`{
		"sipaling-noted-notes": "[{\"id\":\"n1\",\"title\":\"Old\",\"content\":\"a\\nb\"}]",
		"sipaling-noted-activeTabId": "n1",
		"sipaling-noted-theme": "dark"
	}`), 0o644))

	assert.Equal(t, "imported 1 notes (2 lines)\n", env.must(t, "import", dump))
	assert.Equal(t, "a\nb\n", env.must(t, "show", "--format", "plain"))
	assert.Contains(t, env.must(t, "theme", "ls"), "* dark")
}

func TestVersion(t *testing.T) {
	env := newEnv(t, "noted.json")
	assert.True(t, strings.HasPrefix(env.must(t, "version"), "noted "))
}

func TestResolveRefs(t *testing.T) {
	c := notes.Collection{Notes: []notes.Note{
		{ID: "a", Lines: []notes.Line{{ID: "x"}, {ID: "2"}}},
		{ID: "b"},
	}}

	n, err := resolveNote(c, "2")
	require.NoError(t, err)
	assert.Equal(t, "b", n.ID)

	n, err = resolveNote(c, "a")
	require.NoError(t, err)

	// ids win over positions
	i, err := resolveLine(n, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	i, err = resolveLine(n, "1")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	_, err = resolveNote(c, "0")
	assert.ErrorIs(t, err, notes.ErrNoteNotFound)
	_, err = resolveLine(n, "3")
	assert.ErrorIs(t, err, notes.ErrLineNotFound)
}
