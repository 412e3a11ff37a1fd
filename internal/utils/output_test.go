package utils

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/faaadelmr/noted/internal/notes"
)

func sample() notes.Collection {
	return notes.Collection{
		ActiveID: "b",
		Notes: []notes.Note{
			{ID: "a", Title: "Groceries", Lines: []notes.Line{
				{ID: "1", Text: "Fruit", Style: notes.StyleHeading},
				{ID: "2", Text: "apples", Style: notes.StyleNormal},
			}},
			{ID: "b", Title: "Todo", Lines: []notes.Line{{ID: "3", Text: "call mom", Style: notes.StyleNormal}}},
		},
	}
}

func renderer(f OutputFormat) *Renderer {
	return NewRenderer(&RenderConfig{Format: f, Width: 80, Color: false})
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"": FormatDefault, "JSON": FormatJSON, "md": FormatMarkdown, "yml": FormatYAML, "plain": FormatPlain} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestRenderNote_Plain(t *testing.T) {
	out, err := renderer(FormatPlain).RenderNote(sample().Notes[0], false)
	require.NoError(t, err)
	assert.Equal(t, "Fruit\napples\n", out)
}

func TestRenderNote_Markdown(t *testing.T) {
	out, err := renderer(FormatMarkdown).RenderNote(sample().Notes[0], false)
	require.NoError(t, err)
	assert.Equal(t, "# Groceries\n\n## Fruit\napples\n", out)
}

func TestRenderNote_Default(t *testing.T) {
	out, err := renderer(FormatDefault).RenderNote(sample().Notes[1], true)
	require.NoError(t, err)
	assert.Contains(t, out, "Todo (active)")
	assert.Contains(t, out, "  1 call mom")
}

func TestRenderCollection_JSON(t *testing.T) {
	out, err := renderer(FormatJSON).RenderCollection(sample())
	require.NoError(t, err)

	var got []exportNote
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.False(t, got[0].Active)
	assert.True(t, got[1].Active)
	assert.Equal(t, "heading", got[0].Lines[0].Style)
}

func TestRenderCollection_YAML(t *testing.T) {
	out, err := renderer(FormatYAML).RenderCollection(sample())
	require.NoError(t, err)

	var got []exportNote
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "apples", got[0].Lines[1].Text)
}

func TestRenderList(t *testing.T) {
	r := NewRenderer(&RenderConfig{Format: FormatDefault, ShowIDs: true})
	out, err := r.RenderList(sample())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "* "), lines[1])
	assert.Contains(t, lines[0], "(2 lines)")
	assert.Contains(t, lines[0], "a")
}
