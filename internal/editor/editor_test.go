// ABOUTME: Tests for the editor surface.
// ABOUTME: Covers load/redirect states, editing, formatting toggles, links and rendering.

package editor

import (
	"bytes"
	"testing"

	"github.com/harper/nowted/internal/logging"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/nav"
	"github.com/harper/nowted/internal/notebook"
	"github.com/harper/nowted/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, content string) (*notebook.Repository, *Editor, models.Note) {
	t.Helper()
	repo := notebook.New(store.New(store.NewMemory()))
	note, err := repo.CreateNote()
	require.NoError(t, err)
	require.NoError(t, repo.SaveNote(note.ID, content))

	ed := New(repo, logging.Nop())
	require.Equal(t, StateLoaded, ed.Open(note.ID.String()))
	return repo, ed, note
}

func TestOpenWithoutIDIsUnloaded(t *testing.T) {
	repo := notebook.New(store.New(store.NewMemory()))
	ed := New(repo, logging.Nop())

	assert.Equal(t, StateUnloaded, ed.Open(""))
	_, ok := ed.Note()
	assert.False(t, ok)
	assert.ErrorIs(t, ed.Input("x"), ErrNotLoaded)
	assert.ErrorIs(t, ed.Save(), ErrNotLoaded)
}

func TestOpenMissingNoteRedirects(t *testing.T) {
	repo := notebook.New(store.New(store.NewMemory()))
	ed := New(repo, logging.Nop())

	assert.Equal(t, StateRedirected, ed.Open(models.NewID().String()))
	assert.Equal(t, nav.ListingPath, ed.RedirectTo())
	assert.Empty(t, ed.Paragraphs())

	assert.Equal(t, StateRedirected, ed.Open("not-a-uuid"))
}

func TestOpenSegmentsOnBlankLinesOnly(t *testing.T) {
	_, ed, _ := setup(t, "First sentence. Second Sentence.\n\nNext para")

	assert.Equal(t, []string{"First sentence. Second Sentence.", "Next para"}, ed.Paragraphs())
}

func TestInputUpdatesDraftWithoutPersisting(t *testing.T) {
	s := store.New(store.NewMemory())
	repo := notebook.New(s)
	note, err := repo.CreateNote()
	require.NoError(t, err)
	require.NoError(t, repo.SaveNote(note.ID, "one"))
	ed := New(repo, logging.Nop())
	require.Equal(t, StateLoaded, ed.Open(note.ID.String()))

	require.NoError(t, ed.Input("one\n\ntwo\n\n\n"))

	assert.Equal(t, []string{"one", "two"}, ed.Paragraphs())
	draft, _ := repo.Note(note.ID)
	assert.Equal(t, "one\n\ntwo", draft.Content)

	persisted, ok := notebook.New(s).Note(note.ID)
	require.True(t, ok)
	assert.Equal(t, "one", persisted.Content)
}

func TestSavePersistsParagraphs(t *testing.T) {
	s := store.New(store.NewMemory())
	repo := notebook.New(s)
	note, err := repo.CreateNote()
	require.NoError(t, err)

	ed := New(repo, logging.Nop())
	require.Equal(t, StateLoaded, ed.Open(note.ID.String()))
	require.NoError(t, ed.Input("Para one\n\nPara two"))
	require.NoError(t, ed.Save())

	reloaded := New(notebook.New(s), logging.Nop())
	require.Equal(t, StateLoaded, reloaded.Open(note.ID.String()))
	assert.Equal(t, []string{"Para one", "Para two"}, reloaded.Paragraphs())

	saved, _ := ed.Note()
	assert.False(t, saved.LastModified.Before(note.LastModified))
}

func TestToggleBold(t *testing.T) {
	_, ed, _ := setup(t, "Hello world")
	sel := Selection{Paragraph: 0, Start: 0, End: 5}

	assert.False(t, ed.IsActive(sel, models.StyleBold))
	require.NoError(t, ed.Toggle(sel, models.StyleBold))
	assert.True(t, ed.IsActive(sel, models.StyleBold))
	assert.Equal(t, []models.Mark{{Paragraph: 0, Start: 0, End: 5, Style: models.StyleBold}}, ed.Marks())

	require.NoError(t, ed.Toggle(sel, models.StyleBold))
	assert.Empty(t, ed.Marks())
}

func TestTogglePartialCoverageApplies(t *testing.T) {
	_, ed, _ := setup(t, "Hello world")
	require.NoError(t, ed.Toggle(Selection{0, 0, 3}, models.StyleItalic))

	// Only part of the range is italic, so the toggle applies to all of it.
	require.NoError(t, ed.Toggle(Selection{0, 0, 8}, models.StyleItalic))

	assert.Equal(t, []models.Mark{{Paragraph: 0, Start: 0, End: 8, Style: models.StyleItalic}}, ed.Marks())
}

func TestToggleOffInsideSplitsMark(t *testing.T) {
	_, ed, _ := setup(t, "Hello world")
	require.NoError(t, ed.Toggle(Selection{0, 0, 11}, models.StyleUnderline))

	require.NoError(t, ed.Toggle(Selection{0, 3, 6}, models.StyleUnderline))

	assert.Equal(t, []models.Mark{
		{Paragraph: 0, Start: 0, End: 3, Style: models.StyleUnderline},
		{Paragraph: 0, Start: 6, End: 11, Style: models.StyleUnderline},
	}, ed.Marks())
}

func TestToggleMergesAdjacent(t *testing.T) {
	_, ed, _ := setup(t, "Hello world")
	require.NoError(t, ed.Toggle(Selection{0, 0, 3}, models.StyleBold))
	require.NoError(t, ed.Toggle(Selection{0, 3, 6}, models.StyleBold))

	assert.Equal(t, []models.Mark{{Paragraph: 0, Start: 0, End: 6, Style: models.StyleBold}}, ed.Marks())
}

func TestInvalidSelectionIsLoggedAndIgnored(t *testing.T) {
	var logs bytes.Buffer
	repo := notebook.New(store.New(store.NewMemory()))
	note, _ := repo.CreateNote()
	require.NoError(t, repo.SaveNote(note.ID, "short"))
	ed := New(repo, logging.New(&logs, "debug"))
	ed.Open(note.ID.String())

	tests := []Selection{
		{Paragraph: 1, Start: 0, End: 1},
		{Paragraph: 0, Start: 2, End: 2},
		{Paragraph: 0, Start: 3, End: 99},
		{Paragraph: -1, Start: 0, End: 1},
	}
	for _, sel := range tests {
		assert.ErrorIs(t, ed.Toggle(sel, models.StyleBold), ErrInvalidSelection)
	}
	assert.ErrorIs(t, ed.Toggle(Selection{0, 0, 1}, models.StyleLink), ErrUnsupportedStyle)
	assert.Empty(t, ed.Marks())
	assert.Contains(t, logs.String(), "formatting not applied")
}

func TestSetFontSize(t *testing.T) {
	_, ed, _ := setup(t, "Hello world")

	require.NoError(t, ed.SetFontSize(Selection{0, 0, 5}, 24))
	assert.Equal(t, []models.Mark{{Paragraph: 0, Start: 0, End: 5, Style: models.StyleFontSize, Value: "24"}}, ed.Marks())

	require.NoError(t, ed.SetFontSize(Selection{0, 2, 5}, 12))
	assert.Equal(t, []models.Mark{
		{Paragraph: 0, Start: 0, End: 2, Style: models.StyleFontSize, Value: "24"},
		{Paragraph: 0, Start: 2, End: 5, Style: models.StyleFontSize, Value: "12"},
	}, ed.Marks())

	require.NoError(t, ed.SetFontSize(Selection{0, 0, 5}, DefaultFontSize))
	assert.Empty(t, ed.Marks())

	assert.ErrorIs(t, ed.SetFontSize(Selection{0, 0, 5}, 13), ErrUnsupportedSize)
}

func TestLinkDialog(t *testing.T) {
	_, ed, _ := setup(t, "see the docs")
	sel := Selection{Paragraph: 0, Start: 8, End: 12}

	require.NoError(t, ed.BeginLink(sel))
	assert.True(t, ed.LinkDialogOpen())

	assert.ErrorIs(t, ed.ConfirmLink("  "), ErrInvalidURL)
	assert.True(t, ed.LinkDialogOpen(), "dialog stays open on a bad URL")

	require.NoError(t, ed.ConfirmLink("https://example.com/docs"))
	assert.False(t, ed.LinkDialogOpen())
	assert.Equal(t, []models.Mark{{
		Paragraph: 0, Start: 8, End: 12, Style: models.StyleLink, Value: "https://example.com/docs",
	}}, ed.Marks())

	assert.Contains(t, ed.HTML(), `<a href="https://example.com/docs" target="_blank" rel="noopener noreferrer">docs</a>`)
}

func TestLinkRequiresSelection(t *testing.T) {
	_, ed, _ := setup(t, "text")

	assert.ErrorIs(t, ed.BeginLink(Selection{0, 2, 2}), ErrInvalidSelection)
	assert.False(t, ed.LinkDialogOpen())
	assert.ErrorIs(t, ed.ConfirmLink("https://example.com"), ErrNoLinkDialog)
}

func TestCancelLink(t *testing.T) {
	_, ed, _ := setup(t, "text")
	require.NoError(t, ed.BeginLink(Selection{0, 0, 4}))

	ed.CancelLink()

	assert.False(t, ed.LinkDialogOpen())
	assert.Empty(t, ed.Marks())
}

func TestLinkRangeGoneAfterEdit(t *testing.T) {
	_, ed, _ := setup(t, "a long paragraph")
	require.NoError(t, ed.BeginLink(Selection{0, 2, 16}))
	require.NoError(t, ed.Input("a"))

	assert.ErrorIs(t, ed.ConfirmLink("https://example.com"), ErrInvalidSelection)
	assert.False(t, ed.LinkDialogOpen())
}

func TestInputKeepsMarksOnUnchangedParagraphs(t *testing.T) {
	_, ed, _ := setup(t, "alpha\n\nbeta")
	require.NoError(t, ed.Toggle(Selection{0, 0, 5}, models.StyleBold))
	require.NoError(t, ed.Toggle(Selection{1, 0, 4}, models.StyleItalic))

	require.NoError(t, ed.Input("alpha\n\nbeta gamma"))

	assert.Equal(t, []models.Mark{{Paragraph: 0, Start: 0, End: 5, Style: models.StyleBold}}, ed.Marks())
}

func TestMarksSurviveSaveAndReopen(t *testing.T) {
	repo, ed, note := setup(t, "Hello world")
	require.NoError(t, ed.Toggle(Selection{0, 0, 5}, models.StyleBold))
	require.NoError(t, ed.Save())

	other := New(repo, logging.Nop())
	require.Equal(t, StateLoaded, other.Open(note.ID.String()))
	assert.True(t, other.IsActive(Selection{0, 0, 5}, models.StyleBold))
}

func TestRenderMarkdownNests(t *testing.T) {
	paragraphs := []string{"abcdefghij", "plain"}
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 10, Style: models.StyleBold},
		{Paragraph: 0, Start: 3, End: 5, Style: models.StyleItalic},
	}

	assert.Equal(t, "**abc_de_fghij**\n\nplain", RenderMarkdown(paragraphs, marks))
}

func TestRenderMarkdownLinkAcrossBold(t *testing.T) {
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 5, Style: models.StyleBold},
		{Paragraph: 0, Start: 3, End: 8, Style: models.StyleLink, Value: "https://x.io"},
	}

	assert.Equal(t, "**abc**[**de**fgh](https://x.io)", RenderMarkdown([]string{"abcdefgh"}, marks))
}

func TestRenderHTMLEscapes(t *testing.T) {
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 3, Style: models.StyleFontSize, Value: "20"},
		{Paragraph: 0, Start: 0, End: 3, Style: models.StyleUnderline},
	}

	got := RenderHTML([]string{"a<b & c"}, marks)

	assert.Equal(t, "<p><span style=\"font-size:20px\"><u>a&lt;b</u></span> &amp; c</p>\n", got)
}

func TestLinkRejectsNonWebSchemes(t *testing.T) {
	_, ed, _ := setup(t, "Click me")

	for _, raw := range []string{
		"javascript:alert(document.cookie)",
		"JavaScript:alert(1)",
		"data:text/html,<script>alert(1)</script>",
		"vbscript:msgbox",
		"https://",
		"example.com",
	} {
		assert.ErrorIs(t, ed.Link(Selection{0, 0, 5}, raw), ErrInvalidURL, raw)
	}
	assert.Empty(t, ed.Marks())
	assert.NotContains(t, ed.HTML(), "<a ")

	require.NoError(t, ed.Link(Selection{0, 6, 8}, "mailto:someone@example.com"))
	assert.Contains(t, ed.HTML(), `<a href="mailto:someone@example.com"`)
}

func TestRenderHTMLSkipsUnsafeMarks(t *testing.T) {
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 5, Style: models.StyleLink, Value: "javascript:alert(1)"},
		{Paragraph: 0, Start: 0, End: 5, Style: models.StyleFontSize, Value: `20px;background:url(x)`},
	}

	assert.Equal(t, "<p>Click me</p>\n", RenderHTML([]string{"Click me"}, marks))
}

func TestRenderMarkdownEscapesText(t *testing.T) {
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 3, Style: models.StyleLink, Value: "https://example.com/a_(b)"},
	}

	got := RenderMarkdown([]string{`a*b [c] _d_ \`}, marks)

	assert.Equal(t, `[a\*b](https://example.com/a_\(b\)) \[c\] \_d\_ \\`, got)
}

func TestMarkdownRoundTrip(t *testing.T) {
	paragraphs := []string{`a*b_c [x] \ d`, "plain"}
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 3, Style: models.StyleBold},
		{Paragraph: 0, Start: 2, End: 6, Style: models.StyleItalic},
		{Paragraph: 0, Start: 4, End: 9, Style: models.StyleLink, Value: "https://example.com/a_(b)"},
		{Paragraph: 1, Start: 0, End: 5, Style: models.StyleBold},
	}

	gotParagraphs, gotMarks := ParseMarkdown(RenderMarkdown(paragraphs, marks))

	assert.Equal(t, paragraphs, gotParagraphs)
	assert.Equal(t, marks, gotMarks)
}

func TestParseMarkdownKeepsUnmatchedBracket(t *testing.T) {
	paragraphs, marks := ParseMarkdown("see [docs and **bold")

	assert.Equal(t, []string{"see [docs and bold"}, paragraphs)
	assert.Equal(t, []models.Mark{{Paragraph: 0, Start: 14, End: 18, Style: models.StyleBold}}, marks)
}

func TestParseMarkdownDropsScriptLinks(t *testing.T) {
	paragraphs, marks := ParseMarkdown("[x](javascript:void)")

	assert.Equal(t, []string{"x"}, paragraphs)
	assert.Empty(t, marks)
}
