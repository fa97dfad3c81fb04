// ABOUTME: Tests for the notebook repository.
// ABOUTME: Covers folder trash lifecycle, selection, notes, recents and events.

package notebook

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/segment"
	"github.com/harper/nowted/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyStore returns a store whose folder set is persisted as empty, so no
// seed folders appear.
func emptyStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(store.NewMemory())
	require.NoError(t, s.Save(store.KeyFolders, []models.Folder{}))
	return s
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func titles(folders []models.Folder) []string {
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		out = append(out, f.Title)
	}
	return out
}

func TestNewSeedsFolders(t *testing.T) {
	repo := New(store.New(store.NewMemory()))

	assert.Equal(t, []string{"Personal", "Work"}, titles(repo.Folders()))
	assert.Empty(t, repo.Trash())
	assert.Empty(t, repo.Notes())
	assert.Equal(t, "Personal", repo.Selected())
}

func TestFolderTrashScenario(t *testing.T) {
	s := emptyStore(t)
	repo := New(s)

	work, err := repo.CreateFolder("Work")
	require.NoError(t, err)
	assert.Equal(t, []string{"Work"}, titles(repo.Folders()))
	assert.Empty(t, repo.Trash())

	deleted, err := repo.DeleteFolder(work.ID, Always)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, repo.Folders())
	assert.Equal(t, []string{"Work"}, titles(repo.Trash()))

	require.NoError(t, repo.RestoreFolder(work.ID))
	assert.Equal(t, []models.Folder{work}, repo.Folders())
	assert.Empty(t, repo.Trash())

	// Persisted in both collections.
	var active, trash []models.Folder
	require.True(t, s.Load(store.KeyFolders, &active))
	require.True(t, s.Load(store.KeyDeletedFolders, &trash))
	assert.Equal(t, []models.Folder{work}, active)
	assert.Empty(t, trash)
}

func TestCreateFolderRejectsBlankTitle(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	before := repo.Folders()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := repo.CreateFolder(title)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	}
	assert.Equal(t, before, repo.Folders())
}

func TestCreateFolderTrimsTitle(t *testing.T) {
	repo := New(store.New(store.NewMemory()))

	f, err := repo.CreateFolder("  Travel ")
	require.NoError(t, err)
	assert.Equal(t, "Travel", f.Title)
}

func TestRenameFolder(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	work, _ := repo.Folder("Work")

	require.NoError(t, repo.RenameFolder(work.ID, "Office"))
	assert.Equal(t, []string{"Personal", "Office"}, titles(repo.Folders()))

	assert.ErrorIs(t, repo.RenameFolder(work.ID, " "), ErrEmptyTitle)
	assert.Equal(t, []string{"Personal", "Office"}, titles(repo.Folders()))

	assert.ErrorIs(t, repo.RenameFolder("missing", "X"), ErrFolderNotFound)
}

func TestRenameSelectedFolderKeepsSelection(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	personal, _ := repo.Folder("Personal")

	require.NoError(t, repo.RenameFolder(personal.ID, "Home"))
	assert.Equal(t, "Home", repo.Selected())
}

func TestDeleteFolderDeclined(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	work, _ := repo.Folder("Work")

	var asked string
	deleted, err := repo.DeleteFolder(work.ID, ConfirmFunc(func(prompt string) bool {
		asked = prompt
		return false
	}))

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Contains(t, asked, "Work")
	assert.Equal(t, []string{"Personal", "Work"}, titles(repo.Folders()))
	assert.Empty(t, repo.Trash())
}

func TestDeleteFolderUnknown(t *testing.T) {
	repo := New(store.New(store.NewMemory()))

	_, err := repo.DeleteFolder("nope", Always)
	assert.ErrorIs(t, err, ErrFolderNotFound)
	assert.ErrorIs(t, repo.RestoreFolder("nope"), ErrFolderNotFound)
}

func TestDeleteSelectedFolderResetsSelection(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	work, _ := repo.Folder("Work")
	require.NoError(t, repo.SelectFolder("Work"))

	_, err := repo.DeleteFolder(work.ID, Always)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultFolderTitle, repo.Selected())
}

func TestDeleteDefaultFolderFallsBackToActiveFolder(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	personal, _ := repo.Folder("Personal")

	_, err := repo.DeleteFolder(personal.ID, Always)
	require.NoError(t, err)
	assert.Equal(t, "Work", repo.Selected())

	work, _ := repo.Folder("Work")
	_, err = repo.DeleteFolder(work.ID, Always)
	require.NoError(t, err)
	assert.Equal(t, "", repo.Selected())

	require.NoError(t, repo.RestoreFolder(personal.ID))
	assert.Equal(t, "Personal", repo.Selected())
}

func TestSelectFolderMustExist(t *testing.T) {
	repo := New(store.New(store.NewMemory()))

	assert.ErrorIs(t, repo.SelectFolder("Nowhere"), ErrFolderNotFound)
	require.NoError(t, repo.SelectFolder("Work"))
	assert.Equal(t, "Work", repo.Selected())

	// Selection survives a reload.
	repo.Reload()
	assert.Equal(t, "Work", repo.Selected())
}

// Random create/rename/delete/restore sequences keep the active set and the
// trash disjoint, and every folder ever created lives in exactly one of them.
func TestFolderOperationsKeepActiveAndTrashDisjoint(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	repo := New(emptyStore(t))
	created := map[string]bool{}

	for step := 0; step < 500; step++ {
		active := repo.Folders()
		trash := repo.Trash()
		switch op := rng.Intn(4); {
		case op == 0 || len(active)+len(trash) == 0:
			f, err := repo.CreateFolder(fmt.Sprintf("F%d", step))
			require.NoError(t, err)
			created[f.ID] = true
		case op == 1 && len(active) > 0:
			f := active[rng.Intn(len(active))]
			require.NoError(t, repo.RenameFolder(f.ID, fmt.Sprintf("R%d", step)))
		case op == 2 && len(active) > 0:
			f := active[rng.Intn(len(active))]
			_, err := repo.DeleteFolder(f.ID, ConfirmFunc(func(string) bool { return rng.Intn(2) == 0 }))
			require.NoError(t, err)
		case op == 3 && len(trash) > 0:
			f := trash[rng.Intn(len(trash))]
			require.NoError(t, repo.RestoreFolder(f.ID))
		}

		seen := map[string]int{}
		for _, f := range repo.Folders() {
			seen[f.ID]++
		}
		for _, f := range repo.Trash() {
			seen[f.ID]++
		}
		for id := range created {
			require.Equal(t, 1, seen[id], "folder %s at step %d", id, step)
		}
		require.Len(t, seen, len(created))
	}
}

func TestDeleteThenRestoreReproducesActiveSet(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	travel, err := repo.CreateFolder("Travel")
	require.NoError(t, err)
	before := repo.Folders()

	_, err = repo.DeleteFolder(travel.ID, Always)
	require.NoError(t, err)
	require.NoError(t, repo.RestoreFolder(travel.ID))

	assert.Equal(t, before, repo.Folders())
}

func TestCreateNote(t *testing.T) {
	s := store.New(store.NewMemory())
	clock := &fakeClock{t: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	repo := New(s, WithClock(clock.Now))

	var events []Event
	cancel := repo.Subscribe(func(e Event) { events = append(events, e) })
	defer cancel()

	note, err := repo.CreateNote()
	require.NoError(t, err)

	assert.Equal(t, models.DefaultNoteTitle, note.Title)
	assert.Equal(t, models.DefaultNoteContent, note.Content)
	personal, _ := repo.Folder("Personal")
	assert.Equal(t, personal.ID, note.FolderID)
	assert.Equal(t, []Event{{Kind: EventNoteCreated, ID: note.ID.String()}}, events)

	var persisted []models.Note
	require.True(t, s.Load(store.KeyNotes, &persisted))
	assert.Equal(t, note.ID, persisted[0].ID)
	var recents []models.Note
	require.True(t, s.Load(store.KeyRecentNotes, &recents))
	assert.Equal(t, note.ID, recents[0].ID)
}

func TestCreateNotePrependsAndBoundsRecents(t *testing.T) {
	repo := New(store.New(store.NewMemory()))

	var ids []string
	for i := 0; i < 5; i++ {
		n, err := repo.CreateNote()
		require.NoError(t, err)
		ids = append(ids, n.ID.String())
	}

	notes := repo.Notes()
	require.Len(t, notes, 5)
	assert.Equal(t, ids[4], notes[0].ID.String())
	assert.Equal(t, ids[0], notes[4].ID.String())

	seen := map[string]bool{}
	for _, n := range notes {
		assert.False(t, seen[n.ID.String()], "duplicate id")
		seen[n.ID.String()] = true
	}

	recents := repo.Recents()
	require.Len(t, recents, RecentLimit)
	assert.Equal(t, []string{ids[4], ids[3], ids[2]},
		[]string{recents[0].ID.String(), recents[1].ID.String(), recents[2].ID.String()})
}

func TestSaveNote(t *testing.T) {
	s := store.New(store.NewMemory())
	clock := &fakeClock{t: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	repo := New(s, WithClock(clock.Now))
	note, err := repo.CreateNote()
	require.NoError(t, err)

	require.NoError(t, repo.SaveNote(note.ID, "Para one\n\nPara two"))

	// Reload from the store to check what was persisted.
	reloaded := New(s)
	got, ok := reloaded.Note(note.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"Para one", "Para two"}, segment.Split(got.Content))
	assert.True(t, got.LastModified.After(note.LastModified))
	assert.Equal(t, note.Created.Unix(), got.Created.Unix())
}

func TestSaveNoteLastModifiedNeverDecreases(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ticks := []time.Time{now, now.Add(time.Hour), now.Add(-time.Hour)}
	i := 0
	repo := New(store.New(store.NewMemory()), WithClock(func() time.Time {
		t := ticks[i]
		if i < len(ticks)-1 {
			i++
		}
		return t
	}))
	note, _ := repo.CreateNote()

	require.NoError(t, repo.SaveNote(note.ID, "one"))
	first, _ := repo.Note(note.ID)
	require.NoError(t, repo.SaveNote(note.ID, "two"))
	second, _ := repo.Note(note.ID)

	assert.False(t, second.LastModified.Before(first.LastModified))
}

func TestSaveNoteMovesToFrontOfRecents(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	a, _ := repo.CreateNote()
	b, _ := repo.CreateNote()

	require.NoError(t, repo.SaveNote(a.ID, "edited"))

	recents := repo.Recents()
	require.Len(t, recents, 2)
	assert.Equal(t, a.ID, recents[0].ID)
	assert.Equal(t, "edited", recents[0].Content)
	assert.Equal(t, b.ID, recents[1].ID)
}

func TestSaveNoteUnknown(t *testing.T) {
	repo := New(store.New(store.NewMemory()))

	err := repo.SaveNote(models.NewID(), "x")
	assert.True(t, errors.Is(err, ErrNoteNotFound))
}

func TestSaveNoteDropsMarksThatNoLongerFit(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	note, _ := repo.CreateNote()
	marks := []models.Mark{
		{Paragraph: 0, Start: 0, End: 3, Style: models.StyleBold},
		{Paragraph: 1, Start: 0, End: 3, Style: models.StyleItalic},
	}
	require.NoError(t, repo.SaveNoteWithMarks(note.ID, "abcdef\n\nghi", marks))

	require.NoError(t, repo.SaveNote(note.ID, "ab"))

	got, _ := repo.Note(note.ID)
	assert.Empty(t, got.Marks)
}

func TestUpdateDraftDoesNotPersist(t *testing.T) {
	s := store.New(store.NewMemory())
	repo := New(s)
	note, _ := repo.CreateNote()

	require.NoError(t, repo.UpdateDraft(note.ID, "draft text"))

	got, _ := repo.Note(note.ID)
	assert.Equal(t, "draft text", got.Content)
	fresh, _ := New(s).Note(note.ID)
	assert.Equal(t, models.DefaultNoteContent, fresh.Content)
}

func TestRenameNote(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	note, _ := repo.CreateNote()

	require.NoError(t, repo.RenameNote(note.ID, "Travel itinerary"))
	got, _ := repo.Note(note.ID)
	assert.Equal(t, "Travel itinerary", got.Title)
	assert.ErrorIs(t, repo.RenameNote(note.ID, ""), ErrEmptyTitle)
}

func TestFindNote(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	note, _ := repo.CreateNote()

	got, err := repo.FindNote(note.ID.String())
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	got, err = repo.FindNote(note.ID.String()[:13])
	require.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)

	_, err = repo.FindNote("abc")
	assert.ErrorIs(t, err, ErrPrefixTooShort)

	_, err = repo.FindNote(models.NewID().String())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNotesInFolder(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	a, _ := repo.CreateNote()
	require.NoError(t, repo.SelectFolder("Work"))
	b, _ := repo.CreateNote()

	personal, _ := repo.Folder("Personal")
	work, _ := repo.Folder("Work")
	assert.Len(t, repo.NotesInFolder(personal.ID), 1)
	assert.Equal(t, a.ID, repo.NotesInFolder(personal.ID)[0].ID)
	assert.Equal(t, b.ID, repo.NotesInFolder(work.ID)[0].ID)
}

func TestReloadSeesOtherWriters(t *testing.T) {
	s := store.New(store.NewMemory())
	sidebar := New(s)
	editor := New(s)

	var got []Event
	sidebar.Subscribe(func(e Event) { got = append(got, e) })

	_, err := editor.CreateFolder("Events")
	require.NoError(t, err)
	assert.Len(t, sidebar.Folders(), 2, "sidebar is stale until it reloads")

	sidebar.Reload()
	assert.Len(t, sidebar.Folders(), 3)
	assert.Equal(t, []Event{{Kind: EventReloaded}}, got)
}

func TestSubscribeCancel(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	count := 0
	cancel := repo.Subscribe(func(Event) { count++ })

	_, _ = repo.CreateFolder("A")
	cancel()
	_, _ = repo.CreateFolder("B")

	assert.Equal(t, 1, count)
}

func TestSubscriberMayCallBack(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	var seen []string
	repo.Subscribe(func(e Event) {
		seen = titles(repo.Folders())
	})

	_, err := repo.CreateFolder("Finances")
	require.NoError(t, err)
	assert.Contains(t, seen, "Finances")
}

func TestCorruptStoreFallsBackToDefaults(t *testing.T) {
	backend := store.NewMemory()
	require.NoError(t, backend.Set(store.KeyFolders, []byte("garbage")))
	require.NoError(t, backend.Set(store.KeyNotes, []byte("{")))

	repo := New(store.New(backend))

	assert.Equal(t, []string{"Personal", "Work"}, titles(repo.Folders()))
	assert.Empty(t, repo.Notes())
}

func TestShortIDPrefixResolvesNotesCreatedTogether(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	a, err := repo.CreateNote()
	require.NoError(t, err)
	b, err := repo.CreateNote()
	require.NoError(t, err)

	assert.Less(t, a.ID.String(), b.ID.String())

	got, err := repo.FindNote(a.ID.String()[:models.ShortIDLen])
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = repo.FindNote(b.ID.String()[:models.ShortIDLen])
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	// Both IDs share their leading timestamp digits.
	_, err = repo.FindNote(a.ID.String()[:6])
	assert.ErrorIs(t, err, ErrAmbiguousPrefix)
}

var errWriteFailed = errors.New("disk full")

// failingBackend is a memory backend whose writes fail while fail is set.
type failingBackend struct {
	*store.Memory
	fail bool
}

func (b *failingBackend) Set(key string, value []byte) error {
	if b.fail {
		return errWriteFailed
	}
	return b.Memory.Set(key, value)
}

func TestFailedWriteLeavesFoldersUnchanged(t *testing.T) {
	backend := &failingBackend{Memory: store.NewMemory()}
	repo := New(store.New(backend))
	backend.fail = true

	deleted, err := repo.DeleteFolder("personal", Always)
	assert.ErrorIs(t, err, errWriteFailed)
	assert.False(t, deleted)
	assert.Equal(t, []string{"Personal", "Work"}, titles(repo.Folders()))
	assert.Empty(t, repo.Trash())
	assert.Equal(t, "Personal", repo.Selected())

	_, err = repo.CreateFolder("Travel")
	assert.ErrorIs(t, err, errWriteFailed)
	assert.ErrorIs(t, repo.RenameFolder("work", "Job"), errWriteFailed)
	assert.ErrorIs(t, repo.SelectFolder("Work"), errWriteFailed)
	assert.Equal(t, []string{"Personal", "Work"}, titles(repo.Folders()))
	assert.Equal(t, "Personal", repo.Selected())
}

func TestFailedWriteLeavesNotesUnchanged(t *testing.T) {
	backend := &failingBackend{Memory: store.NewMemory()}
	repo := New(store.New(backend))
	note, err := repo.CreateNote()
	require.NoError(t, err)
	require.NoError(t, repo.SaveNote(note.ID, "first"))
	backend.fail = true

	assert.ErrorIs(t, repo.SaveNote(note.ID, "second"), errWriteFailed)
	assert.ErrorIs(t, repo.RenameNote(note.ID, "Renamed"), errWriteFailed)
	_, err = repo.CreateNote()
	assert.ErrorIs(t, err, errWriteFailed)

	got, _ := repo.Note(note.ID)
	assert.Equal(t, "first", got.Content)
	assert.Equal(t, models.DefaultNoteTitle, got.Title)
	assert.Len(t, repo.Notes(), 1)
	require.Len(t, repo.Recents(), 1)
	assert.Equal(t, "first", repo.Recents()[0].Content)
}

func TestSaveDropsUnsafeMarks(t *testing.T) {
	repo := New(store.New(store.NewMemory()))
	note, err := repo.CreateNote()
	require.NoError(t, err)

	err = repo.SaveNoteWithMarks(note.ID, "Click me", []models.Mark{
		{Paragraph: 0, Start: 0, End: 5, Style: models.StyleLink, Value: "javascript:alert(1)"},
		{Paragraph: 0, Start: 0, End: 5, Style: models.Style("blink")},
		{Paragraph: 0, Start: 0, End: 5, Style: models.StyleFontSize, Value: "99"},
		{Paragraph: 0, Start: 6, End: 8, Style: models.StyleLink, Value: "https://example.com"},
	})
	require.NoError(t, err)

	got, _ := repo.Note(note.ID)
	assert.Equal(t, []models.Mark{
		{Paragraph: 0, Start: 6, End: 8, Style: models.StyleLink, Value: "https://example.com"},
	}, got.Marks)
}
