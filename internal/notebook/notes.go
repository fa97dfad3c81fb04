// ABOUTME: Note operations on the repository.
// ABOUTME: Create, save, draft and rename notes, and maintain the Recents list.

package notebook

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/segment"
	"github.com/harper/nowted/internal/store"
)

// CreateNote prepends a default note to the collection and to Recents, filed
// under the selected folder. The note.created event carries its ID so views
// can navigate to it.
func (r *Repository) CreateNote() (models.Note, error) {
	r.mu.Lock()
	before := r.snapshot()
	note := *models.NewNote(r.now())
	if i := r.folderIndexByTitle(r.selected); i >= 0 {
		note.FolderID = r.folders[i].ID
	}
	r.notes = append([]models.Note{note}, r.notes...)
	r.pushRecent(note)
	err := r.store.Save(store.KeyNotes, r.notes)
	if err == nil {
		err = r.store.Save(store.KeyRecentNotes, r.recents)
	}
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return models.Note{}, err
	}

	r.log.Debug().Str("id", note.ID.String()).Msg("note created")
	r.publish(Event{Kind: EventNoteCreated, ID: note.ID.String()})
	return note.Clone(), nil
}

// SaveNote replaces a note's content and stamps LastModified. Marks that no
// longer fit the new paragraphs are dropped.
func (r *Repository) SaveNote(id uuid.UUID, content string) error {
	return r.save(id, content, nil, false)
}

// SaveNoteWithMarks is SaveNote with an explicit set of formatting marks.
func (r *Repository) SaveNoteWithMarks(id uuid.UUID, content string, marks []models.Mark) error {
	return r.save(id, content, marks, true)
}

func (r *Repository) save(id uuid.UUID, content string, marks []models.Mark, replaceMarks bool) error {
	r.mu.Lock()
	i := r.noteIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	before := r.snapshot()
	note := &r.notes[i]
	note.Content = content
	if replaceMarks {
		note.Marks = append([]models.Mark(nil), marks...)
	}
	note.Marks = fitMarks(note.Marks, segment.Split(content))
	note.Touch(r.now())
	r.pushRecent(*note)
	err := r.store.Save(store.KeyNotes, r.notes)
	if err == nil {
		err = r.store.Save(store.KeyRecentNotes, r.recents)
	}
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.publish(Event{Kind: EventNoteSaved, ID: id.String()})
	return nil
}

// UpdateDraft updates a note's content in memory only. The change is lost
// unless SaveNote follows.
func (r *Repository) UpdateDraft(id uuid.UUID, content string) error {
	r.mu.Lock()
	i := r.noteIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	r.notes[i].Content = content
	r.mu.Unlock()

	r.publish(Event{Kind: EventNoteDraft, ID: id.String()})
	return nil
}

// RenameNote replaces a note's title.
func (r *Repository) RenameNote(id uuid.UUID, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}

	r.mu.Lock()
	i := r.noteIndex(id)
	if i < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	before := r.snapshot()
	r.notes[i].Title = title
	r.notes[i].Touch(r.now())
	r.pushRecent(r.notes[i])
	err := r.store.Save(store.KeyNotes, r.notes)
	if err == nil {
		err = r.store.Save(store.KeyRecentNotes, r.recents)
	}
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	r.publish(Event{Kind: EventNoteRenamed, ID: id.String()})
	return nil
}

// Note returns a copy of the note with the given ID.
func (r *Repository) Note(id uuid.UUID) (models.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.noteIndex(id); i >= 0 {
		return r.notes[i].Clone(), true
	}
	return models.Note{}, false
}

// FindNote resolves a full ID or an ID prefix of at least 6 characters.
func (r *Repository) FindNote(ref string) (models.Note, error) {
	if id, err := uuid.Parse(ref); err == nil {
		if note, ok := r.Note(id); ok {
			return note, nil
		}
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, ref)
	}
	if len(ref) < 6 {
		return models.Note{}, ErrPrefixTooShort
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []models.Note
	for _, n := range r.notes {
		if strings.HasPrefix(n.ID.String(), strings.ToLower(ref)) {
			matches = append(matches, n)
		}
	}
	switch len(matches) {
	case 0:
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, ref)
	case 1:
		return matches[0].Clone(), nil
	default:
		return models.Note{}, fmt.Errorf("%w: %d matches", ErrAmbiguousPrefix, len(matches))
	}
}

// Notes returns every note, newest first.
func (r *Repository) Notes() []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Note, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Clone()
	}
	return out
}

// NotesInFolder returns the notes filed under folderID.
func (r *Repository) NotesInFolder(folderID string) []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Note
	for _, n := range r.notes {
		if n.FolderID == folderID {
			out = append(out, n.Clone())
		}
	}
	return out
}

// Recents returns up to RecentLimit notes, most recently touched first.
func (r *Repository) Recents() []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Note, len(r.recents))
	for i, n := range r.recents {
		out[i] = n.Clone()
	}
	return out
}

// pushRecent moves note to the front of Recents. Caller holds mu.
func (r *Repository) pushRecent(note models.Note) {
	recents := make([]models.Note, 0, RecentLimit)
	recents = append(recents, note.Clone())
	for _, n := range r.recents {
		if len(recents) == RecentLimit {
			break
		}
		if n.ID != note.ID {
			recents = append(recents, n)
		}
	}
	r.recents = recents
}

func (r *Repository) noteIndex(id uuid.UUID) int {
	for i, n := range r.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// fitMarks drops marks whose paragraph or range falls outside paragraphs.
func fitMarks(marks []models.Mark, paragraphs []string) []models.Mark {
	var out []models.Mark
	for _, m := range marks {
		if !m.Valid() || m.Paragraph < 0 || m.Paragraph >= len(paragraphs) {
			continue
		}
		if m.Start < 0 || m.Start >= m.End || m.End > len([]rune(paragraphs[m.Paragraph])) {
			continue
		}
		out = append(out, m)
	}
	return out
}
