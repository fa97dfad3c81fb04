// ABOUTME: Bulk insertion of folders and notes read from an export.
// ABOUTME: Keeps IDs and timestamps where they do not collide with existing data.

package notebook

import (
	"strings"

	"github.com/google/uuid"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/segment"
	"github.com/harper/nowted/internal/store"
)

// ImportFolder adds f to the active set unless an active folder already has
// its ID or title, in which case that folder is returned and added is false.
func (r *Repository) ImportFolder(f models.Folder) (folder models.Folder, added bool, err error) {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return models.Folder{}, false, ErrEmptyTitle
	}

	r.mu.Lock()
	if i := r.folderIndex(f.ID); i >= 0 {
		folder = r.folders[i]
		r.mu.Unlock()
		return folder, false, nil
	}
	if i := r.folderIndexByTitle(f.Title); i >= 0 {
		folder = r.folders[i]
		r.mu.Unlock()
		return folder, false, nil
	}
	if f.ID == "" {
		f.ID = models.NewID().String()
	}
	before := r.snapshot()
	r.folders = append(r.folders, f)
	if r.selected == "" {
		r.selected = r.fallbackSelection()
	}
	err = r.persistFolders(true)
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return models.Folder{}, false, err
	}

	r.publish(Event{Kind: EventFolderCreated, ID: f.ID})
	return f, true, nil
}

// ImportNote prepends note as it is, keeping its timestamps. A zero or
// already used ID is replaced, and a folder that is not active files the
// note under the selected folder. Recents are left alone.
func (r *Repository) ImportNote(note models.Note) (models.Note, error) {
	note = note.Clone()
	if strings.TrimSpace(note.Title) == "" {
		note.Title = models.DefaultNoteTitle
	}

	r.mu.Lock()
	if note.ID == uuid.Nil || r.noteIndex(note.ID) >= 0 {
		note.ID = models.NewID()
	}
	if r.folderIndex(note.FolderID) < 0 {
		note.FolderID = ""
		if i := r.folderIndexByTitle(r.selected); i >= 0 {
			note.FolderID = r.folders[i].ID
		}
	}
	if note.Created.IsZero() {
		note.Created = r.now()
	}
	if note.LastModified.Before(note.Created) {
		note.LastModified = note.Created
	}
	note.Marks = fitMarks(note.Marks, segment.Split(note.Content))
	before := r.snapshot()
	r.notes = append([]models.Note{note}, r.notes...)
	err := r.store.Save(store.KeyNotes, r.notes)
	r.rollbackOn(err, before)
	r.mu.Unlock()
	if err != nil {
		return models.Note{}, err
	}

	r.publish(Event{Kind: EventNoteCreated, ID: note.ID.String()})
	return note.Clone(), nil
}
