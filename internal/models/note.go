// ABOUTME: Note model holding a title, raw content and formatting marks.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultNoteTitle   = "New Note"
	DefaultNoteContent = "Start writing your note here..."
)

type Note struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	FolderID     string    `json:"folderId,omitempty"`
	Marks        []Mark    `json:"marks,omitempty"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
}

// NewNote returns a note with the default title and content.
func NewNote(now time.Time) *Note {
	return &Note{
		ID:           NewID(),
		Title:        DefaultNoteTitle,
		Content:      DefaultNoteContent,
		Created:      now,
		LastModified: now,
	}
}

// Touch stamps LastModified, never moving it backwards.
func (n *Note) Touch(now time.Time) {
	if now.After(n.LastModified) {
		n.LastModified = now
	}
}

// Clone returns a copy that shares no slices with n.
func (n Note) Clone() Note {
	if n.Marks != nil {
		n.Marks = append([]Mark(nil), n.Marks...)
	}
	return n
}

// ShortIDLen is the length of the ID prefix shown in listings. It spans the
// millisecond timestamp and the sub-millisecond sequence of a version 7 UUID,
// which is strictly increasing within one process.
const ShortIDLen = 18

// NewID returns a time-ordered version 7 UUID.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
