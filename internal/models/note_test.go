// ABOUTME: Tests for Note model constructor and methods.
// ABOUTME: Validates ID generation and timestamp handling.

package models

import (
	"testing"
	"time"
)

func TestNewNote(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	note := NewNote(now)

	if note.ID.String() == "" {
		t.Error("expected UUID to be generated")
	}
	if note.ID.Version() != 7 {
		t.Errorf("expected a version 7 UUID, got %d", note.ID.Version())
	}
	if note.Title != DefaultNoteTitle {
		t.Errorf("expected title %q, got %q", DefaultNoteTitle, note.Title)
	}
	if note.Content != DefaultNoteContent {
		t.Errorf("expected content %q, got %q", DefaultNoteContent, note.Content)
	}
	if !note.Created.Equal(now) || !note.LastModified.Equal(now) {
		t.Error("expected timestamps to be set")
	}
}

func TestNewNoteIDsAreOrdered(t *testing.T) {
	now := time.Now()
	a := NewNote(now)
	b := NewNote(now)

	if a.ID == b.ID {
		t.Fatal("expected unique IDs")
	}
	if a.ID.String() >= b.ID.String() {
		t.Errorf("expected %s to sort before %s", a.ID, b.ID)
	}
}

func TestNoteTouch(t *testing.T) {
	now := time.Now()
	note := NewNote(now)

	note.Touch(now.Add(time.Second))
	if !note.LastModified.Equal(now.Add(time.Second)) {
		t.Error("expected LastModified to be updated")
	}

	note.Touch(now)
	if !note.LastModified.Equal(now.Add(time.Second)) {
		t.Error("expected LastModified not to move backwards")
	}
}

func TestNoteCloneCopiesMarks(t *testing.T) {
	note := NewNote(time.Now())
	note.Marks = []Mark{{Start: 0, End: 3, Style: StyleBold}}

	clone := note.Clone()
	clone.Marks[0].Style = StyleItalic

	if note.Marks[0].Style != StyleBold {
		t.Error("expected clone to own its marks")
	}
}
