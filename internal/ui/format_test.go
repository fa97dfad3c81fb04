// ABOUTME: Tests for terminal UI formatting functions.
// ABOUTME: Validates note, folder and trash display and markdown rendering.

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/harper/nowted/internal/models"
)

func TestFormatNoteListItem(t *testing.T) {
	note := *models.NewNote(time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC))
	note.Title = "Test Note"

	output := FormatNoteListItem(note)

	if !strings.Contains(output, note.ID.String()[:models.ShortIDLen]) {
		t.Error("expected output to contain ID prefix")
	}
	if !strings.Contains(output, "Test Note") {
		t.Error("expected output to contain title")
	}
	if !strings.Contains(output, "09/03/2024") {
		t.Error("expected output to contain date")
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("short\nsecond", 10); got != "short" {
		t.Errorf("expected first line, got %q", got)
	}
	if got := Preview("abcdefghij", 4); got != "abcd…" {
		t.Errorf("expected truncated preview, got %q", got)
	}
}

func TestFormatFolderList(t *testing.T) {
	output := FormatFolderList(models.SeedFolders(), "Work")

	if !strings.Contains(output, "Personal") || !strings.Contains(output, "Work") {
		t.Error("expected output to contain both folders")
	}
	if !strings.Contains(output, "›") {
		t.Error("expected selected marker")
	}
}

func TestFormatTrash(t *testing.T) {
	if !strings.Contains(FormatTrash(nil), "empty") {
		t.Error("expected empty trash message")
	}
	output := FormatTrash([]models.Folder{{ID: "x1", Title: "Old"}})
	if !strings.Contains(output, "Old") {
		t.Error("expected trashed folder title")
	}
}

func TestFormatNoteHeader(t *testing.T) {
	note := *models.NewNote(time.Date(2024, 12, 1, 8, 0, 0, 0, time.UTC))

	output := FormatNoteHeader(note, "Personal")

	if !strings.Contains(output, "01/12/2024") {
		t.Error("expected date in header")
	}
	if !strings.Contains(output, "Personal") {
		t.Error("expected folder in header")
	}
}

func TestFormatNoteContent(t *testing.T) {
	content := "# Hello\n\nThis is **bold** text."

	output, err := FormatNoteContent(content)
	if err != nil {
		t.Fatalf("failed to format content: %v", err)
	}

	if output == "" {
		t.Error("expected non-empty output")
	}
}

func TestShortIDDistinguishesNotesCreatedTogether(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := ShortID(*models.NewNote(now))
		if seen[id] {
			t.Fatalf("short ID %s repeated", id)
		}
		seen[id] = true
	}
}
