// ABOUTME: Terminal UI formatting for nowted output.
// ABOUTME: Uses glamour for note bodies and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/nowted/internal/models"
)

// DateLayout matches the date shown in the editor header.
const DateLayout = "02/01/2006"

const timeLayout = "2006-01-02 15:04"

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// ShortID is the prefix shown in listings and accepted by FindNote.
func ShortID(note models.Note) string {
	return note.ID.String()[:models.ShortIDLen]
}

// Preview returns the first line of content, cut to n runes.
func Preview(content string, n int) string {
	line := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	runes := []rune(line)
	if len(runes) <= n {
		return line
	}
	return string(runes[:n]) + "…"
}

func FormatNoteListItem(note models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(note)), bold(note.Title)))
	sb.WriteString(fmt.Sprintf("            %s  %s\n",
		faint(note.LastModified.Format(DateLayout)),
		Preview(note.Content, 40)))

	return sb.String()
}

// FormatFolderList marks the selected folder with an arrow.
func FormatFolderList(folders []models.Folder, selected string) string {
	var sb strings.Builder
	for _, f := range folders {
		marker := " "
		title := f.Title
		if f.Title == selected {
			marker = cyan("›")
			title = bold(f.Title)
		}
		sb.WriteString(fmt.Sprintf("%s %s  %s\n", marker, title, faint(f.ID)))
	}
	return sb.String()
}

func FormatTrash(folders []models.Folder) string {
	if len(folders) == 0 {
		return faint("Trash is empty") + "\n"
	}
	var sb strings.Builder
	for _, f := range folders {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", f.Title, faint(f.ID)))
	}
	return sb.String()
}

func FormatRecents(notes []models.Note) string {
	var sb strings.Builder
	sb.WriteString(bold("Recents") + "\n")
	for _, n := range notes {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(n)), n.Title))
	}
	return sb.String()
}

func FormatNoteContent(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// FormatNoteHeader shows the title, date and folder above a note body.
func FormatNoteHeader(note models.Note, folder string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Date:"), note.LastModified.Format(DateLayout)))
	if folder != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Folder:"), cyan(folder)))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.Created.Format(timeLayout))))

	sb.WriteString(Separator())
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
