// ABOUTME: New command for creating notes in the selected folder.
// ABOUTME: Content can come from --content, --file, or $EDITOR with --edit.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/notebook"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new [title]",
	Short: "Create a note",
	Long: `Create a note in the selected folder. Without content the note starts
with placeholder text. Separate paragraphs with a blank line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")
		editFlag, _ := cmd.Flags().GetBool("edit")

		var content string
		switch {
		case contentFlag != "":
			content = contentFlag
		case fileFlag != "":
			data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			content = string(data)
		case editFlag:
			var err error
			content, err = openEditor(models.DefaultNoteContent)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		note, err := repo.CreateNote()
		if err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
		if len(args) == 1 {
			if err := repo.RenameNote(note.ID, args[0]); err != nil && !errors.Is(err, notebook.ErrEmptyTitle) {
				return fmt.Errorf("failed to set title: %w", err)
			}
		}
		if strings.TrimSpace(content) != "" {
			if err := repo.SaveNote(note.ID, content); err != nil {
				return fmt.Errorf("failed to save note: %w", err)
			}
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created note %s", ui.ShortID(note))))
		return nil
	},
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "nowted-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	newCmd.Flags().StringP("content", "c", "", "note content (inline)")
	newCmd.Flags().String("file", "", "read content from file")
	newCmd.Flags().BoolP("edit", "e", false, "write content in $EDITOR")
	rootCmd.AddCommand(newCmd)
}
