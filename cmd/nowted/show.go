// ABOUTME: Show command for displaying a single note.
// ABOUTME: Renders the formatted paragraphs as markdown with glamour.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a note",
	Long:  `Display a note's paragraphs with their formatting.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawFlag, _ := cmd.Flags().GetBool("raw")
		htmlFlag, _ := cmd.Flags().GetBool("html")

		ed, note, err := openNote(args[0])
		if err != nil {
			return err
		}

		switch {
		case htmlFlag:
			fmt.Print(ed.HTML())
			return nil
		case rawFlag:
			fmt.Println(ed.Markdown())
			return nil
		}

		fmt.Print(ui.FormatNoteHeader(note, folderTitle(note)))
		content, _ := ui.FormatNoteContent(ed.Markdown())
		fmt.Print(content)
		return nil
	},
}

// openNote resolves an ID or prefix and loads it into an editor.
func openNote(ref string) (*editor.Editor, models.Note, error) {
	found, err := repo.FindNote(ref)
	if err != nil {
		return nil, models.Note{}, fmt.Errorf("failed to get note: %w", err)
	}
	ed := editor.New(repo, logger)
	if ed.Open(found.ID.String()) != editor.StateLoaded {
		return nil, models.Note{}, fmt.Errorf("note %s could not be opened", ref)
	}
	note, _ := ed.Note()
	return ed, note, nil
}

func folderTitle(note models.Note) string {
	if folder, ok := repo.Folder(note.FolderID); ok {
		return folder.Title
	}
	return ""
}

func init() {
	showCmd.Flags().Bool("raw", false, "print markdown without rendering")
	showCmd.Flags().Bool("html", false, "print HTML")
	rootCmd.AddCommand(showCmd)
}
