// ABOUTME: List command for displaying notes.
// ABOUTME: Shows the selected folder by default; --folder or --all widen it.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/notebook"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes in the selected folder, newest first.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		folderFlag, _ := cmd.Flags().GetString("folder")
		allFlag, _ := cmd.Flags().GetBool("all")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		var notes []models.Note
		switch {
		case allFlag:
			notes = repo.Notes()
		default:
			ref := folderFlag
			if ref == "" {
				ref = repo.Selected()
			}
			folder, ok := repo.Folder(ref)
			if !ok {
				if folderFlag != "" {
					return fmt.Errorf("%w: %s", notebook.ErrFolderNotFound, folderFlag)
				}
				fmt.Println("No folder selected.")
				return nil
			}
			fmt.Printf("%s\n", folder.Title)
			notes = repo.NotesInFolder(folder.ID)
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}
		if limitFlag > 0 && len(notes) > limitFlag {
			notes = notes[:limitFlag]
		}
		for _, note := range notes {
			fmt.Print(ui.FormatNoteListItem(note))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("folder", "", "folder ID or title")
	listCmd.Flags().BoolP("all", "a", false, "list notes in every folder")
	listCmd.Flags().IntP("limit", "n", 20, "number of results")
	rootCmd.AddCommand(listCmd)
}
