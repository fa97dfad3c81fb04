// ABOUTME: Edit command for modifying existing notes.
// ABOUTME: Opens note content in $EDITOR and saves the re-derived paragraphs.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long: `Open a note in $EDITOR for editing. Paragraphs are separated by blank
lines; formatting survives on paragraphs whose text is unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contentFlag, _ := cmd.Flags().GetString("content")

		ed, note, err := openNote(args[0])
		if err != nil {
			return err
		}

		newContent := contentFlag
		if !cmd.Flags().Changed("content") {
			newContent, err = openEditor(ed.Content())
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}

		if err := ed.Input(newContent); err != nil {
			return err
		}
		if ed.Content() == note.Content {
			fmt.Println("No changes made.")
			return nil
		}
		if err := ed.Save(); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated note %s", ui.ShortID(note))))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("content", "c", "", "replace content without opening $EDITOR")
	rootCmd.AddCommand(editCmd)
}
