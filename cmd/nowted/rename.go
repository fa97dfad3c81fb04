// ABOUTME: Rename command for changing a note's title.
// ABOUTME: A blank title leaves the note unchanged.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harper/nowted/internal/notebook"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id-prefix> <title>",
	Short: "Rename a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := repo.FindNote(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		err = repo.RenameNote(note.ID, args[1])
		if errors.Is(err, notebook.ErrEmptyTitle) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to rename note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Renamed note %s to %s", ui.ShortID(note), strings.TrimSpace(args[1]))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
