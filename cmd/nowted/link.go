// ABOUTME: Link command attaching a URL to a range of one paragraph.
// ABOUTME: Links open in a new window when the note is rendered.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link <id-prefix> <url>",
	Short: "Link part of a paragraph",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selectionFlags(cmd)
		if err != nil {
			return err
		}

		ed, note, err := openNote(args[0])
		if err != nil {
			return err
		}
		if err := ed.BeginLink(sel); err != nil {
			return err
		}
		if err := ed.ConfirmLink(args[1]); err != nil {
			ed.CancelLink()
			return err
		}
		if err := ed.Save(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Linked note %s to %s", ui.ShortID(note), args[1])))
		return nil
	},
}

func init() {
	addSelectionFlags(linkCmd)
	rootCmd.AddCommand(linkCmd)
}
