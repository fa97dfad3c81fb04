// ABOUTME: Recent command showing the most recently created or saved notes.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recent notes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		recents := repo.Recents()
		if len(recents) == 0 {
			fmt.Println("No recent notes.")
			return nil
		}
		fmt.Print(ui.FormatRecents(recents))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
