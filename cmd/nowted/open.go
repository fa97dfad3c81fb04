// ABOUTME: Open command resolving a view path the way the web views do.
// ABOUTME: Prints the listing, a note, or the empty placeholder.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/nav"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Open a view path such as /notes/<id>",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := nav.RootPath
		if len(args) == 1 {
			path = args[0]
		}

		for hops := 0; hops < 3; hops++ {
			route := nav.Resolve(path)
			switch route.Kind {
			case nav.KindRedirect:
				logger.Debug().Str("from", path).Str("to", route.Redirect).Msg("redirect")
				path = route.Redirect
				continue

			case nav.KindEmpty:
				fmt.Println(editor.EmptyMessage)
				return nil

			case nav.KindNote:
				ed := editor.New(repo, logger)
				if ed.Open(route.NoteID) != editor.StateLoaded {
					path = ed.RedirectTo()
					continue
				}
				note, _ := ed.Note()
				fmt.Print(ui.FormatNoteHeader(note, folderTitle(note)))
				content, _ := ui.FormatNoteContent(ed.Markdown())
				fmt.Print(content)
				return nil

			case nav.KindListing:
				return listCmd.RunE(listCmd, nil)
			}
		}
		return fmt.Errorf("too many redirects for %s", path)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
