// ABOUTME: Format command applying bold, italic, underline or font size to a range.
// ABOUTME: Toggles a style off when it already covers the whole range.

package main

import (
	"fmt"

	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format <id-prefix>",
	Short: "Format part of a paragraph",
	Long: `Toggle bold, italic or underline, or set the font size, on a range of
characters in one paragraph. Paragraphs and characters count from zero; the
end is exclusive.

Examples:
  nowted format 3f9a1c --paragraph 0 --start 0 --end 5 --style bold
  nowted format 3f9a1c -p 1 -s 4 -e 9 --style fontSize --size 24`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := selectionFlags(cmd)
		if err != nil {
			return err
		}
		styleFlag, _ := cmd.Flags().GetString("style")
		sizeFlag, _ := cmd.Flags().GetInt("size")

		ed, note, err := openNote(args[0])
		if err != nil {
			return err
		}

		style := models.Style(styleFlag)
		if style == models.StyleFontSize {
			err = ed.SetFontSize(sel, sizeFlag)
		} else {
			err = ed.Toggle(sel, style)
		}
		if err != nil {
			return err
		}
		if err := ed.Save(); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Formatted note %s", ui.ShortID(note))))
		return nil
	},
}

func selectionFlags(cmd *cobra.Command) (editor.Selection, error) {
	for _, name := range []string{"paragraph", "start", "end"} {
		if !cmd.Flags().Changed(name) {
			return editor.Selection{}, fmt.Errorf("--%s is required", name)
		}
	}
	paragraph, _ := cmd.Flags().GetInt("paragraph")
	start, _ := cmd.Flags().GetInt("start")
	end, _ := cmd.Flags().GetInt("end")
	return editor.Selection{Paragraph: paragraph, Start: start, End: end}, nil
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("paragraph", "p", 0, "paragraph index")
	cmd.Flags().IntP("start", "s", 0, "first character, inclusive")
	cmd.Flags().IntP("end", "e", 0, "last character, exclusive")
}

func init() {
	addSelectionFlags(formatCmd)
	formatCmd.Flags().String("style", string(models.StyleBold), "bold|italic|underline|fontSize")
	formatCmd.Flags().Int("size", editor.DefaultFontSize, fmt.Sprintf("font size, one of %v", editor.FontSizes))
	rootCmd.AddCommand(formatCmd)
}
