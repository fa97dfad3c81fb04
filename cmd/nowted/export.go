// ABOUTME: Export command for backing up folders and notes.
// ABOUTME: Supports JSON and markdown-with-frontmatter export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const exportVersion = "1.0"

type ExportNote struct {
	ID        string        `json:"id" yaml:"id"`
	Title     string        `json:"title" yaml:"title"`
	Folder    string        `json:"folder,omitempty" yaml:"folder,omitempty"`
	FolderID  string        `json:"folder_id,omitempty" yaml:"folder_id,omitempty"`
	Content   string        `json:"content" yaml:"-"`
	Marks     []models.Mark `json:"marks,omitempty" yaml:"-"`
	CreatedAt time.Time     `json:"created_at" yaml:"created"`
	UpdatedAt time.Time     `json:"updated_at" yaml:"updated"`
}

type ExportData struct {
	ExportedAt time.Time       `json:"exported_at"`
	Version    string          `json:"version"`
	Folders    []models.Folder `json:"folders"`
	Trash      []models.Folder `json:"trash,omitempty"`
	Notes      []ExportNote    `json:"notes"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export folders and notes to JSON, or notes to markdown files with YAML frontmatter.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")

		var notes []models.Note
		if notePrefix != "" {
			note, err := repo.FindNote(notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			notes = append(notes, note)
		} else {
			notes = repo.Notes()
		}

		switch format {
		case "json":
			return exportJSON(notes, outputPath)
		case "md":
			return exportMarkdown(notes, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func toExportNote(n models.Note) ExportNote {
	return ExportNote{
		ID:        n.ID.String(),
		Title:     n.Title,
		Folder:    folderTitle(n),
		FolderID:  n.FolderID,
		Content:   n.Content,
		Marks:     n.Marks,
		CreatedAt: n.Created,
		UpdatedAt: n.LastModified,
	}
}

func exportJSON(notes []models.Note, outputPath string) error {
	export := ExportData{
		ExportedAt: time.Now(),
		Version:    exportVersion,
		Folders:    repo.Folders(),
		Trash:      repo.Trash(),
	}
	for _, n := range notes {
		export.Notes = append(export.Notes, toExportNote(n))
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}

	return os.WriteFile(outputPath, data, 0o600)
}

// exportMarkdown writes one file per note. Formatting is rendered into the
// body, so underline and font size do not survive a markdown round trip.
func exportMarkdown(notes []models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return err
	}

	used := map[string]int{}
	for _, n := range notes {
		ed := editor.New(repo, logger)
		ed.Open(n.ID.String())

		var sb strings.Builder
		sb.WriteString("---\n")
		frontmatter, err := yaml.Marshal(toExportNote(n))
		if err != nil {
			return err
		}
		sb.Write(frontmatter)
		sb.WriteString("---\n\n")
		sb.WriteString(ed.Markdown())
		sb.WriteString("\n")

		name := sanitizeFilename(n.Title)
		if used[name] > 0 {
			name = fmt.Sprintf("%s-%s", name, ui.ShortID(n))
		}
		used[name]++

		filePath := filepath.Join(outputDir, name+".md")
		if err := os.WriteFile(filePath, []byte(sb.String()), 0o600); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
