// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Supports JSON exports and directories of markdown files.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/segment"
	"github.com/harper/nowted/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long:  `Import notes from a JSON export or a directory of markdown files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			return importMarkdownDir(path)
		}

		if strings.HasSuffix(path, ".json") {
			return importJSON(path)
		}

		if err := importMarkdownFile(path); err != nil {
			return err
		}
		fmt.Println(ui.Success("Imported 1 note"))
		return nil
	},
}

func importJSON(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	var export ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		return err
	}

	// Exported folder IDs may differ from local ones with the same title.
	folderIDs := map[string]string{}
	for _, f := range export.Folders {
		folder, _, err := repo.ImportFolder(f)
		if err != nil {
			fmt.Printf("Warning: failed to import folder %q: %v\n", f.Title, err)
			continue
		}
		folderIDs[f.ID] = folder.ID
	}

	count := 0
	for _, en := range export.Notes {
		note := models.Note{
			Title:        en.Title,
			Content:      en.Content,
			FolderID:     folderIDs[en.FolderID],
			Marks:        en.Marks,
			Created:      en.CreatedAt,
			LastModified: en.UpdatedAt,
		}
		if id, err := uuid.Parse(en.ID); err == nil {
			note.ID = id
		}

		if _, err := repo.ImportNote(note); err != nil {
			fmt.Printf("Warning: failed to import %q: %v\n", en.Title, err)
			continue
		}
		count++
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes", count)))
	return nil
}

func importMarkdownDir(dir string) error {
	count := 0

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := importMarkdownFile(path); err != nil {
			fmt.Printf("Warning: failed to import %s: %v\n", path, err)
			return nil
		}
		count++
		return nil
	})

	if err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d notes", count)))
	return nil
}

func importMarkdownFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	content := string(data)
	var frontmatter struct {
		ID      string    `yaml:"id"`
		Title   string    `yaml:"title"`
		Folder  string    `yaml:"folder"`
		Created time.Time `yaml:"created"`
		Updated time.Time `yaml:"updated"`
	}

	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) >= 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &frontmatter); err == nil {
				content = parts[2]
			}
		}
	}

	if frontmatter.Title == "" {
		frontmatter.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("note content cannot be empty")
	}

	paragraphs, marks := editor.ParseMarkdown(content)
	note := models.Note{
		Title:        frontmatter.Title,
		Content:      segment.Join(paragraphs),
		Marks:        marks,
		Created:      frontmatter.Created,
		LastModified: frontmatter.Updated,
	}
	if id, err := uuid.Parse(frontmatter.ID); err == nil {
		note.ID = id
	}
	if folder, ok := repo.Folder(frontmatter.Folder); ok {
		note.FolderID = folder.ID
	}

	_, err = repo.ImportNote(note)
	return err
}

func init() {
	rootCmd.AddCommand(importCmd)
}
