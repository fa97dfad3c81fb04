// ABOUTME: Folder model for the flat, unnested folder set.
// ABOUTME: Seeds the default Personal and Work folders.

package models

const DefaultFolderTitle = "Personal"

type Folder struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewFolder(title string) Folder {
	return Folder{
		ID:    NewID().String(),
		Title: title,
	}
}

// SeedFolders is the folder set used when none has been persisted yet.
func SeedFolders() []Folder {
	return []Folder{
		{ID: "personal", Title: DefaultFolderTitle},
		{ID: "work", Title: "Work"},
	}
}
