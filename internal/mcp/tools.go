// ABOUTME: MCP tools for folder and note operations.
// ABOUTME: Maps repository and editor functionality to the MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harper/nowted/internal/editor"
	"github.com/harper/nowted/internal/models"
	"github.com/harper/nowted/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "list_folders",
		Description: "List active folders and the selected folder",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListFolders)

	s.server.AddTool(&mcp.Tool{
		Name:        "create_folder",
		Description: "Create a folder with a non-blank title",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Folder title"}
			},
			"required": ["title"]
		}`),
	}, s.handleCreateFolder)

	s.server.AddTool(&mcp.Tool{
		Name:        "rename_folder",
		Description: "Rename a folder",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Folder ID or title"},
				"title": {"type": "string", "description": "New title"}
			},
			"required": ["id", "title"]
		}`),
	}, s.handleRenameFolder)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_folder",
		Description: "Move a folder to the trash. Requires confirm=true",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Folder ID or title"},
				"confirm": {"type": "boolean", "description": "Must be true to delete"}
			},
			"required": ["id", "confirm"]
		}`),
	}, s.handleDeleteFolder)

	s.server.AddTool(&mcp.Tool{
		Name:        "restore_folder",
		Description: "Restore a folder from the trash",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Folder ID or title"}
			},
			"required": ["id"]
		}`),
	}, s.handleRestoreFolder)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_trash",
		Description: "List folders in the trash",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTrash)

	s.server.AddTool(&mcp.Tool{
		Name:        "select_folder",
		Description: "Select the active folder new notes are filed under",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Folder title"}
			},
			"required": ["title"]
		}`),
	}, s.handleSelectFolder)

	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a note in the selected folder, optionally with a title and content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content; paragraphs separated by blank lines"}
			}
		}`),
	}, s.handleCreateNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or ID prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "save_note",
		Description: "Replace a note's content",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"content": {"type": "string", "description": "New content"}
			},
			"required": ["id", "content"]
		}`),
	}, s.handleSaveNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "rename_note",
		Description: "Rename a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"}
			},
			"required": ["id", "title"]
		}`),
	}, s.handleRenameNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, newest first, optionally within one folder",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"folder": {"type": "string", "description": "Folder ID or title"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "recent_notes",
		Description: "List the most recently created or saved notes",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleRecentNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "format_note",
		Description: "Apply formatting to a character range of one paragraph and save",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"paragraph": {"type": "integer", "description": "Zero-based paragraph index"},
				"start": {"type": "integer", "description": "First character, inclusive"},
				"end": {"type": "integer", "description": "Last character, exclusive"},
				"style": {"type": "string", "enum": ["bold", "italic", "underline", "fontSize", "link"]},
				"size": {"type": "integer", "description": "Font size for fontSize"},
				"url": {"type": "string", "description": "Target for link"}
			},
			"required": ["id", "paragraph", "start", "end", "style"]
		}`),
	}, s.handleFormatNote)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

func (s *Server) handleListFolders(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"folders":  s.repo.Folders(),
		"selected": s.repo.Selected(),
	}), nil
}

func (s *Server) handleCreateFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	folder, err := s.repo.CreateFolder(params.Title)
	if err != nil {
		return errorResult("failed to create folder: %v", err), nil
	}
	return textResult(fmt.Sprintf("Created folder %s (%s)", folder.Title, folder.ID)), nil
}

func (s *Server) handleRenameFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	folder, ok := s.repo.Folder(params.ID)
	if !ok {
		return errorResult("folder not found: %s", params.ID), nil
	}
	if err := s.repo.RenameFolder(folder.ID, params.Title); err != nil {
		return errorResult("failed to rename folder: %v", err), nil
	}
	return textResult(fmt.Sprintf("Renamed folder %s", folder.ID)), nil
}

func (s *Server) handleDeleteFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string `json:"id"`
		Confirm bool   `json:"confirm"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	folder, ok := s.repo.Folder(params.ID)
	if !ok {
		return errorResult("folder not found: %s", params.ID), nil
	}
	deleted, err := s.repo.DeleteFolder(folder.ID, notebook.ConfirmFunc(func(string) bool {
		return params.Confirm
	}))
	if err != nil {
		return errorResult("failed to delete folder: %v", err), nil
	}
	if !deleted {
		return textResult(fmt.Sprintf("Folder %s kept; pass confirm=true to delete", folder.Title)), nil
	}
	return textResult(fmt.Sprintf("Moved folder %s to trash", folder.Title)), nil
}

func (s *Server) handleRestoreFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	folder, ok := s.repo.TrashedFolder(params.ID)
	if !ok {
		return errorResult("folder not in trash: %s", params.ID), nil
	}
	if err := s.repo.RestoreFolder(folder.ID); err != nil {
		return errorResult("failed to restore folder: %v", err), nil
	}
	return textResult(fmt.Sprintf("Restored folder %s", folder.Title)), nil
}

func (s *Server) handleListTrash(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trash := s.repo.Trash()
	if trash == nil {
		trash = []models.Folder{}
	}
	return jsonResult(trash), nil
}

func (s *Server) handleSelectFolder(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	if err := s.repo.SelectFolder(params.Title); err != nil {
		return errorResult("failed to select folder: %v", err), nil
	}
	return textResult(fmt.Sprintf("Selected folder %s", params.Title)), nil
}

func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return nil, err
		}
	}

	note, err := s.repo.CreateNote()
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}
	if params.Title != "" {
		if err := s.repo.RenameNote(note.ID, params.Title); err != nil && !errors.Is(err, notebook.ErrEmptyTitle) {
			return errorResult("failed to set title: %v", err), nil
		}
	}
	if params.Content != "" {
		if err := s.repo.SaveNote(note.ID, params.Content); err != nil {
			return errorResult("failed to save content: %v", err), nil
		}
	}
	return textResult(fmt.Sprintf("Created note %s", note.ID.String())), nil
}

type noteView struct {
	models.Note
	Paragraphs []string `json:"paragraphs"`
	Markdown   string   `json:"markdown"`
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}

	ed := editor.New(s.repo, s.log)
	ed.Open(note.ID.String())
	return jsonResult(noteView{
		Note:       note,
		Paragraphs: ed.Paragraphs(),
		Markdown:   ed.Markdown(),
	}), nil
}

func (s *Server) handleSaveNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if err := s.repo.SaveNote(note.ID, params.Content); err != nil {
		return errorResult("failed to save note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Saved note %s", note.ID.String())), nil
}

func (s *Server) handleRenameNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if err := s.repo.RenameNote(note.ID, params.Title); err != nil {
		return errorResult("failed to rename note: %v", err), nil
	}
	return textResult(fmt.Sprintf("Renamed note %s", note.ID.String())), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Folder string `json:"folder"`
		Limit  int    `json:"limit"`
	}
	params.Limit = 20 // default
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return nil, err
		}
	}

	notes := s.repo.Notes()
	if params.Folder != "" {
		folder, ok := s.repo.Folder(params.Folder)
		if !ok {
			return errorResult("folder not found: %s", params.Folder), nil
		}
		notes = s.repo.NotesInFolder(folder.ID)
	}
	if params.Limit > 0 && len(notes) > params.Limit {
		notes = notes[:params.Limit]
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return jsonResult(notes), nil
}

func (s *Server) handleRecentNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.repo.Recents()), nil
}

func (s *Server) handleFormatNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID        string       `json:"id"`
		Paragraph int          `json:"paragraph"`
		Start     int          `json:"start"`
		End       int          `json:"end"`
		Style     models.Style `json:"style"`
		Size      int          `json:"size"`
		URL       string       `json:"url"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return nil, err
	}

	note, err := s.repo.FindNote(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	ed := editor.New(s.repo, s.log)
	ed.Open(note.ID.String())
	sel := editor.Selection{Paragraph: params.Paragraph, Start: params.Start, End: params.End}

	switch params.Style {
	case models.StyleFontSize:
		err = ed.SetFontSize(sel, params.Size)
	case models.StyleLink:
		err = ed.Link(sel, params.URL)
	default:
		err = ed.Toggle(sel, params.Style)
	}
	if err != nil {
		return errorResult("failed to format note: %v", err), nil
	}
	if err := ed.Save(); err != nil {
		return errorResult("failed to save note: %v", err), nil
	}
	return textResult(ed.Markdown()), nil
}
