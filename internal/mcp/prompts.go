// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-note",
		Description: "Generate a summary of an existing note",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "note_id",
				Description: "ID of the note to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-folders",
		Description: "Get suggestions for filing notes into folders",
	}, s.getOrganizeFoldersPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getSummarizeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	noteID, ok := req.Params.Arguments["note_id"]
	if !ok || noteID == "" {
		return nil, fmt.Errorf("note_id argument is required")
	}

	return userPrompt(fmt.Sprintf(`Please summarize the note with ID: %s

1. Use the get_note tool to retrieve the note content
2. Read and analyze the note
3. Create a concise summary highlighting:
   - Main topic or theme
   - Key points or takeaways
   - Important details or action items
4. Use the save_note tool to add a "Summary" paragraph at the top of the note,
   separated from the rest by a blank line`, noteID)), nil
}

func (s *Server) getOrganizeFoldersPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return userPrompt(fmt.Sprintf(`Help me organize my notes into folders. I currently have %d folders and %d notes.

1. Use the list_folders tool to see my folders and which one is selected
2. Use the list_notes tool to see all my notes
3. Analyze the content and identify common themes
4. Suggest folders to create, rename, or move to the trash
5. Check list_trash for folders worth restoring

Please provide specific recommendations with note IDs and folder names.
Ask before calling delete_folder.`, len(s.repo.Folders()), len(s.repo.Notes()))), nil
}
