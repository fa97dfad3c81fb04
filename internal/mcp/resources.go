// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to read rendered note content via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/nowted/internal/editor"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "nowted://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or ID prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	note, err := s.repo.FindNote(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	ed := editor.New(s.repo, s.log)
	ed.Open(note.ID.String())

	content := fmt.Sprintf("# %s\n\n", note.Title)
	if folder, ok := s.repo.Folder(note.FolderID); ok {
		content += fmt.Sprintf("**Folder:** %s\n\n", folder.Title)
	}
	content += ed.Markdown()

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}
