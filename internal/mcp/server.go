// ABOUTME: MCP server exposing the notebook to AI agents over stdio.
// ABOUTME: Provides tools, resources, and prompts for folder and note management.

package mcp

import (
	"context"

	"github.com/harper/nowted/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

type Server struct {
	server *mcp.Server
	repo   *notebook.Repository
	log    zerolog.Logger
}

func NewServer(repo *notebook.Repository, log zerolog.Logger, version string) *Server {
	s := &Server{repo: repo, log: log}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "nowted",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	s.log.Info().Msg("mcp server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
