// Package mcp exposes submission validation over the Model Context
// Protocol so AI assistants can drive hackcheck directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/hackcheck/hackcheck/internal/adapters/outbound/configstore"
	"github.com/hackcheck/hackcheck/internal/application"
	"github.com/hackcheck/hackcheck/internal/domain/rules"
)

// NewServer creates an MCP server with the hackcheck tools registered.
func NewServer(validator *application.ValidateService, store *configstore.Store, engine *rules.Engine) *server.MCPServer {
	s := server.NewMCPServer(
		"hackcheck",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	registerTools(s, validator, store, engine)

	return s
}
