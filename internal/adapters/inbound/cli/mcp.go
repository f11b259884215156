package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/hackcheck/hackcheck/internal/adapters/inbound/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the hackcheck MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start hackcheck MCP server (stdio)",
		Long: "Start the hackcheck MCP server using stdio transport. This lets AI assistants " +
			"validate submissions and inspect the active rule set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newConfigStore()
			if err != nil {
				return err
			}
			engine, err := engineWithStoredRules()
			if err != nil {
				return err
			}
			svc, err := buildValidator(githubToken(store), engine)
			if err != nil {
				return err
			}
			s := mcpadapter.NewServer(svc, store, engine)
			return server.ServeStdio(s)
		},
	}
}
