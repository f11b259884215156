// Package cli wires the cobra command tree for the hackcheck binary.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hackcheck",
		Short: "Validate hackathon submissions",
		Long: "Hackcheck evaluates a hackathon submission's GitHub repository and DevPost page " +
			"against the event's rules and produces a PASS / NEEDS_REVIEW / FAIL verdict with " +
			"per-category scores.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newBatchCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()
	return newRootCmd().Execute()
}
