package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hackcheck/hackcheck/internal/domain/secrets"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the GitHub API token",
	}
	cmd.AddCommand(newTokenSetCmd())
	cmd.AddCommand(newTokenShowCmd())
	return cmd
}

func newTokenSetCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "set <token>",
		Short: "Store a GitHub token",
		Long: "Store a GitHub personal access token for API calls and private clones. " +
			"The " + tokenEnvVar + " environment variable takes precedence when set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newConfigStore()
			if err != nil {
				return err
			}
			if err := store.SetToken(username, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored token for %q\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "default", "Account the token belongs to")

	return cmd
}

func newTokenShowCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored token, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newConfigStore()
			if err != nil {
				return err
			}
			token, err := store.Token(username)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", username, secrets.MaskSecret(token))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "default", "Account the token belongs to")

	return cmd
}
