package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hackcheck/hackcheck/internal/adapters/outbound/tui"
	"github.com/hackcheck/hackcheck/internal/domain"
)

func newValidateCmd() *cobra.Command {
	var (
		configName string
		startDate  string
		endDate    string
		devpostURL string
		format     string
		outputPath string
		jsonOut    bool
		ciMode     bool
	)

	cmd := &cobra.Command{
		Use:   "validate <github-url>",
		Short: "Validate a single submission",
		Long: "Fetch the repository, run every analyzer, and print the scored verdict. " +
			"Pass --devpost to also check the submission page.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newConfigStore()
			if err != nil {
				return err
			}

			cfg, err := loadConfig(store, configName, startDate, endDate)
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

			result := svc.Validate(cmd.Context(), cfg, args[0], devpostURL)

			if jsonOut {
				format = "json"
			}
			out, err := tui.New().Render(result, format)
			if err != nil {
				return err
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, out, 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
			} else {
				fmt.Fprint(cmd.OutOrStdout(), string(out))
			}

			if ciMode && result.Scores.Category == domain.CategoryFailed {
				return fmt.Errorf("submission failed validation with score %.1f", result.Scores.Overall)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configName, "config", "c", "", "Stored hackathon config name")
	cmd.Flags().StringVar(&startDate, "start", "", "Hackathon start (RFC 3339 or YYYY-MM-DD) when no config is given")
	cmd.Flags().StringVar(&endDate, "end", "", "Hackathon end (RFC 3339 or YYYY-MM-DD) when no config is given")
	cmd.Flags().StringVar(&devpostURL, "devpost", "", "DevPost submission page URL")
	cmd.Flags().StringVarP(&format, "format", "f", "terminal", "Output format: terminal, markdown, html, json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Shorthand for --format json")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 when the verdict is FAILED")

	return cmd
}
