package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hackcheck/hackcheck/internal/application"
	"github.com/hackcheck/hackcheck/internal/domain"
)

func newBatchCmd() *cobra.Command {
	var (
		configName  string
		startDate   string
		endDate     string
		concurrency int
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "batch <submissions-file>",
		Short: "Validate many submissions from a file",
		Long: "Read one submission per line (\"<github-url>\" or \"<github-url>,<devpost-url>\") " +
			"and validate them concurrently. Results are written as a JSON array.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readBatchFile(args[0])
			if err != nil {
				return err
			}
			if len(items) == 0 {
				return fmt.Errorf("no submissions in %s", args[0])
			}

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

			results := application.NewBatchService(svc, concurrency).Run(cmd.Context(), cfg, items)

			data, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("encode results: %w", err)
			}
			if outputPath != "" {
				if err := os.WriteFile(outputPath, data, 0o644); err != nil {
					return fmt.Errorf("write results: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}

			printBatchSummary(cmd, results)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configName, "config", "c", "", "Stored hackathon config name")
	cmd.Flags().StringVar(&startDate, "start", "", "Hackathon start when no config is given")
	cmd.Flags().StringVar(&endDate, "end", "", "Hackathon end when no config is given")
	cmd.Flags().IntVar(&concurrency, "workers", 4, "Submissions validated in parallel")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON results to a file instead of stdout")

	return cmd
}

// readBatchFile parses the submissions list. Blank lines and # comments are
// skipped.
func readBatchFile(path string) ([]application.BatchItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open submissions file: %w", err)
	}
	defer f.Close()

	var items []application.BatchItem
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		item := application.BatchItem{GitHubURL: line}
		if idx := strings.IndexByte(line, ','); idx >= 0 {
			item.GitHubURL = strings.TrimSpace(line[:idx])
			item.DevPostURL = strings.TrimSpace(line[idx+1:])
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read submissions file: %w", err)
	}
	return items, nil
}

func printBatchSummary(cmd *cobra.Command, results []*domain.ValidationResult) {
	var passed, review, failed int
	for _, r := range results {
		switch r.Scores.Category {
		case domain.CategoryPassed:
			passed++
		case domain.CategoryNeedsReview:
			review++
		default:
			failed++
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d submissions: %d passed, %d need review, %d failed\n",
		len(results), passed, review, failed)
}
