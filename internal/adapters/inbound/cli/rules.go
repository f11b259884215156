package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hackcheck/hackcheck/internal/domain/rules"
)

// storedRule is the on-disk shape of a user-defined rule.
type storedRule struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description"`
	Severity    string `yaml:"severity"`
}

func rulesFilePath() (string, error) {
	base, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "rules.yaml"), nil
}

func loadStoredRules() ([]storedRule, error) {
	path, err := rulesFilePath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var stored []storedRule
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	return stored, nil
}

func saveStoredRules(stored []storedRule) error {
	path, err := rulesFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := yaml.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// engineWithStoredRules builds the rule engine with the user's custom rules
// layered over the defaults.
func engineWithStoredRules() (*rules.Engine, error) {
	engine := rules.NewEngine()
	stored, err := loadStoredRules()
	if err != nil {
		return nil, err
	}
	for _, r := range stored {
		if !engine.AddRule(r.Name, r.Pattern, r.Description, r.Severity) {
			return nil, fmt.Errorf("stored rule %q is invalid", r.Name)
		}
	}
	return engine, nil
}

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage code-quality rules",
	}
	cmd.AddCommand(newRulesListCmd())
	cmd.AddCommand(newRulesAddCmd())
	cmd.AddCommand(newRulesRemoveCmd())
	return cmd
}

func newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active rules, defaults and custom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := engineWithStoredRules()
			if err != nil {
				return err
			}
			custom := map[string]bool{}
			for _, r := range engine.CustomRules() {
				custom[r.Name] = true
			}
			for _, r := range engine.AllRules() {
				origin := "default"
				if custom[r.Name] {
					origin = "custom"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %-8s %-8s %s\n", r.Name, r.Severity, origin, r.Description)
			}
			return nil
		},
	}
}

func newRulesAddCmd() *cobra.Command {
	var (
		description string
		severity    string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <pattern>",
		Short: "Add a custom rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, pattern := args[0], args[1]

			// Validate through a scratch engine before persisting.
			engine, err := engineWithStoredRules()
			if err != nil {
				return err
			}
			if !engine.AddRule(name, pattern, description, severity) {
				return fmt.Errorf("rule %q rejected: duplicate name or invalid pattern", name)
			}

			stored, err := loadStoredRules()
			if err != nil {
				return err
			}
			stored = append(stored, storedRule{
				Name:        name,
				Pattern:     pattern,
				Description: description,
				Severity:    severity,
			})
			if err := saveStoredRules(stored); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added rule %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "What the rule flags")
	cmd.Flags().StringVarP(&severity, "severity", "s", rules.SeverityMedium, "Severity: critical, high, medium, low")

	return cmd
}

func newRulesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stored, err := loadStoredRules()
			if err != nil {
				return err
			}
			kept := stored[:0]
			removed := false
			for _, r := range stored {
				if r.Name == args[0] {
					removed = true
					continue
				}
				kept = append(kept, r)
			}
			if !removed {
				return fmt.Errorf("no custom rule named %q", args[0])
			}
			if err := saveStoredRules(kept); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed rule %q\n", args[0])
			return nil
		},
	}
}
