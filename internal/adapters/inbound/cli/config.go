package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hackcheck/hackcheck/internal/domain"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage hackathon configs",
	}
	cmd.AddCommand(newConfigCreateCmd())
	cmd.AddCommand(newConfigListCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigCreateCmd() *cobra.Command {
	var (
		startDate  string
		endDate    string
		required   []string
		disallowed []string
		maxTeam    int
		allowAI    bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create and store a hackathon config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := domain.HackathonConfig{
				Name:                   args[0],
				ScoreWeights:           domain.DefaultWeights(),
				Thresholds:             domain.DefaultThresholds(),
				RequiredTechnologies:   required,
				DisallowedTechnologies: disallowed,
				MaxTeamSize:            maxTeam,
				AllowAITools:           allowAI,
			}

			var err error
			if cfg.StartDate, err = parseDate(startDate); err != nil {
				return fmt.Errorf("parse --start: %w", err)
			}
			if cfg.EndDate, err = parseDate(endDate); err != nil {
				return fmt.Errorf("parse --end: %w", err)
			}

			store, err := newConfigStore()
			if err != nil {
				return err
			}
			if err := store.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved config %q (%s, %d days)\n",
				cfg.Name, cfg.StartDate.Format("2006-01-02"), cfg.DurationDays())
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Hackathon start (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "Hackathon end (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&required, "require", nil, "Required technology (repeatable)")
	cmd.Flags().StringSliceVar(&disallowed, "disallow", nil, "Disallowed technology (repeatable)")
	cmd.Flags().IntVar(&maxTeam, "max-team-size", 0, "Maximum declared team size (0 = unlimited)")
	cmd.Flags().BoolVar(&allowAI, "allow-ai-tools", false, "Allow AI coding assistants")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored configs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := newConfigStore()
			if err != nil {
				return err
			}
			names, err := store.ListConfigs()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stored configs.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored config as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := newConfigStore()
			if err != nil {
				return err
			}
			cfg, err := store.LoadConfig(args[0])
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
