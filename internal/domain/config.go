package domain

import (
	"fmt"
	"math"
	"time"
)

// weightTolerance is how far the weight sum may drift from 1.0.
const weightTolerance = 1e-3

// Thresholds are the score cutoffs for the three-tier verdict.
type Thresholds struct {
	Pass   float64 `yaml:"pass_threshold"   json:"pass_threshold"   validate:"gte=0,lte=100"`
	Review float64 `yaml:"review_threshold" json:"review_threshold" validate:"gte=0,lte=100"`
}

// DefaultThresholds returns the stock pass/review cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Pass: 90, Review: 60}
}

// AnalyzerToggles enables or disables individual analyzers for a run.
// The zero value disables nothing; toggles are opt-out.
type AnalyzerToggles struct {
	SkipAIDetection bool `yaml:"skip_ai_detection" json:"skip_ai_detection,omitempty"`
	SkipComplexity  bool `yaml:"skip_complexity"   json:"skip_complexity,omitempty"`
	SkipTechnology  bool `yaml:"skip_technology"   json:"skip_technology,omitempty"`
	SkipRules       bool `yaml:"skip_rules"        json:"skip_rules,omitempty"`
	SkipCommits     bool `yaml:"skip_commits"      json:"skip_commits,omitempty"`
	SkipSecrets     bool `yaml:"skip_secrets"      json:"skip_secrets,omitempty"`
	SkipTeam        bool `yaml:"skip_team"         json:"skip_team,omitempty"`
	SkipPlagiarism  bool `yaml:"skip_plagiarism"   json:"skip_plagiarism,omitempty"`
}

// HackathonConfig is the immutable-per-run validation policy.
type HackathonConfig struct {
	Name      string    `yaml:"name"       json:"name"       validate:"required"`
	StartDate time.Time `yaml:"start_date" json:"start_date" validate:"required"`
	EndDate   time.Time `yaml:"end_date"   json:"end_date"   validate:"required"`

	ScoreWeights map[string]float64 `yaml:"score_weights" json:"score_weights"`
	Thresholds   Thresholds         `yaml:"validation_thresholds" json:"validation_thresholds"`

	RequiredTechnologies   []string `yaml:"required_technologies"   json:"required_technologies,omitempty"`
	DisallowedTechnologies []string `yaml:"disallowed_technologies" json:"disallowed_technologies,omitempty"`

	MaxTeamSize  int             `yaml:"max_team_size" json:"max_team_size,omitempty" validate:"gte=0"`
	AllowAITools bool            `yaml:"allow_ai_tools" json:"allow_ai_tools"`
	Analyzers    AnalyzerToggles `yaml:"analyzers" json:"analyzers,omitempty"`
}

// DefaultWeights returns the stock weighting over the eight categories.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		"timeline":          0.15,
		"code_authenticity": 0.20,
		"rule_compliance":   0.10,
		"plagiarism":        0.10,
		"team_compliance":   0.10,
		"complexity":        0.10,
		"technology":        0.10,
		"commit_quality":    0.15,
	}
}

// NewHackathonConfig builds a validated config with default weights and
// thresholds. Dates are normalized to UTC.
func NewHackathonConfig(name string, start, end time.Time) (HackathonConfig, error) {
	cfg := HackathonConfig{
		Name:         name,
		StartDate:    start.UTC(),
		EndDate:      end.UTC(),
		ScoreWeights: DefaultWeights(),
		Thresholds:   DefaultThresholds(),
	}
	if err := cfg.Validate(); err != nil {
		return HackathonConfig{}, err
	}
	return cfg, nil
}

// Validate checks every config invariant. Configs that fail here must never
// reach the scoring engine.
func (c HackathonConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("config name must not be empty")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start_date and end_date are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("end_date %s is before start_date %s",
			c.EndDate.Format(time.RFC3339), c.StartDate.Format(time.RFC3339))
	}
	if c.Thresholds.Pass <= c.Thresholds.Review {
		return fmt.Errorf("pass_threshold %.1f must exceed review_threshold %.1f",
			c.Thresholds.Pass, c.Thresholds.Review)
	}

	if len(c.ScoreWeights) == 0 {
		return fmt.Errorf("score_weights must not be empty")
	}
	for name := range c.ScoreWeights {
		if !isScoreCategory(name) {
			return fmt.Errorf("unknown score category %q in score_weights", name)
		}
	}
	sum := 0.0
	for _, w := range c.ScoreWeights {
		if w < 0 {
			return fmt.Errorf("score weights must be non-negative")
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("score weights sum to %.4f, must sum to 1.0", sum)
	}

	return nil
}

// InWindow reports whether t falls inside [StartDate, EndDate] inclusive.
func (c HackathonConfig) InWindow(t time.Time) bool {
	return !t.Before(c.StartDate) && !t.After(c.EndDate)
}

// DurationDays is the hackathon length in whole days, minimum 1.
func (c HackathonConfig) DurationDays() int {
	days := int(c.EndDate.Sub(c.StartDate).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

func isScoreCategory(name string) bool {
	for _, c := range ScoreCategories {
		if c == name {
			return true
		}
	}
	return false
}
