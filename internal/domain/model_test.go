package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackcheck/hackcheck/internal/domain"
)

func TestComputeOverall_DefaultWeights(t *testing.T) {
	score := domain.ValidationScore{
		Timeline:         80,
		CodeAuthenticity: 90,
		RuleCompliance:   100,
		Plagiarism:       100,
		TeamCompliance:   70,
		Complexity:       85,
		Technology:       60,
		CommitQuality:    75,
	}

	overall := score.ComputeOverall(domain.DefaultWeights())

	want := 0.15*80 + 0.20*90 + 0.10*100 + 0.10*100 + 0.10*70 + 0.10*85 + 0.10*60 + 0.15*75
	assert.InDelta(t, want, overall, 0.001)
	assert.Equal(t, overall, score.Overall)
}

func TestComputeOverall_SecretSecurityNeverWeighted(t *testing.T) {
	clean := domain.ValidationScore{Timeline: 100, SecretSecurity: 100}
	leaky := domain.ValidationScore{Timeline: 100, SecretSecurity: 0}

	weights := domain.DefaultWeights()
	assert.Equal(t, clean.ComputeOverall(weights), leaky.ComputeOverall(weights))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		overall float64
		want    domain.ValidationCategory
	}{
		{"well above pass", 95, domain.CategoryPassed},
		{"exactly pass threshold", 90, domain.CategoryPassed},
		{"between thresholds", 75, domain.CategoryNeedsReview},
		{"exactly review threshold", 60, domain.CategoryNeedsReview},
		{"below review", 59.9, domain.CategoryFailed},
		{"zero", 0, domain.CategoryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := domain.ValidationScore{Overall: tt.overall}
			assert.Equal(t, tt.want, score.Classify(domain.DefaultThresholds()))
			assert.Equal(t, tt.want, score.Category)
		})
	}
}

func TestResult_SealedIgnoresLateItems(t *testing.T) {
	result := domain.NewResult("https://github.com/acme/demo", "")
	result.AddFailure(domain.PriorityHigh, "repository created before the event", nil)
	result.Complete()

	result.AddWarning(domain.PriorityLow, "late warning", nil)
	result.AddPass("late pass", nil)

	assert.True(t, result.Sealed())
	assert.Len(t, result.Failures, 1)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Passes)
	assert.False(t, result.CompletedAt.IsZero())
}

func TestResult_JSONHasNonNilItemLists(t *testing.T) {
	result := domain.NewResult("https://github.com/acme/demo", "")
	result.Complete()

	data, err := json.Marshal(result)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"failures":[]`)
	assert.Contains(t, string(data), `"warnings":[]`)
	assert.Contains(t, string(data), `"passes":[]`)
}

func TestResult_JSONRoundTripPreservesScores(t *testing.T) {
	result := domain.NewResult("https://github.com/acme/demo", "https://devpost.com/software/demo")
	result.Scores = domain.ValidationScore{
		Timeline:         72.5,
		CodeAuthenticity: 91,
		RuleCompliance:   100,
		Plagiarism:       88.25,
		TeamCompliance:   64,
		Complexity:       85,
		Technology:       70,
		CommitQuality:    59.5,
		SecretSecurity:   42,
	}
	result.Scores.ComputeOverall(domain.DefaultWeights())
	result.Scores.Classify(domain.DefaultThresholds())
	result.AddWarning(domain.PriorityMedium, "some commits landed between midnight and 5am", nil)
	result.Complete()

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var back domain.ValidationResult
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, result.Scores, back.Scores)
	assert.Equal(t, result.Scores.Overall, back.Scores.Overall)
	assert.Equal(t, result.Scores.Category, back.Scores.Category)
	assert.Equal(t, result.GitHubURL, back.GitHubURL)
	assert.Len(t, back.Warnings, 1)
}

func TestConfigValidate(t *testing.T) {
	base := func() domain.HackathonConfig {
		return domain.HackathonConfig{
			Name:         "demo",
			StartDate:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC),
			ScoreWeights: domain.DefaultWeights(),
			Thresholds:   domain.DefaultThresholds(),
		}
	}

	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("weights must sum to one", func(t *testing.T) {
		cfg := base()
		cfg.ScoreWeights["timeline"] = 0.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		cfg := base()
		cfg.ScoreWeights["secret_security"] = 0.0
		assert.Error(t, cfg.Validate(), "the security score is unweighted by design")
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		cfg := base()
		cfg.ScoreWeights["timeline"] = -0.15
		assert.Error(t, cfg.Validate())
	})

	t.Run("end before start rejected", func(t *testing.T) {
		cfg := base()
		cfg.EndDate = cfg.StartDate.Add(-time.Hour)
		assert.Error(t, cfg.Validate())
	})

	t.Run("inverted thresholds rejected", func(t *testing.T) {
		cfg := base()
		cfg.Thresholds = domain.Thresholds{Pass: 50, Review: 60}
		assert.Error(t, cfg.Validate())
	})
}

func TestConfigInWindow(t *testing.T) {
	cfg := domain.HackathonConfig{
		StartDate: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 18, 0, 0, 0, time.UTC),
	}

	assert.True(t, cfg.InWindow(cfg.StartDate), "window is inclusive at both ends")
	assert.True(t, cfg.InWindow(cfg.EndDate))
	assert.True(t, cfg.InWindow(cfg.StartDate.Add(24*time.Hour)))
	assert.False(t, cfg.InWindow(cfg.StartDate.Add(-time.Second)))
	assert.False(t, cfg.InWindow(cfg.EndDate.Add(time.Second)))
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"plain https", "https://github.com/acme/widget", "acme", "widget", false},
		{"trailing .git", "https://github.com/acme/widget.git", "acme", "widget", false},
		{"schemeless", "github.com/acme/widget", "acme", "widget", false},
		{"extra path segments", "https://github.com/acme/widget/tree/main", "acme", "widget", false},
		{"not github", "https://gitlab.com/acme/widget", "", "", true},
		{"owner only", "https://github.com/acme", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := domain.ParseRepoURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}
