package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackcheck/hackcheck/internal/domain/commits"
	"github.com/hackcheck/hackcheck/internal/domain/scoring"
	"github.com/hackcheck/hackcheck/internal/domain/secrets"
	"github.com/hackcheck/hackcheck/internal/domain/team"
)

func TestScoreTimeline(t *testing.T) {
	tests := []struct {
		name    string
		created bool
		report  commits.Report
		want    float64
	}{
		{
			name:    "perfect run",
			created: true,
			report: commits.Report{
				TotalCommits:            40,
				HackathonCommits:        40,
				CommitDistributionScore: 1.0,
			},
			want: 100,
		},
		{
			name:    "created in window, no commits",
			created: true,
			report:  commits.Report{},
			want:    60,
		},
		{
			name:    "half the commits in window",
			created: true,
			report: commits.Report{
				TotalCommits:            20,
				HackathonCommits:        10,
				CommitDistributionScore: 0.5,
			},
			want: 60 + 15 + 5,
		},
		{
			name:    "pre-existing repo, nothing in window",
			created: false,
			report: commits.Report{
				TotalCommits:     30,
				HackathonCommits: 0,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoring.ScoreTimeline(tt.created, tt.report), 0.001)
		})
	}
}

func TestScoreAuthenticity(t *testing.T) {
	assert.Equal(t, 100.0, scoring.ScoreAuthenticity(0))
	assert.InDelta(t, 50.0, scoring.ScoreAuthenticity(0.5), 0.001)
	// The detector caps its probability at 0.95, which bottoms out at 5.
	assert.InDelta(t, 5.0, scoring.ScoreAuthenticity(0.95), 0.001)
}

func TestScoreRuleCompliance_ZeroViolationsIsExactlyFull(t *testing.T) {
	assert.Equal(t, 100.0, scoring.ScoreRuleCompliance(0))
}

func TestScoreRuleCompliance_DiminishingPenalty(t *testing.T) {
	one := scoring.ScoreRuleCompliance(1)
	five := scoring.ScoreRuleCompliance(5)
	fifty := scoring.ScoreRuleCompliance(50)

	assert.Less(t, one, 100.0)
	assert.Less(t, five, one)
	assert.Less(t, fifty, five)
	assert.Greater(t, fifty, 0.0, "finite counts never reach zero")

	// First violation costs more than the difference between 10 and 11.
	firstCost := 100 - one
	laterCost := scoring.ScoreRuleCompliance(10) - scoring.ScoreRuleCompliance(11)
	assert.Greater(t, firstCost, laterCost)
}

func TestScorePlagiarism(t *testing.T) {
	assert.Equal(t, 100.0, scoring.ScorePlagiarism(0, false))
	assert.InDelta(t, 70.0, scoring.ScorePlagiarism(0.3, false), 0.001)
	assert.InDelta(t, 20.0, scoring.ScorePlagiarism(0.3, true), 0.001)
	assert.Equal(t, 0.0, scoring.ScorePlagiarism(0.9, true), "floor at zero")
}

func TestScoreTeamCompliance(t *testing.T) {
	assert.Equal(t, 100.0, scoring.ScoreTeamCompliance(team.Report{}, false),
		"skipped analysis is not evidence against the team")

	balanced := team.Report{ContributionBalance: 1.0, GitHubTeamMatch: 1.0}
	assert.Equal(t, 100.0, scoring.ScoreTeamCompliance(balanced, true))

	uneven := team.Report{ContributionBalance: 0.5, GitHubTeamMatch: 0.8}
	assert.InDelta(t, 70.0, scoring.ScoreTeamCompliance(uneven, true), 0.001)

	soloGhost := team.Report{ContributionBalance: 0, GitHubTeamMatch: 0}
	assert.InDelta(t, 10.0, scoring.ScoreTeamCompliance(soloGhost, true), 0.001)
}

func TestScoreComplexity(t *testing.T) {
	tests := []struct {
		name string
		avg  float64
		want float64
	}{
		{"sweet spot", 10, 100},
		{"lower edge of band", 5, 85},
		{"upper edge of band", 15, 85},
		{"inside band", 13, 91},
		{"trivial code", 0, 25},
		{"over-complex", 25, 65},
		{"extreme complexity floors at zero", 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scoring.ScoreComplexity(tt.avg), 0.001)
		})
	}
}

func TestScoreTechnology(t *testing.T) {
	assert.InDelta(t, 100.0, scoring.ScoreTechnology(0, 0, 0, 0.5), 0.001,
		"no required list caps at 100 after clamping the diversity bonus")
	assert.InDelta(t, 60.0, scoring.ScoreTechnology(2, 1, 0, 1.0), 0.001)
	assert.InDelta(t, 70.0, scoring.ScoreTechnology(0, 0, 1, 1.0), 0.001)
	assert.Equal(t, 0.0, scoring.ScoreTechnology(1, 1, 3, 0), "forbidden tech buries the score")
}

func TestScoreCommitQuality(t *testing.T) {
	clean := commits.Report{
		MessageQuality:          1.0,
		CommitDistributionScore: 1.0,
		FrequencyScore:          1.0,
	}
	assert.InDelta(t, 100.0, scoring.ScoreCommitQuality(clean), 0.001)

	flagged := clean
	flagged.SuspiciousPatterns = true
	assert.InDelta(t, 80.0, scoring.ScoreCommitQuality(flagged), 0.001,
		"a flagged history forfeits the 20 pattern points")

	middling := commits.Report{
		MessageQuality:          0.5,
		CommitDistributionScore: 0.5,
		FrequencyScore:          0.5,
	}
	assert.InDelta(t, 60.0, scoring.ScoreCommitQuality(middling), 0.001)
}

func TestScoreSecretSecurity(t *testing.T) {
	assert.Equal(t, 100.0, scoring.ScoreSecretSecurity(secrets.Report{}, false),
		"skipped scan is not evidence of exposure")

	clean := secrets.Report{FilesScanned: 100}
	assert.InDelta(t, 100.0, scoring.ScoreSecretSecurity(clean, true), 0.001)

	leaky := secrets.Report{
		SecretsFound:    true,
		FilesScanned:    10,
		TotalSecrets:    2,
		CriticalSecrets: 2,
	}
	assert.Less(t, scoring.ScoreSecretSecurity(leaky, true), 50.0)
}
