package commits_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/commits"
)

var (
	windowStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC)
)

func commitAt(when time.Time, author, message string, size int) domain.Commit {
	return domain.Commit{
		Hash:         "deadbeefcafe0123456789",
		Author:       author,
		Message:      message,
		When:         when,
		LinesAdded:   size,
		FilesChanged: 1,
	}
}

func TestAnalyze_EmptyLog(t *testing.T) {
	report := commits.Analyze(nil, windowStart, windowEnd)

	assert.Equal(t, 0, report.TotalCommits)
	assert.Equal(t, 0, report.HackathonCommits)
	assert.False(t, report.SuspiciousPatterns)
	assert.NotNil(t, report.CommitTimeline)
	assert.NotNil(t, report.ContributorStats)
}

func TestAnalyze_WindowClassification(t *testing.T) {
	log := []domain.Commit{
		commitAt(windowEnd.Add(48*time.Hour), "ana", "Add deployment docs after judging", 10),
		commitAt(windowStart.Add(26*time.Hour), "ana", "Implement scoring endpoint with validation", 120),
		commitAt(windowStart, "ben", "Initial commit", 5),
		commitAt(windowStart.Add(-time.Hour), "ben", "Old prototype import", 40),
	}

	report := commits.Analyze(log, windowStart, windowEnd)

	assert.Equal(t, 4, report.TotalCommits)
	assert.Equal(t, 2, report.HackathonCommits)

	require.Len(t, report.CommitTimeline, 4)
	assert.False(t, report.CommitTimeline[0].DuringHackathon)
	assert.True(t, report.CommitTimeline[1].DuringHackathon)
	assert.True(t, report.CommitTimeline[2].DuringHackathon, "window is inclusive at the start")
	assert.Equal(t, "deadbeef", report.CommitTimeline[0].Hash)
}

func TestAnalyze_ContributorStatsSortedByCount(t *testing.T) {
	log := []domain.Commit{
		commitAt(windowStart.Add(30*time.Hour), "ben", "Fix failing login test on CI", 20),
		commitAt(windowStart.Add(28*time.Hour), "ana", "Implement login handler with sessions", 80),
		commitAt(windowStart.Add(26*time.Hour), "ana", "Add user model and migrations", 60),
		commitAt(windowStart.Add(24*time.Hour), "ana", "Initial commit", 10),
	}

	report := commits.Analyze(log, windowStart, windowEnd)

	require.Len(t, report.ContributorStats, 2)
	assert.Equal(t, "ana", report.ContributorStats[0].Author)
	assert.Equal(t, 3, report.ContributorStats[0].CommitCount)
	assert.Equal(t, 150, report.ContributorStats[0].LinesAdded)
	assert.Equal(t, "ben", report.ContributorStats[1].Author)
}

func TestAnalyze_LargeCommitFlagsSuspicious(t *testing.T) {
	log := []domain.Commit{
		commitAt(windowStart.Add(30*time.Hour), "ana", "Import entire frontend build", 1500),
	}

	report := commits.Analyze(log, windowStart, windowEnd)

	assert.True(t, report.SuspiciousPatterns)
	assert.Equal(t, 1, report.PatternDetails.LargeCommits)
	require.Len(t, report.PatternDetails.SuspiciousCommits, 1)
	assert.Equal(t, 1500, report.PatternDetails.SuspiciousCommits[0].LinesChanged)
}

func TestAnalyze_DaytimeHistoryNotSuspicious(t *testing.T) {
	log := []domain.Commit{
		commitAt(windowStart.Add(34*time.Hour), "ana", "Wire persistence layer into handlers", 90),
		commitAt(windowStart.Add(14*time.Hour), "ana", "Implement storage adapter with tests", 200),
		commitAt(windowStart.Add(10*time.Hour), "ana", "Initial commit", 10),
	}

	report := commits.Analyze(log, windowStart, windowEnd)

	assert.False(t, report.SuspiciousPatterns)
	assert.Equal(t, 0, report.PatternDetails.UnusualHourCommits)
}

func TestAnalyze_SmallHoursCommitsFlagSuspicious(t *testing.T) {
	// All commits between midnight and 4am, far over the 30% threshold.
	log := []domain.Commit{
		commitAt(windowStart.Add(26*time.Hour), "ana", "Refactor everything at 2am", 50),
		commitAt(windowStart.Add(27*time.Hour), "ana", "Still refactoring at 3am", 50),
		commitAt(windowStart.Add(28*time.Hour), "ana", "Dawn patrol fixes for the demo", 50),
	}

	report := commits.Analyze(log, windowStart, windowEnd)

	assert.True(t, report.SuspiciousPatterns)
	assert.Equal(t, 3, report.PatternDetails.UnusualHourCommits)
}

func TestMessageQuality(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     float64
	}{
		{"no messages falls back to neutral", nil, 0.5},
		{"tiny message", []string{"wip"}, 0.1},
		{"medium message", []string{"fix the bug"}, 0.5},
		{"long message", []string{"Overhauled the persistence layer internals"}, 0.8},
		{"long with imperative verb", []string{"refactor the persistence layer internals"}, 0.9},
		{
			"verb, colon body and issue ref max out",
			[]string{"fix auth: reject expired session tokens, fixes #42"},
			1.0,
		},
		{"mixed messages average", []string{"wip", "Overhauled the persistence layer internals"}, 0.45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, commits.MessageQuality(tt.messages), 0.001)
		})
	}
}

func TestDistributionScore(t *testing.T) {
	t.Run("no commits", func(t *testing.T) {
		assert.Equal(t, 0.0, commits.DistributionScore(nil, windowStart, windowEnd))
	})

	t.Run("single commit scores coverage only", func(t *testing.T) {
		dates := []time.Time{windowStart.Add(12 * time.Hour)}
		// One of three hackathon days covered.
		assert.InDelta(t, 1.0/3.0, commits.DistributionScore(dates, windowStart, windowEnd), 0.001)
	})

	t.Run("identical timestamps count as perfectly even", func(t *testing.T) {
		when := windowStart.Add(12 * time.Hour)
		dates := []time.Time{when, when, when}
		// Coverage 1/3 at weight 0.7, evenness 1.0 at weight 0.3.
		want := (1.0/3.0)*0.7 + 0.3
		assert.InDelta(t, want, commits.DistributionScore(dates, windowStart, windowEnd), 0.001)
	})

	t.Run("steady daily commits score high", func(t *testing.T) {
		var dates []time.Time
		for day := 0; day < 3; day++ {
			for _, hour := range []int{10, 15, 20} {
				dates = append(dates, windowStart.Add(time.Duration(day*24+hour)*time.Hour))
			}
		}
		score := commits.DistributionScore(dates, windowStart, windowEnd)
		assert.Greater(t, score, 0.8)
		assert.LessOrEqual(t, score, 1.0)
	})
}

func TestFrequencyScore(t *testing.T) {
	t.Run("no commits", func(t *testing.T) {
		assert.Equal(t, 0.0, commits.FrequencyScore(nil, windowStart, windowEnd))
	})

	t.Run("all commits outside the window", func(t *testing.T) {
		dates := []time.Time{windowStart.Add(-48 * time.Hour)}
		assert.Equal(t, 0.0, commits.FrequencyScore(dates, windowStart, windowEnd))
	})

	t.Run("four per day is full marks", func(t *testing.T) {
		var dates []time.Time
		for day := 0; day < 3; day++ {
			for slot := 0; slot < 4; slot++ {
				dates = append(dates, windowStart.Add(time.Duration(day*24+8+slot)*time.Hour))
			}
		}
		assert.Equal(t, 1.0, commits.FrequencyScore(dates, windowStart, windowEnd))
	})

	t.Run("one commit per day scores a quarter", func(t *testing.T) {
		dates := []time.Time{
			windowStart.Add(10 * time.Hour),
			windowStart.Add(34 * time.Hour),
			windowStart.Add(58 * time.Hour),
		}
		assert.InDelta(t, 0.25, commits.FrequencyScore(dates, windowStart, windowEnd), 0.001)
	})
}
