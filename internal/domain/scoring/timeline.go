// Package scoring folds analyzer reports into the eight weighted category
// scores plus the unweighted secret-security score. Every function here is
// pure: same reports in, same score out.
package scoring

import "github.com/hackcheck/hackcheck/internal/domain/commits"

// ScoreTimeline rewards work actually done inside the hackathon window:
// 60 pts for a repository created in-window, up to 30 for the in-window
// commit ratio, up to 10 for distribution quality.
func ScoreTimeline(createdDuringHackathon bool, report commits.Report) float64 {
	score := 0.0
	if createdDuringHackathon {
		score += 60
	}
	if report.TotalCommits > 0 {
		ratio := float64(report.HackathonCommits) / float64(report.TotalCommits)
		score += 30 * ratio
	}
	if report.HackathonCommits > 0 {
		score += 10 * report.CommitDistributionScore
	}
	return clamp(score)
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
