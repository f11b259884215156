package scoring

import "github.com/hackcheck/hackcheck/internal/domain/team"

// ScoreTeamCompliance penalizes uneven contribution (up to 40 pts, scaled
// by how far balance falls from perfect) and roster mismatch between the
// declared team and the repository's contributors (up to 50 pts). When the
// analysis never ran there is no evidence against the team, so 100.
func ScoreTeamCompliance(report team.Report, analyzed bool) float64 {
	if !analyzed {
		return 100.0
	}

	imbalance := 1.0 - report.ContributionBalance
	if imbalance < 0 {
		imbalance = 0
	}
	mismatch := 1.0 - report.GitHubTeamMatch
	if mismatch < 0 {
		mismatch = 0
	}

	return clamp(100 - 40*imbalance - 50*mismatch)
}
