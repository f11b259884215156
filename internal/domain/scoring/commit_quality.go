package scoring

import "github.com/hackcheck/hackcheck/internal/domain/commits"

// ScoreCommitQuality blends the commit-history signals in three cascading
// steps: message quality against distribution (60/40), that blend against
// frequency (70/30), and the result against a suspicious-pattern factor
// (80/20) that zeroes out when the history was flagged.
func ScoreCommitQuality(report commits.Report) float64 {
	suspiciousFactor := 1.0
	if report.SuspiciousPatterns {
		suspiciousFactor = 0.0
	}

	blend := 0.6*report.MessageQuality + 0.4*report.CommitDistributionScore
	blend = 0.7*blend + 0.3*report.FrequencyScore
	blend = 0.8*blend + 0.2*suspiciousFactor

	return clamp(blend * 100)
}
