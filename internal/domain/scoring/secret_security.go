package scoring

import "github.com/hackcheck/hackcheck/internal/domain/secrets"

// ScoreSecretSecurity converts the secret scanner's risk score to [0, 100].
// When the scanner was skipped there is no evidence of exposure, so 100.
func ScoreSecretSecurity(report secrets.Report, scanned bool) float64 {
	if !scanned {
		return 100.0
	}
	return clamp(secrets.RiskScore(report) * 100)
}
