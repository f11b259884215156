package scoring

import "math"

// ScoreRuleCompliance maps a violation count onto [0, 100] with a
// diminishing exponential penalty, so the tenth violation costs far less
// than the first and the score never quite reaches zero for a finite
// count. Zero violations score exactly 100.
func ScoreRuleCompliance(violations int) float64 {
	if violations <= 0 {
		return 100.0
	}
	penalty := 100 * (1 - math.Exp(-0.1*float64(violations)))
	if penalty > 100 {
		penalty = 100
	}
	return clamp(100 - penalty)
}
