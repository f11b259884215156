package scoring

import "math"

// ScoreComplexity rewards the middle of the road. Average normalized
// complexity between 5 and 15 maps to 85-100 (peaking at 10); below 5 the
// code looks suspiciously trivial for a hackathon project, above 15 it
// reads as over-complex, and both sides fall off toward zero.
func ScoreComplexity(avgComplexity float64) float64 {
	switch {
	case avgComplexity >= 5 && avgComplexity <= 15:
		return clamp(100 - math.Abs(avgComplexity-10)*3)
	case avgComplexity < 5:
		return clamp(85 - (5-avgComplexity)*12)
	default:
		return clamp(85 - (avgComplexity-15)*2)
	}
}
