package scoring

// ScoreTechnology starts from the required-technology compliance ratio,
// subtracts a flat 40 for every forbidden technology found, and adds a
// diversity bonus worth up to 10. No required list means full compliance.
func ScoreTechnology(requiredCount, missingCount, forbiddenUsed int, diversity float64) float64 {
	ratio := 1.0
	if requiredCount > 0 {
		ratio = float64(requiredCount-missingCount) / float64(requiredCount)
	}
	if diversity < 0 {
		diversity = 0
	}
	if diversity > 1 {
		diversity = 1
	}
	return clamp(ratio*100 - 40*float64(forbiddenUsed) + diversity*10)
}
