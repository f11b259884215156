package scoring

// ScorePlagiarism penalizes generated or recycled submission prose: the
// generated-content probability scales the score down linearly, and a
// duplicate submission costs a further flat 50.
func ScorePlagiarism(generatedProb float64, duplicateSubmission bool) float64 {
	score := 100 - generatedProb*100
	if duplicateSubmission {
		score -= 50
	}
	return clamp(score)
}
