package scoring

// ScoreAuthenticity converts the AI-marker probability into a category
// score: a clean repository scores 100, a probability at the 0.95 cap
// bottoms out at 5.
func ScoreAuthenticity(aiScore float64) float64 {
	return clamp((1.0 - aiScore) * 100)
}
