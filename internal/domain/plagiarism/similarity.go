package plagiarism

import (
	"regexp"
	"strings"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// SubmissionSimilarity compares two DevPost pages field by field.
type SubmissionSimilarity struct {
	TitleMatch        float64 `json:"title_match"`
	DescriptionMatch  float64 `json:"description_match"`
	TeamOverlap       float64 `json:"team_overlap"`
	TechnologyOverlap float64 `json:"technology_overlap"`
	GitHubMatch       bool    `json:"github_match"`
	OverallSimilarity float64 `json:"overall_similarity"`
}

// CompareSubmissions scores how alike two submission pages are. The overall
// score weighs description most heavily, then team and repository overlap,
// with title and technology as weaker signals.
func CompareSubmissions(a, b *domain.SubmissionPage) SubmissionSimilarity {
	sim := SubmissionSimilarity{}
	if a == nil || b == nil {
		return sim
	}

	sim.TitleMatch = TextSimilarity(a.Title, b.Title)
	sim.DescriptionMatch = TextSimilarity(a.Description, b.Description)
	sim.TeamOverlap = ListOverlap(a.TeamMembers, b.TeamMembers)
	sim.TechnologyOverlap = ListOverlap(a.Technologies, b.Technologies)
	sim.GitHubMatch = a.GitHubURL != "" && a.GitHubURL == b.GitHubURL

	githubScore := 0.0
	if sim.GitHubMatch {
		githubScore = 1.0
	}
	sim.OverallSimilarity = sim.TitleMatch*0.1 +
		sim.DescriptionMatch*0.4 +
		sim.TeamOverlap*0.2 +
		sim.TechnologyOverlap*0.1 +
		githubScore*0.2

	return sim
}

// TextSimilarity is the Jaccard similarity of the two texts' token sets.
// Identical non-empty texts score 1.0; an empty side scores 0.0.
func TextSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	return jaccard(tokenSet(a), tokenSet(b))
}

// ListOverlap is the case-insensitive Jaccard similarity of two lists.
func ListOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	setA := map[string]bool{}
	for _, item := range a {
		setA[strings.ToLower(item)] = true
	}
	setB := map[string]bool{}
	for _, item := range b {
		setB[strings.ToLower(item)] = true
	}
	return jaccard(setA, setB)
}

func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	union := len(b)
	for item := range a {
		if b[item] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

var nonWord = regexp.MustCompile(`[^\w\s]`)

func tokenSet(text string) map[string]bool {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), "")
	set := map[string]bool{}
	for _, token := range strings.Fields(cleaned) {
		if len(token) > 2 {
			set[token] = true
		}
	}
	return set
}
