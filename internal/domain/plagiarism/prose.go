package plagiarism

import (
	"regexp"
	"strings"
)

type proseIndicator struct {
	re     *regexp.Regexp
	weight float64
}

// Phrases assistants leave behind in project descriptions, weighted by how
// strongly they signal generated prose.
var proseIndicators = []proseIndicator{
	{regexp.MustCompile(`\b(as an ai|as a language model|i'm an ai|my training|my knowledge cutoff|my training data|my last update)\b`), 0.9},
	{regexp.MustCompile(`\b(i don't have (personal|subjective|real-time|current) (opinions|feelings|thoughts|information|data|access))\b`), 0.8},
	{regexp.MustCompile(`(here's|here is) (a|an) (step-by-step|comprehensive|detailed) (guide|explanation|breakdown|analysis)`), 0.5},
	{regexp.MustCompile(`(there are|we have) (several|many|various|numerous|multiple) (options|approaches|methods|techniques|ways|strategies)`), 0.4},
	{regexp.MustCompile(`(firstly|secondly|thirdly|lastly|finally|to begin with|next|first of all|in conclusion)`), 0.3},
	{regexp.MustCompile(`\b(it's (important|worth|crucial) to (note|mention|understand|know|remember))\b`), 0.4},
	{regexp.MustCompile(`\b(key (features|advantages|benefits|points|aspects|components))\b`), 0.3},
	{regexp.MustCompile(`\b(based on (your|the) (requirements|needs|specifications|description|input))\b`), 0.5},
	{regexp.MustCompile(`\b(hope this (helps|is helpful|meets your needs|addresses your question))\b`), 0.7},
	{regexp.MustCompile(`\b(feel free to (modify|adjust|adapt|customize|tweak))\b`), 0.7},
	{regexp.MustCompile(`\b(let me know if you (have|need|want) (any|more|further) (questions|clarification|information|help|assistance))\b`), 0.8},
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// EstimateGeneratedProb estimates how likely a block of prose was written
// by an assistant rather than the team. Indicator weights accumulate with
// per-indicator match counts capped at three, normalized to [0, 0.95], with
// a small bump for long uniform paragraphs.
func EstimateGeneratedProb(text string) float64 {
	if text == "" {
		return 0.0
	}

	lower := strings.ToLower(text)

	total := 0.0
	found := false
	for _, ind := range proseIndicators {
		count := len(ind.re.FindAllString(lower, -1))
		if count == 0 {
			continue
		}
		found = true
		if count > 3 {
			count = 3
		}
		total += ind.weight * float64(count)
	}
	if !found {
		return 0.0
	}

	prob := total / 5
	if prob > 0.95 {
		prob = 0.95
	}

	paragraphs := len(paragraphSplit.Split(text, -1))
	if paragraphs > 0 {
		avgParagraph := float64(len(text)) / float64(paragraphs)
		if avgParagraph > 500 && paragraphs > 3 {
			prob += 0.1
			if prob > 0.95 {
				prob = 0.95
			}
		}
	}

	return prob
}
