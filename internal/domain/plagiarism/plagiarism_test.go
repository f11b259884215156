package plagiarism_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/plagiarism"
)

func TestEstimateGeneratedProb(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		assert.Equal(t, 0.0, plagiarism.EstimateGeneratedProb(""))
	})

	t.Run("human prose scores zero", func(t *testing.T) {
		text := "We built this over a sleepless weekend. The parser kept breaking " +
			"on emoji input and we only fixed it an hour before the deadline."
		assert.Equal(t, 0.0, plagiarism.EstimateGeneratedProb(text))
	})

	t.Run("assistant phrases accumulate", func(t *testing.T) {
		text := "As an AI, I can explain this project. Firstly, it parses data. " +
			"Hope this helps! Feel free to modify the code. " +
			"Let me know if you have any questions."
		prob := plagiarism.EstimateGeneratedProb(text)
		assert.Greater(t, prob, 0.5)
		assert.LessOrEqual(t, prob, 0.95)
	})

	t.Run("single weak indicator stays low", func(t *testing.T) {
		text := "Firstly, we sketched the flow on a whiteboard."
		prob := plagiarism.EstimateGeneratedProb(text)
		assert.InDelta(t, 0.3/5, prob, 0.001)
	})

	t.Run("capped at 0.95", func(t *testing.T) {
		phrase := "As an AI, hope this helps. Feel free to modify it. " +
			"Let me know if you have any questions. "
		text := strings.Repeat(phrase, 10)
		assert.InDelta(t, 0.95, plagiarism.EstimateGeneratedProb(text), 0.001)
	})
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, plagiarism.TextSimilarity("smart parking finder", "smart parking finder"))
	assert.Equal(t, 0.0, plagiarism.TextSimilarity("", "anything"))
	assert.Equal(t, 0.0, plagiarism.TextSimilarity("alpha beta", "gamma delta"))

	partial := plagiarism.TextSimilarity("smart parking finder app", "smart parking payment app")
	assert.Greater(t, partial, 0.3)
	assert.Less(t, partial, 1.0)
}

func TestListOverlap(t *testing.T) {
	assert.Equal(t, 1.0, plagiarism.ListOverlap([]string{"React", "Go"}, []string{"go", "react"}),
		"case insensitive")
	assert.Equal(t, 0.0, plagiarism.ListOverlap([]string{"React"}, []string{"Vue"}))
	assert.InDelta(t, 1.0/3.0, plagiarism.ListOverlap([]string{"React", "Go"}, []string{"React", "Python"}), 0.001)
}

func TestCompareSubmissions(t *testing.T) {
	a := &domain.SubmissionPage{
		Title:        "Smart Parking Finder",
		Description:  "Finds free parking spots in real time using camera feeds",
		TeamMembers:  []string{"ana", "ben"},
		Technologies: []string{"go", "react"},
		GitHubURL:    "https://github.com/acme/parking",
	}

	t.Run("identical submissions", func(t *testing.T) {
		sim := plagiarism.CompareSubmissions(a, a)
		assert.InDelta(t, 1.0, sim.OverallSimilarity, 0.001)
		assert.True(t, sim.GitHubMatch)
	})

	t.Run("unrelated submissions", func(t *testing.T) {
		b := &domain.SubmissionPage{
			Title:        "Recipe Roulette",
			Description:  "Suggests dinner ideas from whatever is left in your fridge",
			TeamMembers:  []string{"cara", "dan"},
			Technologies: []string{"python", "flask"},
			GitHubURL:    "https://github.com/other/recipes",
		}
		sim := plagiarism.CompareSubmissions(a, b)
		assert.Less(t, sim.OverallSimilarity, 0.2)
		assert.False(t, sim.GitHubMatch)
	})

	t.Run("nil page", func(t *testing.T) {
		sim := plagiarism.CompareSubmissions(a, nil)
		assert.Equal(t, 0.0, sim.OverallSimilarity)
	})
}

// searcherStub returns a fixed source list for every query.
type searcherStub struct{ sources []string }

func (s searcherStub) Search(string) []string { return s.sources }

func TestCheckFile_CommonBoilerplateNotQueried(t *testing.T) {
	// Even with a searcher that would flag anything, boilerplate chunks are
	// filtered before any query is made.
	checker := plagiarism.NewChecker(nil, searcherStub{sources: []string{"https://example.com/hit"}})

	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("console.log(\"step\", i) // trace output for debugging sessions\n")
	}

	result := checker.CheckFile(b.String(), "boilerplate.js")
	assert.False(t, result.PlagiarismDetected)
}

func TestCheckFile_SearcherHitsFlagFile(t *testing.T) {
	checker := plagiarism.NewChecker(nil, searcherStub{sources: []string{
		"https://github.com/upstream/original",
		"https://gist.github.com/someone/abc",
	}})

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("    grid[row][col] = evaluatePosition(board, depth, alpha, beta)\n")
	}

	result := checker.CheckFile(b.String(), "engine.py")
	assert.True(t, result.PlagiarismDetected)
	assert.GreaterOrEqual(t, result.SimilarityScore, 0.8, "multiple sources raise confidence")
	assert.NotEmpty(t, result.SourceURLs)
}

func TestCheckFile_NoSearcherNeverFlags(t *testing.T) {
	checker := plagiarism.NewChecker(nil, nil)

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("    grid[row][col] = evaluatePosition(board, depth, alpha, beta)\n")
	}

	result := checker.CheckFile(b.String(), "engine.py")
	assert.False(t, result.PlagiarismDetected)
	assert.Zero(t, result.SimilarityScore)
}
