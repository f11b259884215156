package aidetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackcheck/hackcheck/internal/domain/aidetect"
)

func TestAnalyze_MarkerDetection(t *testing.T) {
	detector := aidetect.New()

	tests := []struct {
		name           string
		content        string
		wantDesc       string
		wantConfidence string
	}{
		{
			name:           "generation comment",
			content:        "// Generated by some AI model\nfunc main() {}\n",
			wantDesc:       "AI generation comment",
			wantConfidence: aidetect.ConfidenceHigh,
		},
		{
			name:           "attribution",
			content:        "# Written by ChatGPT\nprint('hi')\n",
			wantDesc:       "AI attribution",
			wantConfidence: aidetect.ConfidenceHigh,
		},
		{
			name:           "placeholder comment",
			content:        "def handler():\n    # ...existing code...\n    pass\n",
			wantDesc:       "Placeholder comment",
			wantConfidence: aidetect.ConfidenceMedium,
		},
		{
			name:           "todo placeholder",
			content:        "// TODO: Implement error handling\n",
			wantDesc:       "TODO placeholder",
			wantConfidence: aidetect.ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := detector.Analyze(tt.content, "main.go")
			require.NotEmpty(t, findings)

			found := false
			for _, f := range findings {
				if f.Description == tt.wantDesc {
					assert.Equal(t, tt.wantConfidence, f.Confidence)
					assert.Equal(t, "main.go", f.File)
					found = true
				}
			}
			assert.True(t, found, "expected %q indicator", tt.wantDesc)
		})
	}
}

func TestAnalyze_CleanCodeHasNoIndicators(t *testing.T) {
	detector := aidetect.New()
	content := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n"
	assert.Empty(t, detector.Analyze(content, "add.go"))
}

func TestAnalyze_LongMatchesAreTruncated(t *testing.T) {
	detector := aidetect.New()
	content := "# Generated by some very elaborate assistant suite known commercially as MegaThink AI\n"

	findings := detector.Analyze(content, "gen.py")

	require.NotEmpty(t, findings)
	for _, f := range findings {
		assert.LessOrEqual(t, len(f.Match), 53, "50 chars plus ellipsis")
	}
}

func TestScore(t *testing.T) {
	high := aidetect.Indicator{Confidence: aidetect.ConfidenceHigh}
	medium := aidetect.Indicator{Confidence: aidetect.ConfidenceMedium}
	low := aidetect.Indicator{Confidence: aidetect.ConfidenceLow}

	assert.Equal(t, 0.0, aidetect.Score(nil))
	assert.InDelta(t, 0.15, aidetect.Score([]aidetect.Indicator{high}), 0.001)
	assert.InDelta(t, 0.22, aidetect.Score([]aidetect.Indicator{high, medium, low}), 0.001)
}

func TestScore_CapAndMonotonicity(t *testing.T) {
	var findings []aidetect.Indicator
	prev := 0.0
	for i := 0; i < 20; i++ {
		findings = append(findings, aidetect.Indicator{Confidence: aidetect.ConfidenceHigh})
		score := aidetect.Score(findings)
		assert.GreaterOrEqual(t, score, prev, "score never decreases as findings accrue")
		assert.LessOrEqual(t, score, 0.95, "capped at 0.95")
		prev = score
	}
	assert.Equal(t, 0.95, prev)
}
