// Package aidetect scans repository content for markers of AI-generated
// code: leftover assistant comments, attribution strings, and unnaturally
// regular code structure.
package aidetect

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Confidence buckets for indicators.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Indicator is a single AI marker found in a file.
type Indicator struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Match       string `json:"match"`
	Confidence  string `json:"confidence"`
}

type pattern struct {
	re          *regexp.Regexp
	raw         string
	description string
	confidence  string
}

func compilePatterns(specs [][3]string) []pattern {
	out := make([]pattern, 0, len(specs))
	for _, s := range specs {
		out = append(out, pattern{
			re:          regexp.MustCompile("(?im)" + s[0]),
			raw:         s[0],
			description: s[1],
			confidence:  s[2],
		})
	}
	return out
}

// Detector matches a fixed set of AI-marker patterns against file content.
type Detector struct {
	markers   []pattern
	structure []pattern
	unnatural []pattern
}

// New returns a detector with the built-in pattern set.
func New() *Detector {
	return &Detector{
		markers: compilePatterns([][3]string{
			{`#\s*\.\.\.existing code\.\.\.`, "Placeholder comment", ConfidenceMedium},
			{`//\s*\.\.\.existing code\.\.\.`, "Placeholder comment", ConfidenceMedium},
			{`//\s*your code here`, "Code stub comment", ConfidenceMedium},
			{`//\s*This is a mock implementation`, "Mock implementation comment", ConfidenceMedium},
			{`#\s*TODO: Implement`, "TODO placeholder", ConfidenceLow},
			{`//\s*TODO: Implement`, "TODO placeholder", ConfidenceLow},
			{`#\s*FIXME:`, "FIXME placeholder", ConfidenceLow},
			{`//\s*FIXME:`, "FIXME placeholder", ConfidenceLow},
			{`/\*\s*Generated by\s*.*AI.*\*/`, "AI generation comment", ConfidenceHigh},
			{`#\s*Generated by\s*.*AI`, "AI generation comment", ConfidenceHigh},
			{`//\s*Generated by\s*.*AI`, "AI generation comment", ConfidenceHigh},
			{`<!--\s*Generated by\s*.*AI.*-->`, "AI generation comment", ConfidenceHigh},
			{`# This file was generated using`, "Generation comment", ConfidenceMedium},
			{`// This file was generated using`, "Generation comment", ConfidenceMedium},
			{`Created by AI`, "AI attribution", ConfidenceHigh},
			{`Written by (ChatGPT|GPT|Claude|Bard|Gemini)`, "AI attribution", ConfidenceHigh},
			{`Created with (ChatGPT|GPT|Claude|Bard|Gemini)`, "AI attribution", ConfidenceHigh},
			{`(ChatGPT|GPT|Claude|Bard|Gemini) assisted`, "AI attribution", ConfidenceHigh},
		}),
		structure: compilePatterns([][3]string{
			{`function\d+|class\d+`, "Systematic numbered functions/classes", ConfidenceMedium},
			{`(def\s+\w+\([^)]*\):(?:\s*\w+\s*=\s*[^;]+;?){3,}){3,}`, "Highly repetitive code blocks", ConfidenceMedium},
			{`(class\s+\w+\s*\{[^}]*\}){3,}`, "Repetitive class definitions", ConfidenceMedium},
			{`(function\s+\w+\s*\([^)]*\)\s*\{[^}]*\}){3,}`, "Repetitive function definitions", ConfidenceMedium},
		}),
		unnatural: compilePatterns([][3]string{
			{`(?:#[^\n]*\n){5,}`, "Excessive sequential comments", ConfidenceMedium},
			{`"""\s*\w+\s*\n\s*Parameters:\s*\n\s*-+\s*\n.*\n\s*Returns:\s*\n\s*-+\s*\n.*\n\s*"""\s*`, "Formulaic docstring", ConfidenceMedium},
			{`@param\s+\w+\s+[A-Z].*\n\s*@return\s+[A-Z]`, "Formulaic JavaDoc comments", ConfidenceMedium},
		}),
	}
}

// Analyze matches every pattern against content and returns the indicators
// found, tagged with filename. Matches longer than 50 characters are
// truncated.
func (d *Detector) Analyze(content, filename string) []Indicator {
	var findings []Indicator

	groups := [][]pattern{d.markers, d.structure, d.unnatural}
	for _, group := range groups {
		for _, p := range group {
			for _, loc := range p.re.FindAllStringIndex(content, -1) {
				match := content[loc[0]:loc[1]]
				if len(match) > 50 {
					match = match[:50] + "..."
				}
				findings = append(findings, Indicator{
					File:        filename,
					Line:        1 + strings.Count(content[:loc[0]], "\n"),
					Pattern:     p.raw,
					Description: p.description,
					Match:       match,
					Confidence:  p.confidence,
				})
			}
		}
	}

	return findings
}

var skipDirs = []string{".git", "node_modules", "__pycache__", "venv", "env"}

// AnalyzeRepo walks a checked-out repository and analyzes every regular
// file, skipping dotfiles and vendored or generated directories. Files that
// cannot be read are skipped.
func (d *Detector) AnalyzeRepo(root string) []Indicator {
	var findings []Indicator

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			for _, dir := range skipDirs {
				if entry.Name() == dir {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		findings = append(findings, d.Analyze(string(data), rel)...)
		return nil
	})

	return findings
}

// Score folds indicators into a probability in [0, 0.95]. High-confidence
// indicators dominate; low-confidence ones barely move the needle.
func Score(findings []Indicator) float64 {
	if len(findings) == 0 {
		return 0.0
	}
	var high, medium, low int
	for _, f := range findings {
		switch f.Confidence {
		case ConfidenceHigh:
			high++
		case ConfidenceMedium:
			medium++
		case ConfidenceLow:
			low++
		}
	}
	score := float64(high)*0.15 + float64(medium)*0.05 + float64(low)*0.02
	if score > 0.95 {
		score = 0.95
	}
	return score
}
