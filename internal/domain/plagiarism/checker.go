// Package plagiarism estimates whether submitted code or DevPost prose was
// lifted from elsewhere: snippet-level search for copied code, pairwise
// submission similarity, and a generated-prose probability for page text.
package plagiarism

import (
	"crypto/md5"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// SnippetSearcher looks a code snippet up in an external corpus and returns
// the URLs of matching sources. Implementations decide the backend; a nil
// searcher disables snippet search entirely.
type SnippetSearcher interface {
	Search(query string) []string
}

// FileResult is the plagiarism verdict for one file.
type FileResult struct {
	PlagiarismDetected bool      `json:"plagiarism_detected"`
	SimilarityScore    float64   `json:"similarity_score"`
	SourceURLs         []string  `json:"source_urls"`
	File               string    `json:"file"`
	Snippets           []Snippet `json:"snippets"`
}

// Snippet is one flagged chunk with the sources it matched.
type Snippet struct {
	Content    string   `json:"content"`
	Similarity float64  `json:"similarity"`
	Sources    []string `json:"sources"`
}

// PlagiarizedFile is the compact per-file entry in a repo report.
type PlagiarizedFile struct {
	File       string   `json:"file"`
	Similarity float64  `json:"similarity"`
	Sources    []string `json:"sources"`
}

// RepoReport is the repository-wide plagiarism result.
type RepoReport struct {
	OverallPlagiarismScore float64           `json:"overall_plagiarism_score"`
	FilesChecked           int               `json:"files_checked"`
	PlagiarismDetected     bool              `json:"plagiarism_detected"`
	PlagiarizedFiles       []PlagiarizedFile `json:"plagiarized_files"`
	SourceURLs             []string          `json:"source_urls"`
}

// Checker scans repositories for copied code. Results are cached by content
// hash when a cache is provided.
type Checker struct {
	cache    domain.CacheStore
	searcher SnippetSearcher
}

// NewChecker returns a checker. Both cache and searcher may be nil.
func NewChecker(cache domain.CacheStore, searcher SnippetSearcher) *Checker {
	return &Checker{cache: cache, searcher: searcher}
}

var checkerSkipDirs = map[string]bool{
	".git": true, "node_modules": true, "__pycache__": true,
	"venv": true, "env": true, "dist": true, "build": true,
}

var checkerTextExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".html": true, ".css": true, ".scss": true, ".java": true, ".c": true,
	".cpp": true, ".h": true, ".hpp": true, ".cs": true, ".php": true,
	".rb": true, ".go": true, ".rs": true, ".swift": true, ".kt": true,
	".sh": true, ".bat": true, ".txt": true, ".md": true, ".json": true,
	".xml": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true,
}

// CheckRepo scans every substantial text file under root and aggregates
// per-file verdicts. The overall score is the mean similarity across
// flagged files.
func (c *Checker) CheckRepo(root string) RepoReport {
	report := RepoReport{
		PlagiarizedFiles: []PlagiarizedFile{},
		SourceURLs:       []string{},
	}

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if checkerSkipDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !checkerTextExtensions[strings.ToLower(filepath.Ext(name))] {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil || len(data) < 50 {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		report.FilesChecked++

		result := c.CheckFile(string(data), rel)
		if result.PlagiarismDetected {
			report.PlagiarismDetected = true
			report.PlagiarizedFiles = append(report.PlagiarizedFiles, PlagiarizedFile{
				File:       rel,
				Similarity: result.SimilarityScore,
				Sources:    result.SourceURLs,
			})
			report.SourceURLs = append(report.SourceURLs, result.SourceURLs...)
		}
		return nil
	})

	if len(report.PlagiarizedFiles) > 0 {
		report.SourceURLs = dedupe(report.SourceURLs)
		var total float64
		for _, f := range report.PlagiarizedFiles {
			total += f.Similarity
		}
		report.OverallPlagiarismScore = total / float64(len(report.PlagiarizedFiles))
	}

	return report
}

// CheckFile examines one file's content for copied snippets.
func (c *Checker) CheckFile(content, file string) FileResult {
	result := FileResult{File: file, SourceURLs: []string{}, Snippets: []Snippet{}}

	if c.cache != nil {
		key := "plagiarism:" + hashString(content)
		var cached FileResult
		if c.cache.Get(key, 0, &cached) {
			cached.File = file
			return cached
		}
		defer func() { c.cache.Put(key, result) }()
	}

	snippets := extractSuspiciousSnippets(content)
	if len(snippets) > 3 {
		snippets = snippets[:3]
	}

	for _, snippet := range snippets {
		similarity, sources := c.checkSnippet(snippet, file)
		if len(sources) == 0 {
			continue
		}
		result.PlagiarismDetected = true
		result.Snippets = append(result.Snippets, Snippet{
			Content:    snippet,
			Similarity: similarity,
			Sources:    sources,
		})
		result.SourceURLs = append(result.SourceURLs, sources...)
	}

	if result.PlagiarismDetected {
		result.SourceURLs = dedupe(result.SourceURLs)
		for _, s := range result.Snippets {
			if s.Similarity > result.SimilarityScore {
				result.SimilarityScore = s.Similarity
			}
		}
	}

	return result
}

func (c *Checker) checkSnippet(snippet, file string) (float64, []string) {
	if len(snippet) < 100 || c.searcher == nil {
		return 0, nil
	}

	query := buildSearchQuery(snippet, file)
	sources := c.searcher.Search(query)
	if len(sources) == 0 {
		return 0, nil
	}
	if len(sources) > 1 {
		return 0.8, sources
	}
	return 0.6, sources
}

// extractSuspiciousSnippets slices the content into overlapping 25-line
// chunks and keeps the ones that are long enough and do not look like
// boilerplate everyone writes.
func extractSuspiciousSnippets(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) < 10 {
		return nil
	}

	const (
		chunkSize = 25
		step      = 10
	)

	var snippets []string
	for i := 0; i+chunkSize <= len(lines); i += step {
		chunk := strings.Join(lines[i:i+chunkSize], "\n")
		if len(chunk) > 100 && !isCommonCode(chunk) {
			snippets = append(snippets, chunk)
		}
	}
	return snippets
}

var commonChunks = []string{
	"import React",
	"import { useState, useEffect }",
	"function App() {",
	"export default",
	"def __init__(self",
	"if __name__ == '__main__'",
	"public static void main(String[] args)",
	"System.out.println",
	"console.log",
	"print(",
	"useState(",
}

func isCommonCode(chunk string) bool {
	for _, common := range commonChunks {
		if strings.Contains(chunk, common) {
			return true
		}
	}
	return false
}

var commonLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*import\s+\w+`),
	regexp.MustCompile(`^\s*from\s+\w+\s+import`),
	regexp.MustCompile(`^\s*const\s+\w+\s*=`),
	regexp.MustCompile(`^\s*let\s+\w+\s*=`),
	regexp.MustCompile(`^\s*var\s+\w+\s*=`),
	regexp.MustCompile(`^\s*public\s+class`),
	regexp.MustCompile(`^\s*private\s+\w+\s+\w+\(`),
	regexp.MustCompile(`^\s*def\s+\w+\(`),
	regexp.MustCompile(`^\s*function\s+\w+\(`),
	regexp.MustCompile(`^\s*return\s+`),
	regexp.MustCompile(`^\s*if\s*\(`),
	regexp.MustCompile(`^\s*for\s*\(`),
	regexp.MustCompile(`^\s*while\s*\(`),
}

func isDistinctive(line string) bool {
	if len(line) < 20 {
		return false
	}
	for _, re := range commonLinePatterns {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}

// buildSearchQuery picks up to three distinctive lines from the snippet,
// joined and capped at 150 characters, with a filetype hint from the name.
func buildSearchQuery(snippet, file string) string {
	var selected []string
	for _, line := range strings.Split(snippet, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 20 {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "/*") || strings.HasPrefix(line, "*") ||
			strings.HasPrefix(line, `"""`) || strings.HasPrefix(line, "'''") {
			continue
		}
		if line == "{" || line == "}" {
			continue
		}
		selected = append(selected, line)
	}
	if len(selected) == 0 {
		return ""
	}

	var distinctive []string
	for _, line := range selected {
		if isDistinctive(line) {
			distinctive = append(distinctive, line)
		}
	}
	if len(distinctive) > 0 {
		selected = distinctive
	}
	if len(selected) > 3 {
		selected = selected[:3]
	}

	query := strings.Join(selected, " ")
	if len(query) > 150 {
		query = query[:150]
	}

	if ext := filepath.Ext(file); ext != "" {
		query += " filetype:" + strings.TrimPrefix(ext, ".")
	}
	return query
}

func dedupe(items []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

func hashString(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
