// Package complexity walks a checked-out repository and produces per-file
// and aggregate line counts, a normalized cyclomatic-complexity estimate,
// and a language breakdown.
package complexity

import (
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// CodePatterns counts smells detected per file.
type CodePatterns struct {
	LongFunctions int `json:"long_functions"`
	MagicNumbers  int `json:"magic_numbers"`
	DeeplyNested  int `json:"deeply_nested"`
	LongLines     int `json:"long_lines"`
}

// FileStats holds the measurements for a single source file.
type FileStats struct {
	Path         string       `json:"path"`
	Language     string       `json:"language"`
	TotalLines   int          `json:"total_lines"`
	CodeLines    int          `json:"code_lines"`
	CommentLines int          `json:"comment_lines"`
	BlankLines   int          `json:"blank_lines"`
	Complexity   float64      `json:"complexity"`
	Patterns     CodePatterns `json:"patterns"`
}

// FileSummary is the compact form reported for the most complex files.
type FileSummary struct {
	Path       string  `json:"path"`
	Language   string  `json:"language"`
	Complexity float64 `json:"complexity"`
	CodeLines  int     `json:"code_lines"`
}

// Report aggregates repository-wide complexity measurements.
type Report struct {
	LanguageBreakdown      map[string]int `json:"language_breakdown"`
	TotalLines             int            `json:"total_lines"`
	CodeLines              int            `json:"code_lines"`
	CommentLines           int            `json:"comment_lines"`
	BlankLines             int            `json:"blank_lines"`
	AverageComplexity      float64        `json:"average_complexity"`
	ComplexityDistribution map[string]int `json:"complexity_distribution"`
	MostComplexFiles       []FileSummary  `json:"most_complex_files"`
	FileStats              []FileStats    `json:"file_stats"`
}

var languageExtensions = map[string][]string{
	"python":     {".py"},
	"javascript": {".js", ".jsx"},
	"typescript": {".ts", ".tsx"},
	"java":       {".java"},
	"c":          {".c", ".h"},
	"cpp":        {".cpp", ".hpp", ".cc"},
	"csharp":     {".cs"},
	"go":         {".go"},
	"ruby":       {".rb"},
	"php":        {".php"},
	"swift":      {".swift"},
	"kotlin":     {".kt"},
	"rust":       {".rs"},
	"html":       {".html", ".htm"},
	"css":        {".css"},
	"sql":        {".sql"},
}

var ignoreDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	".venv":        true,
	"env":          true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vs":          true,
}

var commentPatterns = map[string][]*regexp.Regexp{
	"python":     compileAll(`(?m)#.*$`, `(?s)""".*?"""`, `(?s)'''.*?'''`),
	"javascript": cStyleComments,
	"typescript": cStyleComments,
	"java":       cStyleComments,
	"c":          cStyleComments,
	"cpp":        cStyleComments,
	"csharp":     cStyleComments,
	"go":         cStyleComments,
	"ruby":       compileAll(`(?m)#.*$`, `(?s)=begin.*?=end`),
	"php":        compileAll(`(?m)//.*$`, `(?s)/\*.*?\*/`, `(?m)#.*$`),
	"swift":      cStyleComments,
	"kotlin":     cStyleComments,
	"rust":       cStyleComments,
	"html":       compileAll(`(?s)<!--.*?-->`),
	"css":        compileAll(`(?s)/\*.*?\*/`),
	"sql":        compileAll(`(?m)--.*$`, `(?s)/\*.*?\*/`),
}

var cStyleComments = compileAll(`(?m)//.*$`, `(?s)/\*.*?\*/`)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

var decisionPoints = compileAll(
	`\bif\b`, `\belse\b`, `\bfor\b`, `\bwhile\b`, `\bcase\b`, `\bcatch\b`,
	`&&`, `\|\|`, `\?`,
)

var languageDecisionPoints = map[string][]*regexp.Regexp{
	"python":     compileAll(`\bexcept\b`, `\bfinally\b`, `\bwith\b`, `\[.*?for.*?in.*?\]`),
	"javascript": compileAll(`\bfunction\b`, `=>`, `\btry\b`, `\bswitch\b`),
	"typescript": compileAll(`\bfunction\b`, `=>`, `\btry\b`, `\bswitch\b`, `\binterface\b`, `\btype\b`),
	"java":       compileAll(`\btry\b`, `\bswitch\b`, `\bsynchronized\b`),
	"cpp":        compileAll(`\btry\b`, `\bswitch\b`, `\btemplate\b`),
}

var (
	numberPattern = regexp.MustCompile(`\b[0-9]+\b`)
	commonNumber  = regexp.MustCompile(`\b[0-2]\b`)
)

var magicNumberLanguages = map[string]bool{
	"python": true, "javascript": true, "typescript": true,
	"java": true, "cpp": true, "csharp": true,
}

// DetectLanguage maps a filename to a known language, or "".
func DetectLanguage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	for language, exts := range languageExtensions {
		for _, e := range exts {
			if ext == e {
				return language
			}
		}
	}
	return ""
}

// AnalyzeRepo measures every recognized source file under root. Unreadable
// files are skipped. Ignored directories (dependency caches, VCS metadata,
// build output) are never descended into.
func AnalyzeRepo(root string) Report {
	report := Report{
		LanguageBreakdown:      map[string]int{},
		ComplexityDistribution: map[string]int{},
		MostComplexFiles:       []FileSummary{},
		FileStats:              []FileStats{},
	}

	var files []FileStats

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if ignoreDirs[entry.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		language := DetectLanguage(entry.Name())
		if language == "" {
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

		stats := AnalyzeFile(string(data), language)
		stats.Path = filepath.ToSlash(rel)

		report.LanguageBreakdown[language] += stats.CodeLines
		report.TotalLines += stats.TotalLines
		report.CodeLines += stats.CodeLines
		report.CommentLines += stats.CommentLines
		report.BlankLines += stats.BlankLines

		files = append(files, stats)
		return nil
	})

	if len(files) == 0 {
		return report
	}

	var sum float64
	for _, f := range files {
		sum += f.Complexity
		switch {
		case f.Complexity < 5:
			report.ComplexityDistribution["very_low"]++
		case f.Complexity < 10:
			report.ComplexityDistribution["low"]++
		case f.Complexity < 20:
			report.ComplexityDistribution["medium"]++
		case f.Complexity < 40:
			report.ComplexityDistribution["high"]++
		default:
			report.ComplexityDistribution["very_high"]++
		}
	}
	report.AverageComplexity = sum / float64(len(files))

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Complexity != files[j].Complexity {
			return files[i].Complexity > files[j].Complexity
		}
		if files[i].CodeLines != files[j].CodeLines {
			return files[i].CodeLines > files[j].CodeLines
		}
		return files[i].Path < files[j].Path
	})

	top := files
	if len(top) > 10 {
		top = top[:10]
	}
	for _, f := range top {
		report.MostComplexFiles = append(report.MostComplexFiles, FileSummary{
			Path:       f.Path,
			Language:   f.Language,
			Complexity: f.Complexity,
			CodeLines:  f.CodeLines,
		})
	}
	report.FileStats = files

	return report
}

// AnalyzeFile measures a single file's content.
func AnalyzeFile(content, language string) FileStats {
	lines := strings.Split(content, "\n")
	total := len(lines)

	blank := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
		}
	}

	comments := 0
	for _, re := range commentPatterns[language] {
		for _, match := range re.FindAllString(content, -1) {
			comments += strings.Count(match, "\n") + 1
		}
	}

	code := total - blank - comments
	if code < 0 {
		code = 0
	}

	return FileStats{
		Language:     language,
		TotalLines:   total,
		CodeLines:    code,
		CommentLines: comments,
		BlankLines:   blank,
		Complexity:   Complexity(content, language),
		Patterns:     detectPatterns(content, language, lines),
	}
}

// Complexity estimates cyclomatic complexity from decision-point counts,
// normalized by sqrt of line count so long files are not unfairly punished,
// capped at 100.
func Complexity(content, language string) float64 {
	complexity := 1.0
	for _, re := range decisionPoints {
		complexity += float64(len(re.FindAllStringIndex(content, -1)))
	}
	for _, re := range languageDecisionPoints[language] {
		complexity += float64(len(re.FindAllStringIndex(content, -1)))
	}

	lineCount := strings.Count(content, "\n") + 1
	if lineCount > 0 {
		normalized := complexity / math.Sqrt(float64(lineCount)) * 5
		return math.Min(100, normalized)
	}
	return complexity
}

func detectPatterns(content, language string, lines []string) CodePatterns {
	var p CodePatterns

	for _, line := range lines {
		if len(strings.TrimSpace(line)) > 100 {
			p.LongLines++
		}
	}

	if magicNumberLanguages[language] {
		count := len(numberPattern.FindAllStringIndex(content, -1))
		count -= len(commonNumber.FindAllStringIndex(content, -1))
		if count < 0 {
			count = 0
		}
		p.MagicNumbers = count
	}

	indentSize := 4
	maxIndent := 0
	var indents []int
	for _, line := range lines {
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent > maxIndent {
			maxIndent = indent
		}
		if indent > 0 {
			indents = append(indents, indent)
		}
	}
	if (language == "python" || language == "javascript" || language == "typescript") && len(indents) > 0 {
		size := indents[0]
		for _, i := range indents[1:] {
			size = gcd(size, i)
		}
		if size < 2 {
			size = 2
		}
		if size > 8 {
			size = 8
		}
		indentSize = size
	}
	if indentSize > 0 && maxIndent/indentSize >= 4 {
		p.DeeplyNested = 1
	}

	return p
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
