package tui

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// renderMarkdown produces a plain markdown report suitable for pasting into
// an issue or review doc.
func renderMarkdown(result *domain.ValidationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Validation Report\n\n")
	fmt.Fprintf(&b, "**Repository:** %s\n\n", result.GitHubURL)
	if result.DevPostURL != "" {
		fmt.Fprintf(&b, "**Submission:** %s\n\n", result.DevPostURL)
	}
	fmt.Fprintf(&b, "**Verdict:** %s (%.1f / 100)\n\n", result.Scores.Category, result.Scores.Overall)

	b.WriteString("## Scores\n\n")
	b.WriteString("| Category | Score |\n")
	b.WriteString("|---|---|\n")
	for _, row := range scoreRows(&result.Scores) {
		name := row.Name
		if !row.Weighted {
			name += " (unweighted)"
		}
		fmt.Fprintf(&b, "| %s | %.1f |\n", name, row.Score)
	}
	b.WriteString("\n")

	writeItemSection(&b, "Failures", sortByPriority(result.Failures))
	writeItemSection(&b, "Warnings", sortByPriority(result.Warnings))
	writeItemSection(&b, "Passed", result.Passes)

	if len(result.DegradedAnalyzers) > 0 {
		fmt.Fprintf(&b, "## Degraded Analyzers\n\n%s\n\n", strings.Join(result.DegradedAnalyzers, ", "))
	}

	if result.Repository != nil {
		b.WriteString("## Repository\n\n")
		fmt.Fprintf(&b, "- Created: %s\n", result.Repository.CreatedAt.Format("2006-01-02 15:04 MST"))
		fmt.Fprintf(&b, "- Created during hackathon window: %v\n", result.CreatedDuringHackathon)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_Completed %s_\n", result.CompletedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

func writeItemSection(b *strings.Builder, heading string, items []domain.ValidationItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		if item.Priority != "" && heading != "Passed" {
			fmt.Fprintf(b, "- **%s** %s\n", item.Priority, item.Message)
		} else {
			fmt.Fprintf(b, "- %s\n", item.Message)
		}
	}
	b.WriteString("\n")
}

// renderHTML converts the markdown report to a standalone HTML document.
func renderHTML(result *domain.ValidationResult) []byte {
	source := renderMarkdown(result)

	parser := mdparser.NewWithExtensions(mdparser.CommonExtensions | mdparser.Tables)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Title: "hackcheck report",
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
	})
	return markdown.ToHTML([]byte(source), parser, renderer)
}
