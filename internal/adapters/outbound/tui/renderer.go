// Package tui renders sealed validation results for terminals and
// documents.
package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	verdictColors = map[domain.ValidationCategory]lipgloss.Color{
		domain.CategoryPassed:      success,
		domain.CategoryNeedsReview: warning,
		domain.CategoryFailed:      danger,
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failTagStyle  = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Renderer implements domain.ReportRenderer for terminal, markdown, html
// and json output.
type Renderer struct{}

// New builds a Renderer.
func New() *Renderer { return &Renderer{} }

// Render produces the report in the requested format. Unknown formats are
// an error, not a silent default.
func (r *Renderer) Render(result *domain.ValidationResult, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "terminal", "tui":
		return []byte(RenderResult(result)), nil
	case "markdown", "md":
		return []byte(renderMarkdown(result)), nil
	case "html":
		return renderHTML(result), nil
	case "json":
		return json.MarshalIndent(result, "", "  ")
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// RenderResult renders the full terminal report.
func RenderResult(result *domain.ValidationResult) string {
	var b strings.Builder

	// ── Header ──
	verdict := result.Scores.Category
	title := headerStyle.Render("hackcheck")
	subtitle := dimStyle.Render("Submission Validation")
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(verdict)).
		Render(fmt.Sprintf("%.1f / 100", result.Scores.Overall))
	verdictStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(verdict)).
		Render(string(verdict))

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + verdictStyled))
	b.WriteString("\n\n")

	b.WriteString("  " + dimStyle.Render(result.GitHubURL) + "\n")
	if result.DevPostURL != "" {
		b.WriteString("  " + dimStyle.Render(result.DevPostURL) + "\n")
	}
	b.WriteString("\n")

	// ── Category scores ──
	for _, row := range scoreRows(&result.Scores) {
		renderScoreRow(&b, row)
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Findings ──
	renderItems(&b, result)

	if len(result.DegradedAnalyzers) > 0 {
		b.WriteString("\n  " + warnTagStyle.Render("degraded") + " " +
			dimStyle.Render(strings.Join(result.DegradedAnalyzers, ", ")) + "\n")
	}

	b.WriteString("\n")
	return b.String()
}

type scoreRow struct {
	Name     string
	Score    float64
	Weighted bool
}

func scoreRows(s *domain.ValidationScore) []scoreRow {
	return []scoreRow{
		{"Timeline", s.Timeline, true},
		{"Code Authenticity", s.CodeAuthenticity, true},
		{"Rule Compliance", s.RuleCompliance, true},
		{"Plagiarism", s.Plagiarism, true},
		{"Team Compliance", s.TeamCompliance, true},
		{"Complexity", s.Complexity, true},
		{"Technology", s.Technology, true},
		{"Commit Quality", s.CommitQuality, true},
		{"Secret Security", s.SecretSecurity, false},
	}
}

func renderScoreRow(b *strings.Builder, row scoreRow) {
	color := scoreColor(row.Score)
	scoreText := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%5.1f", row.Score))
	bar := coloredBar(row.Score, 20)
	tag := ""
	if !row.Weighted {
		tag = "  " + faintStyle.Render("unweighted")
	}

	name := catNameStyle.Render(padRight(row.Name, 20))
	fmt.Fprintf(b, "  %s %s  %s%s\n", name, bar, scoreText, tag)
}

func renderItems(b *strings.Builder, result *domain.ValidationResult) {
	failCount := len(result.Failures)
	warnCount := len(result.Warnings)

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Findings"))
	b.WriteString("  ")
	if failCount > 0 {
		b.WriteString(failTagStyle.Render(fmt.Sprintf("%d failures", failCount)))
		b.WriteString("  ")
	}
	if warnCount > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnCount)))
		b.WriteString("  ")
	}
	b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d passed", len(result.Passes))))
	b.WriteString("\n\n")

	for _, item := range sortByPriority(result.Failures) {
		fmt.Fprintf(b, "    %s %s\n", failTagStyle.Render(padRight(string(item.Priority), 8)), dimStyle.Render(item.Message))
	}
	for _, item := range sortByPriority(result.Warnings) {
		fmt.Fprintf(b, "    %s %s\n", warnTagStyle.Render(padRight(string(item.Priority), 8)), dimStyle.Render(item.Message))
	}
	for _, item := range result.Passes {
		fmt.Fprintf(b, "    %s %s\n", passStyle.Render(padRight("ok", 8)), dimStyle.Render(item.Message))
	}

	if failCount == 0 && warnCount == 0 && len(result.Passes) == 0 {
		b.WriteString("  " + passStyle.Render("No findings.") + "\n")
	}
}

var priorityOrder = map[domain.Priority]int{
	domain.PriorityCritical: 0,
	domain.PriorityHigh:     1,
	domain.PriorityMedium:   2,
	domain.PriorityLow:      3,
}

func sortByPriority(items []domain.ValidationItem) []domain.ValidationItem {
	out := make([]domain.ValidationItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityOrder[out[i].Priority] < priorityOrder[out[j].Priority]
	})
	return out
}

func coloredBar(score float64, width int) string {
	filled := int(score) * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(score float64) lipgloss.Color {
	switch {
	case score >= 80:
		return success
	case score >= 60:
		return lipgloss.Color("#A3E635") // lime
	case score >= 40:
		return warning
	default:
		return danger
	}
}

func verdictColor(v domain.ValidationCategory) lipgloss.Color {
	if c, ok := verdictColors[v]; ok {
		return c
	}
	return info
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
