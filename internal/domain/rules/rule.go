package rules

import "regexp"

// Severity buckets for rules and findings.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Rule is a named pattern checked against submission content. The compiled
// pattern is cached at registration; rules with uncompilable patterns are
// never admitted into an engine.
type Rule struct {
	Name        string `json:"name"`
	Pattern     string `json:"pattern"`
	Description string `json:"description"`
	Severity    string `json:"severity"`

	re *regexp.Regexp
}

// Compile validates the rule's pattern in multiline mode and caches it.
func (r *Rule) Compile() error {
	re, err := regexp.Compile("(?m)" + r.Pattern)
	if err != nil {
		return err
	}
	r.re = re
	return nil
}

// Finding is one rule match inside a piece of content.
type Finding struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Line        int    `json:"line"`
	Match       string `json:"match"`
	Severity    string `json:"severity"`
	File        string `json:"file,omitempty"`
}

// lineOf returns the 1-indexed line of a byte offset in content.
func lineOf(content string, offset int) int {
	line := 1
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
		}
	}
	return line
}
