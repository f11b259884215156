package rules

import (
	"os"
)

// Engine holds the default rule set plus custom and plugin-registered rules
// and matches them against content. Rule order is stable: defaults first,
// then custom rules in registration order, then plugin rules.
type Engine struct {
	defaults []Rule
	custom   []Rule
	plugins  []loadedPlugin
}

type loadedPlugin struct {
	plugin Plugin
	rules  []Rule
}

// NewEngine returns an engine pre-loaded with the default rules.
func NewEngine() *Engine {
	e := &Engine{}
	for _, r := range defaultRules() {
		rule := r
		if err := rule.Compile(); err != nil {
			continue
		}
		e.defaults = append(e.defaults, rule)
	}
	return e
}

// AddRule registers a custom rule. It reports false when the name is empty,
// the name collides with an existing rule, or the pattern does not compile.
func (e *Engine) AddRule(name, pattern, description, severity string) bool {
	if name == "" || pattern == "" {
		return false
	}
	if e.GetRule(name) != nil {
		return false
	}
	if severity == "" {
		severity = SeverityMedium
	}
	rule := Rule{Name: name, Pattern: pattern, Description: description, Severity: severity}
	if err := rule.Compile(); err != nil {
		return false
	}
	e.custom = append(e.custom, rule)
	return true
}

// RemoveRule removes a custom rule by name. Default and plugin rules cannot
// be removed; it reports false when no custom rule matched.
func (e *Engine) RemoveRule(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range e.custom {
		if r.Name == name {
			e.custom = append(e.custom[:i], e.custom[i+1:]...)
			return true
		}
	}
	return false
}

// GetRule returns the rule with the given name, or nil.
func (e *Engine) GetRule(name string) *Rule {
	for _, set := range [][]Rule{e.defaults, e.custom} {
		for i := range set {
			if set[i].Name == name {
				return &set[i]
			}
		}
	}
	for _, lp := range e.plugins {
		for i := range lp.rules {
			if lp.rules[i].Name == name {
				return &lp.rules[i]
			}
		}
	}
	return nil
}

// AllRules returns every active rule in match order.
func (e *Engine) AllRules() []Rule {
	out := make([]Rule, 0, len(e.defaults)+len(e.custom))
	out = append(out, e.defaults...)
	out = append(out, e.custom...)
	for _, lp := range e.plugins {
		out = append(out, lp.rules...)
	}
	return out
}

// CustomRules returns the custom rules in registration order.
func (e *Engine) CustomRules() []Rule {
	out := make([]Rule, len(e.custom))
	copy(out, e.custom)
	return out
}

// CheckContent matches every active rule against content and returns one
// finding per match. Plugin check hooks run after pattern rules, in plugin
// registration order. Empty content yields an empty, non-nil slice.
func (e *Engine) CheckContent(content string) []Finding {
	findings := []Finding{}
	if content == "" {
		return findings
	}

	for _, rule := range e.AllRules() {
		if rule.re == nil {
			continue
		}
		for _, loc := range rule.re.FindAllStringIndex(content, -1) {
			findings = append(findings, Finding{
				Rule:        rule.Name,
				Description: rule.Description,
				Line:        lineOf(content, loc[0]),
				Match:       content[loc[0]:loc[1]],
				Severity:    rule.Severity,
			})
		}
	}

	for _, lp := range e.plugins {
		findings = append(findings, lp.plugin.CheckContent(content)...)
	}

	return findings
}

// CheckFile runs CheckContent over a file's contents and stamps each finding
// with the path. Unreadable files yield no findings.
func (e *Engine) CheckFile(path string) []Finding {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Finding{}
	}
	findings := e.CheckContent(string(data))
	for i := range findings {
		findings[i].File = path
	}
	return findings
}
