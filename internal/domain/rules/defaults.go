package rules

// defaultRules is the built-in rule set applied to every submission. Custom
// and plugin rules are layered on top, never replacing these.
//
// Values wrapped in {{ }} are treated as template placeholders, not
// credentials, so hardcoded_credentials requires the first value character
// to be something other than '{'.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:        "hardcoded_credentials",
			Pattern:     `(?:password|passwd|pwd|secret|token|api[_-]?key)\s*=\s*["'][^"'{][^"']{4,}["']`,
			Description: "Hardcoded credentials detected",
			Severity:    SeverityHigh,
		},
		{
			Name:        "debug_statement",
			Pattern:     `(?:console\.log|print|println|System\.out\.print|debugger|var_dump|dd\()`,
			Description: "Debug statement detected",
			Severity:    SeverityLow,
		},
		{
			Name:        "todo_comment",
			Pattern:     `(?://|#|<!--|/\*)\s*TODO:`,
			Description: "TODO comment detected",
			Severity:    SeverityLow,
		},
		{
			Name:        "fixme_comment",
			Pattern:     `(?://|#|<!--|/\*)\s*FIXME:`,
			Description: "FIXME comment detected",
			Severity:    SeverityMedium,
		},
		{
			Name:        "commented_code",
			Pattern:     `(?://|#|<!--|/\*)\s*(?:function|def|class|if|for|while)\b`,
			Description: "Commented out code detected",
			Severity:    SeverityLow,
		},
		{
			Name:        "exception_swallowing",
			Pattern:     `(?:try\s*\{[^}]*\}\s*catch\s*\([^)]*\)\s*\{[^}]*\}|try:[^\n]*\n\s*except(?:\s+\w+)?:[^\n]*\n\s*pass\b)`,
			Description: "Exception swallowing detected",
			Severity:    SeverityMedium,
		},
		{
			Name:        "magic_number",
			Pattern:     `\b(?:[0-9]{4,}|0x[0-9a-fA-F]{3,})\b`,
			Description: "Magic number detected",
			Severity:    SeverityLow,
		},
		{
			Name:        "nested_loop",
			Pattern:     `(?:for\s*\([^)]*\)\s*\{[^{]*for\s*\([^)]*\)|for\s+\w+\s+in\s+[^:]+:\s*\n\s+for\s+\w+\s+in\s+)`,
			Description: "Nested loop detected",
			Severity:    SeverityLow,
		},
		{
			Name:        "sql_injection",
			Pattern:     `(?:"SELECT\s+[^"]*"\s*\+\s*|'SELECT\s+[^']*'\s*\+\s*|"INSERT\s+INTO\s+[^"]*"\s*\+\s*|'INSERT\s+INTO\s+[^']*'\s*\+\s*)`,
			Description: "Potential SQL injection risk",
			Severity:    SeverityHigh,
		},
		{
			Name:        "shell_injection",
			Pattern:     `(?:os\.system\([^)\n]*\+|subprocess\.call\([^)\n]*\+|exec\([^)\n]*\+|eval\([^)\n]*\+)`,
			Description: "Potential shell injection risk",
			Severity:    SeverityHigh,
		},
		{
			Name:        "unhandled_error",
			Pattern:     `throw\s+new\s+Error\(`,
			Description: "Unhandled error detected",
			Severity:    SeverityMedium,
		},
		{
			Name:        "copilot_marker",
			Pattern:     `(?:Copilot|GitHub Copilot|@ai/suggestion|@copilot/suggestion)`,
			Description: "GitHub Copilot marker detected",
			Severity:    SeverityHigh,
		},
		{
			Name:        "chatgpt_marker",
			Pattern:     `(?:ChatGPT|GPT-3|GPT-4|OpenAI|gpt\.|GPT\.|Model:\s*GPT)`,
			Description: "ChatGPT marker detected",
			Severity:    SeverityHigh,
		},
		{
			Name:        "unnecessary_comment",
			Pattern:     `(?://|#)\s*(?:This function|This method|This class)\s+(?:is|does|implements|handles)`,
			Description: "Unnecessary explanatory comment",
			Severity:    SeverityLow,
		},
		{
			Name:        "default_export",
			Pattern:     `export\s+default\s+(?:function|class|const|let|var)`,
			Description: "Default export detected (could indicate boilerplate)",
			Severity:    SeverityLow,
		},
	}
}
