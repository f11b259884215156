// Package secrets scans a checked-out repository for leaked credentials
// and sensitive files. Matched values are always masked before they leave
// this package; raw secrets never appear in findings or reports.
package secrets

import (
	"crypto/md5"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// Finding is one masked secret match.
type Finding struct {
	File           string `json:"file"`
	Line           int    `json:"line"`
	Type           string `json:"type"`
	Risk           string `json:"risk"`
	MatchedPattern string `json:"matched_pattern"`
	MatchedValue   string `json:"matched_value"`
}

// SensitiveFile flags a file whose name or extension suggests credentials.
type SensitiveFile struct {
	File   string `json:"file"`
	Risk   string `json:"risk"`
	Reason string `json:"reason"`
}

// Report is the repository-wide secret scan result.
type Report struct {
	SecretsFound      bool            `json:"secrets_found"`
	TotalSecrets      int             `json:"total_secrets"`
	CriticalSecrets   int             `json:"critical_secrets"`
	HighRiskSecrets   int             `json:"high_risk_secrets"`
	MediumRiskSecrets int             `json:"medium_risk_secrets"`
	LowRiskSecrets    int             `json:"low_risk_secrets"`
	Findings          []Finding       `json:"findings"`
	SensitiveFiles    []SensitiveFile `json:"sensitive_files"`
	AnalysisCoverage  float64         `json:"analysis_coverage"`
	FilesScanned      int             `json:"files_scanned"`
	TotalFiles        int             `json:"total_files"`
}

// Scanner walks repositories for secrets. An optional cache keyed by file
// content hash skips rescanning identical files across runs.
type Scanner struct {
	cache domain.CacheStore
}

// NewScanner returns a scanner. cache may be nil.
func NewScanner(cache domain.CacheStore) *Scanner {
	return &Scanner{cache: cache}
}

type cachedScan struct {
	Findings []Finding `json:"findings"`
}

// AnalyzeRepo scans every text file under root. Dependency caches, build
// output and media are excluded; unreadable files are counted but skipped.
func (s *Scanner) AnalyzeRepo(root string) Report {
	report := Report{
		Findings:       []Finding{},
		SensitiveFiles: []SensitiveFile{},
	}

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := entry.Name()
		if entry.IsDir() {
			if excludedName(name) {
				return filepath.SkipDir
			}
			return nil
		}

		report.TotalFiles++
		if excludedName(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if isSensitiveName(name) {
			report.SensitiveFiles = append(report.SensitiveFiles, SensitiveFile{
				File:   rel,
				Risk:   RiskHigh,
				Reason: "Sensitive file by name or extension",
			})
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !isTextContent(name, data) {
			return nil
		}
		report.FilesScanned++

		if s.cache != nil {
			key := "secrets:" + contentHash(data)
			var cached cachedScan
			if s.cache.Get(key, 0, &cached) {
				report.Findings = append(report.Findings, retag(cached.Findings, rel)...)
				return nil
			}
			findings := ScanContent(string(data), rel)
			s.cache.Put(key, cachedScan{Findings: findings})
			report.Findings = append(report.Findings, findings...)
			return nil
		}

		report.Findings = append(report.Findings, ScanContent(string(data), rel)...)
		return nil
	})

	if len(report.Findings) > 0 || len(report.SensitiveFiles) > 0 {
		report.SecretsFound = true
		report.TotalSecrets = len(report.Findings) + len(report.SensitiveFiles)
		for _, f := range report.Findings {
			switch f.Risk {
			case RiskCritical:
				report.CriticalSecrets++
			case RiskHigh:
				report.HighRiskSecrets++
			case RiskMedium:
				report.MediumRiskSecrets++
			default:
				report.LowRiskSecrets++
			}
		}
		report.HighRiskSecrets += len(report.SensitiveFiles)
	}

	if report.TotalFiles > 0 {
		report.AnalysisCoverage = float64(report.FilesScanned) / float64(report.TotalFiles) * 100
	}

	return report
}

// ScanContent matches the secret patterns against content line by line.
// Every returned finding carries a masked value only.
func ScanContent(content, file string) []Finding {
	var findings []Finding

	for i, line := range strings.Split(content, "\n") {
		for _, p := range secretPatterns {
			for _, match := range p.re.FindAllString(line, -1) {
				if likelyFalsePositive(line, match) {
					continue
				}
				findings = append(findings, Finding{
					File:           file,
					Line:           i + 1,
					Type:           p.kind,
					Risk:           p.risk,
					MatchedPattern: p.raw,
					MatchedValue:   MaskSecret(match),
				})
			}
		}
	}
	return findings
}

// MaskSecret hides a matched value: short values collapse entirely, longer
// ones keep only the first and last four characters.
func MaskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****" + secret[len(secret)-4:]
}

var importLine = regexp.MustCompile(`^\s*(?:import|from|require|include)`)

func likelyFalsePositive(line, match string) bool {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(line)

	// Short key-ish matches in comments are almost always prose.
	if (strings.Contains(lower, "key") || strings.Contains(lower, "token") || strings.Contains(lower, "secret")) &&
		(strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")) &&
		len(match) < 16 {
		return true
	}

	if importLine.MatchString(line) {
		return true
	}

	if strings.Contains(match, "//") && (strings.Contains(match, "http://") || strings.Contains(match, "https://")) {
		return true
	}

	for _, placeholder := range placeholders {
		if strings.Contains(match, placeholder) {
			return true
		}
	}

	// A match surrounded by word breaks with no assignment nearby is more
	// likely an identifier than a value.
	standalone := regexp.MustCompile(`.*[^\w]` + regexp.QuoteMeta(match) + `[^\w].*`)
	if standalone.MatchString(line) && !strings.Contains(line, "=") {
		return true
	}

	return false
}

// RiskScore folds a scan into [0, 1], where 1.0 is clean. Findings are
// weighted by risk, normalized by files scanned, and any critical finding
// knocks a further 20% off.
func RiskScore(report Report) float64 {
	if !report.SecretsFound {
		return 1.0
	}

	weighted := float64(report.CriticalSecrets)*1.0 +
		float64(report.HighRiskSecrets)*0.7 +
		float64(report.MediumRiskSecrets)*0.4 +
		float64(report.LowRiskSecrets)*0.1
	if weighted == 0 {
		return 1.0
	}

	scanned := report.FilesScanned
	if scanned < 1 {
		scanned = 1
	}
	ratio := weighted / float64(scanned)

	penalty := ratio * 5
	if penalty > 1.0 {
		penalty = 1.0
	}
	score := 1.0 - penalty
	if score < 0 {
		score = 0
	}

	if report.CriticalSecrets > 0 {
		score *= 0.8
	}
	return score
}

func excludedName(name string) bool {
	for _, sub := range excludeSubstrings {
		if strings.Contains(name, sub) {
			return true
		}
	}
	for _, suffix := range excludeSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func isSensitiveName(name string) bool {
	lower := strings.ToLower(name)
	if sensitiveFiles[lower] {
		return true
	}
	for _, ext := range sensitiveExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// isTextContent accepts known text extensions, and extensionless files
// whose first kilobyte is mostly ASCII.
func isTextContent(name string, data []byte) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if textExtensions[ext] {
		return true
	}
	if ext != "" {
		return false
	}

	sample := data
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	if len(sample) == 0 {
		return true
	}
	nonASCII := 0
	for _, b := range sample {
		if b > 127 {
			nonASCII++
		}
	}
	return float64(nonASCII) < float64(len(sample))*0.3
}

func contentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func retag(findings []Finding, file string) []Finding {
	out := make([]Finding, len(findings))
	copy(out, findings)
	for i := range out {
		out[i].File = file
	}
	return out
}
