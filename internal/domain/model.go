package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ValidationCategory is the final verdict for a submission.
type ValidationCategory string

const (
	CategoryPassed      ValidationCategory = "PASSED"
	CategoryNeedsReview ValidationCategory = "NEEDS_REVIEW"
	CategoryFailed      ValidationCategory = "FAILED"
)

// Priority ranks a ValidationItem.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
	PriorityInfo     Priority = "INFO"
)

// ItemCategory classifies an observation as a pass, warning, or failure.
type ItemCategory string

const (
	ItemPass    ItemCategory = "pass"
	ItemWarning ItemCategory = "warning"
	ItemFailure ItemCategory = "failure"
)

// ValidationItem is a single immutable observation made during a run.
type ValidationItem struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Priority  Priority       `json:"priority"`
	Category  ItemCategory   `json:"category"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewItem creates a ValidationItem with a fresh id and timestamp.
func NewItem(category ItemCategory, priority Priority, message string, details map[string]any) ValidationItem {
	return ValidationItem{
		ID:        uuid.NewString(),
		Message:   message,
		Priority:  priority,
		Category:  category,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// ValidationScore holds the eight weighted sub-scores plus the unweighted
// secret-security score, all in [0,100].
type ValidationScore struct {
	Timeline         float64 `json:"timeline_score"`
	CodeAuthenticity float64 `json:"code_authenticity_score"`
	RuleCompliance   float64 `json:"rule_compliance_score"`
	Plagiarism       float64 `json:"plagiarism_score"`
	TeamCompliance   float64 `json:"team_compliance_score"`
	Complexity       float64 `json:"complexity_score"`
	Technology       float64 `json:"technology_score"`
	CommitQuality    float64 `json:"commit_quality_score"`
	SecretSecurity   float64 `json:"secret_security_score"`

	Overall  float64            `json:"overall_score"`
	Category ValidationCategory `json:"category"`
}

// ScoreCategories enumerates the eight weighted scoring categories.
var ScoreCategories = []string{
	"timeline", "code_authenticity", "rule_compliance", "plagiarism",
	"team_compliance", "complexity", "technology", "commit_quality",
}

func (s *ValidationScore) byName(name string) float64 {
	switch name {
	case "timeline":
		return s.Timeline
	case "code_authenticity":
		return s.CodeAuthenticity
	case "rule_compliance":
		return s.RuleCompliance
	case "plagiarism":
		return s.Plagiarism
	case "team_compliance":
		return s.TeamCompliance
	case "complexity":
		return s.Complexity
	case "technology":
		return s.Technology
	case "commit_quality":
		return s.CommitQuality
	default:
		return 0
	}
}

// ComputeOverall folds the sub-scores into the weighted overall score.
// Weights are assumed to sum to 1.0; HackathonConfig enforces that.
func (s *ValidationScore) ComputeOverall(weights map[string]float64) float64 {
	var overall float64
	for _, name := range ScoreCategories {
		overall += weights[name] * s.byName(name)
	}
	s.Overall = overall
	return overall
}

// Classify derives the verdict from the overall score and thresholds.
func (s *ValidationScore) Classify(t Thresholds) ValidationCategory {
	switch {
	case s.Overall >= t.Pass:
		s.Category = CategoryPassed
	case s.Overall >= t.Review:
		s.Category = CategoryNeedsReview
	default:
		s.Category = CategoryFailed
	}
	return s.Category
}

// ValidationResult is the aggregate root for one submission run. It is
// populated stage by stage and sealed with Complete.
type ValidationResult struct {
	ID         string `json:"id"`
	GitHubURL  string `json:"github_url"`
	DevPostURL string `json:"devpost_url,omitempty"`

	Scores   ValidationScore  `json:"scores"`
	Failures []ValidationItem `json:"failures"`
	Warnings []ValidationItem `json:"warnings"`
	Passes   []ValidationItem `json:"passes"`

	Repository              *RepoInfo          `json:"repository,omitempty"`
	CreatedDuringHackathon  bool               `json:"created_during_hackathon"`
	CommitAnalysis          json.RawMessage    `json:"commit_analysis,omitempty"`
	CodeComplexity          json.RawMessage    `json:"code_complexity,omitempty"`
	TechnologyAnalysis      json.RawMessage    `json:"technology_analysis,omitempty"`
	TeamAnalysis            json.RawMessage    `json:"team_analysis,omitempty"`
	SecretFindings          json.RawMessage    `json:"secret_findings,omitempty"`
	AIIndicators            json.RawMessage    `json:"ai_indicators,omitempty"`
	RuleViolations          json.RawMessage    `json:"rule_violations,omitempty"`
	Submission              *SubmissionPage    `json:"submission,omitempty"`
	SubmissionSimilarity    json.RawMessage    `json:"submission_similarity,omitempty"`
	DegradedAnalyzers       []string           `json:"degraded_analyzers,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`

	sealed bool
}

// NewResult creates an empty result for the given submission URLs.
func NewResult(githubURL, devpostURL string) *ValidationResult {
	return &ValidationResult{
		ID:         uuid.NewString(),
		GitHubURL:  githubURL,
		DevPostURL: devpostURL,
		StartedAt:  time.Now().UTC(),
	}
}

// AddFailure appends a failure item. No-op after Complete.
func (r *ValidationResult) AddFailure(priority Priority, message string, details map[string]any) {
	if r.sealed {
		return
	}
	r.Failures = append(r.Failures, NewItem(ItemFailure, priority, message, details))
}

// AddWarning appends a warning item. No-op after Complete.
func (r *ValidationResult) AddWarning(priority Priority, message string, details map[string]any) {
	if r.sealed {
		return
	}
	r.Warnings = append(r.Warnings, NewItem(ItemWarning, priority, message, details))
}

// AddPass appends a pass item. No-op after Complete.
func (r *ValidationResult) AddPass(message string, details map[string]any) {
	if r.sealed {
		return
	}
	r.Passes = append(r.Passes, NewItem(ItemPass, PriorityInfo, message, details))
}

// Complete seals the result; further item additions are ignored.
func (r *ValidationResult) Complete() {
	if r.sealed {
		return
	}
	r.CompletedAt = time.Now().UTC()
	r.sealed = true
}

// Sealed reports whether Complete has been called.
func (r *ValidationResult) Sealed() bool { return r.sealed }

// AttachRaw stores a raw analyzer result under its slot, serialized to JSON.
// Marshal failures are swallowed; the slot stays empty.
func AttachRaw(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

// MarshalJSON keeps serialization default but guarantees non-nil item lists,
// so round-tripped results compare equal.
func (r *ValidationResult) MarshalJSON() ([]byte, error) {
	type alias ValidationResult
	a := alias(*r)
	if a.Failures == nil {
		a.Failures = []ValidationItem{}
	}
	if a.Warnings == nil {
		a.Warnings = []ValidationItem{}
	}
	if a.Passes == nil {
		a.Passes = []ValidationItem{}
	}
	return json.Marshal(a)
}
