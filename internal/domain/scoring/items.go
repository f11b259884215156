package scoring

import (
	"fmt"

	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/commits"
	"github.com/hackcheck/hackcheck/internal/domain/complexity"
	"github.com/hackcheck/hackcheck/internal/domain/secrets"
	"github.com/hackcheck/hackcheck/internal/domain/team"
	"github.com/hackcheck/hackcheck/internal/domain/techstack"
)

// Evidence bundles every analyzer output the item generator reads. Nil
// report pointers mean that analyzer did not run.
type Evidence struct {
	Commits        *commits.Report
	Complexity     *complexity.Report
	Technology     *techstack.Report
	TechCompliance *techstack.Compliance
	Team           *team.Report
	Secrets        *secrets.Report
	AIScore        float64
	AIFindingCount int
	RuleViolations int
	Submission     *domain.SubmissionPage
	GeneratedProb  float64
}

// BuildItems turns analyzer evidence into the result's failure, warning and
// pass items. Item order is fixed by evidence kind so identical runs produce
// identical reports.
func BuildItems(result *domain.ValidationResult, ev Evidence, cfg *domain.HackathonConfig) {
	if result.Repository != nil {
		if result.CreatedDuringHackathon {
			result.AddPass("Repository created during the hackathon window", nil)
		} else {
			result.AddFailure(domain.PriorityHigh, "Repository was created outside the hackathon window", map[string]any{
				"created_at": result.Repository.CreatedAt,
			})
		}
	}

	if ev.Commits != nil && ev.Commits.TotalCommits > 0 {
		ratio := float64(ev.Commits.HackathonCommits) / float64(ev.Commits.TotalCommits)
		switch {
		case ev.Commits.HackathonCommits == 0:
			result.AddFailure(domain.PriorityHigh, "No commits were made during the hackathon window", map[string]any{
				"total_commits": ev.Commits.TotalCommits,
			})
		case ratio < 0.5:
			result.AddWarning(domain.PriorityMedium, fmt.Sprintf("Only %.0f%% of commits fall inside the hackathon window", ratio*100), map[string]any{
				"hackathon_commits": ev.Commits.HackathonCommits,
				"total_commits":     ev.Commits.TotalCommits,
			})
		default:
			result.AddPass(fmt.Sprintf("%d of %d commits made during the hackathon window", ev.Commits.HackathonCommits, ev.Commits.TotalCommits), nil)
		}

		if ev.Commits.SuspiciousPatterns {
			result.AddWarning(domain.PriorityHigh, "Commit history shows suspicious patterns", map[string]any{
				"large_commits":        ev.Commits.PatternDetails.LargeCommits,
				"unusual_hour_commits": ev.Commits.PatternDetails.UnusualHourCommits,
			})
		}
	}

	if cfg != nil && !cfg.AllowAITools && ev.AIScore >= 0.5 {
		result.AddFailure(domain.PriorityCritical, fmt.Sprintf("AI detection score of %.2f exceeds threshold of 0.50", ev.AIScore), map[string]any{
			"indicator_count": ev.AIFindingCount,
		})
	} else if ev.AIFindingCount > 0 {
		result.AddWarning(domain.PriorityMedium, fmt.Sprintf("%d AI-generation indicators found in source", ev.AIFindingCount), map[string]any{
			"ai_score": ev.AIScore,
		})
	} else {
		result.AddPass("No AI-generation markers found in source", nil)
	}

	if ev.RuleViolations > 0 {
		result.AddWarning(domain.PriorityMedium, fmt.Sprintf("%d rule violations found", ev.RuleViolations), nil)
	} else {
		result.AddPass("No rule violations found", nil)
	}

	if ev.Secrets != nil {
		switch {
		case ev.Secrets.CriticalSecrets > 0:
			result.AddFailure(domain.PriorityCritical, fmt.Sprintf("%d critical secrets exposed in the repository", ev.Secrets.CriticalSecrets), map[string]any{
				"total_secrets": ev.Secrets.TotalSecrets,
			})
		case ev.Secrets.SecretsFound:
			result.AddWarning(domain.PriorityHigh, fmt.Sprintf("%d potential secrets or sensitive files found", ev.Secrets.TotalSecrets), nil)
		default:
			result.AddPass("No exposed secrets found", nil)
		}
	}

	if ev.TechCompliance != nil {
		if len(ev.TechCompliance.MissingRequired) > 0 {
			result.AddFailure(domain.PriorityHigh, "Required technologies are missing", map[string]any{
				"missing": ev.TechCompliance.MissingRequired,
			})
		}
		if len(ev.TechCompliance.ForbiddenUsed) > 0 {
			result.AddFailure(domain.PriorityHigh, "Disallowed technologies were used", map[string]any{
				"forbidden": ev.TechCompliance.ForbiddenUsed,
			})
		}
		if len(ev.TechCompliance.MissingRequired) == 0 && len(ev.TechCompliance.ForbiddenUsed) == 0 {
			result.AddPass("Technology requirements satisfied", nil)
		}
	}

	if ev.Team != nil {
		if cfg != nil && cfg.MaxTeamSize > 0 && ev.Team.TeamSize > cfg.MaxTeamSize {
			result.AddFailure(domain.PriorityMedium, fmt.Sprintf("Team of %d exceeds the maximum of %d", ev.Team.TeamSize, cfg.MaxTeamSize), nil)
		}
		if ev.Team.ContributionImbalance {
			result.AddWarning(domain.PriorityMedium, "Contributions are heavily concentrated on one team member", map[string]any{
				"balance": ev.Team.ContributionBalance,
			})
		}
		if ev.Team.GitHubTeamMismatch {
			result.AddWarning(domain.PriorityHigh, "Repository contributors do not match the declared team", map[string]any{
				"match_score": ev.Team.GitHubTeamMatch,
			})
		}
	}

	if ev.Submission != nil {
		if ev.Submission.DuplicateSubmission {
			result.AddFailure(domain.PriorityHigh, "Project appears submitted to multiple hackathons", nil)
		}
		if ev.GeneratedProb >= 0.5 {
			result.AddWarning(domain.PriorityHigh, fmt.Sprintf("Submission description reads as generated (probability %.2f)", ev.GeneratedProb), nil)
		}
		if !ev.Submission.HasDemoLink && !ev.Submission.HasVideoDemo {
			result.AddWarning(domain.PriorityLow, "Submission has no demo or video link", nil)
		}
	}

	if ev.Complexity != nil && len(ev.Complexity.FileStats) > 0 && ev.Complexity.AverageComplexity < 2 {
		result.AddWarning(domain.PriorityMedium, "Code complexity is suspiciously low for a hackathon project", map[string]any{
			"average_complexity": ev.Complexity.AverageComplexity,
		})
	}
}
