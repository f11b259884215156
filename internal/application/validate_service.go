// Package application wires the analyzers, scoring engine, and outbound
// ports into the validation workflow.
package application

import (
	"context"
	"fmt"

	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/aidetect"
	"github.com/hackcheck/hackcheck/internal/domain/commits"
	"github.com/hackcheck/hackcheck/internal/domain/complexity"
	"github.com/hackcheck/hackcheck/internal/domain/plagiarism"
	"github.com/hackcheck/hackcheck/internal/domain/rules"
	"github.com/hackcheck/hackcheck/internal/domain/scoring"
	"github.com/hackcheck/hackcheck/internal/domain/secrets"
	"github.com/hackcheck/hackcheck/internal/domain/team"
	"github.com/hackcheck/hackcheck/internal/domain/techstack"
)

// ValidateService runs the full validation pipeline for one submission:
// fetch repository metadata, clone, analyze, fetch the submission page,
// score, classify.
type ValidateService struct {
	host     domain.RepositoryHost
	cloner   domain.CloneProvider
	devpost  domain.SubmissionClient
	engine   *rules.Engine
	detector *aidetect.Detector
	scanner  *secrets.Scanner
	checker  *plagiarism.Checker
}

// NewValidateService wires the pipeline. devpost may be nil when submission
// pages are not being validated.
func NewValidateService(
	host domain.RepositoryHost,
	cloner domain.CloneProvider,
	devpost domain.SubmissionClient,
	engine *rules.Engine,
	detector *aidetect.Detector,
	scanner *secrets.Scanner,
	checker *plagiarism.Checker,
) *ValidateService {
	return &ValidateService{
		host:     host,
		cloner:   cloner,
		devpost:  devpost,
		engine:   engine,
		detector: detector,
		scanner:  scanner,
		checker:  checker,
	}
}

// Validate runs every enabled analyzer against the submission and returns a
// sealed result. Fetch failures are terminal: the result carries a CRITICAL
// failure and zero scores. Analyzer failures only degrade their own
// category.
func (s *ValidateService) Validate(ctx context.Context, cfg domain.HackathonConfig, githubURL, devpostURL string) *domain.ValidationResult {
	result := domain.NewResult(githubURL, devpostURL)

	repoResult := s.host.GetRepository(ctx, githubURL)
	if repoResult.Status != domain.FetchSuccess {
		result.AddFailure(domain.PriorityCritical, fetchFailureMessage(repoResult.Status, repoResult.Error), map[string]any{
			"status": string(repoResult.Status),
		})
		result.Complete()
		return result
	}
	result.Repository = repoResult.Repo
	result.CreatedDuringHackathon = cfg.InWindow(repoResult.Repo.CreatedAt)

	path, cleanup, err := s.cloner.Clone(ctx, repoResult.Repo.CloneURL)
	if err != nil {
		result.AddFailure(domain.PriorityCritical, fmt.Sprintf("Failed to clone repository: %v", err), nil)
		result.Complete()
		return result
	}
	defer cleanup()

	ev := scoring.Evidence{}

	if !cfg.Analyzers.SkipAIDetection {
		s.runAnalyzer(result, "ai_detection", func() error {
			findings := s.detector.AnalyzeRepo(path)
			ev.AIScore = aidetect.Score(findings)
			ev.AIFindingCount = len(findings)
			result.AIIndicators = domain.AttachRaw(findings)
			return nil
		})
	}

	var complexityReport complexity.Report
	if !cfg.Analyzers.SkipComplexity {
		s.runAnalyzer(result, "complexity", func() error {
			complexityReport = complexity.AnalyzeRepo(path)
			ev.Complexity = &complexityReport
			result.CodeComplexity = domain.AttachRaw(complexityReport)
			return nil
		})
	}

	var techCompliance techstack.Compliance
	if !cfg.Analyzers.SkipTechnology {
		s.runAnalyzer(result, "technology", func() error {
			techReport := techstack.AnalyzeRepo(path)
			techCompliance = techstack.CheckRequirements(
				techReport.DetectedTechnologies,
				cfg.RequiredTechnologies,
				cfg.DisallowedTechnologies,
			)
			techReport.MissingRequired = techCompliance.MissingRequired
			techReport.ForbiddenUsed = techCompliance.ForbiddenUsed
			ev.Technology = &techReport
			ev.TechCompliance = &techCompliance
			result.TechnologyAnalysis = domain.AttachRaw(techReport)
			return nil
		})
	}

	if !cfg.Analyzers.SkipRules {
		s.runAnalyzer(result, "rules", func() error {
			violations := s.engine.CheckDir(path)
			ev.RuleViolations = len(violations)
			result.RuleViolations = domain.AttachRaw(violations)
			return nil
		})
	}

	var commitReport commits.Report
	if !cfg.Analyzers.SkipCommits {
		s.runAnalyzer(result, "commits", func() error {
			log, logErr := s.cloner.CommitLog(path)
			if logErr != nil {
				// The API listing has no diff stats but keeps the
				// category alive when the local log is unreadable.
				var hostErr error
				log, hostErr = s.commitsFromHost(ctx, githubURL, logErr)
				if hostErr != nil {
					return hostErr
				}
			}
			commitReport = commits.Analyze(log, cfg.StartDate, cfg.EndDate)
			ev.Commits = &commitReport
			result.CommitAnalysis = domain.AttachRaw(commitReport)
			return nil
		})
	}

	var secretReport secrets.Report
	secretsScanned := false
	if !cfg.Analyzers.SkipSecrets {
		s.runAnalyzer(result, "secrets", func() error {
			secretReport = s.scanner.AnalyzeRepo(path)
			secretsScanned = true
			ev.Secrets = &secretReport
			result.SecretFindings = domain.AttachRaw(secretReport)
			return nil
		})
	}

	if s.devpost != nil && devpostURL != "" {
		pageResult := s.devpost.Fetch(ctx, devpostURL)
		if pageResult.Status == domain.FetchSuccess {
			result.Submission = pageResult.Page
			ev.Submission = pageResult.Page
			if !cfg.Analyzers.SkipPlagiarism {
				ev.GeneratedProb = plagiarism.EstimateGeneratedProb(pageResult.Page.Description)
			}
		} else {
			result.AddWarning(domain.PriorityMedium, fmt.Sprintf("Could not fetch submission page: %s", pageResult.Error), map[string]any{
				"status": string(pageResult.Status),
			})
			result.DegradedAnalyzers = append(result.DegradedAnalyzers, "submission_page")
		}
	}

	teamAnalyzed := false
	var teamReport team.Report
	if !cfg.Analyzers.SkipTeam {
		s.runAnalyzer(result, "team", func() error {
			owner, repo, parseErr := domain.ParseRepoURL(githubURL)
			if parseErr != nil {
				return parseErr
			}
			contribResult := s.host.GetContributors(ctx, owner, repo)
			if contribResult.Status != domain.FetchSuccess {
				return fmt.Errorf("fetch contributors: %s", contribResult.Error)
			}

			var members []string
			if result.Submission != nil {
				members = result.Submission.TeamMembers
			}
			teamReport = team.Analyze(members, contribResult.Contributors, commitReport.ContributorStats)
			ev.Team = &teamReport
			teamAnalyzed = true
			result.TeamAnalysis = domain.AttachRaw(teamReport)
			return nil
		})
	}

	if result.Submission != nil && !cfg.Analyzers.SkipPlagiarism && s.checker != nil {
		s.runAnalyzer(result, "plagiarism", func() error {
			repoReport := s.checker.CheckRepo(path)
			result.SubmissionSimilarity = domain.AttachRaw(repoReport)
			return nil
		})
	}

	result.Scores.Timeline = scoring.ScoreTimeline(result.CreatedDuringHackathon, commitReport)
	result.Scores.CodeAuthenticity = scoring.ScoreAuthenticity(ev.AIScore)
	result.Scores.RuleCompliance = scoring.ScoreRuleCompliance(ev.RuleViolations)
	duplicate := result.Submission != nil && result.Submission.DuplicateSubmission
	result.Scores.Plagiarism = scoring.ScorePlagiarism(ev.GeneratedProb, duplicate)
	result.Scores.TeamCompliance = scoring.ScoreTeamCompliance(teamReport, teamAnalyzed)
	result.Scores.Complexity = scoring.ScoreComplexity(complexityReport.AverageComplexity)
	result.Scores.Technology = scoring.ScoreTechnology(
		len(cfg.RequiredTechnologies),
		len(techCompliance.MissingRequired),
		len(techCompliance.ForbiddenUsed),
		diversityOf(ev.Technology),
	)
	result.Scores.CommitQuality = scoring.ScoreCommitQuality(commitReport)
	result.Scores.SecretSecurity = scoring.ScoreSecretSecurity(secretReport, secretsScanned)

	result.Scores.ComputeOverall(cfg.ScoreWeights)
	result.Scores.Classify(cfg.Thresholds)

	scoring.BuildItems(result, ev, &cfg)

	result.Complete()
	return result
}

// commitsFromHost fetches the commit log through the hosting API after the
// clone-based log failed. A second failure degrades the commits analyzer.
func (s *ValidateService) commitsFromHost(ctx context.Context, githubURL string, logErr error) ([]domain.Commit, error) {
	owner, repo, parseErr := domain.ParseRepoURL(githubURL)
	if parseErr != nil {
		return nil, fmt.Errorf("read commit log: %w", logErr)
	}
	hostResult := s.host.GetCommits(ctx, owner, repo, nil, nil)
	if hostResult.Status != domain.FetchSuccess {
		return nil, fmt.Errorf("read commit log: %v; API fallback: %s", logErr, hostResult.Error)
	}
	return hostResult.Commits, nil
}

// runAnalyzer executes one analyzer stage. A returned error degrades that
// analyzer; the recover is a safety net for unexpected panics only, so a
// misbehaving analyzer cannot abort the run.
func (s *ValidateService) runAnalyzer(result *domain.ValidationResult, name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.degrade(result, name, fmt.Sprintf("%v", r))
		}
	}()
	if err := fn(); err != nil {
		s.degrade(result, name, err.Error())
	}
}

func (s *ValidateService) degrade(result *domain.ValidationResult, name, reason string) {
	result.AddWarning(domain.PriorityMedium, fmt.Sprintf("Analyzer %s did not complete: %s", name, reason), nil)
	result.DegradedAnalyzers = append(result.DegradedAnalyzers, name)
}

func diversityOf(report *techstack.Report) float64 {
	if report == nil {
		return 0
	}
	return report.TechnologyDiversity
}

func fetchFailureMessage(status domain.FetchStatus, detail string) string {
	switch status {
	case domain.FetchNotFound:
		return "Repository not found or not accessible"
	case domain.FetchRateLimited:
		return "Repository host rate limit exceeded"
	case domain.FetchAuthFailed:
		return "Repository host authentication failed"
	default:
		if detail != "" {
			return fmt.Sprintf("Failed to fetch repository: %s", detail)
		}
		return "Failed to fetch repository"
	}
}
