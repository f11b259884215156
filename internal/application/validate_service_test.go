package application_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackcheck/hackcheck/internal/application"
	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/aidetect"
	"github.com/hackcheck/hackcheck/internal/domain/plagiarism"
	"github.com/hackcheck/hackcheck/internal/domain/rules"
	"github.com/hackcheck/hackcheck/internal/domain/secrets"
)

type stubHost struct {
	repo         domain.RepoResult
	commits      domain.CommitsResult
	contributors domain.ContributorsResult
}

func (h *stubHost) GetRepository(context.Context, string) domain.RepoResult { return h.repo }
func (h *stubHost) GetCommits(context.Context, string, string, *time.Time, *time.Time) domain.CommitsResult {
	return h.commits
}
func (h *stubHost) GetContributors(context.Context, string, string) domain.ContributorsResult {
	return h.contributors
}

type stubCloner struct {
	path       string
	cloneErr   error
	log        []domain.Commit
	logErr     error
	logPanics  bool
	cleanedUp  bool
	cloneCalls int
}

func (c *stubCloner) Clone(context.Context, string) (string, func(), error) {
	c.cloneCalls++
	if c.cloneErr != nil {
		return "", nil, c.cloneErr
	}
	return c.path, func() { c.cleanedUp = true }, nil
}

func (c *stubCloner) CommitLog(string) ([]domain.Commit, error) {
	if c.logPanics {
		panic("walked off the packfile index")
	}
	return c.log, c.logErr
}

type stubPages struct {
	result domain.SubmissionResult
}

func (p *stubPages) Fetch(context.Context, string) domain.SubmissionResult { return p.result }

func hackathonConfig(t *testing.T) domain.HackathonConfig {
	t.Helper()
	cfg, err := domain.NewHackathonConfig("test-jam",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	return cfg
}

func healthyRepo() domain.RepoResult {
	return domain.RepoResult{
		Status: domain.FetchSuccess,
		Repo: &domain.RepoInfo{
			FullName:  "ana/demo",
			CloneURL:  "https://github.com/ana/demo.git",
			CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func cleanCheckout(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := "def add(a, b):\n    return a + b\n\n\ndef sub(a, b):\n    return a - b\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calc.py"), []byte(content), 0o644))
	return dir
}

func hackathonCommits() []domain.Commit {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	messages := []string{
		"add project scaffolding and readme",
		"implement calculator arithmetic core",
		"add input validation for operands",
		"fix rounding error in subtraction",
		"improve cli output formatting",
		"update readme with usage examples",
	}
	out := make([]domain.Commit, 0, len(messages))
	for i, msg := range messages {
		out = append(out, domain.Commit{
			Hash:         "abc0123456789def0123456789",
			Author:       "ana",
			Message:      msg,
			When:         base.Add(time.Duration(i*9) * time.Hour),
			LinesAdded:   40,
			FilesChanged: 2,
		})
	}
	return out
}

func newService(host domain.RepositoryHost, cloner domain.CloneProvider, pages domain.SubmissionClient) *application.ValidateService {
	return application.NewValidateService(
		host,
		cloner,
		pages,
		rules.NewEngine(),
		aidetect.New(),
		secrets.NewScanner(nil),
		plagiarism.NewChecker(nil, nil),
	)
}

func TestValidate_RepoFetchFailureIsTerminal(t *testing.T) {
	host := &stubHost{repo: domain.RepoResult{Status: domain.FetchNotFound}}
	cloner := &stubCloner{}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.PriorityCritical, result.Failures[0].Priority)
	assert.Contains(t, result.Failures[0].Message, "not found")
	assert.Zero(t, result.Scores.Overall)
	assert.Nil(t, result.Repository)
	assert.Zero(t, cloner.cloneCalls, "no clone after a failed metadata fetch")
	assert.False(t, result.CompletedAt.IsZero())
}

func TestValidate_CloneFailureIsTerminal(t *testing.T) {
	host := &stubHost{repo: healthyRepo()}
	cloner := &stubCloner{cloneErr: errors.New("remote hung up")}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Message, "clone")
	assert.Zero(t, result.Scores.Overall)
}

func TestValidate_HealthySubmission(t *testing.T) {
	host := &stubHost{
		repo: healthyRepo(),
		contributors: domain.ContributorsResult{
			Status:       domain.FetchSuccess,
			Contributors: []domain.Contributor{{Login: "ana", Contributions: 6}},
		},
	}
	cloner := &stubCloner{path: cleanCheckout(t), log: hackathonCommits()}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	assert.True(t, result.CreatedDuringHackathon)
	assert.Empty(t, result.DegradedAnalyzers)
	assert.Greater(t, result.Scores.Overall, 0.0)
	assert.NotEmpty(t, result.Scores.Category)
	assert.Equal(t, 100.0, result.Scores.SecretSecurity)
	assert.Equal(t, 100.0, result.Scores.CodeAuthenticity)
	assert.True(t, cloner.cleanedUp, "checkout is removed after the run")
	assert.NotNil(t, result.CommitAnalysis)
}

func TestValidate_CommitLogErrorFallsBackToHost(t *testing.T) {
	host := &stubHost{
		repo:    healthyRepo(),
		commits: domain.CommitsResult{Status: domain.FetchSuccess, Commits: hackathonCommits()},
		contributors: domain.ContributorsResult{
			Status:       domain.FetchSuccess,
			Contributors: []domain.Contributor{{Login: "ana", Contributions: 6}},
		},
	}
	cloner := &stubCloner{path: cleanCheckout(t), logErr: errors.New("object store corrupt")}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	assert.NotContains(t, result.DegradedAnalyzers, "commits", "API listing covers a broken local log")
	assert.NotNil(t, result.CommitAnalysis)
	assert.Greater(t, result.Scores.Timeline, 60.0)
}

func TestValidate_CommitSourcesBothFailingDegradesOnlyCommits(t *testing.T) {
	host := &stubHost{
		repo:    healthyRepo(),
		commits: domain.CommitsResult{Status: domain.FetchRateLimited, Error: "rate limited"},
		contributors: domain.ContributorsResult{
			Status:       domain.FetchSuccess,
			Contributors: []domain.Contributor{{Login: "ana", Contributions: 6}},
		},
	}
	cloner := &stubCloner{path: cleanCheckout(t), logErr: errors.New("object store corrupt")}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	assert.Contains(t, result.DegradedAnalyzers, "commits")
	assert.NotContains(t, result.DegradedAnalyzers, "secrets")
	assert.NotEmpty(t, result.Scores.Category, "run still completes and classifies")
	assert.False(t, result.CompletedAt.IsZero())
}

func TestValidate_ContributorFetchFailureDegradesTeam(t *testing.T) {
	host := &stubHost{
		repo:         healthyRepo(),
		contributors: domain.ContributorsResult{Status: domain.FetchRateLimited, Error: "rate limited"},
	}
	cloner := &stubCloner{path: cleanCheckout(t), log: hackathonCommits()}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	assert.Contains(t, result.DegradedAnalyzers, "team")
	assert.NotContains(t, result.DegradedAnalyzers, "commits")
	assert.Equal(t, 100.0, result.Scores.TeamCompliance, "unanalyzed teams are not penalized")
	assert.NotEmpty(t, result.Scores.Category)

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "rate limited") {
			found = true
		}
	}
	assert.True(t, found, "degradation warning carries the fetch error")
}

func TestValidate_AnalyzerPanicIsContained(t *testing.T) {
	host := &stubHost{
		repo: healthyRepo(),
		contributors: domain.ContributorsResult{
			Status:       domain.FetchSuccess,
			Contributors: []domain.Contributor{{Login: "ana", Contributions: 6}},
		},
	}
	cloner := &stubCloner{path: cleanCheckout(t), logPanics: true}
	svc := newService(host, cloner, nil)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "")

	assert.Contains(t, result.DegradedAnalyzers, "commits")
	assert.NotEmpty(t, result.Scores.Category, "run survives a panicking analyzer")
	assert.False(t, result.CompletedAt.IsZero())
}

func TestValidate_SubmissionPageFailureIsNonTerminal(t *testing.T) {
	host := &stubHost{
		repo: healthyRepo(),
		contributors: domain.ContributorsResult{
			Status:       domain.FetchSuccess,
			Contributors: []domain.Contributor{{Login: "ana", Contributions: 6}},
		},
	}
	cloner := &stubCloner{path: cleanCheckout(t), log: hackathonCommits()}
	pages := &stubPages{result: domain.SubmissionResult{Status: domain.FetchError, Error: "timeout"}}
	svc := newService(host, cloner, pages)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "https://devpost.com/software/demo")

	assert.Contains(t, result.DegradedAnalyzers, "submission_page")
	assert.Nil(t, result.Submission)
	assert.NotEmpty(t, result.Warnings)
	assert.NotEmpty(t, result.Scores.Category)
}

func TestValidate_SubmissionPageFeedsTeamAndPlagiarism(t *testing.T) {
	host := &stubHost{
		repo: healthyRepo(),
		contributors: domain.ContributorsResult{
			Status:       domain.FetchSuccess,
			Contributors: []domain.Contributor{{Login: "ana", Contributions: 6}},
		},
	}
	cloner := &stubCloner{path: cleanCheckout(t), log: hackathonCommits()}
	pages := &stubPages{result: domain.SubmissionResult{
		Status: domain.FetchSuccess,
		Page: &domain.SubmissionPage{
			URL:         "https://devpost.com/software/demo",
			Title:       "Demo",
			Description: "We built a small calculator over the weekend and had a lot of fun doing it.",
			TeamMembers: []string{"ana"},
		},
	}}
	svc := newService(host, cloner, pages)

	result := svc.Validate(context.Background(), hackathonConfig(t), "https://github.com/ana/demo", "https://devpost.com/software/demo")

	require.NotNil(t, result.Submission)
	assert.Equal(t, []string{"ana"}, result.Submission.TeamMembers)
	assert.NotNil(t, result.TeamAnalysis)
	assert.Equal(t, 100.0, result.Scores.TeamCompliance)
}

func TestValidate_AnalyzerTogglesSkipStages(t *testing.T) {
	host := &stubHost{repo: healthyRepo()}
	cloner := &stubCloner{path: cleanCheckout(t), log: hackathonCommits()}
	svc := newService(host, cloner, nil)

	cfg := hackathonConfig(t)
	cfg.Analyzers.SkipSecrets = true
	cfg.Analyzers.SkipTeam = true

	result := svc.Validate(context.Background(), cfg, "https://github.com/ana/demo", "")

	assert.Nil(t, result.SecretFindings)
	assert.Nil(t, result.TeamAnalysis)
	assert.Equal(t, 100.0, result.Scores.SecretSecurity, "unscanned submissions are not penalized")
	assert.Equal(t, 100.0, result.Scores.TeamCompliance)
}

func TestBatchRun_PreservesInputOrder(t *testing.T) {
	host := &stubHost{repo: domain.RepoResult{Status: domain.FetchNotFound}}
	svc := newService(host, &stubCloner{}, nil)
	batch := application.NewBatchService(svc, 3)

	items := []application.BatchItem{
		{GitHubURL: "https://github.com/a/one"},
		{GitHubURL: "https://github.com/b/two"},
		{GitHubURL: "https://github.com/c/three"},
		{GitHubURL: "https://github.com/d/four"},
		{GitHubURL: "https://github.com/e/five"},
	}

	results := batch.Run(context.Background(), hackathonConfig(t), items)

	require.Len(t, results, len(items))
	for i, r := range results {
		assert.Equal(t, items[i].GitHubURL, r.GitHubURL)
		assert.NotEmpty(t, r.Failures, "fetch failures degrade per submission, not the batch")
	}
}

func TestBatchRun_ConcurrencyFloor(t *testing.T) {
	host := &stubHost{repo: domain.RepoResult{Status: domain.FetchNotFound}}
	svc := newService(host, &stubCloner{}, nil)
	batch := application.NewBatchService(svc, 0)

	results := batch.Run(context.Background(), hackathonConfig(t), []application.BatchItem{
		{GitHubURL: "https://github.com/a/one"},
	})
	require.Len(t, results, 1)
}
