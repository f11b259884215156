package domain

import (
	"context"
	"time"
)

// FetchStatus tags every collaborator response; transport errors never cross
// the port boundary as raw errors.
type FetchStatus string

const (
	FetchSuccess     FetchStatus = "success"
	FetchNotFound    FetchStatus = "not_found"
	FetchRateLimited FetchStatus = "rate_limited"
	FetchAuthFailed  FetchStatus = "auth_failed"
	FetchError       FetchStatus = "error"
)

// RepoInfo is the repository metadata the scoring engine consumes.
type RepoInfo struct {
	FullName  string    `json:"full_name"`
	CloneURL  string    `json:"clone_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Forks     int       `json:"forks"`
	Stars     int       `json:"stars"`
}

// RepoResult is a tagged repository lookup outcome.
type RepoResult struct {
	Status FetchStatus `json:"status"`
	Repo   *RepoInfo   `json:"repo,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Contributor is one repository contributor with their contribution count.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// ContributorsResult is a tagged contributor listing outcome.
type ContributorsResult struct {
	Status       FetchStatus   `json:"status"`
	Contributors []Contributor `json:"contributors,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// CommitsResult is a tagged commit listing outcome.
type CommitsResult struct {
	Status  FetchStatus `json:"status"`
	Commits []Commit    `json:"commits,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RepositoryHost fetches repository metadata from the source-hosting API.
type RepositoryHost interface {
	GetRepository(ctx context.Context, url string) RepoResult
	GetCommits(ctx context.Context, owner, repo string, since, until *time.Time) CommitsResult
	GetContributors(ctx context.Context, owner, repo string) ContributorsResult
}

// Commit is one entry of a repository commit log.
type Commit struct {
	Hash         string    `json:"hash"`
	Author       string    `json:"author"`
	AuthorEmail  string    `json:"author_email,omitempty"`
	Message      string    `json:"message"`
	When         time.Time `json:"when"`
	LinesAdded   int       `json:"lines_added"`
	LinesDeleted int       `json:"lines_deleted"`
	FilesChanged int       `json:"files_changed"`
}

// CloneProvider produces a scoped local checkout of a repository. The cleanup
// func must be called on every exit path.
type CloneProvider interface {
	Clone(ctx context.Context, cloneURL string) (path string, cleanup func(), err error)
	CommitLog(path string) ([]Commit, error)
}

// SubmissionPage is the parsed content of a submission page.
type SubmissionPage struct {
	URL                 string   `json:"url"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	TeamMembers         []string `json:"team_members"`
	Technologies        []string `json:"technologies"`
	GitHubURL           string   `json:"github_url,omitempty"`
	Hackathon           string   `json:"hackathon,omitempty"`
	DuplicateSubmission bool     `json:"duplicate_submission"`
	SubmissionTime      string   `json:"submission_time,omitempty"`
	HasDemoLink         bool     `json:"has_demo_link"`
	HasVideoDemo        bool     `json:"has_video_demo"`
	ImageCount          int      `json:"image_count"`
}

// SubmissionResult is a tagged submission-page fetch outcome.
type SubmissionResult struct {
	Status FetchStatus     `json:"status"`
	Page   *SubmissionPage `json:"page,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SubmissionClient fetches and parses submission pages.
type SubmissionClient interface {
	Fetch(ctx context.Context, url string) SubmissionResult
}

// ConfigStore loads and saves hackathon configs and the host credential.
type ConfigStore interface {
	LoadConfig(name string) (HackathonConfig, error)
	SaveConfig(cfg HackathonConfig) error
	ListConfigs() ([]string, error)
	SetToken(username, token string) error
	Token(username string) (string, error)
}

// CacheStore is a read-through disk cache. Content-hash keys never expire;
// URL keys carry a TTL.
type CacheStore interface {
	Get(key string, maxAge time.Duration, v any) bool
	Put(key string, v any) error
}

// ReportRenderer turns a sealed ValidationResult into an output document.
type ReportRenderer interface {
	Render(result *ValidationResult, format string) ([]byte, error)
}
