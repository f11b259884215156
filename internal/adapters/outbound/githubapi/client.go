// Package githubapi talks to the GitHub REST API. Every call returns a
// tagged result; transport and HTTP errors never surface as raw errors to
// the core. Successful responses are cached for an hour.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hackcheck/hackcheck/internal/domain"
)

const (
	apiBase      = "https://api.github.com"
	apiCacheTTL  = time.Hour
	fetchTimeout = 15 * time.Second
)

// Client fetches repository metadata and contributors.
type Client struct {
	http  *http.Client
	token string
	cache domain.CacheStore
	base  string
}

// Option configures a Client.
type Option func(*Client)

// WithToken authenticates requests, raising the rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithCache enables read-through response caching.
func WithCache(cache domain.CacheStore) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.base = base }
}

// New builds a client.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: fetchTimeout},
		base: apiBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type repoPayload struct {
	FullName  string    `json:"full_name"`
	CloneURL  string    `json:"clone_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Forks     int       `json:"forks_count"`
	Stars     int       `json:"stargazers_count"`
}

// GetRepository resolves a repository URL to its metadata.
func (c *Client) GetRepository(ctx context.Context, url string) domain.RepoResult {
	owner, repo, err := domain.ParseRepoURL(url)
	if err != nil {
		return domain.RepoResult{Status: domain.FetchError, Error: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.base, owner, repo)

	var cached domain.RepoInfo
	if c.cache != nil && c.cache.Get("github:"+endpoint, apiCacheTTL, &cached) {
		return domain.RepoResult{Status: domain.FetchSuccess, Repo: &cached}
	}

	var payload repoPayload
	status, errMsg := c.getJSON(ctx, endpoint, &payload)
	if status != domain.FetchSuccess {
		return domain.RepoResult{Status: status, Error: errMsg}
	}

	info := domain.RepoInfo{
		FullName:  payload.FullName,
		CloneURL:  payload.CloneURL,
		CreatedAt: payload.CreatedAt,
		UpdatedAt: payload.UpdatedAt,
		Forks:     payload.Forks,
		Stars:     payload.Stars,
	}
	if c.cache != nil {
		c.cache.Put("github:"+endpoint, info)
	}
	return domain.RepoResult{Status: domain.FetchSuccess, Repo: &info}
}

type commitPayload struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name  string    `json:"name"`
			Email string    `json:"email"`
			Date  time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// GetCommits lists a repository's commits through the API, optionally bounded
// by an author-date window. The list endpoint carries no diff stats; the
// clone-based log is the richer source when a checkout exists.
func (c *Client) GetCommits(ctx context.Context, owner, repo string, since, until *time.Time) domain.CommitsResult {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/commits?per_page=100", c.base, owner, repo)
	if since != nil {
		endpoint += "&since=" + since.UTC().Format(time.RFC3339)
	}
	if until != nil {
		endpoint += "&until=" + until.UTC().Format(time.RFC3339)
	}

	var cached []domain.Commit
	if c.cache != nil && c.cache.Get("github:"+endpoint, apiCacheTTL, &cached) {
		return domain.CommitsResult{Status: domain.FetchSuccess, Commits: cached}
	}

	var payload []commitPayload
	status, errMsg := c.getJSON(ctx, endpoint, &payload)
	if status != domain.FetchSuccess {
		return domain.CommitsResult{Status: status, Error: errMsg}
	}

	commits := make([]domain.Commit, 0, len(payload))
	for _, p := range payload {
		commits = append(commits, domain.Commit{
			Hash:        p.SHA,
			Author:      p.Commit.Author.Name,
			AuthorEmail: p.Commit.Author.Email,
			Message:     p.Commit.Message,
			When:        p.Commit.Author.Date.UTC(),
		})
	}
	if c.cache != nil {
		c.cache.Put("github:"+endpoint, commits)
	}
	return domain.CommitsResult{Status: domain.FetchSuccess, Commits: commits}
}

type contributorPayload struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// GetContributors lists a repository's contributors with their counts.
func (c *Client) GetContributors(ctx context.Context, owner, repo string) domain.ContributorsResult {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=100", c.base, owner, repo)

	var cached []domain.Contributor
	if c.cache != nil && c.cache.Get("github:"+endpoint, apiCacheTTL, &cached) {
		return domain.ContributorsResult{Status: domain.FetchSuccess, Contributors: cached}
	}

	var payload []contributorPayload
	status, errMsg := c.getJSON(ctx, endpoint, &payload)
	if status != domain.FetchSuccess {
		return domain.ContributorsResult{Status: status, Error: errMsg}
	}

	contributors := make([]domain.Contributor, 0, len(payload))
	for _, p := range payload {
		contributors = append(contributors, domain.Contributor{
			Login:         p.Login,
			Contributions: p.Contributions,
		})
	}
	if c.cache != nil {
		c.cache.Put("github:"+endpoint, contributors)
	}
	return domain.ContributorsResult{Status: domain.FetchSuccess, Contributors: contributors}
}

// getJSON performs one authenticated GET and maps the HTTP status onto the
// fetch-status taxonomy.
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) (domain.FetchStatus, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.FetchError, err.Error()
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.FetchError, err.Error()
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.FetchNotFound, "repository not found"
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.FetchAuthFailed, "authentication failed"
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return domain.FetchRateLimited, "rate limit exceeded"
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.FetchError, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return domain.FetchError, fmt.Sprintf("decode response: %v", err)
	}
	return domain.FetchSuccess, ""
}
