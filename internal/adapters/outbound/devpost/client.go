// Package devpost fetches and parses DevPost submission pages.
package devpost

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hackcheck/hackcheck/internal/domain"
)

const pageTTL = 24 * time.Hour

// Client scrapes submission pages over plain HTTP.
type Client struct {
	http  *http.Client
	cache domain.CacheStore
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables read-through caching of parsed pages.
func WithCache(cache domain.CacheStore) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a Client.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads and parses a submission page. The outcome is tagged; a
// missing or rate-limited page is a status, not an error.
func (c *Client) Fetch(ctx context.Context, url string) domain.SubmissionResult {
	cacheKey := "devpost:" + url
	if c.cache != nil {
		var page domain.SubmissionPage
		if c.cache.Get(cacheKey, pageTTL, &page) {
			return domain.SubmissionResult{Status: domain.FetchSuccess, Page: &page}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.SubmissionResult{Status: domain.FetchError, Error: err.Error()}
	}
	// DevPost serves a challenge page to clients without browser headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:124.0) Gecko/20100101 Firefox/124.0")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.SubmissionResult{Status: domain.FetchError, Error: err.Error()}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.SubmissionResult{Status: domain.FetchNotFound, Error: "submission page not found"}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
		return domain.SubmissionResult{Status: domain.FetchRateLimited, Error: fmt.Sprintf("page fetch blocked: HTTP %d", resp.StatusCode)}
	case resp.StatusCode != http.StatusOK:
		return domain.SubmissionResult{Status: domain.FetchError, Error: fmt.Sprintf("page fetch failed: HTTP %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return domain.SubmissionResult{Status: domain.FetchError, Error: fmt.Sprintf("parse page: %v", err)}
	}

	page := parsePage(doc)
	page.URL = url
	if c.cache != nil {
		_ = c.cache.Put(cacheKey, page)
	}
	return domain.SubmissionResult{Status: domain.FetchSuccess, Page: &page}
}

func parsePage(doc *goquery.Document) domain.SubmissionPage {
	var page domain.SubmissionPage

	page.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	page.Description = strings.TrimSpace(doc.Find("div.app-details-inner").First().Text())

	doc.Find("li.software-team-member h4 a").Each(func(_ int, s *goquery.Selection) {
		if name := strings.TrimSpace(s.Text()); name != "" {
			page.TeamMembers = append(page.TeamMembers, name)
		}
	})

	doc.Find("span.cp-tag").Each(func(_ int, s *goquery.Selection) {
		tag := strings.TrimSpace(s.Text())
		// Collapsed tag lists end with a "+N" overflow marker.
		if tag == "" || strings.HasPrefix(tag, "+") {
			return
		}
		page.Technologies = append(page.Technologies, tag)
	})

	doc.Find(`a[href*="github.com"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		page.GitHubURL = normalizeGitHubURL(href)
		return page.GitHubURL == ""
	})

	page.Hackathon = strings.TrimSpace(doc.Find("div.software-list-content h5 a").First().Text())
	page.DuplicateSubmission = doc.Find("div.software-list-content").Length() > 1

	doc.Find("a[href], iframe[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		target, ok := s.Attr("href")
		if !ok {
			target, _ = s.Attr("src")
		}
		lower := strings.ToLower(target)
		if strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be") || strings.Contains(lower, "vimeo.com") {
			page.HasVideoDemo = true
			return false
		}
		return true
	})

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		lower := strings.ToLower(href)
		if strings.Contains(lower, "demo") || strings.Contains(s.Text(), "Try it out") {
			page.HasDemoLink = true
			return false
		}
		return true
	})
	if page.HasVideoDemo {
		page.HasDemoLink = true
	}

	page.ImageCount = doc.Find("div.app-details img").Length()

	if stamp, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		page.SubmissionTime = strings.TrimSpace(stamp)
	}

	return page
}

// normalizeGitHubURL returns a usable repository URL or "" when the link is
// not a repository (profile pages, gists, marketing links).
func normalizeGitHubURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		href = "https://" + href
	}
	if _, _, err := domain.ParseRepoURL(href); err != nil {
		return ""
	}
	return href
}

// ExtractGitHubURL pulls the first repository link out of a fetched page.
func ExtractGitHubURL(page *domain.SubmissionPage) string {
	if page == nil {
		return ""
	}
	return page.GitHubURL
}
