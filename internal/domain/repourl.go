package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepoURL extracts the owner and repository name from a GitHub URL.
// Accepts https, http, and scheme-less forms, with or without a trailing
// .git suffix or extra path segments.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "", fmt.Errorf("empty repository url")
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", "", fmt.Errorf("parse repository url: %w", err)
	}
	if !strings.HasSuffix(strings.ToLower(u.Hostname()), "github.com") {
		return "", "", fmt.Errorf("not a github.com url: %s", raw)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("url %s does not name owner/repo", raw)
	}

	repo = strings.TrimSuffix(parts[1], ".git")
	return parts[0], repo, nil
}
