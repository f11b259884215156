// Package gitclone produces scoped temporary checkouts with go-git and
// reads their commit logs. Clones always come with a cleanup func the
// caller must run on every exit path.
package gitclone

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// Provider clones repositories into temporary directories.
type Provider struct {
	token string
}

// New builds a provider. token may be empty for public repositories.
func New(token string) *Provider {
	return &Provider{token: token}
}

// Clone checks the repository out into a fresh temporary directory. The
// full history is fetched since commit analysis needs every commit.
func (p *Provider) Clone(ctx context.Context, cloneURL string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "hackcheck-clone-*")
	if err != nil {
		return "", nil, fmt.Errorf("create clone dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	opts := &git.CloneOptions{URL: cloneURL}
	if p.token != "" {
		opts.Auth = &http.BasicAuth{Username: "x-access-token", Password: p.token}
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, opts); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("clone %s: %w", cloneURL, err)
	}
	return dir, cleanup, nil
}

// CommitLog reads the checkout's full history, newest first, with per-commit
// diff stats.
func (p *Provider) CommitLog(path string) ([]domain.Commit, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open checkout: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	var log []domain.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		entry := domain.Commit{
			Hash:        c.Hash.String(),
			Author:      c.Author.Name,
			AuthorEmail: c.Author.Email,
			Message:     c.Message,
			When:        c.Author.When.UTC(),
		}

		// Stats walk the diff against the first parent; a failure on one
		// commit loses its size data, not the log.
		if stats, statErr := c.Stats(); statErr == nil {
			entry.FilesChanged = len(stats)
			for _, fs := range stats {
				entry.LinesAdded += fs.Addition
				entry.LinesDeleted += fs.Deletion
			}
		}

		log = append(log, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	return log, nil
}
