package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hackcheck/hackcheck/internal/adapters/outbound/cache"
	"github.com/hackcheck/hackcheck/internal/adapters/outbound/configstore"
	"github.com/hackcheck/hackcheck/internal/adapters/outbound/devpost"
	"github.com/hackcheck/hackcheck/internal/adapters/outbound/gitclone"
	"github.com/hackcheck/hackcheck/internal/adapters/outbound/githubapi"
	"github.com/hackcheck/hackcheck/internal/application"
	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/aidetect"
	"github.com/hackcheck/hackcheck/internal/domain/plagiarism"
	"github.com/hackcheck/hackcheck/internal/domain/rules"
	"github.com/hackcheck/hackcheck/internal/domain/secrets"
)

const tokenEnvVar = "HACKCHECK_GITHUB_TOKEN"

// appDir is the per-user state root, overridable for tests and CI.
func appDir() (string, error) {
	if dir := os.Getenv("HACKCHECK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".hackcheck"), nil
}

func newConfigStore() (*configstore.Store, error) {
	base, err := appDir()
	if err != nil {
		return nil, err
	}
	return configstore.New(base)
}

// githubToken resolves the credential: the environment wins, then the
// stored default token.
func githubToken(store *configstore.Store) string {
	if token := os.Getenv(tokenEnvVar); token != "" {
		return token
	}
	if store != nil {
		if token, err := store.Token("default"); err == nil {
			return token
		}
	}
	return ""
}

// buildValidator assembles the full pipeline behind one ValidateService.
func buildValidator(token string, engine *rules.Engine) (*application.ValidateService, error) {
	base, err := appDir()
	if err != nil {
		return nil, err
	}
	store, err := cache.New(filepath.Join(base, "cache"))
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}

	host := githubapi.New(githubapi.WithToken(token), githubapi.WithCache(store))
	cloner := gitclone.New(token)
	pages := devpost.New(devpost.WithCache(store))

	if engine == nil {
		engine = rules.NewEngine()
	}

	return application.NewValidateService(
		host,
		cloner,
		pages,
		engine,
		aidetect.New(),
		secrets.NewScanner(store),
		plagiarism.NewChecker(store, nil),
	), nil
}

// loadConfig resolves the run's hackathon config: a named stored config, or
// an ad-hoc one from the window flags.
func loadConfig(store *configstore.Store, name, start, end string) (domain.HackathonConfig, error) {
	if name != "" {
		return store.LoadConfig(name)
	}

	cfg := domain.HackathonConfig{
		Name:         "ad-hoc",
		ScoreWeights: domain.DefaultWeights(),
		Thresholds:   domain.DefaultThresholds(),
	}
	if start == "" || end == "" {
		return cfg, fmt.Errorf("either --config or both --start and --end are required")
	}

	var err error
	if cfg.StartDate, err = parseDate(start); err != nil {
		return cfg, fmt.Errorf("parse --start: %w", err)
	}
	if cfg.EndDate, err = parseDate(end); err != nil {
		return cfg, fmt.Errorf("parse --end: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseDate accepts RFC 3339 timestamps or bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
