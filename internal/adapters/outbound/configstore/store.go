// Package configstore persists hackathon configs as YAML documents and the
// repository-host token as a restricted-permission file. The base directory
// is injected so tests and callers control where state lives.
package configstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hackcheck/hackcheck/internal/domain"
)

// Store reads and writes configuration under a base directory.
type Store struct {
	dir      string
	validate *validator.Validate
}

// New creates the store's directory layout.
func New(dir string) (*Store, error) {
	for _, sub := range []string{"", "configs", "tokens"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &Store{dir: dir, validate: validator.New()}, nil
}

// LoadConfig reads and validates a named hackathon config.
func (s *Store) LoadConfig(name string) (domain.HackathonConfig, error) {
	data, err := os.ReadFile(s.configPath(name))
	if err != nil {
		return domain.HackathonConfig{}, fmt.Errorf("load config %q: %w", name, err)
	}

	var cfg domain.HackathonConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.HackathonConfig{}, fmt.Errorf("parse config %q: %w", name, err)
	}
	if len(cfg.ScoreWeights) == 0 {
		cfg.ScoreWeights = domain.DefaultWeights()
	}
	if cfg.Thresholds.Pass == 0 && cfg.Thresholds.Review == 0 {
		cfg.Thresholds = domain.DefaultThresholds()
	}

	if err := s.validate.Struct(cfg); err != nil {
		return domain.HackathonConfig{}, fmt.Errorf("config %q failed schema validation: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.HackathonConfig{}, fmt.Errorf("config %q invalid: %w", name, err)
	}
	return cfg, nil
}

// SaveConfig validates and writes a hackathon config.
func (s *Store) SaveConfig(cfg domain.HackathonConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(s.configPath(cfg.Name), data, 0o644)
}

// ListConfigs returns the saved config names, sorted.
func (s *Store) ListConfigs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, "configs"))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// SetToken stores a repository-host token for a username. The token file is
// readable by the owner only.
func (s *Store) SetToken(username, token string) error {
	if username == "" || token == "" {
		return fmt.Errorf("username and token must not be empty")
	}
	return os.WriteFile(s.tokenPath(username), []byte(token), 0o600)
}

// Token returns the stored token for a username.
func (s *Store) Token(username string) (string, error) {
	data, err := os.ReadFile(s.tokenPath(username))
	if err != nil {
		return "", fmt.Errorf("no token stored for %q: %w", username, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *Store) configPath(name string) string {
	return filepath.Join(s.dir, "configs", sanitize(name)+".yaml")
}

func (s *Store) tokenPath(username string) string {
	return filepath.Join(s.dir, "tokens", sanitize(username))
}

// sanitize keeps stored file names flat regardless of the input.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
