// Package cache is a file-backed read-through cache. Entries are JSON
// documents named by the SHA-256 of their key, wrapped with a timestamp so
// reads can enforce a TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores entries under a single directory.
type FileCache struct {
	dir string
}

// New creates the cache directory if needed.
func New(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

type envelope struct {
	StoredAt time.Time       `json:"stored_at"`
	Payload  json.RawMessage `json:"payload"`
}

// Get loads the entry for key into v. A maxAge of zero or less disables
// expiry; content-hash keys use that, URL keys pass a TTL. Reports false
// when the entry is missing, expired, or unreadable.
func (c *FileCache) Get(key string, maxAge time.Duration, v any) bool {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	if maxAge > 0 && time.Since(env.StoredAt) > maxAge {
		return false
	}
	return json.Unmarshal(env.Payload, v) == nil
}

// Put writes the entry for key, replacing any previous value.
func (c *FileCache) Put(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	env := envelope{StoredAt: time.Now().UTC(), Payload: payload}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), data, 0o644)
}

func (c *FileCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".json")
}
