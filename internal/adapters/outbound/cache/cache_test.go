package cache_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackcheck/hackcheck/internal/adapters/outbound/cache"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileCache_RoundTrip(t *testing.T) {
	c, err := cache.New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	want := record{Name: "repo-metadata", Count: 3}
	require.NoError(t, c.Put("github:owner/repo", want))

	var got record
	assert.True(t, c.Get("github:owner/repo", 0, &got))
	assert.Equal(t, want, got)
}

func TestFileCache_MissingKey(t *testing.T) {
	c, err := cache.New(t.TempDir())
	require.NoError(t, err)

	var got record
	assert.False(t, c.Get("never-stored", time.Hour, &got))
}

func TestFileCache_TTLExpiry(t *testing.T) {
	c, err := cache.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Put("page", record{Name: "stale"}))
	time.Sleep(20 * time.Millisecond)

	var got record
	assert.False(t, c.Get("page", time.Millisecond, &got), "entry older than maxAge must expire")
	assert.True(t, c.Get("page", time.Hour, &got), "same entry stays valid under a longer TTL")
}

func TestFileCache_ZeroMaxAgeNeverExpires(t *testing.T) {
	c, err := cache.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Put("sha256:abc", record{Name: "pinned"}))
	time.Sleep(20 * time.Millisecond)

	var got record
	assert.True(t, c.Get("sha256:abc", 0, &got))
	assert.Equal(t, "pinned", got.Name)
}

func TestFileCache_PutReplaces(t *testing.T) {
	c, err := cache.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Put("k", record{Count: 1}))
	require.NoError(t, c.Put("k", record{Count: 2}))

	var got record
	require.True(t, c.Get("k", 0, &got))
	assert.Equal(t, 2, got.Count)
}

func TestFileCache_KeysDoNotCollide(t *testing.T) {
	c, err := cache.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, c.Put("a", record{Name: "first"}))
	require.NoError(t, c.Put("b", record{Name: "second"}))

	var got record
	require.True(t, c.Get("a", 0, &got))
	assert.Equal(t, "first", got.Name)
}
