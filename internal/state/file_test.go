package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ Store = (*FileStore)(nil)
var _ Store = (*RedisStore)(nil)

func TestFileStoreLoadSeenMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	seen, err := store.LoadSeen()
	assert.NoError(t, err)
	assert.Equal(t, 0, seen.Len())
}

func TestFileStoreSeenRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	seen := NewSeenSet(
		"https://housing.example.org/wohnen/angebot/1",
		"https://housing.example.org/wohnen/angebot/2",
	)
	assert.NoError(t, store.SaveSeen(seen))

	loaded, err := store.LoadSeen()
	assert.NoError(t, err)
	assert.Equal(t, seen.IDs(), loaded.IDs())
	assert.True(t, loaded.Contains("https://housing.example.org/wohnen/angebot/1"))
	assert.False(t, loaded.Contains("https://housing.example.org/wohnen/angebot/3"))
}

func TestFileStoreLoadSeenCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	assert.NoError(t, err)

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "seen.json"), []byte(`{"offers": [truncated`), 0o644))

	_, err = store.LoadSeen()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrSeenCorrupted))
}

func TestFileStoreLoadSeenWrongShape(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	assert.NoError(t, err)

	// Valid JSON, but offers is not a sequence of strings.
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "seen.json"), []byte(`{"offers": 42}`), 0o644))

	seen, err := store.LoadSeen()
	assert.NoError(t, err)
	assert.Equal(t, 0, seen.Len())
}

func TestFileStoreLoadMetaMissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	meta, err := store.LoadMeta()
	assert.NoError(t, err)
	assert.True(t, meta.IsZero())
}

func TestFileStoreLoadMetaCorruptDowngrades(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	assert.NoError(t, err)

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "meta.json"), []byte(`not json`), 0o644))

	meta, err := store.LoadMeta()
	assert.NoError(t, err)
	assert.True(t, meta.IsZero())
}

func TestFileStoreMetaRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	assert.NoError(t, err)

	meta := Meta{ETag: `"abc123"`, LastModified: "Wed, 21 Oct 2015 07:28:00 GMT"}
	assert.NoError(t, store.SaveMeta(meta))

	loaded, err := store.LoadMeta()
	assert.NoError(t, err)
	assert.Equal(t, meta, loaded)
}

func TestFileStoreSaveSeenEmptySet(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	assert.NoError(t, err)

	assert.NoError(t, store.SaveSeen(NewSeenSet()))

	data, err := os.ReadFile(filepath.Join(dir, "seen.json"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"offers": []}`, string(data))
}

func TestSeenSet(t *testing.T) {
	seen := NewSeenSet("a", "b", "a")
	assert.Equal(t, 2, seen.Len())
	assert.Equal(t, []string{"a", "b"}, seen.IDs())

	assert.True(t, seen.Add("c"))
	assert.False(t, seen.Add("c"))
	assert.Equal(t, []string{"a", "b", "c"}, seen.IDs())
}
