package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered artifacts on disk for reuse across CLI
// invocations. Entries are bucketed by artifact kind
// (<dir>/<kind>/<digest>.json) so the cache can be inspected and
// reported per pipeline stage.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-backed cache rooted at dir.
// The directory is created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around an artifact.
type fileEntry struct {
	Kind      string    `json:"kind"`
	Data      []byte    `json:"data"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves an artifact. Expired or unreadable entries are removed
// and reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %v", ErrBackend, path, err)
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores an artifact under the key's kind bucket. A zero ttl stores
// the entry without expiration.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{
		Kind:     KeyKind(key),
		Data:     data,
		StoredAt: time.Now(),
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.StoredAt.Add(ttl)
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Delete removes an artifact. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// Dir returns the cache root directory.
func (c *FileCache) Dir() string {
	return c.dir
}

// KindStats summarizes the entries of one artifact kind.
type KindStats struct {
	Entries int
	Bytes   int64
	Expired int
}

// Stats walks the cache directory and reports entry counts and sizes per
// artifact kind. Expired entries are counted, not removed.
func (c *FileCache) Stats() (map[string]KindStats, error) {
	stats := make(map[string]KindStats)
	now := time.Now()

	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		kind := KindUnknown
		if rel, err := filepath.Rel(c.dir, path); err == nil {
			if top := filepath.Dir(rel); top != "." {
				kind = top
			}
		}

		s := stats[kind]
		s.Entries++
		if info, err := d.Info(); err == nil {
			s.Bytes += info.Size()
		}
		if data, err := os.ReadFile(path); err == nil {
			var entry fileEntry
			if json.Unmarshal(data, &entry) == nil &&
				!entry.ExpiresAt.IsZero() && now.After(entry.ExpiresAt) {
				s.Expired++
			}
		}
		stats[kind] = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return stats, nil
}

// Clear removes every entry and empty kind bucket, returning the number
// of entries removed.
func (c *FileCache) Clear() (int, error) {
	count := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if os.Remove(path) == nil {
			count++
		}
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	// Drop now-empty kind buckets; ignore failures on non-empty dirs.
	if entries, err := os.ReadDir(c.dir); err == nil {
		for _, e := range entries {
			if e.IsDir() {
				_ = os.Remove(filepath.Join(c.dir, e.Name()))
			}
		}
	}
	return count, nil
}

// path maps a key to <dir>/<kind>/<digest>.json. Hashing the full key
// keeps scope prefixes from producing collisions across buckets.
func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, KeyKind(key), Hash([]byte(key))+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
