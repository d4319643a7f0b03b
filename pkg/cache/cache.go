package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/hashids"
)

const entrySuffix = ".json"

// DefaultMaxAgeHours is the cache entry lifetime applied when Options.MaxAgeHours is 0.
const DefaultMaxAgeHours = 168

// Options configures a Cache. A zero Options is valid: MaxAgeHours defaults
// to DefaultMaxAgeHours and Now defaults to clock.SystemClock.
type Options struct {
	MaxAgeHours int
	Now         clock.Clock
}

// Cache is a disk-backed, content-addressed store of one JSON file per
// entry. It never reads the system clock itself; every timestamp comes from
// the injected Now function, so tests can age entries out without sleeping.
type Cache struct {
	dir         string
	maxAgeHours int
	now         clock.Clock
}

// entryFile is the on-disk shape written at <dir>/<key>.json.
type entryFile struct {
	Key       string          `json:"key"`
	CreatedAt string          `json:"createdAt"`
	Data      json.RawMessage `json:"data"`
}

// Entry is what Get returns on a hit.
type Entry struct {
	Key       string
	CreatedAt string
	Data      json.RawMessage
}

// New creates a Cache rooted at dir, creating the directory if it does not
// already exist.
func New(dir string, opts Options) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Key: dir, Cause: err}
	}

	maxAge := opts.MaxAgeHours
	if maxAge <= 0 {
		maxAge = DefaultMaxAgeHours
	}

	now := opts.Now
	if now == nil {
		now = clock.SystemClock
	}

	return &Cache{dir: dir, maxAgeHours: maxAge, now: now}, nil
}

// Key computes the cache key for (adapter, query, version): the hex64
// SHA-256 of the canonical JSON of {adapter, query, version}.
func Key(adapter string, query any, version string) (string, error) {
	return hashids.HashObject(map[string]any{
		"adapter": adapter,
		"query":   query,
		"version": version,
	})
}

// Get returns the cached entry for (adapter, query, version), or nil if
// absent, expired, or unparseable. Get never returns an error: a corrupt or
// missing file is indistinguishable from a cold cache to the caller.
func (c *Cache) Get(adapter string, query any, version string) (*Entry, error) {
	key, err := Key(adapter, query, version)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, nil
	}

	var ef entryFile
	if err := json.Unmarshal(raw, &ef); err != nil {
		return nil, nil
	}

	createdAt, err := time.Parse(time.RFC3339, ef.CreatedAt)
	if err != nil {
		return nil, nil
	}

	if !c.now().Before(createdAt.Add(time.Duration(c.maxAgeHours) * time.Hour)) {
		return nil, nil
	}

	return &Entry{Key: ef.Key, CreatedAt: ef.CreatedAt, Data: ef.Data}, nil
}

// Set writes data under the key derived from (adapter, query, version),
// atomically via a temp file in the same directory followed by a rename, so
// a concurrent Get never observes a torn write. I/O errors are surfaced to
// the caller as *WriteError.
func (c *Cache) Set(adapter string, query any, version string, data any) error {
	key, err := Key(adapter, query, version)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return &WriteError{Key: key, Cause: err}
	}

	ef := entryFile{
		Key:       key,
		CreatedAt: clock.Now(c.now),
		Data:      raw,
	}

	encoded, err := json.Marshal(ef)
	if err != nil {
		return &WriteError{Key: key, Cause: err}
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return &WriteError{Key: key, Cause: err}
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return &WriteError{Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Key: key, Cause: err}
	}

	if err := os.Rename(tmpPath, c.path(key)); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Key: key, Cause: err}
	}

	return nil
}

// ClearOptions configures Clear.
type ClearOptions struct {
	ExpiredOnly bool
}

// ClearResult reports how many entries Clear removed.
type ClearResult struct {
	Cleared int
}

// Clear removes entries from the cache. With ExpiredOnly set, only entries
// whose createdAt + maxAgeHours has passed are removed; otherwise every
// entry is removed. Removal is best-effort per entry: a single file that
// cannot be read or removed is skipped rather than aborting the sweep, and
// Cleared only counts entries actually removed.
func (c *Cache) Clear(opts ClearOptions) (ClearResult, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return ClearResult{}, &WriteError{Key: c.dir, Cause: err}
	}

	var cleared int
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), entrySuffix) {
			continue
		}

		path := filepath.Join(c.dir, de.Name())

		if opts.ExpiredOnly {
			expired, ok := c.isExpired(path)
			if !ok || !expired {
				continue
			}
		}

		if err := os.Remove(path); err == nil {
			cleared++
		}
	}

	return ClearResult{Cleared: cleared}, nil
}

// Stats reports the current number of entries and their total size on disk.
func (c *Cache) Stats() (Stats, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return Stats{}, &WriteError{Key: c.dir, Cause: err}
	}

	var stats Stats
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), entrySuffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()
	}

	return stats, nil
}

// Stats is the result of Cache.Stats.
type Stats struct {
	Entries    int
	TotalBytes int64
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+entrySuffix)
}

// isExpired reports whether the entry at path has passed its TTL. The
// second return value is false if the file could not be read or parsed,
// signalling the caller to skip it rather than treat it as expired.
func (c *Cache) isExpired(path string) (expired bool, ok bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, false
	}

	var ef entryFile
	if err := json.Unmarshal(raw, &ef); err != nil {
		return false, false
	}

	createdAt, err := time.Parse(time.RFC3339, ef.CreatedAt)
	if err != nil {
		return false, false
	}

	return !c.now().Before(createdAt.Add(time.Duration(c.maxAgeHours) * time.Hour)), true
}
