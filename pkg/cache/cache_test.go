package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"
)

func newTestCache(t *testing.T, now *time.Time) *Cache {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "cache")
	c, err := New(dir, Options{
		MaxAgeHours: 1,
		Now:         func() time.Time { return *now },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestKeyDeterministicAndVersionSensitive(t *testing.T) {
	k1, err := Key("npm", map[string]string{"name": "foo"}, "0.3.0")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	k2, err := Key("npm", map[string]string{"name": "foo"}, "0.3.0")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("Key not deterministic: %q != %q", k1, k2)
	}

	k3, err := Key("npm", map[string]string{"name": "foo"}, "0.4.0")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if k1 == k3 {
		t.Fatal("Key did not vary with version")
	}

	if !regexp.MustCompile(`^[a-f0-9]{64}$`).MatchString(k1) {
		t.Errorf("Key = %q, want 64 lowercase hex chars", k1)
	}
}

func TestSetThenGetWithinTTL(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	data := map[string]string{"status": "available"}
	if err := c.Set("npm", map[string]string{"name": "foo"}, "0.3.0", data); err != nil {
		t.Fatalf("Set: %v", err)
	}

	entry, err := c.Get("npm", map[string]string{"name": "foo"}, "0.3.0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry == nil {
		t.Fatal("Get returned nil for a freshly-set entry")
	}

	var got map[string]string
	if err := json.Unmarshal(entry.Data, &got); err != nil {
		t.Fatalf("unmarshal entry data: %v", err)
	}
	if got["status"] != "available" {
		t.Errorf("entry.Data = %v, want status=available", got)
	}
}

func TestGetExpiredReturnsNil(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	if err := c.Set("npm", map[string]string{"name": "foo"}, "0.3.0", map[string]string{"status": "available"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(2 * time.Hour)

	entry, err := c.Get("npm", map[string]string{"name": "foo"}, "0.3.0")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if entry != nil {
		t.Fatal("Get returned an entry past its TTL")
	}
}

func TestGetCorruptFileReturnsNilNotError(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	key, err := Key("npm", map[string]string{"name": "foo"}, "0.3.0")
	if err != nil {
		t.Fatalf("Key: %v", err)
	}
	if err := os.WriteFile(c.path(key), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	entry, err := c.Get("npm", map[string]string{"name": "foo"}, "0.3.0")
	if err != nil {
		t.Fatalf("Get on a corrupt file returned an error: %v", err)
	}
	if entry != nil {
		t.Fatal("Get on a corrupt file should return nil")
	}
}

func TestClearExpiredOnly(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	if err := c.Set("npm", map[string]string{"name": "stale"}, "0.3.0", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(2 * time.Hour)

	if err := c.Set("npm", map[string]string{"name": "fresh"}, "0.3.0", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	result, err := c.Clear(ClearOptions{ExpiredOnly: true})
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if result.Cleared != 1 {
		t.Fatalf("Clear(ExpiredOnly) cleared %d entries, want 1", result.Cleared)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Entries != 1 {
		t.Errorf("Stats.Entries = %d, want 1 after clearing the expired entry", stats.Entries)
	}
}

func TestClearAll(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	for i := 0; i < 3; i++ {
		if err := c.Set("npm", map[string]int{"i": i}, "0.3.0", "x"); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	result, err := c.Clear(ClearOptions{})
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if result.Cleared != 3 {
		t.Fatalf("Clear cleared %d entries, want 3", result.Cleared)
	}
}

func TestStats(t *testing.T) {
	now := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	if err := c.Set("npm", map[string]string{"name": "foo"}, "0.3.0", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Entries != 1 {
		t.Errorf("Stats.Entries = %d, want 1", stats.Entries)
	}
	if stats.TotalBytes <= 0 {
		t.Error("Stats.TotalBytes should be positive after one Set")
	}
}
