package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWeightsWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.yaml")

	initial := "weights:\n" +
		"  primary-namespaces-available: 0.45\n" +
		"  secondary-namespaces-available: 0.15\n" +
		"  domain-available: 0.15\n" +
		"  no-close-collisions: 0.15\n" +
		"  linguistic-cleanliness: 0.10\n"
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWeightsWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWeightsWatcher() error: %v", err)
	}

	reloaded := make(chan map[string]float64, 1)
	go func() {
		_ = w.Watch(func(weights map[string]float64) {
			reloaded <- weights
		})
	}()
	defer w.Stop()

	// give the watcher a moment to register the fd before we write.
	time.Sleep(50 * time.Millisecond)

	updated := "weights:\n" +
		"  primary-namespaces-available: 0.50\n" +
		"  secondary-namespaces-available: 0.10\n" +
		"  domain-available: 0.15\n" +
		"  no-close-collisions: 0.15\n" +
		"  linguistic-cleanliness: 0.10\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case weights := <-reloaded:
		if weights["primary-namespaces-available"] != 0.50 {
			t.Errorf("primary-namespaces-available = %.2f, want 0.50", weights["primary-namespaces-available"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for weights reload")
	}
}

func TestWeightsWatcher_DoubleWatchErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.yaml")
	if err := os.WriteFile(path, []byte("weights: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWeightsWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWeightsWatcher() error: %v", err)
	}
	go func() { _ = w.Watch(func(map[string]float64) {}) }()
	defer w.Stop()
	time.Sleep(20 * time.Millisecond)

	if err := w.Watch(func(map[string]float64) {}); err == nil {
		t.Error("second concurrent Watch() call should error")
	}
}
