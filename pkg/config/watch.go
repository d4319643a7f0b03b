package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// WeightsWatcher watches Opinion.WeightsFile for changes and reloads the
// weight map in place, without restarting the process. It debounces bursts
// of filesystem events (editors commonly emit several writes per save).
type WeightsWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// weightsFile is the on-disk shape of an Opinion.WeightsFile: a bare
// dimension -> weight map, the same schema as Config.Opinion.Weights.
type weightsFile struct {
	Weights map[string]float64 `yaml:"weights"`
}

// NewWeightsWatcher creates a watcher for path. logger may be nil.
func NewWeightsWatcher(path string, logger *slog.Logger) (*WeightsWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &WeightsWatcher{
		watcher:  w,
		path:     path,
		debounce: 150 * time.Millisecond,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks, invoking onReload(weights) each time path changes on disk
// and parses successfully. It returns when Stop is called. A parse failure
// is logged and does not stop the watcher.
func (w *WeightsWatcher) Watch(onReload func(map[string]float64)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("weights watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.watcher.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch %q: %w", w.path, err)
	}

	var timer *time.Timer
	for {
		select {
		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				weights, err := loadWeightsFile(w.path)
				if err != nil {
					w.logger.Error("weights file reload failed", "path", w.path, "error", err)
					return
				}
				w.logger.Info("weights file reloaded", "path", w.path)
				onReload(weights)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("weights watcher error", "error", err)
		}
	}
}

// Stop halts a running Watch call.
func (w *WeightsWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	w.watcher.Close()
}

func loadWeightsFile(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wf weightsFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse weights file %q: %w", path, err)
	}
	if err := validateWeights(wf.Weights); err != nil {
		return nil, fmt.Errorf("invalid weights in %q: %w", path, err)
	}

	return wf.Weights, nil
}
