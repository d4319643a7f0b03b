package runner

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/hashids"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
)

// DefaultConcurrency bounds adapter fan-out when no override is configured.
const DefaultConcurrency = 8

// Checker is the subset of adapters.Adapter the runner depends on.
type Checker interface {
	Check(ctx context.Context, query any) (model.Check, model.Evidence)
}

// ProgressReporter is notified as a batch of tasks completes. Declared
// locally, matching pkg/cli.ProgressReporter's shape structurally, so a
// *cli.SimpleProgress can be passed in without this package importing
// pkg/cli.
type ProgressReporter interface {
	Start(total int64)
	Update(current int64)
	Finish()
}

// Task pairs a namespace with the query to run against its checker.
type Task struct {
	Namespace model.Namespace
	Query     any
}

// Result bundles a Task's Check and Evidence with a sort key computed
// before dispatch, so ordering survives even if the query itself embeds
// unexported or unordered fields.
type Result struct {
	Check    model.Check
	Evidence model.Evidence
}

// Runner fans a batch of Tasks out to their namespace Checkers with
// bounded concurrency.
type Runner struct {
	checkers    map[model.Namespace]Checker
	concurrency int
	progress    ProgressReporter
	logger      *logging.Logger
}

// New builds a Runner over the given namespace->Checker map. A
// concurrency <= 0 falls back to DefaultConcurrency.
func New(checkers map[model.Namespace]Checker, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Runner{checkers: checkers, concurrency: concurrency}
}

// WithProgress attaches a progress reporter that receives one Update per
// completed task, mirroring the builder pattern pkg/adapters.Adapter uses
// for its optional logger/metrics hooks. p may be nil.
func (r *Runner) WithProgress(p ProgressReporter) *Runner {
	r.progress = p
	return r
}

// WithLogger attaches a structured logger, following the same optional
// builder pattern as WithProgress and pkg/adapters.Adapter.WithObservability.
// A nil logger is a no-op at every call site.
func (r *Runner) WithLogger(logger *logging.Logger) *Runner {
	r.logger = logger
	return r
}

// Run executes every task, bounded to r.concurrency in flight at once, and
// returns results sorted by (namespace, canonical query string), a fixed
// order independent of completion order or goroutine scheduling. A task
// whose namespace has no registered checker yields a Check carrying a
// COE.RUNNER.UNKNOWN_NAMESPACE error instead of failing the batch.
func (r *Runner) Run(ctx context.Context, tasks []Task) ([]Result, error) {
	sem := semaphore.NewWeighted(int64(r.concurrency))

	if r.logger != nil {
		r.logger.DebugContext(ctx, "runner starting fan-out", "tasks", len(tasks), "concurrency", r.concurrency)
	}

	if r.progress != nil {
		r.progress.Start(int64(len(tasks)))
	}

	results := make([]Result, len(tasks))
	var wg sync.WaitGroup
	var firstErr error
	var mu sync.Mutex
	var done int64

	for i, task := range tasks {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("runner: acquire semaphore: %w", err)
			}
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(i int, task Task) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = r.runOne(ctx, task)
			if r.progress != nil {
				r.progress.Update(atomic.AddInt64(&done, 1))
			}
		}(i, task)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	if r.progress != nil {
		r.progress.Finish()
	}

	sort.Slice(results, func(i, j int) bool {
		ki, kj := sortKey(results[i].Check), sortKey(results[j].Check)
		return ki < kj
	})

	return results, nil
}

func (r *Runner) runOne(ctx context.Context, task Task) Result {
	checker, ok := r.checkers[task.Namespace]
	if !ok {
		if r.logger != nil {
			r.logger.WarnContext(ctx, "no checker registered for namespace", "namespace", task.Namespace)
		}
		return Result{
			Check: model.Check{
				Namespace: task.Namespace,
				Query:     task.Query,
				Status:    model.StatusUnknown,
				Authority: model.AuthorityIndicative,
				Errors: []model.CheckError{{
					Code:    "COE.RUNNER.UNKNOWN_NAMESPACE",
					Message: fmt.Sprintf("no checker registered for namespace %q", task.Namespace),
				}},
			},
		}
	}

	check, evidence := checker.Check(ctx, task.Query)
	return Result{Check: check, Evidence: evidence}
}

func sortKey(c model.Check) string {
	canonical, err := hashids.CanonicalJSON(c.Query)
	if err != nil {
		canonical = fmt.Sprintf("%v", c.Query)
	}
	return string(c.Namespace) + "\x00" + canonical
}
