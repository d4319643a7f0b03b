package runner

import (
	"context"
	"testing"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
)

type fakeChecker struct {
	status model.Status
}

func (f *fakeChecker) Check(ctx context.Context, query any) (model.Check, model.Evidence) {
	return model.Check{Status: f.status, Query: query}, model.Evidence{}
}

func TestRunDispatchesEveryTask(t *testing.T) {
	r := New(map[model.Namespace]Checker{
		model.NamespaceNPM:  &fakeChecker{status: model.StatusAvailable},
		model.NamespacePyPI: &fakeChecker{status: model.StatusTaken},
	}, 2)

	tasks := []Task{
		{Namespace: model.NamespaceNPM, Query: "acme"},
		{Namespace: model.NamespacePyPI, Query: "acme"},
	}

	results, err := r.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Run returned %d results, want 2", len(results))
	}
}

func TestRunIsDeterministicallyOrdered(t *testing.T) {
	r := New(map[model.Namespace]Checker{
		model.NamespaceNPM: &fakeChecker{status: model.StatusAvailable},
	}, 4)

	tasks := []Task{
		{Namespace: model.NamespaceNPM, Query: "zeta"},
		{Namespace: model.NamespaceNPM, Query: "alpha"},
		{Namespace: model.NamespaceNPM, Query: "mid"},
	}

	a, err := r.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := r.Run(context.Background(), tasks)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := range a {
		if a[i].Check.Query != b[i].Check.Query {
			t.Fatalf("Run not deterministically ordered at index %d: %v != %v", i, a[i].Check.Query, b[i].Check.Query)
		}
	}
	if a[0].Check.Query != "alpha" {
		t.Errorf("first result query = %v, want alpha (lexicographically first)", a[0].Check.Query)
	}
}

func TestRunUnknownNamespaceYieldsErrorCheck(t *testing.T) {
	r := New(map[model.Namespace]Checker{}, 1)

	results, err := r.Run(context.Background(), []Task{
		{Namespace: model.NamespaceNPM, Query: "acme"},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Run returned %d results, want 1", len(results))
	}
	if len(results[0].Check.Errors) != 1 || results[0].Check.Errors[0].Code != "COE.RUNNER.UNKNOWN_NAMESPACE" {
		t.Errorf("Check.Errors = %+v, want a single COE.RUNNER.UNKNOWN_NAMESPACE error", results[0].Check.Errors)
	}
}

func TestRunDefaultsConcurrencyWhenNonPositive(t *testing.T) {
	r := New(nil, 0)
	if r.concurrency != DefaultConcurrency {
		t.Errorf("concurrency = %d, want DefaultConcurrency (%d)", r.concurrency, DefaultConcurrency)
	}
}
