// Package adapters implements the namespace-adapter protocol: one factory
// per namespace, each turning a name query into a (Check, Evidence) pair
// over an injected transport.Transport. The network seam is always
// injected, never hard-wired, so tests substitute a canned transport.
package adapters

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/clock"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/hashids"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/model"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/telemetry/logging"
	"github.com/mcp-tool-shop-org/clearance-opinion-engine/pkg/transport"
)

// MetricsRecorder is notified of adapter activity, mirroring the hook
// pattern pkg/radar uses to stay decoupled from pkg/telemetry/metrics: the
// adapter package never imports prometheus/client_golang itself.
type MetricsRecorder interface {
	RecordAdapterCall(namespace string, seconds float64)
	RecordAdapterRateLimited(namespace string)
	RecordCheck(namespace, status, authority string)
	RecordClaimability(namespace, claimability string)
	RecordCheckError(namespace, code string)
}

// statusRule maps one HTTP status class to a Check outcome.
type statusRule struct {
	status       model.Status
	authority    model.Authority
	claimability model.Claimability
	rateLimited  bool
}

// statusTable is a namespace's complete HTTP-status-to-outcome mapping,
// keyed by exact status code for 200/404/429 and falling back to class
// buckets for everything else.
type statusTable struct {
	onOK          statusRule // HTTP 200
	onNotFound    statusRule // HTTP 404
	onRateLimited statusRule // HTTP 429
	onOther       statusRule // any other 2xx/3xx, 4xx, or 5xx
}

func (t statusTable) classify(status int) statusRule {
	switch {
	case status == 200:
		return t.onOK
	case status == 404:
		return t.onNotFound
	case status == 429:
		return t.onRateLimited
	default:
		return t.onOther
	}
}

// registryTable is the shared mapping for npm/pypi/crates/dockerhub/huggingface
// and, with the addition of an auth-backed 401/403 read, github: taken on
// 200, available on 404, unknown everywhere else.
var registryTable = statusTable{
	onOK:          statusRule{model.StatusTaken, model.AuthorityAuthoritative, model.ClaimabilityUnknown, false},
	onNotFound:    statusRule{model.StatusAvailable, model.AuthorityAuthoritative, model.ClaimabilityUnknown, false},
	onRateLimited: statusRule{model.StatusUnknown, model.AuthorityIndicative, model.ClaimabilityUnknown, true},
	onOther:       statusRule{model.StatusUnknown, model.AuthorityIndicative, model.ClaimabilityUnknown, false},
}

// domainTable additionally reports claimability, since RDAP-backed domains
// support reservation.
var domainTable = statusTable{
	onOK:          statusRule{model.StatusTaken, model.AuthorityAuthoritative, model.NotClaimable, false},
	onNotFound:    statusRule{model.StatusAvailable, model.AuthorityAuthoritative, model.ClaimableNow, false},
	onRateLimited: statusRule{model.StatusUnknown, model.AuthorityIndicative, model.ClaimabilityUnknown, true},
	onOther:       statusRule{model.StatusUnknown, model.AuthorityIndicative, model.ClaimabilityUnknown, false},
}

// spec maps one namespace to its URL template, headers, and status table.
// buildURL and query are supplied per-namespace by the factory functions in
// namespaces.go.
type spec struct {
	namespace model.Namespace
	errTag    string // e.g. "GITHUB", "NPM", used to build COE.ADAPTER.<tag>_FAIL
	table     statusTable
	buildURL  func(query any) (string, error)
	headers   func() map[string]string

	// reproHeaders, when set, replaces headers in the evidence repro
	// commands, so a secret-bearing header appears as an env reference
	// ($GITHUB_TOKEN) rather than its value. Falls back to headers.
	reproHeaders func() map[string]string
}

// Adapter is the generic engine shared by every namespace's factory. It is
// stateless aside from the transport reference.
type Adapter struct {
	spec      spec
	transport transport.Transport
	now       clock.Clock
	logger    *logging.Logger
	metrics   MetricsRecorder
}

func newAdapter(s spec, t transport.Transport, now clock.Clock) *Adapter {
	if now == nil {
		now = clock.SystemClock
	}
	return &Adapter{spec: s, transport: t, now: now}
}

// WithObservability attaches a logger and metrics recorder to an already
// constructed Adapter and returns it, so a caller can chain
// NewNPMAdapter(t, now).WithObservability(logger, metrics) without every
// namespace factory carrying extra parameters. Both arguments are
// optional; a nil logger or metrics recorder is a no-op at each call site.
func (a *Adapter) WithObservability(logger *logging.Logger, metrics MetricsRecorder) *Adapter {
	a.logger = logger
	a.metrics = metrics
	return a
}

// Check runs the common per-check algorithm against query and returns the
// resulting (Check, Evidence) pair.
func (a *Adapter) Check(ctx context.Context, query any) (model.Check, model.Evidence) {
	normalizedQuery, err := hashids.CanonicalJSON(query)
	if err != nil {
		return a.failCheck(query, "", fmt.Sprintf("canonicalize query: %v", err))
	}

	id := hashids.CheckID(string(a.spec.namespace), normalizedQuery)
	evID := hashids.EvidenceID(id, 0)

	url, err := a.spec.buildURL(query)
	if err != nil {
		return a.failCheckWithIDs(query, id, evID, url, fmt.Sprintf("build URL: %v", err))
	}

	start := clock.SystemClock()
	resp, err := a.transport.Do(ctx, url, transport.Options{
		Method:  "GET",
		Headers: a.spec.headers(),
	})
	elapsed := time.Since(start).Seconds()
	if a.metrics != nil {
		a.metrics.RecordAdapterCall(string(a.spec.namespace), elapsed)
	}
	if err != nil {
		if a.logger != nil {
			a.logger.WarnContext(ctx, "adapter call failed", "namespace", a.spec.namespace, "error", err)
		}
		return a.failCheckWithIDs(query, id, evID, url, err.Error())
	}

	rule := a.spec.table.classify(resp.Status)
	observedAt := clock.Now(a.now)

	var errs []model.CheckError
	if rule.rateLimited {
		errs = append(errs, model.CheckError{
			Code:    fmt.Sprintf("COE.ADAPTER.%s_RATE_LIMITED", a.spec.errTag),
			Message: fmt.Sprintf("%s rate-limited the request (HTTP 429)", a.spec.namespace),
		})
		if a.metrics != nil {
			a.metrics.RecordAdapterRateLimited(string(a.spec.namespace))
		}
	}

	if a.logger != nil {
		a.logger.DebugContext(ctx, "check completed",
			"namespace", a.spec.namespace, "status", rule.status, "authority", rule.authority)
	}
	if a.metrics != nil {
		a.metrics.RecordCheck(string(a.spec.namespace), string(rule.status), string(rule.authority))
		if rule.claimability != "" {
			a.metrics.RecordClaimability(string(a.spec.namespace), string(rule.claimability))
		}
	}

	check := model.Check{
		ID:           id,
		Namespace:    a.spec.namespace,
		Query:        query,
		Status:       rule.status,
		Authority:    rule.authority,
		Claimability: rule.claimability,
		ObservedAt:   observedAt,
		EvidenceRef:  evID,
		Errors:       errs,
	}

	sha := hashids.HashString(string(resp.Body))
	evidence := model.Evidence{
		ID:         evID,
		Type:       "http_response",
		Source:     model.EvidenceSource{System: string(a.spec.namespace), URL: url, Method: "GET"},
		ObservedAt: observedAt,
		SHA256:     sha,
		Bytes:      len(resp.Body),
		Repro:      reproCommands(url, a.safeHeaders()),
	}

	return check, evidence
}

// failCheck builds a degraded Check/Evidence pair when even the query
// could not be canonicalized (e.g. an unmarshalable query value).
func (a *Adapter) failCheck(query any, url, reason string) (model.Check, model.Evidence) {
	id := hashids.CheckID(string(a.spec.namespace), fmt.Sprintf("%v", query))
	evID := hashids.EvidenceID(id, 0)
	return a.failCheckWithIDs(query, id, evID, url, reason)
}

// failCheckWithIDs builds the unknown/indicative Check and notes-only
// Evidence emitted on any transport failure: no sha256/bytes, the error
// surfaces in Check.Errors and Evidence.Notes, and the run continues.
func (a *Adapter) failCheckWithIDs(query any, id, evID, url, reason string) (model.Check, model.Evidence) {
	observedAt := clock.Now(a.now)

	code := fmt.Sprintf("COE.ADAPTER.%s_FAIL", a.spec.errTag)
	if a.metrics != nil {
		a.metrics.RecordCheckError(string(a.spec.namespace), code)
	}
	check := model.Check{
		ID:           id,
		Namespace:    a.spec.namespace,
		Query:        query,
		Status:       model.StatusUnknown,
		Authority:    model.AuthorityIndicative,
		Claimability: model.ClaimabilityUnknown,
		ObservedAt:   observedAt,
		EvidenceRef:  evID,
		Errors: []model.CheckError{
			{Code: code, Message: reason},
		},
	}

	evidence := model.Evidence{
		ID:         evID,
		Type:       "http_response",
		Source:     model.EvidenceSource{System: string(a.spec.namespace), URL: url, Method: "GET"},
		ObservedAt: observedAt,
		Repro:      reproCommands(url, a.safeHeaders()),
		Notes:      reason,
	}

	return check, evidence
}

// safeHeaders returns the headers to embed in repro commands: the
// namespace's reproHeaders when it defines them, otherwise its live
// headers. Namespaces whose headers carry secrets define reproHeaders.
func (a *Adapter) safeHeaders() map[string]string {
	if a.spec.reproHeaders != nil {
		return a.spec.reproHeaders()
	}
	return a.spec.headers()
}

// reproCommands builds the curl-based reproduction recipe for Evidence.Repro.
// Header flags are emitted in sorted key order so the recipe is the same
// across runs even though Go map iteration order is not.
func reproCommands(url string, headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("curl -s")
	for _, k := range keys {
		fmt.Fprintf(&b, " -H %q", k+": "+headers[k])
	}
	fmt.Fprintf(&b, " %q", url)
	return []string{b.String()}
}
