// Package telemetry provides the ambient observability stack for the
// Clearance Opinion Engine.
//
// # Components
//
//   - logging: structured logging with secret redaction (pkg/telemetry/logging)
//   - metrics: Prometheus metrics collection (pkg/telemetry/metrics)
//
// Both are constructed once in cmd/coe's loadConfig and handed down to the
// components that need them (pkg/adapters.Adapter.WithObservability,
// pkg/cache.Wrap, pkg/cache/janitor.New, radar.Scan) as nilable parameters
// rather than reached for as globals, so a run can be driven headless in
// tests with a nil logger and a nil collector.
//
// # Secret redaction
//
// By default, obvious secrets and identifiers are redacted from logs
// before they are written:
//
//   - API keys: sk-abc123 → sk-***
//   - Emails: user@example.com → u***@example.com
//   - IP addresses: 192.168.1.1 → 192.*.*.*
//
// See pkg/telemetry/logging's redactor for the exact patterns.
package telemetry
