// Package clock provides the single injection point for "now" used across
// the engine. Core components never call time.Now directly; they accept a
// Clock so tests can advance time deterministically without sleeping.
package clock

import "time"

// Clock returns the current instant. SystemClock satisfies it with the real
// wall clock; tests substitute a closure over a mutable time.Time.
type Clock func() time.Time

// SystemClock is the default Clock, backed by time.Now.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// ISO8601 formats t as the UTC ISO-8601 timestamp string used throughout
// Check.observedAt, CacheEntry.createdAt, and RunManifest.generatedAt.
func ISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Now formats the Clock's current instant as ISO-8601, the shape every core
// component actually consumes.
func Now(c Clock) string {
	if c == nil {
		c = SystemClock
	}
	return ISO8601(c())
}
