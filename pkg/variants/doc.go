// Package variants generates the deterministic set of linguistic variants
// of a candidate mark: normalized, tokenized, phonetic,
// homoglyph, and edit-distance-1 forms. Every function here is pure (no
// clock, no network), so Generate's output is reproducible input-for-input.
package variants
