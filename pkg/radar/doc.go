// Package radar implements the fuzzy collision-neighborhood search: it
// passes a candidate mark's variants (pkg/variants) through a subset of
// namespace adapters and reports near-match hits scored by similarity,
// reusing the adapter layer rather than querying registries a second way.
package radar
