// Package cache implements the content-addressed disk cache that memoizes
// namespace checks by (adapter, query, engineVersion).
//
// One JSON file is written per entry, named <key>.json, using a
// temp-file-then-rename write so a reader never observes a torn file. The
// clock is always supplied by the caller rather than read from the system,
// so tests can move time forward deterministically.
package cache
