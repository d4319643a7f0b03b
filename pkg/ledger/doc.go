// Package ledger is the SQLite-backed, append-only history of run
// manifests: one row per RunManifest generation, so past runs can be found
// by time range or rootSha256 prefix without re-reading every manifest
// from disk. The driver is modernc.org/sqlite (pure Go), keeping the
// module free of cgo.
package ledger
