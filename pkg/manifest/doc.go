// Package manifest generates and verifies the directory-level lockfile for
// a run: every regular file under a run directory, hashed and rolled up
// into a single rootSha256 that lets a run be replayed and checked for
// drift.
package manifest
