// Command coe is the Clearance Opinion Engine's command-line entry point.
//
// It is a thin wiring shell around the core pipeline (pkg/hashids,
// pkg/cache, pkg/adapters, pkg/variants, pkg/radar, pkg/opinion,
// pkg/manifest, pkg/ledger): it contains no clearance logic of its own,
// only configuration loading, transport/telemetry construction, and
// subcommand dispatch.
//
// Usage:
//
//	# Produce a clearance opinion for a candidate mark
//	coe check my-new-project
//
//	# Inspect or clear the content-addressed cache
//	coe cache stats
//	coe cache clear --expired-only
//
//	# Generate or verify a run's directory hash manifest
//	coe manifest generate ./runs/2026-07-31
//	coe manifest verify ./runs/2026-07-31/manifest.json
//
//	# Browse the SQLite-backed run history
//	coe ledger list --limit 20
package main

func main() {
	Execute()
}
