/*
Package config loads and validates runtime configuration for the Clearance
Opinion Engine.

# Sections

The root Config groups settings by component: Cache (disk cache location
and TTL), Adapters (per-namespace HTTP behavior), Opinion (scoring weights
and tier thresholds), Radar (variant/collision search tuning), Ledger
(run-history store), and Telemetry (logging and metrics).

# Loading

	cfg, err := config.LoadConfig("coe.yaml")
	if err != nil {
	    log.Fatal(err)
	}

LoadConfigWithEnvOverrides additionally applies COE_-prefixed environment
variables on top of the file, then re-validates. Environment variables
always win over the file.

# Defaults and validation

ApplyDefaults fills every zero-valued field with its documented default.
Validate checks invariants that can't be expressed in the type system alone,
notably that Opinion.Weights sums to 1.0 (per the opinion engine's scoring
contract) and that tier thresholds are ordered.
*/
package config
