// Package model holds the immutable value types shared across the engine's
// components: Check, Evidence, Opinion, and the run manifest's RunArtifact.
// All are produced by pure functions of (query, engine version, clock,
// transport response); nothing in this package reads the clock or the
// network itself.
package model
