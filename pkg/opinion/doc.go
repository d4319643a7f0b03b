// Package opinion aggregates a sorted Check slice and radar hits into a
// single Opinion: a weighted sum of per-dimension scores in [0,1], tiered
// into GREEN/YELLOW/RED by configurable thresholds.
package opinion
