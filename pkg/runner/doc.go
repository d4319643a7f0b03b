// Package runner fans a single candidate mark out across every configured
// namespace adapter with bounded concurrency, then returns the results in
// a deterministic order independent of completion order.
package runner
