// Package hashids provides the three deterministic hashing primitives the
// rest of the engine builds identifiers on: hashing a string, hashing a
// file's bytes, and hashing an arbitrary value through canonical JSON.
//
// None of these functions read the clock or any other ambient state;
// determinism depends on that. Canonicalization is delegated to
// github.com/cyberphone/json-canonicalization (RFC 8785 JCS) rather than a
// hand-rolled key sorter, so key-insertion-order never leaks into a hash.
package hashids
