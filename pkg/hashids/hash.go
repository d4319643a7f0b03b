package hashids

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
)

// HashString returns the hex-encoded SHA-256 digest of s's UTF-8 bytes.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashFile streams path's bytes through SHA-256 without loading the whole
// file into memory, and without any newline or encoding normalization.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("hashids: open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashids: read %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashObject returns the hex-encoded SHA-256 digest of o's canonical JSON
// serialization (RFC 8785 JCS): keys sorted lexicographically at every
// object level, no insignificant whitespace, numbers in shortest
// round-trip form.
//
// Omit omits the named top-level keys from o before hashing. Callers use
// this for fields explicitly documented as "not part of the hash", such as
// a manifest's own rootSha256.
func HashObject(o any, omit ...string) (string, error) {
	raw, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("hashids: marshal object: %w", err)
	}

	if len(omit) > 0 {
		raw, err = omitKeys(raw, omit)
		if err != nil {
			return "", fmt.Errorf("hashids: omit keys: %w", err)
		}
	}

	canonical, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("hashids: canonicalize: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// CanonicalJSON returns o's canonical JSON serialization (RFC 8785 JCS) as a
// string, the normalized-query form CheckID hashes over. Unlike HashObject
// it returns the serialization itself, not a digest of it.
func CanonicalJSON(o any) (string, error) {
	raw, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("hashids: marshal object: %w", err)
	}

	canonical, err := jsoncanonicalizer.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("hashids: canonicalize: %w", err)
	}

	return string(canonical), nil
}

// omitKeys removes a set of top-level keys from a JSON object, re-marshaling
// through a map so the canonicalizer never sees them.
func omitKeys(raw []byte, keys []string) ([]byte, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", err)
	}

	for _, k := range keys {
		delete(m, k)
	}

	return json.Marshal(m)
}
