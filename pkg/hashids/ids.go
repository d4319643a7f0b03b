package hashids

import (
	"fmt"
	"strings"
)

// CheckID derives the deterministic identifier for a check: chk.<namespace>.<hash12>.
// hash12 is the first 12 hex characters of HashString(namespace + NUL +
// normalizedQuery). It depends only on the namespace and the normalized
// query string, never on the clock or a transport response.
func CheckID(namespace, normalizedQuery string) string {
	full := HashString(namespace + "\x00" + normalizedQuery)
	return fmt.Sprintf("chk.%s.%s", namespace, full[:12])
}

// EvidenceID derives the identifier for the seq'th piece of evidence backing
// checkID: ev.<checkId-tail>.<seq>, where checkId-tail is the hash12 segment
// of checkID.
func EvidenceID(checkID string, seq int) string {
	tail := checkID
	if i := strings.LastIndex(checkID, "."); i >= 0 {
		tail = checkID[i+1:]
	}
	return fmt.Sprintf("ev.%s.%d", tail, seq)
}
