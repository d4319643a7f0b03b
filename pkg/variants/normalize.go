package variants

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var collapseDashUnderscore = regexp.MustCompile(`[-_]+`)

// Normalize lowercases s, applies Unicode NFKC, strips surrounding
// whitespace, and collapses runs of "-"/"_" to a single "-".
func Normalize(s string) string {
	folded := norm.NFKC.String(strings.ToLower(strings.TrimSpace(s)))
	return collapseDashUnderscore.ReplaceAllString(folded, "-")
}
