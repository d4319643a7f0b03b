package cli

import "strings"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"`", "&#96;",
	"/", "&#47;",
)

// EscapeHTML replaces every character in s that carries meaning in an HTML
// document (<, >, &, quotes, backtick, and slash) with its entity form,
// so candidate marks and registry response fragments can be embedded in a
// rendered report without becoming markup.
func EscapeHTML(s string) string {
	return htmlReplacer.Replace(s)
}

// EscapeAttr escapes s for use inside an HTML attribute value: everything
// EscapeHTML covers, plus removal of control bytes below 0x20, which some
// parsers treat as attribute delimiters.
func EscapeAttr(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 {
			continue
		}
		b.WriteByte(s[i])
	}
	return EscapeHTML(b.String())
}
