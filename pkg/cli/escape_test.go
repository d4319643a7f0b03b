package cli

import (
	"strings"
	"testing"
)

func TestEscapeHTMLNeverEmitsRawSpecials(t *testing.T) {
	inputs := []string{
		`<script>alert("x")</script>`,
		`a & b`,
		`it's a 'quote'`,
		"back`tick",
		"path/to/thing",
		`<img src=x onerror='alert(1)'>`,
		"plain-name",
		"",
	}

	for _, in := range inputs {
		out := EscapeHTML(in)
		for _, c := range []string{"<", ">"} {
			if strings.Contains(out, c) {
				t.Errorf("EscapeHTML(%q) = %q still contains %q", in, out, c)
			}
		}
		// A raw & may only appear as the start of an entity we emitted.
		stripped := out
		for _, ent := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#39;", "&#96;", "&#47;"} {
			stripped = strings.ReplaceAll(stripped, ent, "")
		}
		for _, c := range []string{"&", `"`, "'", "`", "/"} {
			if strings.Contains(stripped, c) {
				t.Errorf("EscapeHTML(%q) = %q leaks raw %q", in, out, c)
			}
		}
	}
}

func TestEscapeHTMLRoundTripsPlainText(t *testing.T) {
	if got := EscapeHTML("acme-project"); got != "acme-project" {
		t.Errorf("EscapeHTML of a plain mark = %q, want it unchanged", got)
	}
}

func TestEscapeAttrRemovesControlBytes(t *testing.T) {
	in := "a\x00b\x1fc\td"
	out := EscapeAttr(in)

	for i := 0; i < len(out); i++ {
		if out[i] < 0x20 {
			t.Fatalf("EscapeAttr(%q) = %q retains control byte 0x%02x", in, out, out[i])
		}
	}
	if out != "abcd" {
		t.Errorf("EscapeAttr(%q) = %q, want %q", in, out, "abcd")
	}
}

func TestEscapeAttrAlsoEscapesSpecials(t *testing.T) {
	out := EscapeAttr(`" onmouseover="alert(1)`)
	if strings.Contains(out, `"`) {
		t.Errorf("EscapeAttr leaks a raw double quote: %q", out)
	}
}
