package variants

import "sort"

// confusables maps each character to the set of characters visually
// confusable with it: digit/letter lookalikes plus
// a handful of Cyrillic/Greek lookalikes for the Latin letters most
// commonly impersonated in typosquats.
var confusables = map[rune][]rune{
	'0': {'o'},
	'o': {'0'},
	'1': {'l', 'i'},
	'l': {'1', 'i'},
	'i': {'1', 'l'},
	'a': {'а'}, // Cyrillic а (U+0430)
	'e': {'е'}, // Cyrillic е (U+0435)
	'p': {'р'}, // Cyrillic р (U+0440)
	'c': {'с'}, // Cyrillic с (U+0441)
	'x': {'х'}, // Cyrillic х (U+0445)
	'y': {'у'}, // Cyrillic у (U+0443)
}

// digraphSubstitutions handles multi-character confusables ("rn" reads as
// "m") that a single-rune table cannot express.
var digraphSubstitutions = []struct {
	from, to string
}{
	{"rn", "m"},
	{"m", "rn"},
}

// MaxHomoglyphVariants caps the number of homoglyph substitutions
// Homoglyphs returns.
const MaxHomoglyphVariants = 20

// Homoglyphs returns, in lexicographic order and capped at
// MaxHomoglyphVariants, every string obtained by substituting exactly one
// character (or digraph) of normalized with a confusable.
func Homoglyphs(normalized string) []string {
	set := make(map[string]struct{})

	runes := []rune(normalized)
	for i, r := range runes {
		for _, sub := range confusables[r] {
			variant := string(runes[:i]) + string(sub) + string(runes[i+1:])
			if variant != normalized {
				set[variant] = struct{}{}
			}
		}
	}

	for _, d := range digraphSubstitutions {
		for i := 0; i+len(d.from) <= len(normalized); i++ {
			if normalized[i:i+len(d.from)] != d.from {
				continue
			}
			variant := normalized[:i] + d.to + normalized[i+len(d.from):]
			if variant != normalized {
				set[variant] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)

	if len(out) > MaxHomoglyphVariants {
		out = out[:MaxHomoglyphVariants]
	}
	return out
}
