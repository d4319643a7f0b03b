package variants

import "strings"

// DoubleMetaphonePrimary computes the primary key of the Double Metaphone
// phonetic algorithm (Philips, 2000) for a normalized mark. Only letters
// contribute; digits and "-" are dropped before encoding, since they carry
// no phonetic content of their own. This is a reduced rendition of the
// full algorithm's rule set (no alternate "secondary" key, no
// accommodation for non-English etymologies beyond the common digraphs),
// sufficient for English-leaning package and project names.
func DoubleMetaphonePrimary(normalized string) string {
	letters := make([]byte, 0, len(normalized))
	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		if c >= 'a' && c <= 'z' {
			letters = append(letters, c)
		}
	}
	if len(letters) == 0 {
		return ""
	}

	s := string(letters)
	var key strings.Builder
	i := 0
	n := len(s)

	at := func(idx int) byte {
		if idx < 0 || idx >= n {
			return 0
		}
		return s[idx]
	}

	isVowel := func(c byte) bool {
		return c == 'a' || c == 'e' || c == 'i' || c == 'o' || c == 'u'
	}

	// Skip a single leading vowel: only the consonant skeleton matters.
	if isVowel(at(0)) {
		i = 1
	}

	for i < n && key.Len() < 12 {
		c := at(i)

		switch {
		case isVowel(c):
			if i == 0 {
				key.WriteByte('a')
			}
			i++

		case c == at(i+1) && c != 'c':
			// Doubled consonants collapse to one sound, "cc" handled below.
			i += 2
			key.WriteByte(consonantCode(c))

		case c == 'c' && at(i+1) == 'h':
			key.WriteByte('x')
			i += 2

		case c == 's' && at(i+1) == 'h':
			key.WriteByte('x')
			i += 2

		case c == 't' && at(i+1) == 'h':
			key.WriteByte('0')
			i += 2

		case c == 'p' && at(i+1) == 'h':
			key.WriteByte('f')
			i += 2

		case c == 'w' && at(i+1) == 'h':
			key.WriteByte('w')
			i += 2

		case c == 'g' && at(i+1) == 'h':
			i += 2 // silent in most English words (though, night)

		case c == 'k' && at(i+1) == 'n':
			key.WriteByte('n')
			i += 2

		case c == 'c' && (at(i+1) == 'i' || at(i+1) == 'e' || at(i+1) == 'y'):
			key.WriteByte('s')
			i++

		case c == 'g' && (at(i+1) == 'i' || at(i+1) == 'e' || at(i+1) == 'y'):
			key.WriteByte('j')
			i++

		case c == 'x':
			key.WriteString("ks")
			i++

		case c == 'q':
			key.WriteByte('k')
			i++

		default:
			key.WriteByte(consonantCode(c))
			i++
		}
	}

	return key.String()
}

// consonantCode maps a consonant to its Double Metaphone sound class. Most
// consonants map to themselves; a handful collapse onto a shared class.
func consonantCode(c byte) byte {
	switch c {
	case 'b', 'f', 'j', 'l', 'm', 'n', 'r':
		return c
	case 'd', 't':
		return 't'
	case 'v':
		return 'f'
	case 'z', 's':
		return 's'
	case 'g', 'k', 'q':
		return 'k'
	case 'c':
		return 'k'
	case 'p':
		return 'p'
	case 'h':
		return 'h'
	case 'w', 'y':
		return c
	default:
		return c
	}
}
