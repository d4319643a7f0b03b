package variants

import "sort"

// Category names the five variant-generation strategies, in the fixed
// order Generate emits them.
type Category string

const (
	CategoryNormalized   Category = "normalized"
	CategoryTokenized    Category = "tokenized"
	CategoryPhonetic     Category = "phonetic"
	CategoryHomoglyph    Category = "homoglyph"
	CategoryEditDistance Category = "edit-distance"
)

// categoryOrder fixes the category ordering Generate's output respects;
// within a category, variants are lexicographic.
var categoryOrder = []Category{
	CategoryNormalized,
	CategoryTokenized,
	CategoryPhonetic,
	CategoryHomoglyph,
	CategoryEditDistance,
}

// Variant is one generated form of a candidate mark.
type Variant struct {
	Category Category
	Value    string
}

// Generate produces the deterministically-ordered, deduplicated variant set
// for mark: normalized, tokenized, phonetic, homoglyph, and edit-distance-1
// forms, in that category order and lexicographic within each category.
func Generate(mark string) []Variant {
	normalized := Normalize(mark)

	byCategory := map[Category][]string{
		CategoryNormalized:   {normalized},
		CategoryTokenized:    Tokenize(normalized),
		CategoryPhonetic:     phoneticVariants(normalized),
		CategoryHomoglyph:    Homoglyphs(normalized),
		CategoryEditDistance: EditDistanceOne(normalized),
	}

	var out []Variant
	for _, cat := range categoryOrder {
		values := dedupe(byCategory[cat])
		sort.Strings(values)
		for _, v := range values {
			if v == "" {
				continue
			}
			out = append(out, Variant{Category: cat, Value: v})
		}
	}

	return out
}

func phoneticVariants(normalized string) []string {
	key := DoubleMetaphonePrimary(normalized)
	if key == "" {
		return nil
	}
	return []string{key}
}

// ByCategory groups a Generate result back into a map, for callers that
// want to inspect one category (e.g. the radar's collision scoring).
func ByCategory(vs []Variant) map[Category][]string {
	out := make(map[Category][]string)
	for _, v := range vs {
		out[v.Category] = append(out[v.Category], v.Value)
	}
	return out
}
