package variants

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  MyPackage  ":  "mypackage",
		"My--Package__": "my-package-",
		"foo_bar":        "foo-bar",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize("  My--Cool_Package  ")
	twice := Normalize(once)
	if once != twice {
		t.Errorf("Normalize not idempotent: %q != %q", once, twice)
	}
}

func TestTokenizeForms(t *testing.T) {
	forms := Tokenize("my-cool-package")
	want := map[string]bool{"my-cool-package": true, "my_cool_package": true, "mycoolpackage": true}

	for _, f := range forms {
		if !want[f] {
			t.Errorf("Tokenize produced unexpected form %q", f)
		}
		delete(want, f)
	}
	if len(want) != 0 {
		t.Errorf("Tokenize missing forms: %v", want)
	}
}

func TestHomoglyphsSingleSubstitution(t *testing.T) {
	variants := Homoglyphs("foo")
	found := false
	for _, v := range variants {
		if v == "f00" || v == "fo0" {
			found = true
		}
	}
	if !found {
		t.Errorf("Homoglyphs(%q) = %v, want an o->0 substitution", "foo", variants)
	}
}

func TestHomoglyphsNeverReturnsTheInput(t *testing.T) {
	for _, v := range Homoglyphs("acme") {
		if v == "acme" {
			t.Error("Homoglyphs should never include the unmodified input")
		}
	}
}

func TestEditDistanceOneCapped(t *testing.T) {
	variants := EditDistanceOne("acme")
	if len(variants) == 0 {
		t.Fatal("EditDistanceOne returned no variants")
	}
	if len(variants) > MaxEditDistanceVariants {
		t.Errorf("EditDistanceOne returned %d variants, want <= %d", len(variants), MaxEditDistanceVariants)
	}
	for _, v := range variants {
		if v == "acme" {
			t.Error("EditDistanceOne should never include the unmodified input")
		}
	}
}

func TestEditDistanceOneIncludesTransposition(t *testing.T) {
	variants := EditDistanceOne("ab")
	want := "ba"
	for _, v := range variants {
		if v == want {
			return
		}
	}
	t.Errorf("EditDistanceOne(%q) = %v, want it to include the transposition %q", "ab", variants, want)
}

func TestDoubleMetaphonePrimaryDeterministic(t *testing.T) {
	a := DoubleMetaphonePrimary("phoenix")
	b := DoubleMetaphonePrimary("phoenix")
	if a != b {
		t.Fatalf("DoubleMetaphonePrimary not deterministic: %q != %q", a, b)
	}
	if a == "" {
		t.Fatal("DoubleMetaphonePrimary returned empty key for a normal word")
	}
}

func TestDoubleMetaphonePrimaryPHSoundsLikeF(t *testing.T) {
	key := DoubleMetaphonePrimary("phoenix")
	if len(key) == 0 || key[0] != 'f' {
		t.Errorf("DoubleMetaphonePrimary(%q) = %q, want it to start with 'f' (ph -> f)", "phoenix", key)
	}
}

func TestGenerateOrdersByCategoryThenLexicographic(t *testing.T) {
	vs := Generate("Acme")

	var lastCategoryIndex = -1
	categoryIndex := map[Category]int{}
	for i, c := range categoryOrder {
		categoryIndex[c] = i
	}

	var prevValue string
	for _, v := range vs {
		idx := categoryIndex[v.Category]
		if idx < lastCategoryIndex {
			t.Fatalf("Generate emitted category %q out of order", v.Category)
		}
		if idx == lastCategoryIndex && v.Value < prevValue {
			t.Fatalf("Generate emitted %q before %q within category %q", v.Value, prevValue, v.Category)
		}
		if idx > lastCategoryIndex {
			lastCategoryIndex = idx
		}
		prevValue = v.Value
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate("my-cool-package")
	b := Generate("my-cool-package")

	if len(a) != len(b) {
		t.Fatalf("Generate returned different lengths across calls: %d != %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Generate differs at index %d: %+v != %+v", i, a[i], b[i])
		}
	}
}
