package lexicon

import "testing"

func TestSynonymTableWellFormed(t *testing.T) {
	vocab := make(map[string]bool, len(vocabulary))
	for _, term := range vocabulary {
		if vocab[term] {
			t.Errorf("duplicate vocabulary term %q", term)
		}
		vocab[term] = true
	}

	for raw, canonical := range synonymTable {
		if vocab[raw] {
			t.Errorf("synonym key %q is itself a vocabulary term", raw)
		}
		if !vocab[canonical] {
			t.Errorf("synonym %q -> %q targets a term outside the vocabulary", raw, canonical)
		}
	}
}

func TestVocabularyTermsAreFixedPoints(t *testing.T) {
	lex := Default()
	for _, term := range lex.Terms() {
		if !lex.IsCanonical(term) {
			t.Errorf("IsCanonical(%q) = false", term)
		}
		if c, ok := lex.Synonym(term); ok {
			t.Errorf("vocabulary term %q has synonym %q", term, c)
		}
	}
}

func TestSynonymLookup(t *testing.T) {
	lex := Default()
	tests := []struct {
		raw  string
		want string
	}{
		{"tomato", "tomatoes"},
		{"bouillon", "stock"},
		{"stock cube", "stock"},
		{"steak", "beef"},
		{"garbanzo beans", "chickpeas"},
		{"gravy granules", "gravy"},
	}
	for _, tt := range tests {
		got, ok := lex.Synonym(tt.raw)
		if !ok || got != tt.want {
			t.Errorf("Synonym(%q) = %q, %v; want %q", tt.raw, got, ok, tt.want)
		}
	}
	if _, ok := lex.Synonym("plastic container"); ok {
		t.Error("unexpected synonym for plastic container")
	}
}

func TestNewDropsInvalidSynonyms(t *testing.T) {
	lex := New(
		[]string{"Rice", "rice", "beans"},
		map[string]string{"riz": "rice", "beans": "rice", "frijoles": "pinto beans"},
		nil,
	)
	if lex.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", lex.Len())
	}
	if _, ok := lex.Synonym("riz"); !ok {
		t.Error("expected riz -> rice")
	}
	if _, ok := lex.Synonym("beans"); ok {
		t.Error("a vocabulary term must not be remapped")
	}
	if _, ok := lex.Synonym("frijoles"); ok {
		t.Error("synonym to an unknown term must be dropped")
	}
}

func TestExtend(t *testing.T) {
	base := Default()
	ext := base.Extend([]string{"jackfruit"}, map[string]string{"jack fruit": "jackfruit"})

	if !ext.IsCanonical("jackfruit") {
		t.Error("extended lexicon should know jackfruit")
	}
	if base.IsCanonical("jackfruit") {
		t.Error("Extend must not modify the original lexicon")
	}
	if c, _ := ext.Synonym("jack fruit"); c != "jackfruit" {
		t.Errorf("Synonym(jack fruit) = %q", c)
	}
	if ext.Len() != base.Len()+1 {
		t.Errorf("Len() = %d, want %d", ext.Len(), base.Len()+1)
	}
	if !ext.InCategory(Meat, "beef") {
		t.Error("categories should carry over")
	}
}

func TestMatchCategory(t *testing.T) {
	lex := Default()
	tests := []struct {
		cat   Category
		title string
		want  bool
	}{
		{Dessert, "Chocolate Fudge Brownies", true},
		{Dessert, "Vanilla Ice-Cream Sundae", true},
		{Dessert, "Chickpea and Spinach Curry", false},
		{Drink, "Banana Smoothie", true},
		{Drink, "Banana Oat Pancakes", false},
		{Alcohol, "Frozen Strawberry Margarita", true},
		{Fish, "Lemon Garlic Salmon", true},
		{Fish, "Roast Chicken Traybake", false},
		{Pasta, "Creamy Tomato Penne", true},
	}
	for _, tt := range tests {
		_, got := lex.MatchCategory(tt.cat, tt.title)
		if got != tt.want {
			t.Errorf("MatchCategory(%s, %q) = %v, want %v", tt.cat, tt.title, got, tt.want)
		}
	}
}

func TestCleanAndWords(t *testing.T) {
	if got := Clean("  Coconut   MILK "); got != "coconut milk" {
		t.Errorf("Clean() = %q", got)
	}
	words := Words("Mac & Cheese (baked)")
	want := []string{"mac", "cheese", "baked"}
	if len(words) != len(want) {
		t.Fatalf("Words() = %v", words)
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("Words()[%d] = %q, want %q", i, words[i], want[i])
		}
	}
}
