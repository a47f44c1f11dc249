// Package lexicon holds the closed ingredient vocabulary, the synonym table and the
// category word-sets used to classify recipe titles and pantry contents.
//
// A Lexicon is immutable once built and safe for concurrent use. New entries are added by
// building an extended copy with Extend; nothing else in the system changes.
package lexicon

import (
	"strings"
	"unicode"
)

// Category names a word-set.
type Category string

const (
	Dessert  Category = "dessert"
	Drink    Category = "drink"
	Alcohol  Category = "alcohol"
	Meat     Category = "meat"
	Fish     Category = "fish"
	Dairy    Category = "dairy"
	Egg      Category = "egg"
	Pasta    Category = "pasta"
	Staple   Category = "staple"
	Chickpea Category = "chickpea"
	Coconut  Category = "coconut"
)

// Lexicon is the static vocabulary plus lookups over it.
type Lexicon struct {
	terms      []string
	termSet    map[string]struct{}
	synonyms   map[string]string
	categories map[Category]map[string]struct{}
}

var defaultLexicon = New(vocabulary, synonymTable, categoryTable)

// Default returns the built-in lexicon.
func Default() *Lexicon {
	return defaultLexicon
}

// New builds a lexicon. Terms keep their order: earlier terms win ties during approximate
// matching. Synonym targets that are not vocabulary terms are ignored.
func New(terms []string, synonyms map[string]string, categories map[Category][]string) *Lexicon {
	l := &Lexicon{
		terms:      make([]string, 0, len(terms)),
		termSet:    make(map[string]struct{}, len(terms)),
		synonyms:   make(map[string]string, len(synonyms)),
		categories: make(map[Category]map[string]struct{}, len(categories)),
	}
	l.addTerms(terms)
	l.addSynonyms(synonyms)
	for cat, words := range categories {
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			if w = Clean(w); w != "" {
				set[w] = struct{}{}
			}
		}
		l.categories[cat] = set
	}
	return l
}

// Extend returns a copy of l with extra terms appended and extra synonyms merged in.
func (l *Lexicon) Extend(terms []string, synonyms map[string]string) *Lexicon {
	ext := &Lexicon{
		terms:      append([]string(nil), l.terms...),
		termSet:    make(map[string]struct{}, len(l.termSet)+len(terms)),
		synonyms:   make(map[string]string, len(l.synonyms)+len(synonyms)),
		categories: l.categories,
	}
	for t := range l.termSet {
		ext.termSet[t] = struct{}{}
	}
	for k, v := range l.synonyms {
		ext.synonyms[k] = v
	}
	ext.addTerms(terms)
	ext.addSynonyms(synonyms)
	return ext
}

func (l *Lexicon) addTerms(terms []string) {
	for _, t := range terms {
		t = Clean(t)
		if t == "" {
			continue
		}
		if _, dup := l.termSet[t]; dup {
			continue
		}
		l.termSet[t] = struct{}{}
		l.terms = append(l.terms, t)
	}
}

func (l *Lexicon) addSynonyms(synonyms map[string]string) {
	for raw, canonical := range synonyms {
		raw, canonical = Clean(raw), Clean(canonical)
		if raw == "" || raw == canonical {
			continue
		}
		if _, ok := l.termSet[canonical]; !ok {
			continue
		}
		// a vocabulary term is always its own canonical form
		if _, ok := l.termSet[raw]; ok {
			continue
		}
		l.synonyms[raw] = canonical
	}
}

// Terms returns the vocabulary in priority order. Callers must not modify the slice.
func (l *Lexicon) Terms() []string {
	return l.terms
}

// Len is the vocabulary size.
func (l *Lexicon) Len() int {
	return len(l.terms)
}

// IsCanonical reports whether term is a vocabulary entry.
func (l *Lexicon) IsCanonical(term string) bool {
	_, ok := l.termSet[term]
	return ok
}

// Synonym maps a raw spelling to its canonical term.
func (l *Lexicon) Synonym(raw string) (string, bool) {
	c, ok := l.synonyms[raw]
	return c, ok
}

// InCategory reports whether word (already cleaned) belongs to the category.
func (l *Lexicon) InCategory(cat Category, word string) bool {
	_, ok := l.categories[cat][word]
	return ok
}

// MatchCategory looks for a category word or phrase inside free text such as a recipe
// title. It returns the first match found.
func (l *Lexicon) MatchCategory(cat Category, text string) (string, bool) {
	set := l.categories[cat]
	if len(set) == 0 {
		return "", false
	}
	words := Words(text)
	for n := 3; n >= 1; n-- {
		for i := 0; i+n <= len(words); i++ {
			phrase := strings.Join(words[i:i+n], " ")
			if _, ok := set[phrase]; ok {
				return phrase, true
			}
		}
	}
	return "", false
}

// Clean lowercases, trims and collapses inner whitespace.
func Clean(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Words splits text into lowercase letter runs.
func Words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
