package pantry

import (
	"regexp"

	"pantry-chef/internal/core/lexicon"
)

// phrase is a compound ingredient that labeling tends to split into single words.
type phrase struct {
	first, second, joined string
}

var phrases = []phrase{
	{"coconut", "milk", "coconut milk"},
	{"coconut", "cream", "coconut cream"},
	{"kidney", "beans", "kidney beans"},
	{"black", "beans", "black beans"},
	{"soy", "sauce", "soy sauce"},
	{"olive", "oil", "olive oil"},
	{"sour", "cream", "sour cream"},
	{"peanut", "butter", "peanut butter"},
	{"spring", "onions", "spring onions"},
}

var seasoningPattern = regexp.MustCompile(`\b(stock|bouillon|gravy|seasoning|oxo)\b`)

// bare meat words a stock or seasoning package mentions without the meat being present
var bareMeat = map[string]struct{}{
	"beef": {}, "chicken": {}, "lamb": {}, "pork": {}, "ham": {}, "turkey": {},
	"steak": {}, "steaks": {},
}

// Normalizer maps raw tokens onto the lexicon. It is safe for concurrent use.
type Normalizer struct {
	lex     *lexicon.Lexicon
	matcher *Matcher
}

// NewNormalizer creates a normalizer over lex.
func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{
		lex:     lex,
		matcher: NewMatcher(lex),
	}
}

// Matcher exposes the approximate matcher used for fuzzy resolution.
func (n *Normalizer) Matcher() *Matcher {
	return n.matcher
}

// Normalize converts raw tokens into a pantry. Unrecognized tokens are dropped; it never
// fails. Canonical terms are fixed points: normalizing a pantry's items yields the same pantry.
func (n *Normalizer) Normalize(raw []string) Pantry {
	tokens := n.suppressMeat(dedup(raw))
	tokens = n.joinPhrases(tokens)

	resolved := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if c, ok := n.resolve(t); ok {
			resolved = append(resolved, c)
		}
	}
	// fuzzy matches can surface both halves of a phrase
	resolved = n.joinPhrases(dedup(resolved))
	return New(resolved...)
}

// suppressMeat drops bare meat tokens when a seasoning product is among the tokens.
// A plain canonical term such as "stock" does not count as a product, so pantry items
// stay fixed points.
func (n *Normalizer) suppressMeat(tokens []string) []string {
	seasoning := false
	for _, t := range tokens {
		if seasoningPattern.MatchString(t) && !n.lex.IsCanonical(t) {
			seasoning = true
			break
		}
	}
	if !seasoning {
		return tokens
	}
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, meat := bareMeat[t]; !meat {
			kept = append(kept, t)
		}
	}
	return kept
}

// Resolve maps a single token to its canonical term.
func (n *Normalizer) Resolve(token string) (string, bool) {
	return n.resolve(lexicon.Clean(token))
}

func (n *Normalizer) resolve(t string) (string, bool) {
	if c, ok := n.lex.Synonym(t); ok {
		t = c
	}
	if n.lex.IsCanonical(t) {
		return t, true
	}
	return n.matcher.NearestCanonical(t)
}

// joinPhrases replaces both halves of a known compound with the compound itself.
func (n *Normalizer) joinPhrases(tokens []string) []string {
	for _, ph := range phrases {
		if !n.lex.IsCanonical(ph.joined) {
			continue
		}
		if !n.mentions(tokens, ph.first) || !n.mentions(tokens, ph.second) {
			continue
		}
		kept := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if n.is(t, ph.first) || n.is(t, ph.second) {
				continue
			}
			kept = append(kept, t)
		}
		tokens = dedup(append(kept, ph.joined))
	}
	return tokens
}

func (n *Normalizer) mentions(tokens []string, word string) bool {
	for _, t := range tokens {
		if n.is(t, word) {
			return true
		}
	}
	return false
}

func (n *Normalizer) is(token, word string) bool {
	if token == word {
		return true
	}
	c, ok := n.lex.Synonym(token)
	return ok && c == word
}

func dedup(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		t := lexicon.Clean(r)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
