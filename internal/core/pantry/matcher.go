package pantry

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"pantry-chef/internal/core/lexicon"
)

const (
	// MinFuzzyLength is the shortest token considered for approximate matching.
	MinFuzzyLength = 5
	// MaxDistance is the largest edit distance accepted as the same word.
	MaxDistance = 1
)

// Matcher finds the closest vocabulary term for a noisy token.
type Matcher struct {
	lex         *lexicon.Lexicon
	minLength   int
	maxDistance int
}

// NewMatcher creates a matcher with the default gates.
func NewMatcher(lex *lexicon.Lexicon) *Matcher {
	return &Matcher{
		lex:         lex,
		minLength:   MinFuzzyLength,
		maxDistance: MaxDistance,
	}
}

// NearestCanonical returns the vocabulary term closest to term, if it is within the
// distance gate. Ties go to the earlier vocabulary term. Tokens shorter than the length
// gate never match.
func (m *Matcher) NearestCanonical(term string) (string, bool) {
	n := utf8.RuneCountInString(term)
	if n < m.minLength {
		return "", false
	}

	best, bestDist := "", m.maxDistance+1
	for _, cand := range m.lex.Terms() {
		diff := utf8.RuneCountInString(cand) - n
		if diff > m.maxDistance || -diff > m.maxDistance {
			continue
		}
		d := levenshtein.ComputeDistance(term, cand)
		if d < bestDist {
			best, bestDist = cand, d
			if d == 0 {
				break
			}
		}
	}
	if bestDist > m.maxDistance {
		return "", false
	}
	return best, true
}
