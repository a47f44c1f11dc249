package recipe

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"pantry-chef/internal/core/lexicon"
	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/pkg/common"
)

// Strictness level of the admissibility filter
type Strictness int

const (
	Strict Strictness = iota
	Relaxed
)

func (s Strictness) String() string {
	if s == Relaxed {
		return "relaxed"
	}
	return "strict"
}

const (
	strictMinOverlap  = 2
	relaxedMinOverlap = 1
	timeBuffer        = 10
	minTimeCap        = 10
	minSpecificItems  = 2
)

// TimeCap is the longest ready time accepted for a requested time.
func TimeCap(requested int) int {
	if c := requested + timeBuffer; c > minTimeCap {
		return c
	}
	return minTimeCap
}

// stage is one named admissibility predicate.
type stage struct {
	name       string
	strictOnly bool
	pass       func(e *evaluation, level Strictness) bool
}

// evaluation is a candidate plus what the filter derived from it.
type evaluation struct {
	c           *Candidate
	pantry      pantry.Pantry
	items       []string
	prefs       Preferences
	title       string
	ingredients []Ingredient
	used        int
	missing     int
}

// Filter decides which candidates are admissible dinner suggestions.
type Filter struct {
	lex    *lexicon.Lexicon
	norm   *pantry.Normalizer
	stages []stage
}

// NewFilter creates a filter over lex.
func NewFilter(lex *lexicon.Lexicon, norm *pantry.Normalizer) *Filter {
	f := &Filter{lex: lex, norm: norm}
	f.stages = []stage{
		{name: "category", pass: f.categoryOK},
		{name: "diet", pass: f.dietOK},
		{name: "time", pass: f.timeOK},
		{name: "overlap", pass: f.overlapOK},
		{name: "specific", strictOnly: true, pass: f.specificOK},
		{name: "protein", pass: f.proteinOK},
		{name: "special", pass: f.specialOK},
	}
	return f
}

// Apply filters and scores candidates, best first. If the strict pass rejects every
// candidate of a non-empty list, the relaxed pass is used and relaxed is true.
func (f *Filter) Apply(cands []Candidate, p pantry.Pantry, prefs Preferences) (out []Recipe, relaxed bool) {
	out = f.pass(cands, p, prefs, Strict)
	if len(out) == 0 && len(cands) > 0 {
		out = f.pass(cands, p, prefs, Relaxed)
		relaxed = len(out) > 0
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Score > *out[j].Score
	})
	return out, relaxed
}

func (f *Filter) pass(cands []Candidate, p pantry.Pantry, prefs Preferences, level Strictness) []Recipe {
	out := make([]Recipe, 0, len(cands))
	for i := range cands {
		e := f.evaluate(&cands[i], p, prefs)
		if name, ok := f.check(e, level); !ok {
			common.LogDebug("candidate rejected",
				zap.String("id", cands[i].ID),
				zap.String("title", cands[i].Title),
				zap.String("stage", name),
				zap.Stringer("level", level),
			)
			continue
		}
		out = append(out, e.recipe())
	}
	return out
}

// Evaluate reports whether c is admissible at level, and if not, which stage rejected it.
func (f *Filter) Evaluate(c Candidate, p pantry.Pantry, prefs Preferences, level Strictness) (string, bool) {
	return f.check(f.evaluate(&c, p, prefs), level)
}

func (f *Filter) check(e *evaluation, level Strictness) (string, bool) {
	for _, st := range f.stages {
		if st.strictOnly && level != Strict {
			continue
		}
		if !st.pass(e, level) {
			return st.name, false
		}
	}
	return "", true
}

func (f *Filter) evaluate(c *Candidate, p pantry.Pantry, prefs Preferences) *evaluation {
	e := &evaluation{
		c:           c,
		pantry:      p,
		items:       p.Items(),
		prefs:       prefs,
		title:       strings.ToLower(c.Title),
		ingredients: make([]Ingredient, 0, len(c.Ingredients)),
	}
	have := 0
	for _, name := range c.Ingredients {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ing := Ingredient{Name: name, Have: f.inPantry(name, e)}
		if ing.Have {
			have++
		}
		e.ingredients = append(e.ingredients, ing)
	}
	if c.CountsKnown {
		e.used, e.missing = c.UsedCount, c.MissingCount
	} else {
		e.used, e.missing = have, len(e.ingredients)-have
	}
	return e
}

// inPantry resolves an ingredient name to a canonical term, which alone decides. Names
// that resolve to nothing fall back to a whole-word mention of a pantry item ("canned
// chickpeas" uses chickpeas, but "coconut milk" never uses milk).
func (f *Filter) inPantry(name string, e *evaluation) bool {
	if c, ok := f.norm.Resolve(name); ok {
		return e.pantry.Has(c)
	}
	for _, it := range e.items {
		if mentions(name, it) {
			return true
		}
	}
	return false
}

func (f *Filter) categoryOK(e *evaluation, _ Strictness) bool {
	for _, cat := range []lexicon.Category{lexicon.Dessert, lexicon.Drink, lexicon.Alcohol} {
		if _, hit := f.lex.MatchCategory(cat, e.title); hit {
			return false
		}
		for _, dt := range e.c.DishTypes {
			if _, hit := f.lex.MatchCategory(cat, dt); hit {
				return false
			}
		}
	}
	return true
}

var plantBased = []string{
	"coconut milk", "coconut cream", "peanut butter", "almond milk", "oat milk", "soy milk",
	"soya milk", "butter beans", "vegan", "plant based", "dairy free", "dairy-free",
}

func (f *Filter) dietOK(e *evaluation, _ Strictness) bool {
	var banned []lexicon.Category
	switch e.prefs.Diet {
	case DietVegetarian:
		banned = []lexicon.Category{lexicon.Meat, lexicon.Fish}
	case DietPescatarian:
		banned = []lexicon.Category{lexicon.Meat}
	case DietVegan:
		banned = []lexicon.Category{lexicon.Meat, lexicon.Fish, lexicon.Dairy, lexicon.Egg}
	default:
		return true
	}

	texts := make([]string, 0, len(e.ingredients)+1)
	texts = append(texts, e.title)
	for _, ing := range e.ingredients {
		texts = append(texts, strings.ToLower(ing.Name))
	}
	for _, t := range texts {
		for _, cat := range banned {
			if (cat == lexicon.Dairy || cat == lexicon.Egg) && containsAny(t, plantBased) {
				continue
			}
			if _, hit := f.lex.MatchCategory(cat, t); hit {
				return false
			}
		}
	}
	return true
}

func (f *Filter) timeOK(e *evaluation, _ Strictness) bool {
	// zero means the provider did not say
	return e.c.ReadyInMinutes <= 0 || e.c.ReadyInMinutes <= TimeCap(e.prefs.Time)
}

func (f *Filter) overlapOK(e *evaluation, level Strictness) bool {
	need := strictMinOverlap
	if level == Relaxed {
		need = relaxedMinOverlap
	}
	return e.used >= need
}

func (f *Filter) specificOK(e *evaluation, _ Strictness) bool {
	var specific []string
	for _, it := range e.items {
		if !f.lex.InCategory(lexicon.Staple, it) {
			specific = append(specific, it)
		}
	}
	if len(specific) < minSpecificItems {
		return true
	}
	for _, it := range specific {
		if mentions(e.title, it) {
			return true
		}
		for _, ing := range e.ingredients {
			if mentions(ing.Name, it) {
				return true
			}
			if c, ok := f.norm.Resolve(ing.Name); ok && c == it {
				return true
			}
		}
	}
	return false
}

// condiments are named after a protein without being one
var condiments = []string{"fish sauce", "oyster sauce", "anchovy paste", "shrimp paste"}

func (f *Filter) proteinOK(e *evaluation, _ Strictness) bool {
	title := " " + strings.Join(lexicon.Words(e.title), " ") + " "
	for _, c := range condiments {
		title = strings.ReplaceAll(title, " "+c+" ", " ")
	}
	word, hit := f.lex.MatchCategory(lexicon.Fish, title)
	if !hit {
		return true
	}
	if word == "fish" || word == "seafood" {
		for _, it := range e.items {
			if f.lex.InCategory(lexicon.Fish, it) {
				return true
			}
		}
		return false
	}
	if e.pantry.Has(word) {
		return true
	}
	c, ok := f.norm.Resolve(word)
	return ok && e.pantry.Has(c)
}

func (f *Filter) specialOK(e *evaluation, _ Strictness) bool {
	words := make(map[string]bool)
	for _, w := range lexicon.Words(e.title) {
		words[w] = true
	}

	if (words["mac"] || words["macaroni"]) && words["cheese"] {
		hasDairy := false
		for _, it := range e.items {
			if f.lex.InCategory(lexicon.Dairy, it) {
				hasDairy = true
				break
			}
		}
		if !hasDairy {
			return false
		}
	}
	if (words["omelette"] || words["omelet"] || words["frittata"]) && !e.pantry.Has("eggs") {
		return false
	}
	if words["risotto"] && !e.pantry.Has("rice") {
		return false
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
