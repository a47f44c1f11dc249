package recipe

import (
	"fmt"
	"strings"

	"pantry-chef/internal/core/lexicon"
	"pantry-chef/internal/core/pantry"
)

const EmergencyID = "local:emergency"

// flavorBase is what a store-cupboard dish usually still needs. Each entry is skipped when
// the pantry already holds one of its terms.
var flavorBase = []struct {
	name  string
	terms []string
}{
	{"onion", []string{"onion", "red onion", "shallots"}},
	{"garlic", []string{"garlic"}},
	{"ginger", []string{"ginger"}},
	{"dried herbs", []string{"dried herbs", "oregano", "thyme", "rosemary"}},
	{"stock", []string{"stock"}},
	{"lemon juice or vinegar", []string{"lemon", "lemon juice", "lime", "vinegar"}},
	{"salt & pepper", []string{"salt", "black pepper"}},
}

var emergencySteps = []string{
	"Heat a splash of oil in a large pan over a medium heat.",
	"Soften the onion, garlic and ginger for 5 minutes, then stir in the dried herbs.",
	"Add the pantry ingredients, firmest first, and cook for a few minutes.",
	"Pour in enough stock to just cover and simmer for 15 minutes until everything is tender.",
	"Finish with lemon juice or vinegar, season with salt & pepper, and serve.",
}

// Emergency builds the local fallback recipe from the pantry alone. It performs no I/O and
// always succeeds.
func Emergency(lex *lexicon.Lexicon, p pantry.Pantry, explore bool) Recipe {
	items := p.Items()
	has := func(cat lexicon.Category) bool {
		for _, it := range items {
			if lex.InCategory(cat, it) {
				return true
			}
		}
		return false
	}

	var hints []string
	if has(lexicon.Chickpea) {
		hints = append(hints, "Chickpea")
	}
	if has(lexicon.Coconut) {
		hints = append(hints, "Coconut")
	}

	dish, energy := "Stew", EnergyHob
	switch {
	case has(lexicon.Pasta) && explore:
		dish = "Pasta Skillet"
	case has(lexicon.Pasta):
		dish = "Pasta"
	case has(lexicon.Coconut) && explore:
		dish = "Curry Skillet"
	case has(lexicon.Coconut):
		dish = "Curry"
	case explore:
		dish, energy = "Traybake", EnergyOven
	}

	title := "Pantry " + dish
	if len(hints) > 0 {
		title = "Pantry " + strings.Join(hints, " & ") + " " + dish
	}

	ingredients := make([]Ingredient, 0, len(items)+len(flavorBase))
	for _, it := range items {
		ingredients = append(ingredients, Ingredient{Name: it, Have: true})
	}
	for _, fb := range flavorBase {
		held := false
		for _, t := range fb.terms {
			if p.Has(t) {
				held = true
				break
			}
		}
		if !held {
			ingredients = append(ingredients, Ingredient{Name: fb.name, Have: false})
		}
	}

	steps := make([]Step, len(emergencySteps))
	for i, text := range emergencySteps {
		steps[i] = Step{ID: fmt.Sprintf("s%d", i+1), Text: text}
	}
	if energy == EnergyOven {
		steps[3].Text = "Tip everything into a roasting tin with a splash of stock and bake at 200C for 20 minutes."
	}

	return Recipe{
		ID:          EmergencyID,
		Title:       title,
		Time:        25,
		Cost:        3.5,
		Energy:      energy,
		Ingredients: ingredients,
		Steps:       steps,
		Badges:      []Badge{BadgeLocal},
	}
}
