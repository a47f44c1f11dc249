package recipe

import (
	"testing"

	"pantry-chef/internal/core/lexicon"
	"pantry-chef/internal/core/pantry"
)

func newTestFilter() *Filter {
	lex := lexicon.Default()
	return NewFilter(lex, pantry.NewNormalizer(lex))
}

func prefsWithTime(minutes int) Preferences {
	p := DefaultPreferences()
	p.Time = minutes
	return p
}

func TestEvaluate(t *testing.T) {
	f := newTestFilter()
	chickpeaPantry := pantry.New("chickpeas", "tomatoes", "onion", "garlic")

	tests := []struct {
		name      string
		cand      Candidate
		pantry    pantry.Pantry
		prefs     Preferences
		level     Strictness
		wantOK    bool
		wantStage string
	}{
		{
			name: "admissible curry",
			cand: Candidate{
				Title:          "Chickpea and Tomato Curry",
				Ingredients:    []string{"chickpeas", "tomatoes", "onion", "coconut milk", "garam masala"},
				ReadyInMinutes: 30,
			},
			pantry: chickpeaPantry,
			prefs:  prefsWithTime(25),
			wantOK: true,
		},
		{
			name: "dessert rejected regardless of pantry",
			cand: Candidate{
				Title:       "Chocolate Fudge Brownies",
				Ingredients: []string{"chickpeas", "tomatoes", "onion", "garlic"},
			},
			pantry:    chickpeaPantry,
			prefs:     prefsWithTime(60),
			wantStage: "category",
		},
		{
			name: "drink dish type rejected",
			cand: Candidate{
				Title:       "Tomato Cooler",
				DishTypes:   []string{"beverage"},
				Ingredients: []string{"tomatoes", "onion"},
			},
			pantry:    chickpeaPantry,
			prefs:     prefsWithTime(60),
			wantStage: "category",
		},
		{
			name: "dessert rejected even when relaxed",
			cand: Candidate{
				Title:       "Chickpea Blondies",
				Ingredients: []string{"chickpeas", "sugar"},
			},
			pantry:    chickpeaPantry,
			prefs:     prefsWithTime(60),
			level:     Relaxed,
			wantStage: "category",
		},
		{
			name: "salmon without fish",
			cand: Candidate{
				Title:       "Grilled Salmon with Tomatoes",
				Ingredients: []string{"salmon", "tomatoes", "garlic"},
			},
			pantry:    chickpeaPantry,
			prefs:     prefsWithTime(30),
			wantStage: "protein",
		},
		{
			name: "salmon with salmon",
			cand: Candidate{
				Title:       "Grilled Salmon with Tomatoes",
				Ingredients: []string{"salmon fillets", "tomatoes", "garlic"},
			},
			pantry: pantry.New("salmon", "tomatoes", "garlic"),
			prefs:  prefsWithTime(30),
			wantOK: true,
		},
		{
			name: "shrimp title with prawns in pantry",
			cand: Candidate{
				Title:       "Garlic Shrimp Pasta",
				Ingredients: []string{"shrimp", "garlic", "spaghetti"},
			},
			pantry: pantry.New("prawns", "garlic", "spaghetti"),
			prefs:  prefsWithTime(30),
			wantOK: true,
		},
		{
			name: "too slow for requested time",
			cand: Candidate{
				Title:          "Chickpea Stew",
				Ingredients:    []string{"chickpeas", "tomatoes", "onion"},
				ReadyInMinutes: 50,
			},
			pantry:    chickpeaPantry,
			prefs:     prefsWithTime(20),
			wantStage: "time",
		},
		{
			name: "inside the buffer",
			cand: Candidate{
				Title:          "Chickpea Stew",
				Ingredients:    []string{"chickpeas", "tomatoes", "onion"},
				ReadyInMinutes: 30,
			},
			pantry: chickpeaPantry,
			prefs:  prefsWithTime(20),
			wantOK: true,
		},
		{
			name: "single shared ingredient",
			cand: Candidate{
				Title:       "Garlic Bread",
				Ingredients: []string{"bread", "garlic", "butter"},
			},
			pantry:    chickpeaPantry,
			prefs:     prefsWithTime(30),
			wantStage: "overlap",
		},
		{
			name: "provider counts are trusted",
			cand: Candidate{
				Title:        "Chickpea Salad",
				Ingredients:  []string{"chickpeas"},
				UsedCount:    3,
				MissingCount: 1,
				CountsKnown:  true,
			},
			pantry: chickpeaPantry,
			prefs:  prefsWithTime(30),
			wantOK: true,
		},
		{
			name: "ignores the specific pantry items",
			cand: Candidate{
				Title:       "Plain Boiled Rice",
				Ingredients: []string{"rice", "salt", "water"},
			},
			pantry:    pantry.New("chickpeas", "spinach", "rice", "salt"),
			prefs:     prefsWithTime(30),
			wantStage: "specific",
		},
		{
			name: "specific rule dropped when relaxed",
			cand: Candidate{
				Title:       "Plain Boiled Rice",
				Ingredients: []string{"rice", "salt", "water"},
			},
			pantry: pantry.New("chickpeas", "spinach", "rice", "salt"),
			prefs:  prefsWithTime(30),
			level:  Relaxed,
			wantOK: true,
		},
		{
			name: "mac and cheese needs dairy",
			cand: Candidate{
				Title:       "Easy Mac and Cheese",
				Ingredients: []string{"macaroni", "cheddar", "milk", "onion"},
			},
			pantry:    pantry.New("macaroni", "onion"),
			prefs:     prefsWithTime(30),
			wantStage: "special",
		},
		{
			name: "mac and cheese with cheddar",
			cand: Candidate{
				Title:       "Easy Mac and Cheese",
				Ingredients: []string{"macaroni", "cheddar", "milk", "onion"},
			},
			pantry: pantry.New("macaroni", "onion", "cheddar"),
			prefs:  prefsWithTime(30),
			wantOK: true,
		},
		{
			name: "omelette needs eggs",
			cand: Candidate{
				Title:       "Spinach Omelette",
				Ingredients: []string{"spinach", "onion", "eggs"},
			},
			pantry:    pantry.New("spinach", "onion"),
			prefs:     prefsWithTime(30),
			level:     Relaxed,
			wantStage: "special",
		},
		{
			name: "vegan accepts coconut milk",
			cand: Candidate{
				Title:       "Coconut Chickpea Curry",
				Ingredients: []string{"chickpeas", "coconut milk", "onion"},
			},
			pantry: pantry.New("chickpeas", "coconut milk", "onion"),
			prefs:  Preferences{Time: 30, Diet: DietVegan},
			wantOK: true,
		},
		{
			name: "vegan rejects cream",
			cand: Candidate{
				Title:       "Creamy Chickpea Korma",
				Ingredients: []string{"chickpeas", "cream", "onion"},
			},
			pantry:    pantry.New("chickpeas", "onion"),
			prefs:     Preferences{Time: 30, Diet: DietVegan},
			level:     Relaxed,
			wantStage: "diet",
		},
		{
			name: "vegetarian rejects chicken stock",
			cand: Candidate{
				Title:       "Chickpea Soup",
				Ingredients: []string{"chickpeas", "chicken stock", "onion"},
			},
			pantry:    pantry.New("chickpeas", "onion"),
			prefs:     Preferences{Time: 30, Diet: DietVegetarian},
			wantStage: "diet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, ok := f.Evaluate(tt.cand, tt.pantry, tt.prefs, tt.level)
			if ok != tt.wantOK {
				t.Fatalf("Evaluate() ok = %v (stage %q), want %v", ok, stage, tt.wantOK)
			}
			if !ok && stage != tt.wantStage {
				t.Errorf("rejected by %q, want %q", stage, tt.wantStage)
			}
		})
	}
}

func TestApplyRelaxesWhenStrictEmpties(t *testing.T) {
	f := newTestFilter()
	p := pantry.New("chickpeas", "spinach", "rice")
	cands := []Candidate{
		{ID: "web:1", Title: "Simple Fried Rice", Ingredients: []string{"rice", "soy sauce", "spring onions"}, Badge: BadgeWeb},
		{ID: "web:2", Title: "Rice Pudding", Ingredients: []string{"rice", "spinach", "chickpeas"}, Badge: BadgeWeb},
	}

	out, relaxed := f.Apply(cands, p, prefsWithTime(30))
	if !relaxed {
		t.Error("expected the relaxed pass to be used")
	}
	if len(out) != 1 || out[0].ID != "web:1" {
		t.Fatalf("Apply() = %+v, want only web:1", out)
	}
}

func TestApplyStrictDoesNotRelax(t *testing.T) {
	f := newTestFilter()
	p := pantry.New("chickpeas", "tomatoes", "onion")
	cands := []Candidate{
		{ID: "web:slow", Title: "Chickpea Tomato Stew", Ingredients: []string{"chickpeas", "tomatoes"}, ReadyInMinutes: 55},
		{ID: "web:fast", Title: "Chickpea Tomato Stew", Ingredients: []string{"chickpeas", "tomatoes"}, ReadyInMinutes: 15},
		{ID: "web:one", Title: "Onion Soup", Ingredients: []string{"onion", "stock"}},
	}

	out, relaxed := f.Apply(cands, p, prefsWithTime(60))
	if relaxed {
		t.Error("strict pass had results; relaxed should not run")
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].ID != "web:fast" {
		t.Errorf("best first: got %s", out[0].ID)
	}
	if *out[0].Score < *out[1].Score {
		t.Error("results not sorted by score")
	}
}

func TestApplyEmptyInput(t *testing.T) {
	out, relaxed := newTestFilter().Apply(nil, pantry.New("rice"), DefaultPreferences())
	if len(out) != 0 || relaxed {
		t.Errorf("Apply(nil) = %v, %v", out, relaxed)
	}
}

func TestAnnotation(t *testing.T) {
	f := newTestFilter()
	p := pantry.New("chickpeas", "tomatoes", "garlic")
	out, _ := f.Apply([]Candidate{{
		ID:          "web:42",
		Title:       "Chickpea Shakshuka",
		Ingredients: []string{"canned chickpeas", "tomato", "2 cloves garlic", "feta"},
		Steps:       []string{"Fry the garlic.", "", "Bake for 10 minutes."},
		Badge:       BadgeWeb,
	}}, p, prefsWithTime(30))
	if len(out) != 1 {
		t.Fatalf("expected candidate to pass, got %d", len(out))
	}

	r := out[0]
	want := map[string]bool{"canned chickpeas": true, "tomato": true, "2 cloves garlic": true, "feta": false}
	for _, ing := range r.Ingredients {
		if ing.Have != want[ing.Name] {
			t.Errorf("%q have = %v, want %v", ing.Name, ing.Have, want[ing.Name])
		}
	}
	if len(r.Steps) != 2 || r.Steps[1].ID != "s2" {
		t.Errorf("steps = %+v", r.Steps)
	}
	if r.Energy != EnergyOven {
		t.Errorf("energy = %q, want oven", r.Energy)
	}
	if r.Time != 30 {
		t.Errorf("unknown ready time should fall back to the preference, got %d", r.Time)
	}
	if !r.HasBadge(BadgeWeb) {
		t.Error("missing web badge")
	}
}

func TestAnnotationResolvedNameDecides(t *testing.T) {
	f := newTestFilter()
	p := pantry.New("milk", "chicken")
	cand := Candidate{
		ID:          "llm:thai-noodle-soup",
		Title:       "Thai Noodle Soup",
		Ingredients: []string{"coconut milk", "chicken stock", "noodles"},
		Badge:       BadgeLLM,
	}

	stage, ok := f.Evaluate(cand, p, prefsWithTime(30), Strict)
	if ok || stage != "overlap" {
		t.Errorf("Evaluate() = %q, %v; want rejected by overlap", stage, ok)
	}

	e := f.evaluate(&cand, p, prefsWithTime(30))
	for _, ing := range e.ingredients {
		if ing.Have {
			t.Errorf("%q marked as owned with pantry %v", ing.Name, p.Items())
		}
	}
	if e.used != 0 || e.missing != 3 {
		t.Errorf("used/missing = %d/%d, want 0/3", e.used, e.missing)
	}
}

func TestCategoryWordsNeedTheirSense(t *testing.T) {
	f := newTestFilter()
	p := pantry.New("chicken", "beef", "pork", "rice", "potatoes", "onion")

	savoury := []string{
		"Manhattan Clam Chowder",
		"Old Fashioned Beef Stew",
		"Steak and Kidney Pudding",
		"Lemon Juice Roast Chicken",
		"Shake and Bake Pork Chops",
		"Tea-Smoked Chicken",
		"Coffee-Rubbed Beef",
		"Thai Chicken Rice with Fish Sauce",
	}
	for _, title := range savoury {
		c := Candidate{Title: title, Ingredients: []string{"chicken", "beef", "pork", "rice", "fish sauce"}}
		if stage, ok := f.Evaluate(c, p, prefsWithTime(60), Relaxed); !ok && (stage == "category" || stage == "protein") {
			t.Errorf("%q rejected by %q", title, stage)
		}
	}

	sweet := []string{"Sticky Toffee Pudding", "Fresh Orange Juice", "Old Fashioned Cocktail", "Iced Tea"}
	for _, title := range sweet {
		c := Candidate{Title: title, Ingredients: []string{"chicken", "rice"}}
		if stage, ok := f.Evaluate(c, p, prefsWithTime(60), Relaxed); ok || stage != "category" {
			t.Errorf("%q = %q, %v; want rejected by category", title, stage, ok)
		}
	}
}

func TestFishSauceIsNotProtein(t *testing.T) {
	f := newTestFilter()
	c := Candidate{
		Title:       "Thai Chicken Rice with Fish Sauce",
		Ingredients: []string{"chicken", "rice", "fish sauce"},
	}
	if stage, ok := f.Evaluate(c, pantry.New("chicken", "rice"), prefsWithTime(30), Strict); !ok {
		t.Errorf("rejected by %q", stage)
	}

	c.Title = "Salmon Rice Bowl with Fish Sauce"
	if stage, ok := f.Evaluate(c, pantry.New("chicken", "rice"), prefsWithTime(30), Strict); ok || stage != "protein" {
		t.Errorf("Evaluate() = %q, %v; want rejected by protein", stage, ok)
	}

	// still not vegetarian
	veg := Candidate{Title: "Vegetable Fried Rice", Ingredients: []string{"rice", "carrots", "fish sauce"}}
	prefs := prefsWithTime(30)
	prefs.Diet = DietVegetarian
	if stage, ok := f.Evaluate(veg, pantry.New("rice", "carrots"), prefs, Relaxed); ok || stage != "diet" {
		t.Errorf("vegetarian: Evaluate() = %q, %v; want rejected by diet", stage, ok)
	}
}

func TestScore(t *testing.T) {
	if got := Score(3, 2, 30); got != 0.5 {
		t.Errorf("Score(3, 2, 30) = %v, want 0.5", got)
	}
	if got := Score(0, 0, 0); got != 0.3 {
		t.Errorf("Score(0, 0, 0) = %v, want 0.3", got)
	}

	for missing := 0; missing < 5; missing++ {
		for ready := 0; ready <= 90; ready += 15 {
			for used := 0; used < 8; used++ {
				if Score(used+1, missing, ready) <= Score(used, missing, ready) {
					t.Errorf("score not increasing in used: used=%d missing=%d ready=%d", used, missing, ready)
				}
			}
		}
	}
	for used := 0; used < 6; used++ {
		for ready := 5; ready <= 120; ready += 5 {
			if Score(used, 2, ready-5) < Score(used, 2, ready) {
				t.Errorf("faster recipe scored lower: used=%d ready=%d", used, ready)
			}
		}
	}
	for used := 0; used < 20; used++ {
		if s := Score(used, 0, 0); s < 0 || s > 1 {
			t.Errorf("Score out of range: %v", s)
		}
	}
}

func TestTimeCap(t *testing.T) {
	tests := []struct{ in, want int }{{20, 30}, {0, 10}, {-5, 10}, {5, 15}, {240, 250}}
	for _, tt := range tests {
		if got := TimeCap(tt.in); got != tt.want {
			t.Errorf("TimeCap(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestInferEnergy(t *testing.T) {
	tests := []struct {
		declared Energy
		steps    []string
		pref     Energy
		want     Energy
	}{
		{EnergyMicrowave, []string{"Bake it."}, EnergyHob, EnergyMicrowave},
		{"Air-Fryer", nil, EnergyHob, EnergyAirFryer},
		{"", []string{"Preheat the air fryer to 180C."}, EnergyHob, EnergyAirFryer},
		{"", []string{"Microwave on high for 3 minutes."}, EnergyHob, EnergyMicrowave},
		{"", []string{"Roast the vegetables."}, EnergyHob, EnergyOven},
		{"", []string{"Simmer gently."}, EnergyMicrowave, EnergyMicrowave},
		{"", nil, "", EnergyHob},
	}
	for _, tt := range tests {
		if got := InferEnergy(tt.declared, tt.steps, tt.pref); got != tt.want {
			t.Errorf("InferEnergy(%q, %q, %q) = %q, want %q", tt.declared, tt.steps, tt.pref, got, tt.want)
		}
	}
}

func TestSlugAndMentions(t *testing.T) {
	if got := Slug("  Chickpea & Tomato Curry! "); got != "chickpea-tomato-curry" {
		t.Errorf("Slug() = %q", got)
	}
	if got := Slug("!!!"); got != "recipe" {
		t.Errorf("Slug(!!!) = %q", got)
	}
	if !mentions("One-pot chickpea curry", "chickpeas") {
		t.Error("singular title should mention plural item")
	}
	if !mentions("Tomato Soup", "tomatoes") {
		t.Error("tomato should mention tomatoes")
	}
	if mentions("Coconut rice", "coconut milk") {
		t.Error("partial phrase must not match")
	}
}
