package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pantry-chef/internal/core/cache"
	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/core/recipe"
	"pantry-chef/internal/infrastructure/config"
)

const sampleBody = `{
  "results": [
    {
      "id": 716429,
      "title": "Chickpea Tomato Stew",
      "readyInMinutes": 25,
      "servings": 4,
      "pricePerServing": 123.456,
      "usedIngredientCount": 3,
      "missedIngredientCount": 1,
      "dishTypes": ["main course", "dinner"],
      "usedIngredients": [{"name": "Chickpeas"}, {"name": "tomatoes"}, {"name": "onion"}],
      "missedIngredients": [{"name": "cumin"}, {"name": "onion"}],
      "analyzedInstructions": [{"steps": [{"number": 1, "step": "Fry the onion."}, {"number": 2, "step": " "}, {"number": 3, "step": "Simmer everything."}]}]
    },
    {"id": 0, "title": "No id"},
    {"id": 42, "title": "  "},
    {"id": 7, "title": "Plain Rice", "extendedIngredients": [{"name": "rice"}]}
  ],
  "totalResults": 4
}`

func newTestClient(url string, store cache.Store) *Client {
	return NewClient(config.SearchConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Timeout: 2 * time.Second,
		Number:  5,
	}, store)
}

func testQuery(explore bool) recipe.Query {
	prefs := recipe.DefaultPreferences()
	prefs.Time = 20
	prefs.Diet = recipe.DietPescatarian
	prefs.Explore = explore
	return recipe.Query{Pantry: pantry.New("chickpeas", "tomatoes", "onion"), Prefs: prefs}
}

func TestSearchParsesResults(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != complexSearchPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	cands, err := newTestClient(srv.URL, nil).Search(context.Background(), testQuery(false))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	wantParams := map[string]string{
		"apiKey":             "test-key",
		"includeIngredients": "chickpeas,onion,tomatoes",
		"maxReadyTime":       "30",
		"diet":               "pescetarian",
		"sort":               "max-used-ingredients",
		"number":             "5",
		"type":               "main course",
	}
	for k, want := range wantParams {
		if gotQuery[k] != want {
			t.Errorf("param %s = %q, want %q", k, gotQuery[k], want)
		}
	}

	if len(cands) != 2 {
		t.Fatalf("got %d candidates, want 2: %+v", len(cands), cands)
	}
	c := cands[0]
	if c.ID != "spoonacular:716429" || c.Badge != recipe.BadgeWeb {
		t.Errorf("identity = %q %q", c.ID, c.Badge)
	}
	if c.ReadyInMinutes != 25 || !c.CountsKnown || c.UsedCount != 3 || c.MissingCount != 1 {
		t.Errorf("counts = %+v", c)
	}
	if c.Cost != 2.47 {
		t.Errorf("cost = %v, want 2.47 for two servings", c.Cost)
	}
	if len(c.Ingredients) != 4 || c.Ingredients[0] != "chickpeas" {
		t.Errorf("ingredients = %v", c.Ingredients)
	}
	if len(c.Steps) != 2 {
		t.Errorf("steps = %v", c.Steps)
	}

	rice := cands[1]
	if rice.CountsKnown || rice.ReadyInMinutes != 0 || rice.Cost != 0 {
		t.Errorf("missing fields should stay zero: %+v", rice)
	}
	if len(rice.Ingredients) != 1 || rice.Ingredients[0] != "rice" {
		t.Errorf("extended ingredients fallback = %v", rice.Ingredients)
	}
}

func TestSearchExploreSortsRandomly(t *testing.T) {
	var sort string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sort = r.URL.Query().Get("sort")
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	cands, err := newTestClient(srv.URL, nil).Search(context.Background(), testQuery(true))
	if err != nil {
		t.Fatal(err)
	}
	if sort != "random" {
		t.Errorf("sort = %q, want random", sort)
	}
	if len(cands) != 0 {
		t.Errorf("expected no candidates, got %d", len(cands))
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   error
		wantCalls int32
	}{
		{"server error is retried once", http.StatusInternalServerError, `{}`, recipe.ErrProviderFailed, 2},
		{"quota exceeded", http.StatusPaymentRequired, `{"status":"failure"}`, recipe.ErrProviderFailed, 1},
		{"malformed body", http.StatusOK, `<html>`, recipe.ErrUnparsable, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, nil).Search(context.Background(), testQuery(false))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestSearchUsesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	store := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 10, TTL: time.Minute})
	defer store.Close()
	client := newTestClient(srv.URL, store)

	ctx := context.Background()
	first, err := client.Search(ctx, testQuery(false))
	if err != nil {
		t.Fatal(err)
	}
	second, err := client.Search(ctx, testQuery(false))
	if err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
	if len(second) != len(first) || second[0].ID != first[0].ID || second[0].Cost != first[0].Cost {
		t.Errorf("cached candidates differ: %+v vs %+v", second, first)
	}

	// explore bypasses the cache
	if _, err := client.Search(ctx, testQuery(true)); err != nil {
		t.Fatal(err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("explore should hit upstream, calls = %d", calls)
	}
}

func TestSearchEmptyPantry(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", nil)
	cands, err := client.Search(context.Background(), recipe.Query{Pantry: pantry.New(), Prefs: recipe.DefaultPreferences()})
	if err != nil || len(cands) != 0 {
		t.Errorf("empty pantry = %v, %v", cands, err)
	}
}

func TestEstimateCost(t *testing.T) {
	price := func(v float64) *float64 { return &v }
	tests := []struct {
		price    *float64
		servings int
		want     float64
	}{
		{nil, 2, 0},
		{price(-5), 2, 0},
		{price(150), 2, 3},
		{price(99.5), 1, 1},
		{price(80), 0, 1.6},
	}
	for _, tt := range tests {
		if got := estimateCost(tt.price, tt.servings); got != tt.want {
			t.Errorf("estimateCost(%v, %d) = %v, want %v", tt.price, tt.servings, got, tt.want)
		}
	}
}
