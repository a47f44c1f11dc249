package search

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"pantry-chef/internal/core/cache"
	"pantry-chef/internal/core/recipe"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"
)

const (
	complexSearchPath = "/recipes/complexSearch"
	idPrefix          = "spoonacular:"
	cacheNamespace    = "search"
)

// Client queries Spoonacular's complexSearch endpoint.
type Client struct {
	client *resty.Client
	apiKey string
	number int
	cache  cache.Store
}

// NewClient creates the search client. store may be nil.
func NewClient(cfg config.SearchConfig, store cache.Store) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err == nil && r.StatusCode() >= http.StatusInternalServerError
		})

	number := cfg.Number
	if number <= 0 {
		number = 10
	}
	return &Client{
		client: client,
		apiKey: cfg.APIKey,
		number: number,
		cache:  store,
	}
}

// Search returns candidates that use the pantry, filtered upstream by the time cap
// and diet.
func (c *Client) Search(ctx context.Context, q recipe.Query) ([]recipe.Candidate, error) {
	if q.Pantry.IsEmpty() {
		return nil, nil
	}

	// random ordering is not worth caching
	cacheable := !q.Prefs.Explore
	key := cacheKey(q)
	if cacheable {
		var cached []recipe.Candidate
		if cache.GetJSON(ctx, c.cache, key, &cached) {
			common.LogDebug("search cache hit", zap.Int("candidates", len(cached)))
			return cached, nil
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(c.params(q)).
		Get(complexSearchPath)
	if err != nil {
		return nil, fmt.Errorf("%w: search request: %v", recipe.ErrProviderFailed, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: search returned status %d", recipe.ErrProviderFailed, resp.StatusCode())
	}

	cands, err := parseResults(resp.Body(), q.Prefs.Servings)
	if err != nil {
		return nil, err
	}

	if cacheable {
		cache.SetJSON(ctx, c.cache, key, cands)
	}
	return cands, nil
}

func (c *Client) params(q recipe.Query) map[string]string {
	sort := "max-used-ingredients"
	if q.Prefs.Explore {
		sort = "random"
	}
	params := map[string]string{
		"apiKey":               c.apiKey,
		"includeIngredients":   strings.Join(q.Pantry.Items(), ","),
		"fillIngredients":      "true",
		"addRecipeInformation": "true",
		"instructionsRequired": "true",
		"ignorePantry":         "true",
		"type":                 "main course",
		"maxReadyTime":         strconv.Itoa(recipe.TimeCap(q.Prefs.Time)),
		"sort":                 sort,
		"number":               strconv.Itoa(c.number),
	}
	if diet := dietParam(q.Prefs.Diet); diet != "" {
		params["diet"] = diet
	}
	return params
}

func dietParam(d recipe.Diet) string {
	switch d {
	case recipe.DietVegetarian:
		return "vegetarian"
	case recipe.DietVegan:
		return "vegan"
	case recipe.DietPescatarian:
		return "pescetarian"
	default:
		return ""
	}
}

func cacheKey(q recipe.Query) string {
	return cache.Key(cacheNamespace,
		q.Pantry.String(),
		strconv.Itoa(recipe.TimeCap(q.Prefs.Time)),
		string(q.Prefs.Diet),
		strconv.Itoa(q.Prefs.Servings),
	)
}

type searchResponse struct {
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"totalResults"`
}

type searchResult struct {
	ID                    int64                 `json:"id"`
	Title                 string                `json:"title"`
	ReadyInMinutes        *float64              `json:"readyInMinutes"`
	Servings              *float64              `json:"servings"`
	PricePerServing       *float64              `json:"pricePerServing"`
	UsedIngredientCount   *int                  `json:"usedIngredientCount"`
	MissedIngredientCount *int                  `json:"missedIngredientCount"`
	DishTypes             []string              `json:"dishTypes"`
	UsedIngredients       []ingredient          `json:"usedIngredients"`
	MissedIngredients     []ingredient          `json:"missedIngredients"`
	ExtendedIngredients   []ingredient          `json:"extendedIngredients"`
	AnalyzedInstructions  []analyzedInstruction `json:"analyzedInstructions"`
}

type ingredient struct {
	Name string `json:"name"`
}

type analyzedInstruction struct {
	Steps []struct {
		Number int    `json:"number"`
		Step   string `json:"step"`
	} `json:"steps"`
}

// parseResults validates the response and converts each usable result. Results without
// an id or title are skipped rather than failing the batch.
func parseResults(body []byte, servings int) ([]recipe.Candidate, error) {
	var sr searchResponse
	if err := common.ParseJSONBytes(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: search body: %v", recipe.ErrUnparsable, err)
	}

	cands := make([]recipe.Candidate, 0, len(sr.Results))
	for _, r := range sr.Results {
		title := strings.TrimSpace(r.Title)
		if r.ID <= 0 || title == "" {
			continue
		}
		c := recipe.Candidate{
			ID:          idPrefix + strconv.FormatInt(r.ID, 10),
			Title:       title,
			DishTypes:   r.DishTypes,
			Ingredients: ingredientNames(r),
			Steps:       stepTexts(r.AnalyzedInstructions),
			Badge:       recipe.BadgeWeb,
		}
		if r.ReadyInMinutes != nil && *r.ReadyInMinutes > 0 {
			c.ReadyInMinutes = int(math.Round(*r.ReadyInMinutes))
		}
		if r.UsedIngredientCount != nil && r.MissedIngredientCount != nil {
			c.UsedCount = *r.UsedIngredientCount
			c.MissingCount = *r.MissedIngredientCount
			c.CountsKnown = true
		}
		c.Cost = estimateCost(r.PricePerServing, servings)
		cands = append(cands, c)
	}
	return cands, nil
}

// estimateCost pricePerServing is in cents.
func estimateCost(pricePerServing *float64, servings int) float64 {
	if pricePerServing == nil || *pricePerServing <= 0 {
		return 0
	}
	if servings <= 0 {
		servings = recipe.DefaultServings
	}
	return math.Round(*pricePerServing*float64(servings)) / 100
}

func ingredientNames(r searchResult) []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(list []ingredient) {
		for _, ing := range list {
			n := strings.ToLower(strings.TrimSpace(ing.Name))
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	add(r.UsedIngredients)
	add(r.MissedIngredients)
	if len(names) == 0 {
		add(r.ExtendedIngredients)
	}
	return names
}

func stepTexts(instructions []analyzedInstruction) []string {
	var steps []string
	for _, in := range instructions {
		for _, s := range in.Steps {
			if text := strings.TrimSpace(s.Step); text != "" {
				steps = append(steps, text)
			}
		}
	}
	return steps
}
