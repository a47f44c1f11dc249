package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"pantry-chef/internal/core/recipe"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	idPrefix       = "llm:"
	maxSteps       = 12
)

// Generator asks an OpenAI-compatible chat model for dinner recipes built around the pantry.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewGenerator creates the generator. cfg.BaseURL defaults to OpenRouter.
func NewGenerator(cfg config.GenerativeConfig) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	// OpenRouter ranks apps by these headers
	clientCfg.HTTPClient = &http.Client{
		Transport: &headerTransport{
			base: http.DefaultTransport,
			headers: map[string]string{
				"HTTP-Referer": "https://pantry-chef.app",
				"X-Title":      "Pantry Chef",
			},
		},
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1200
	}
	return &Generator{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// Generate implements recipe.RecipeGenerator. A failed call is retried once unless the
// model answered with something unusable or the request was rejected outright.
func (g *Generator) Generate(ctx context.Context, q recipe.Query) ([]recipe.Candidate, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Temperature: temperature(q.Prefs.Explore),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(q)},
		},
	}

	var cands []recipe.Candidate
	err := common.RetryOnce(ctx, func(ctx context.Context) error {
		start := time.Now()
		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return parseAPIError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: no choices in completion", recipe.ErrProviderFailed)
		}

		common.LogDebug("completion received",
			zap.String("model", resp.Model),
			zap.Int("prompt_tokens", resp.Usage.PromptTokens),
			zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			zap.Duration("latency", time.Since(start)),
		)

		parsed, err := ParseCandidates(resp.Choices[0].Message.Content)
		if err != nil {
			return common.NoRetry(err)
		}
		cands = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cands, nil
}

func temperature(explore bool) float32 {
	if explore {
		return 0.9
	}
	return 0.4
}

// parseAPIError maps client errors to the provider sentinels. Rejected requests other
// than rate limiting are not worth repeating.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		wrapped := fmt.Errorf("%w: completion API error %d: %s", recipe.ErrProviderFailed, reqErr.HTTPStatusCode, truncate(string(reqErr.Body), 200))
		return retryable(reqErr.HTTPStatusCode, wrapped)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		wrapped := fmt.Errorf("%w: completion API error %d: %s", recipe.ErrProviderFailed, apiErr.HTTPStatusCode, apiErr.Message)
		return retryable(apiErr.HTTPStatusCode, wrapped)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", recipe.ErrProviderTimeout, err)
	}
	return fmt.Errorf("%w: completion request: %v", recipe.ErrProviderFailed, err)
}

func retryable(status int, err error) error {
	if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
		return common.NoRetry(err)
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// generatedRecipe is the shape the prompt asks for. Models drift, so every field is
// decoded loosely.
type generatedRecipe struct {
	Title          string      `json:"title"`
	ReadyInMinutes looseNumber `json:"readyInMinutes"`
	Time           looseNumber `json:"time"`
	Cost           looseNumber `json:"cost"`
	Energy         string      `json:"energy"`
	Ingredients    looseList   `json:"ingredients"`
	Steps          looseList   `json:"steps"`
}

type generatedBatch struct {
	Recipes []generatedRecipe `json:"recipes"`
}

// ParseCandidates extracts recipes from model output. It accepts either
// {"recipes": [...]} or a single recipe object, optionally wrapped in prose or fences.
func ParseCandidates(content string) ([]recipe.Candidate, error) {
	raw, ok := common.ExtractJSONObject(content)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in model output", recipe.ErrUnparsable)
	}

	var batch generatedBatch
	if err := common.ParseJSON(raw, &batch); err != nil {
		if err2 := common.ParseJSON(common.QuoteJSONKeys(raw), &batch); err2 != nil {
			return nil, fmt.Errorf("%w: %v", recipe.ErrUnparsable, err)
		}
		raw = common.QuoteJSONKeys(raw)
	}

	recipes := batch.Recipes
	if len(recipes) == 0 {
		var single generatedRecipe
		if err := common.ParseJSON(raw, &single); err == nil && strings.TrimSpace(single.Title) != "" {
			recipes = []generatedRecipe{single}
		}
	}

	cands := make([]recipe.Candidate, 0, len(recipes))
	for _, r := range recipes {
		if c, ok := r.candidate(); ok {
			cands = append(cands, c)
		}
	}
	if len(recipes) > 0 && len(cands) == 0 {
		return nil, fmt.Errorf("%w: no usable recipe in model output", recipe.ErrUnparsable)
	}
	return cands, nil
}

func (r generatedRecipe) candidate() (recipe.Candidate, bool) {
	title := strings.TrimSpace(r.Title)
	if title == "" || len(r.Ingredients) == 0 {
		return recipe.Candidate{}, false
	}

	minutes := r.ReadyInMinutes
	if minutes <= 0 {
		minutes = r.Time
	}
	if minutes < 0 {
		minutes = 0
	}
	cost := float64(r.Cost)
	if cost < 0 {
		cost = 0
	}

	steps := []string(r.Steps)
	if len(steps) > maxSteps {
		steps = steps[:maxSteps]
	}

	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, strings.ToLower(ing))
	}

	return recipe.Candidate{
		ID:             idPrefix + recipe.Slug(title),
		Title:          title,
		Ingredients:    ingredients,
		ReadyInMinutes: int(minutes + 0.5),
		Cost:           cost,
		Energy:         recipe.Energy(strings.ToLower(strings.TrimSpace(r.Energy))),
		Steps:          steps,
		Badge:          recipe.BadgeLLM,
	}, true
}
