package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pantry-chef/internal/core/lexicon"
	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/metrics"
	"pantry-chef/internal/pkg/common"
)

const (
	ProviderVision = "vision"
	ProviderSearch = "search"
	ProviderLLM    = "llm"
)

// Options timing and sizing of the suggestion pipeline
type Options struct {
	Watchdog          time.Duration
	VisionTimeout     time.Duration
	SearchTimeout     time.Duration
	GenerativeTimeout time.Duration
	MaxRecipes        int
}

// DefaultOptions returns the production budgets.
func DefaultOptions() Options {
	return Options{
		Watchdog:          25 * time.Second,
		VisionTimeout:     6 * time.Second,
		SearchTimeout:     8 * time.Second,
		GenerativeTimeout: 12 * time.Second,
		MaxRecipes:        3,
	}
}

// Providers are the upstream collaborators. A nil provider is reported as skipped.
type Providers struct {
	Labeler   ImageLabeler
	Searcher  RecipeSearcher
	Generator RecipeGenerator
}

// SuggestionService turns a photo or an ingredient list into a pantry and a short list of
// dinner suggestions.
type SuggestionService struct {
	lex        *lexicon.Lexicon
	normalizer *pantry.Normalizer
	filter     *Filter
	providers  Providers
	opts       Options
}

// NewSuggestionService creates the service. Zero-valued options fall back to the defaults.
func NewSuggestionService(lex *lexicon.Lexicon, providers Providers, opts Options) *SuggestionService {
	def := DefaultOptions()
	if opts.Watchdog <= 0 {
		opts.Watchdog = def.Watchdog
	}
	if opts.VisionTimeout <= 0 {
		opts.VisionTimeout = def.VisionTimeout
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = def.SearchTimeout
	}
	if opts.GenerativeTimeout <= 0 {
		opts.GenerativeTimeout = def.GenerativeTimeout
	}
	if opts.MaxRecipes <= 0 {
		opts.MaxRecipes = def.MaxRecipes
	}

	norm := pantry.NewNormalizer(lex)
	return &SuggestionService{
		lex:        lex,
		normalizer: norm,
		filter:     NewFilter(lex, norm),
		providers:  providers,
		opts:       opts,
	}
}

// Normalizer exposes the pantry normalizer the service uses.
func (s *SuggestionService) Normalizer() *pantry.Normalizer {
	return s.normalizer
}

// Suggest runs the whole pipeline under the watchdog. The only error it returns is a
// client input error; every upstream failure degrades into the result.
func (s *SuggestionService) Suggest(ctx context.Context, req Request) (*ResultSet, error) {
	if len(req.Image) == 0 && !req.HasOverride() {
		return nil, common.ErrMissingInput
	}
	req.Prefs = req.Prefs.withDefaults()

	start := time.Now()
	wctx, cancel := context.WithTimeout(ctx, s.opts.Watchdog)
	defer cancel()

	done := make(chan *ResultSet, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				common.LogError("suggestion pipeline panicked",
					zap.Any("panic", r),
					zap.String("request_id", req.RequestID),
				)
				done <- s.fallback(req, start, false)
			}
		}()
		done <- s.run(wctx, req, start)
	}()

	select {
	case rs := <-done:
		return rs, nil
	case <-wctx.Done():
		if !errors.Is(wctx.Err(), context.DeadlineExceeded) {
			// caller went away; nobody reads this result
			common.LogDebug("request cancelled before suggestions were ready",
				zap.String("request_id", req.RequestID),
				zap.Error(wctx.Err()),
			)
			return s.fallback(req, start, false), nil
		}
		metrics.WatchdogFiredTotal.Inc()
		common.LogWarn("watchdog fired, returning emergency recipe",
			zap.String("request_id", req.RequestID),
			zap.Duration("budget", s.opts.Watchdog),
			zap.Error(wctx.Err()),
		)
		return s.fallback(req, start, true), nil
	}
}

func (s *SuggestionService) run(ctx context.Context, req Request, start time.Time) *ResultSet {
	diag := Diagnostics{
		Providers: make(map[string]ProviderStatus),
		RequestID: req.RequestID,
	}

	p := s.acquirePantry(ctx, req, &diag)
	diag.CleanedPantry = p.Items()
	rs := &ResultSet{Pantry: p}

	if req.Prefs.PantryOnly {
		diag.TotalMs = time.Since(start).Milliseconds()
		rs.Debug = diag
		return rs
	}

	q := Query{Pantry: p, Prefs: req.Prefs}
	var (
		web, llm               []Recipe
		webRelaxed, llmRelaxed bool
		webStatus, llmStatus   ProviderStatus
		webTime, llmTime       time.Duration
	)

	// each branch owns its variables; neither cancels the other
	var g errgroup.Group
	g.Go(func() error {
		t := time.Now()
		cands, err := s.search(ctx, q)
		webTime = time.Since(t)
		webStatus = StatusOf(err, len(cands))
		s.logProvider(ProviderSearch, webStatus, webTime, err, req.RequestID)
		web, webRelaxed = s.filter.Apply(cands, p, req.Prefs)
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		cands, err := s.generate(ctx, q)
		llmTime = time.Since(t)
		llmStatus = StatusOf(err, len(cands))
		s.logProvider(ProviderLLM, llmStatus, llmTime, err, req.RequestID)
		llm, llmRelaxed = s.filter.Apply(cands, p, req.Prefs)
		return nil
	})
	_ = g.Wait()

	diag.Providers[ProviderSearch] = webStatus
	diag.Providers[ProviderLLM] = llmStatus
	diag.Timings.SearchMs = webTime.Milliseconds()
	diag.Timings.LLMMs = llmTime.Milliseconds()
	diag.UsedLLM = llmStatus != StatusSkipped
	diag.Relaxed = webRelaxed || llmRelaxed
	if diag.Relaxed {
		metrics.FilterRelaxedTotal.Inc()
	}

	rs.Recipes = Merge(s.opts.MaxRecipes, web, llm)
	if len(rs.Recipes) == 0 {
		rs.Recipes = []Recipe{Emergency(s.lex, p, req.Prefs.Explore)}
	}
	countRecipes(rs.Recipes)

	diag.TotalMs = time.Since(start).Milliseconds()
	rs.Debug = diag

	common.LogInfo("suggestions ready",
		zap.String("request_id", req.RequestID),
		zap.String("source", diag.Source),
		zap.Int("pantry_size", p.Len()),
		zap.Int("recipes", len(rs.Recipes)),
		zap.Bool("relaxed", diag.Relaxed),
		zap.Int64("total_ms", diag.TotalMs),
	)
	return rs
}

// acquirePantry builds the pantry from the override list when present, else from the
// image labels. It never fails; a labeling failure yields an empty pantry.
func (s *SuggestionService) acquirePantry(ctx context.Context, req Request, diag *Diagnostics) pantry.Pantry {
	t := time.Now()
	defer func() { diag.Timings.PantryMs = time.Since(t).Milliseconds() }()

	if req.HasOverride() {
		diag.Source = SourceOverride
		diag.RawTokens = len(req.PantryOverride)
		return s.normalizer.Normalize(req.PantryOverride)
	}

	diag.Source = SourceImage
	tokens, err := s.label(ctx, req.Image)
	status := StatusOf(err, len(tokens))
	diag.Providers[ProviderVision] = status
	s.logProvider(ProviderVision, status, time.Since(t), err, req.RequestID)

	diag.RawTokens = len(tokens)
	return s.normalizer.Normalize(tokens)
}

func (s *SuggestionService) label(ctx context.Context, img []byte) (tokens []string, err error) {
	defer recoverProvider(&err)
	if s.providers.Labeler == nil {
		return nil, ErrProviderSkipped
	}
	cctx, cancel := context.WithTimeout(ctx, s.opts.VisionTimeout)
	defer cancel()
	tokens, err = s.providers.Labeler.Label(cctx, img)
	return tokens, timeoutErr(cctx, err)
}

func (s *SuggestionService) search(ctx context.Context, q Query) (cands []Candidate, err error) {
	defer recoverProvider(&err)
	if s.providers.Searcher == nil {
		return nil, ErrProviderSkipped
	}
	cctx, cancel := context.WithTimeout(ctx, s.opts.SearchTimeout)
	defer cancel()
	cands, err = s.providers.Searcher.Search(cctx, q)
	return cands, timeoutErr(cctx, err)
}

func (s *SuggestionService) generate(ctx context.Context, q Query) (cands []Candidate, err error) {
	defer recoverProvider(&err)
	if s.providers.Generator == nil {
		return nil, ErrProviderSkipped
	}
	cctx, cancel := context.WithTimeout(ctx, s.opts.GenerativeTimeout)
	defer cancel()
	cands, err = s.providers.Generator.Generate(cctx, q)
	return cands, timeoutErr(cctx, err)
}

// recoverProvider turns a panicking provider into a failed call.
func recoverProvider(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: panic: %v", ErrProviderFailed, r)
	}
}

// timeoutErr tags err as a timeout when the call's own deadline expired.
func timeoutErr(ctx context.Context, err error) error {
	if err == nil || errors.Is(err, ErrProviderTimeout) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrProviderTimeout, err)
	}
	return err
}

// fallback is the response used when the pipeline cannot finish: an empty pantry and the
// emergency recipe.
func (s *SuggestionService) fallback(req Request, start time.Time, watchdog bool) *ResultSet {
	empty := pantry.New()
	source := SourceWatchdog
	if !watchdog {
		source = SourceImage
		if req.HasOverride() {
			source = SourceOverride
		}
	}
	recipes := []Recipe{Emergency(s.lex, empty, req.Prefs.Explore)}
	countRecipes(recipes)
	return &ResultSet{
		Pantry:  empty,
		Recipes: recipes,
		Debug: Diagnostics{
			Source:        source,
			CleanedPantry: []string{},
			Providers:     map[string]ProviderStatus{},
			Watchdog:      watchdog,
			TotalMs:       time.Since(start).Milliseconds(),
			RequestID:     req.RequestID,
		},
	}
}

// Merge keeps list order, drops repeated ids and stops at limit.
func Merge(limit int, lists ...[]Recipe) []Recipe {
	seen := make(map[string]struct{})
	out := make([]Recipe, 0, limit)
	for _, list := range lists {
		for _, r := range list {
			if len(out) >= limit {
				return out
			}
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}

func countRecipes(recipes []Recipe) {
	for _, r := range recipes {
		for _, b := range r.Badges {
			metrics.RecipesReturnedTotal.WithLabelValues(string(b)).Inc()
		}
	}
}

func (s *SuggestionService) logProvider(provider string, status ProviderStatus, d time.Duration, err error, requestID string) {
	metrics.ObserveProvider(provider, string(status), d)
	if status == StatusSkipped {
		err = nil
	}
	common.LogProviderCall(provider, string(status), d, err, requestID)
}
