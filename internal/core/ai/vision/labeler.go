package vision

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"pantry-chef/internal/core/cache"
	"pantry-chef/internal/core/recipe"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"
)

const (
	cacheNamespace = "vision"
	maxOCRWords    = 40
	minOCRWordLen  = 3
)

type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// Labeler turns a fridge or cupboard photo into free-text tokens using label detection,
// object localization and OCR.
type Labeler struct {
	client    annotator
	maxLabels int32
	minScore  float32
	cache     cache.Store
}

// NewLabeler connects to Cloud Vision with the configured API key or credentials file.
// store may be nil.
func NewLabeler(ctx context.Context, cfg config.VisionConfig, store cache.Store) (*Labeler, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return newLabeler(client, cfg, store), nil
}

func newLabeler(client annotator, cfg config.VisionConfig, store cache.Store) *Labeler {
	maxLabels := cfg.MaxLabels
	if maxLabels <= 0 {
		maxLabels = 30
	}
	return &Labeler{
		client:    client,
		maxLabels: int32(maxLabels),
		minScore:  float32(cfg.MinScore),
		cache:     store,
	}
}

// Label implements recipe.ImageLabeler.
func (l *Labeler) Label(ctx context.Context, img []byte) ([]string, error) {
	if len(img) == 0 {
		return nil, nil
	}

	key := cache.Key(cacheNamespace, cache.HashBytes(img))
	var cached []string
	if cache.GetJSON(ctx, l.cache, key, &cached) {
		return cached, nil
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image: &visionpb.Image{Content: img},
			Features: []*visionpb.Feature{
				{Type: visionpb.Feature_LABEL_DETECTION, MaxResults: l.maxLabels},
				{Type: visionpb.Feature_OBJECT_LOCALIZATION, MaxResults: l.maxLabels},
				{Type: visionpb.Feature_TEXT_DETECTION},
			},
		}},
	}
	resp, err := l.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: vision BatchAnnotateImages: %v", recipe.ErrProviderFailed, err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil, nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return nil, fmt.Errorf("%w: vision annotate error: %s", recipe.ErrProviderFailed, r0.Error.Message)
	}

	tokens := tokensFromResponse(r0, l.minScore)
	common.LogDebug("vision labels", zap.Int("tokens", len(tokens)))
	if len(tokens) > 0 {
		cache.SetJSON(ctx, l.cache, key, tokens)
	}
	return tokens, nil
}

// Close releases the underlying client.
func (l *Labeler) Close() error {
	return l.client.Close()
}

// tokensFromResponse collects confident labels and objects, then OCR words, lowercased and
// deduplicated in that order.
func tokensFromResponse(r *visionpb.AnnotateImageResponse, minScore float32) []string {
	seen := make(map[string]struct{})
	var tokens []string
	add := func(s string) {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		tokens = append(tokens, s)
	}

	for _, a := range r.GetLabelAnnotations() {
		if a.GetScore() >= minScore {
			add(a.GetDescription())
		}
	}
	for _, o := range r.GetLocalizedObjectAnnotations() {
		if o.GetScore() >= minScore {
			add(o.GetName())
		}
	}

	// the first text annotation is the full detected text
	if texts := r.GetTextAnnotations(); len(texts) > 0 {
		words := strings.FieldsFunc(texts[0].GetDescription(), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		n := 0
		for _, w := range words {
			if n >= maxOCRWords {
				break
			}
			if len([]rune(w)) < minOCRWordLen {
				continue
			}
			add(w)
			n++
		}
	}
	return tokens
}
