package recipe

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"pantry-chef/internal/core/pantry"
)

// Diet dietary restriction
type Diet string

const (
	DietNone        Diet = "none"
	DietVegetarian  Diet = "vegetarian"
	DietVegan       Diet = "vegan"
	DietPescatarian Diet = "pescatarian"
)

// Energy cooking energy mode
type Energy string

const (
	EnergyHob       Energy = "hob"
	EnergyOven      Energy = "oven"
	EnergyAirFryer  Energy = "air fryer"
	EnergyMicrowave Energy = "microwave"
)

// Badge provenance of a recipe
type Badge string

const (
	BadgeWeb   Badge = "web"
	BadgeLLM   Badge = "llm"
	BadgeLocal Badge = "local"
)

const (
	DefaultTime     = 30
	MinTime         = 5
	MaxTime         = 240
	DefaultServings = 2
	MaxServings     = 12
)

// Preferences per-request soft constraints, already defaulted and clamped.
type Preferences struct {
	Time       int    `json:"time"`
	Diet       Diet   `json:"diet"`
	EnergyMode Energy `json:"energyMode"`
	Servings   int    `json:"servings"`
	Explore    bool   `json:"explore"`
	PantryOnly bool   `json:"pantryOnly"`
}

// PrefsInput is the loosely typed request form of Preferences.
type PrefsInput struct {
	Time       *float64 `json:"time"`
	Diet       string   `json:"diet"`
	EnergyMode string   `json:"energyMode"`
	Servings   *float64 `json:"servings"`
	Explore    Flag     `json:"explore"`
	PantryOnly Flag     `json:"pantryOnly"`
}

// Resolve applies defaults and clamps out-of-range values.
func (in PrefsInput) Resolve() Preferences {
	p := Preferences{
		Time:       DefaultTime,
		Diet:       ParseDiet(in.Diet),
		EnergyMode: ParseEnergy(in.EnergyMode),
		Servings:   DefaultServings,
		Explore:    bool(in.Explore),
		PantryOnly: bool(in.PantryOnly),
	}
	if in.Time != nil && !math.IsNaN(*in.Time) {
		p.Time = roundClamp(*in.Time, MinTime, MaxTime)
	}
	if in.Servings != nil && !math.IsNaN(*in.Servings) {
		p.Servings = roundClamp(*in.Servings, 1, MaxServings)
	}
	return p
}

// withDefaults fills zero fields, for callers that build Preferences directly.
func (p Preferences) withDefaults() Preferences {
	if p.Time <= 0 {
		p.Time = DefaultTime
	}
	if p.Servings <= 0 {
		p.Servings = DefaultServings
	}
	if p.Diet == "" {
		p.Diet = DietNone
	}
	if p.EnergyMode == "" {
		p.EnergyMode = EnergyHob
	}
	return p
}

// DefaultPreferences returns the preferences used when a request sends none.
func DefaultPreferences() Preferences {
	return PrefsInput{}.Resolve()
}

// roundClamp bounds v before converting so huge or infinite inputs cannot overflow int.
func roundClamp(v float64, lo, hi int) int {
	return clamp(int(math.Round(math.Max(float64(lo), math.Min(v, float64(hi))))), lo, hi)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseDiet maps free text to a Diet; unknown values mean no restriction.
func ParseDiet(s string) Diet {
	switch d := Diet(strings.ToLower(strings.TrimSpace(s))); d {
	case DietVegetarian, DietVegan, DietPescatarian:
		return d
	default:
		return DietNone
	}
}

// ParseEnergy maps free text to an Energy mode; unknown values mean hob.
func ParseEnergy(s string) Energy {
	switch strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "-", " "))) {
	case "oven":
		return EnergyOven
	case "air fryer", "airfryer":
		return EnergyAirFryer
	case "microwave":
		return EnergyMicrowave
	default:
		return EnergyHob
	}
}

// Flag accepts true/false, a number (non-zero is true) or their string forms.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = false
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		*f = Flag(b)
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = n != 0
		return nil
	}
	if s == "" {
		*f = false
		return nil
	}
	return errors.New("explore: expected boolean or number")
}

// Ingredient recipe ingredient annotated against the pantry
type Ingredient struct {
	Name string `json:"name"`
	Have bool   `json:"have"`
}

// Step recipe step
type Step struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Recipe is a suggestion as returned to the client.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Time        int          `json:"time"`
	Cost        float64      `json:"cost"`
	Energy      Energy       `json:"energy"`
	Score       *float64     `json:"score,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Badges      []Badge      `json:"badges"`
}

// HasBadge reports whether the recipe carries b.
func (r Recipe) HasBadge(b Badge) bool {
	for _, x := range r.Badges {
		if x == b {
			return true
		}
	}
	return false
}

// Candidate is a provider recipe before admissibility filtering. UsedCount and
// MissingCount are trusted only when CountsKnown is set; otherwise they are derived from
// the pantry annotation.
type Candidate struct {
	ID             string
	Title          string
	DishTypes      []string
	Ingredients    []string
	ReadyInMinutes int
	UsedCount      int
	MissingCount   int
	CountsKnown    bool
	Cost           float64
	Energy         Energy
	Steps          []string
	Badge          Badge
}

// Query is what the recipe providers receive.
type Query struct {
	Pantry pantry.Pantry
	Prefs  Preferences
}

// ImageLabeler returns free-text label/object/OCR tokens for an image.
type ImageLabeler interface {
	Label(ctx context.Context, image []byte) ([]string, error)
}

// RecipeSearcher returns raw candidates from a recipe search API.
type RecipeSearcher interface {
	Search(ctx context.Context, q Query) ([]Candidate, error)
}

// RecipeGenerator returns raw candidates written by a text-generation model.
type RecipeGenerator interface {
	Generate(ctx context.Context, q Query) ([]Candidate, error)
}

var (
	ErrProviderSkipped = errors.New("provider not configured")
	ErrProviderTimeout = errors.New("provider timed out")
	ErrProviderFailed  = errors.New("provider request failed")
	ErrUnparsable      = errors.New("provider response could not be parsed")
)

// ProviderStatus outcome of one provider call
type ProviderStatus string

const (
	StatusOK      ProviderStatus = "ok"
	StatusEmpty   ProviderStatus = "empty"
	StatusSkipped ProviderStatus = "skipped"
	StatusTimeout ProviderStatus = "timeout"
	StatusError   ProviderStatus = "error"
)

// StatusOf classifies a provider result.
func StatusOf(err error, n int) ProviderStatus {
	switch {
	case err == nil && n > 0:
		return StatusOK
	case err == nil:
		return StatusEmpty
	case errors.Is(err, ErrProviderSkipped):
		return StatusSkipped
	case errors.Is(err, ErrProviderTimeout), errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	default:
		return StatusError
	}
}

const (
	SourceOverride = "override"
	SourceImage    = "image"
	SourceWatchdog = "watchdog"
)

// Timings per-stage durations in milliseconds
type Timings struct {
	PantryMs int64 `json:"pantryMs"`
	SearchMs int64 `json:"searchMs"`
	LLMMs    int64 `json:"llmMs"`
}

// Diagnostics is the debug record attached to every response.
type Diagnostics struct {
	Source        string                    `json:"source"`
	CleanedPantry []string                  `json:"cleanedPantry"`
	RawTokens     int                       `json:"rawTokens"`
	UsedLLM       bool                      `json:"usedLLM"`
	Providers     map[string]ProviderStatus `json:"providers"`
	Relaxed       bool                      `json:"relaxed"`
	Watchdog      bool                      `json:"watchdog"`
	Timings       Timings                   `json:"timings"`
	TotalMs       int64                     `json:"totalMs"`
	RequestID     string                    `json:"requestId,omitempty"`
}

// ResultSet is the response body of a suggestion request.
type ResultSet struct {
	Pantry  pantry.Pantry `json:"pantry"`
	Recipes []Recipe      `json:"recipes,omitempty"`
	Debug   Diagnostics   `json:"debug"`
}

// Request is one suggestion request after transport decoding.
type Request struct {
	Image          []byte
	PantryOverride []string
	Prefs          Preferences
	RequestID      string
}

// HasOverride reports whether the override list has at least one non-blank entry.
func (r Request) HasOverride() bool {
	for _, s := range r.PantryOverride {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}
