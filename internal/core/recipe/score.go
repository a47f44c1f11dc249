package recipe

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"pantry-chef/internal/core/lexicon"
)

const (
	overlapWeight = 0.7
	speedWeight   = 0.3
	speedHorizon  = 60
)

// Score ranks an admissible candidate: ingredient overlap weighted over speed.
func Score(used, missing, readyMinutes int) float64 {
	if used < 0 {
		used = 0
	}
	if missing < 0 {
		missing = 0
	}
	ready := math.Min(math.Max(float64(readyMinutes), 0), speedHorizon)

	overlap := float64(used) / float64(used+missing+1)
	speed := 1 - ready/speedHorizon
	return round2(overlapWeight*overlap + speedWeight*speed)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (e *evaluation) recipe() Recipe {
	c := e.c
	minutes := c.ReadyInMinutes
	if minutes <= 0 {
		minutes = e.prefs.Time
	}
	score := Score(e.used, e.missing, minutes)

	r := Recipe{
		ID:          c.ID,
		Title:       strings.TrimSpace(c.Title),
		Time:        minutes,
		Cost:        round2(c.Cost),
		Energy:      InferEnergy(c.Energy, c.Steps, e.prefs.EnergyMode),
		Score:       &score,
		Ingredients: e.ingredients,
		Steps:       make([]Step, 0, len(c.Steps)),
		Badges:      []Badge{},
	}
	if c.Badge != "" {
		r.Badges = append(r.Badges, c.Badge)
	}
	if r.ID == "" {
		r.ID = string(c.Badge) + ":" + Slug(c.Title)
	}
	for _, text := range c.Steps {
		if text = strings.TrimSpace(text); text != "" {
			r.Steps = append(r.Steps, Step{ID: fmt.Sprintf("s%d", len(r.Steps)+1), Text: text})
		}
	}
	return r
}

var (
	airFryerPattern  = regexp.MustCompile(`\bair[\s-]?fr(y|yer|ier)\b`)
	microwavePattern = regexp.MustCompile(`\bmicrowav(e|ed|ing)\b`)
	ovenPattern      = regexp.MustCompile(`\b(oven|bak(e|ed|ing)|roast(ed|ing)?|broil(ed|ing)?)\b`)
)

// InferEnergy uses the declared mode when valid, then the step text, then the preference.
func InferEnergy(declared Energy, steps []string, pref Energy) Energy {
	switch declared {
	case EnergyHob, EnergyOven, EnergyAirFryer, EnergyMicrowave:
		return declared
	}
	if declared != "" {
		if e := ParseEnergy(string(declared)); e != EnergyHob {
			return e
		}
	}

	text := strings.ToLower(strings.Join(steps, " "))
	switch {
	case airFryerPattern.MatchString(text):
		return EnergyAirFryer
	case microwavePattern.MatchString(text):
		return EnergyMicrowave
	case ovenPattern.MatchString(text):
		return EnergyOven
	}
	if pref == "" {
		return EnergyHob
	}
	return pref
}

// Slug lowercases s and joins its letter and digit runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "recipe"
	}
	return b.String()
}

// mentions reports whether item occurs in text as whole words, treating singular and plural
// forms alike.
func mentions(text, item string) bool {
	tw, iw := lexicon.Words(text), lexicon.Words(item)
	if len(iw) == 0 || len(iw) > len(tw) {
		return false
	}
	for i := 0; i+len(iw) <= len(tw); i++ {
		match := true
		for j := range iw {
			if singular(tw[i+j]) != singular(iw[j]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func singular(w string) string {
	switch {
	case len(w) > 4 && strings.HasSuffix(w, "oes"):
		return strings.TrimSuffix(w, "es")
	case len(w) > 4 && strings.HasSuffix(w, "ies"):
		return strings.TrimSuffix(w, "ies") + "y"
	case len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss"):
		return strings.TrimSuffix(w, "s")
	}
	return w
}
