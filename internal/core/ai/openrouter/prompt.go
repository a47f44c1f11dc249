package openrouter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"pantry-chef/internal/core/recipe"
)

const systemPrompt = `You are a home cook planning a weeknight dinner. Answer with JSON only, no prose.
Use this shape:
{"recipes": [{"title": "...", "readyInMinutes": 25, "cost": 4.5, "energy": "hob|oven|air fryer|microwave", "ingredients": ["..."], "steps": ["..."]}]}
Rules:
- Savoury main courses only. No desserts, drinks, cocktails or baking projects.
- Build each dish around the pantry ingredients; keep extra shopping to a few cheap items.
- Never rely on a meat or fish the pantry does not contain.
- Ingredient names are short and lowercase, without quantities.
- Cost is the total in pounds for all servings.`

// buildPrompt renders the pantry and preferences into the user message.
func buildPrompt(q recipe.Query) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pantry: %s.\n", q.Pantry.String())
	fmt.Fprintf(&b, "Ready within %d minutes for %d servings.\n", q.Prefs.Time, q.Prefs.Servings)
	if q.Prefs.Diet != "" && q.Prefs.Diet != recipe.DietNone {
		fmt.Fprintf(&b, "The dish must be %s.\n", q.Prefs.Diet)
	}
	fmt.Fprintf(&b, "Preferred cooking method: %s.\n", q.Prefs.EnergyMode)
	if q.Prefs.Explore {
		b.WriteString("Suggest one less common dish from a cuisine the cook may not have tried.\n")
	} else {
		b.WriteString("Suggest two familiar, reliable dishes.\n")
	}
	return b.String()
}

var leadingNumber = regexp.MustCompile(`-?\d+(\.\d+)?`)

// looseNumber decodes 12, 12.5, "12", "about 25 minutes" or "£4.50". Anything else is 0.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	*n = 0
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = looseNumber(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if m := leadingNumber.FindString(s); m != "" {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			*n = looseNumber(f)
		}
	}
	return nil
}

// looseList decodes a list of strings, or of objects carrying the text under a common
// key, or a single newline-separated string. Blank entries are dropped.
type looseList []string

var listTextKeys = []string{"name", "text", "step", "instruction", "ingredient"}

func (l *looseList) UnmarshalJSON(data []byte) error {
	*l = nil

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		for _, line := range strings.Split(single, "\n") {
			l.add(line)
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			l.add(s)
			continue
		}
		var obj map[string]interface{}
		if err := json.Unmarshal(item, &obj); err != nil {
			continue
		}
		for _, k := range listTextKeys {
			if v, ok := obj[k].(string); ok {
				l.add(v)
				break
			}
		}
	}
	return nil
}

func (l *looseList) add(s string) {
	if s = strings.TrimSpace(s); s != "" {
		*l = append(*l, s)
	}
}
