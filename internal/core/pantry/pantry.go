// Package pantry turns noisy label/OCR tokens into a canonical ingredient set.
package pantry

import (
	"encoding/json"
	"sort"
	"strings"
)

// Pantry is an immutable, sorted set of canonical ingredients.
type Pantry struct {
	items []string
	set   map[string]struct{}
}

// New builds a pantry from already-canonical items. Items are lowercased and trimmed;
// blanks and duplicates are dropped.
func New(items ...string) Pantry {
	p := Pantry{set: make(map[string]struct{}, len(items))}
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" {
			continue
		}
		if _, dup := p.set[it]; dup {
			continue
		}
		p.set[it] = struct{}{}
		p.items = append(p.items, it)
	}
	sort.Strings(p.items)
	return p
}

// Has reports whether item is in the pantry.
func (p Pantry) Has(item string) bool {
	_, ok := p.set[item]
	return ok
}

// Items returns a copy of the pantry contents in sorted order.
func (p Pantry) Items() []string {
	out := make([]string, len(p.items))
	copy(out, p.items)
	return out
}

func (p Pantry) Len() int { return len(p.items) }

func (p Pantry) IsEmpty() bool { return len(p.items) == 0 }

// String joins the items with ", ".
func (p Pantry) String() string {
	return strings.Join(p.items, ", ")
}

// MarshalJSON encodes the pantry as a JSON array, never null.
func (p Pantry) MarshalJSON() ([]byte, error) {
	if p.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.items)
}
