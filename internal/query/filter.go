package query

import (
	"net/url"
	"runlog/internal/models"
	"strings"
)

// Filter narrows a run list. Empty fields impose no constraint; the rest are
// combined with AND.
type Filter struct {
	Type   string `json:"type,omitempty"`
	Status string `json:"status,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Text   string `json:"text,omitempty"`
}

// FilterFromValues reads the type, status, from, to and text parameters.
func FilterFromValues(values url.Values) Filter {
	return Filter{
		Type:   values.Get("type"),
		Status: values.Get("status"),
		From:   values.Get("from"),
		To:     values.Get("to"),
		Text:   values.Get("text"),
	}
}

func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Match reports whether r passes every set constraint. Dates compare as
// YYYY-MM-DD strings, both bounds inclusive.
func (f Filter) Match(r models.RunEntry) bool {
	if f.Type != "" && string(r.Type) != f.Type {
		return false
	}
	if f.Status != "" && string(r.EffectiveStatus()) != f.Status {
		return false
	}
	if f.From != "" && r.Date < f.From {
		return false
	}
	if f.To != "" && r.Date > f.To {
		return false
	}
	if f.Text != "" {
		needle := strings.ToLower(f.Text)
		tags := strings.ToLower(strings.Join(r.Tags, ","))
		notes := strings.ToLower(r.Notes)
		if !strings.Contains(tags, needle) && !strings.Contains(notes, needle) {
			return false
		}
	}
	return true
}

// Apply returns the matching entries in their original order.
func Apply(runs []models.RunEntry, f Filter) []models.RunEntry {
	out := make([]models.RunEntry, 0, len(runs))
	for _, r := range runs {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
