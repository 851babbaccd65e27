package query

import (
	"net/url"
	"runlog/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sample() []models.RunEntry {
	return []models.RunEntry{
		{ID: "1", Date: "2024-01-01", Type: models.RunEasy, Tags: []string{"park", "morning"}},
		{ID: "2", Date: "2024-01-05", Type: models.RunTempo, Notes: "Windy on the Bridge", Status: models.StatusDone},
		{ID: "3", Date: "2024-01-10", Type: models.RunEasy, Status: models.StatusPlanned},
		{ID: "4", Date: "2024-02-01", Type: models.RunLong, Tags: []string{"race"}},
	}
}

func ids(runs []models.RunEntry) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.ID
	}
	return out
}

func TestApply_Table(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter keeps all", Filter{}, []string{"1", "2", "3", "4"}},
		{"type", Filter{Type: "Easy"}, []string{"1", "3"}},
		{"type is exact", Filter{Type: "easy"}, []string{}},
		{"status done includes missing", Filter{Status: "done"}, []string{"1", "2", "4"}},
		{"status planned", Filter{Status: "planned"}, []string{"3"}},
		{"from inclusive", Filter{From: "2024-01-05"}, []string{"2", "3", "4"}},
		{"to inclusive", Filter{To: "2024-01-05"}, []string{"1", "2"}},
		{"range", Filter{From: "2024-01-02", To: "2024-01-31"}, []string{"2", "3"}},
		{"text in tags", Filter{Text: "MORN"}, []string{"1"}},
		{"text in notes", Filter{Text: "bridge"}, []string{"2"}},
		{"text across joined tags", Filter{Text: "park,morning"}, []string{"1"}},
		{"and-combined", Filter{Type: "Easy", Status: "done"}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(sample(), tt.filter)))
		})
	}
}

func TestApply_IsSubsequence(t *testing.T) {
	runs := sample()
	before := models.CloneRuns(runs)

	out := Apply(runs, Filter{Status: "done"})

	j := 0
	for _, r := range runs {
		if j < len(out) && out[j].ID == r.ID {
			j++
		}
	}
	assert.Equal(t, len(out), j)
	assert.Equal(t, before, runs)
}

func TestFilterFromValues(t *testing.T) {
	v := url.Values{}
	v.Set("type", "Tempo")
	v.Set("status", "planned")
	v.Set("from", "2024-01-01")
	v.Set("to", "2024-12-31")
	v.Set("text", "hill")

	f := FilterFromValues(v)
	assert.Equal(t, Filter{Type: "Tempo", Status: "planned", From: "2024-01-01", To: "2024-12-31", Text: "hill"}, f)
	assert.False(t, f.IsEmpty())
	assert.True(t, FilterFromValues(url.Values{}).IsEmpty())
}
