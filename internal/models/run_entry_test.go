package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestParseRunType(t *testing.T) {
	rt, ok := ParseRunType("tempo")
	assert.True(t, ok)
	assert.Equal(t, RunTempo, rt)

	rt, ok = ParseRunType("  Long ")
	assert.True(t, ok)
	assert.Equal(t, RunLong, rt)

	_, ok = ParseRunType("Fartlek")
	assert.False(t, ok)
	_, ok = ParseRunType("")
	assert.False(t, ok)
}

func TestRunTypes_ClosedSet(t *testing.T) {
	types := RunTypes()
	assert.Len(t, types, 7)
	types[0] = "Mutated"
	assert.Equal(t, RunEasy, RunTypes()[0])
}

func TestParseRunStatus(t *testing.T) {
	s, ok := ParseRunStatus("DONE")
	assert.True(t, ok)
	assert.Equal(t, StatusDone, s)
	_, ok = ParseRunStatus("skipped")
	assert.False(t, ok)
}

func TestEffectiveStatus(t *testing.T) {
	assert.Equal(t, StatusDone, RunEntry{}.EffectiveStatus())
	assert.Equal(t, StatusPlanned, RunEntry{Status: StatusPlanned}.EffectiveStatus())
	assert.Equal(t, StatusDone, RunEntry{Status: StatusDone}.EffectiveStatus())
}

func TestWithPace_RecomputesStaleValue(t *testing.T) {
	r := RunEntry{DistanceKm: 10, DurationSec: 3000, PaceSecPerKm: 999}
	assert.Equal(t, 300.0, r.WithPace().PaceSecPerKm)
	assert.Equal(t, 999.0, r.PaceSecPerKm)

	strength := RunEntry{DistanceKm: 0, DurationSec: 1800, PaceSecPerKm: 12}
	assert.Equal(t, 0.0, strength.WithPace().PaceSecPerKm)
}

func TestClone_IsDeep(t *testing.T) {
	r := RunEntry{Tags: []string{"a", "b"}, RPE: intPtr(6)}
	c := r.Clone()
	c.Tags[0] = "x"
	*c.RPE = 9
	assert.Equal(t, "a", r.Tags[0])
	assert.Equal(t, 6, *r.RPE)
}

func TestDraftEntry(t *testing.T) {
	d := RunDraft{Date: "2024-03-01", DistanceKm: 5, DurationSec: 1500, Type: RunEasy, Tags: []string{"park"}}
	e := d.Entry("id-1")
	assert.Equal(t, "id-1", e.ID)
	assert.Equal(t, 300.0, e.PaceSecPerKm)
	assert.Equal(t, []string{"park"}, e.Tags)
	assert.Equal(t, RunStatus(""), e.Status)
}

func TestRunEntry_JSONShape(t *testing.T) {
	e := RunEntry{ID: "a", Date: "2024-01-02", DistanceKm: 5, DurationSec: 1500, PaceSecPerKm: 300, Type: RunEasy}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "a", m["id"])
	assert.Equal(t, 5.0, m["distanceKm"])
	assert.Equal(t, 1500.0, m["durationSec"])
	assert.Equal(t, 300.0, m["paceSecPerKm"])
	assert.NotContains(t, m, "rpe")
	assert.NotContains(t, m, "tags")
	assert.NotContains(t, m, "notes")
	assert.NotContains(t, m, "status")
}
