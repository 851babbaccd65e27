package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnapshot_Valid(t *testing.T) {
	data := `{"version":1,"runs":[{"id":"r1","date":"2024-01-05","distanceKm":5,"durationSec":1500,"paceSecPerKm":300,"type":"Easy","rpe":4,"tags":["a"],"status":"planned"}]}`
	snap, err := ParseSnapshot([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)
	require.Len(t, snap.Runs, 1)
	assert.Equal(t, "r1", snap.Runs[0].ID)
	assert.Equal(t, 4, *snap.Runs[0].RPE)
	assert.Equal(t, StatusPlanned, snap.Runs[0].Status)
}

func TestParseSnapshot_FloatVersion(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"version":1.0,"runs":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Version)
	assert.Empty(t, snap.Runs)
}

func TestParseSnapshot_FractionalNumbersAreRounded(t *testing.T) {
	data := `{"version":1,"runs":[{"id":"r1","date":"2024-01-05","distanceKm":5.25,"durationSec":1500.5,"paceSecPerKm":285.8,"type":"Easy","rpe":6.0},{"id":"r2","date":"2024-01-06","durationSec":1499.4,"rpe":null}]}`
	snap, err := ParseSnapshot([]byte(data))
	require.NoError(t, err)
	require.Len(t, snap.Runs, 2)

	first := snap.Runs[0]
	assert.Equal(t, 1501, first.DurationSec)
	assert.Equal(t, 5.25, first.DistanceKm)
	assert.Equal(t, 285.8, first.PaceSecPerKm)
	require.NotNil(t, first.RPE)
	assert.Equal(t, 6, *first.RPE)

	assert.Equal(t, 1499, snap.Runs[1].DurationSec)
	assert.Nil(t, snap.Runs[1].RPE)
}

func TestParseSnapshot_EmptyRuns(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"version":1,"runs":[]}`))
	require.NoError(t, err)
	assert.NotNil(t, snap.Runs)
	assert.Empty(t, snap.Runs)
}

func TestParseSnapshot_Rejections(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"not json", `not json`, ErrInvalidJSON},
		{"truncated", `{"version":1,"runs":[`, ErrInvalidJSON},
		{"wrong version", `{"version":2,"runs":[]}`, ErrInvalidSnapshot},
		{"fractional version", `{"version":1.5,"runs":[]}`, ErrInvalidSnapshot},
		{"string version", `{"version":"1","runs":[]}`, ErrInvalidSnapshot},
		{"missing version", `{"runs":[]}`, ErrInvalidSnapshot},
		{"missing runs", `{"version":1}`, ErrInvalidSnapshot},
		{"null runs", `{"version":1,"runs":null}`, ErrInvalidSnapshot},
		{"object runs", `{"version":1,"runs":{}}`, ErrInvalidSnapshot},
		{"top-level array", `[]`, ErrInvalidSnapshot},
		{"bad entry", `{"version":1,"runs":[{"durationSec":"long"}]}`, ErrInvalidSnapshot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestNewSnapshot_CopiesRuns(t *testing.T) {
	runs := []RunEntry{{ID: "a", Tags: []string{"x"}}}
	snap := NewSnapshot(runs)
	snap.Runs[0].Tags[0] = "y"
	assert.Equal(t, "x", runs[0].Tags[0])
	assert.Equal(t, SnapshotVersion, snap.Version)

	assert.NotNil(t, NewSnapshot(nil).Runs)
}

func TestParseImportMode(t *testing.T) {
	m, err := ParseImportMode("")
	require.NoError(t, err)
	assert.Equal(t, ImportMerge, m)

	m, err = ParseImportMode("Replace")
	require.NoError(t, err)
	assert.Equal(t, ImportReplace, m)

	_, err = ParseImportMode("upsert")
	assert.Error(t, err)
}
