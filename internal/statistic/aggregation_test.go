package statistic

import (
	"runlog/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(id, date string, km float64, sec int) models.RunEntry {
	return models.RunEntry{ID: id, Date: date, DistanceKm: km, DurationSec: sec, Type: models.RunEasy}.WithPace()
}

func TestSums(t *testing.T) {
	runs := []models.RunEntry{run("a", "2024-01-01", 5, 1500), run("b", "2024-01-02", 10, 2400)}
	assert.Equal(t, 15.0, SumDistance(runs))
	assert.Equal(t, 3900, SumDuration(runs))
	assert.Equal(t, 0.0, SumDistance(nil))
	assert.Equal(t, 0, SumDuration(nil))
}

func TestAvgPace_IsDistanceWeighted(t *testing.T) {
	runs := []models.RunEntry{run("a", "2024-01-01", 5, 1500), run("b", "2024-01-02", 10, 2400)}
	assert.Equal(t, 260.0, AvgPace(runs))
	assert.NotEqual(t, 270.0, AvgPace(runs))
}

func TestAvgPace_ZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, AvgPace(nil))
	assert.Equal(t, 0.0, AvgPace([]models.RunEntry{run("s", "2024-01-01", 0, 1800)}))
}

func TestWeekKey_ISO(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-W01"},
		{"2024-01-07", "2024-W01"},
		{"2024-01-08", "2024-W02"},
		{"2021-01-03", "2020-W53"},
		{"2020-12-31", "2020-W53"},
		{"2019-12-30", "2020-W01"},
		{"2026-10-16", "2026-W42"},
	}
	for _, tt := range tests {
		got, ok := WeekKey(tt.date)
		require.True(t, ok, tt.date)
		assert.Equal(t, tt.want, got, tt.date)
	}
	_, ok := WeekKey("not-a-date")
	assert.False(t, ok)
}

func TestGroupByWeek_KeepsOrder(t *testing.T) {
	runs := []models.RunEntry{
		run("c", "2024-01-03", 1, 300),
		run("a", "2024-01-01", 1, 300),
		run("x", "2024-01-09", 1, 300),
		run("b", "2024-01-02", 1, 300),
	}
	groups := GroupByWeek(runs)
	require.Len(t, groups, 2)
	ids := func(rs []models.RunEntry) []string {
		var out []string
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids(groups["2024-W01"]))
	assert.Equal(t, []string{"x"}, ids(groups["2024-W02"]))
	assert.Equal(t, []string{"2024-W01", "2024-W02"}, BucketKeys(groups))
}

func TestGroupByMonth(t *testing.T) {
	runs := []models.RunEntry{
		run("a", "2024-01-31", 1, 300),
		run("b", "2024-02-01", 1, 300),
		run("c", "2024-01-01", 1, 300),
		run("bad", "31/01/2024", 1, 300),
	}
	groups := GroupByMonth(runs)
	require.Len(t, groups, 2)
	assert.Len(t, groups["2024-01"], 2)
	assert.Equal(t, "a", groups["2024-01"][0].ID)
	assert.Len(t, groups["2024-02"], 1)
}
