package statistic

import (
	"fmt"
	"runlog/internal/models"
	"runlog/internal/pace"
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

func SumDistance(runs []models.RunEntry) float64 {
	total := 0.0
	for _, r := range runs {
		total += r.DistanceKm
	}
	return total
}

func SumDuration(runs []models.RunEntry) int {
	total := 0
	for _, r := range runs {
		total += r.DurationSec
	}
	return total
}

// AvgPace is total duration over total distance, i.e. weighted by distance.
func AvgPace(runs []models.RunEntry) float64 {
	return pace.Calc(SumDuration(runs), SumDistance(runs))
}

// WeekKey returns the ISO-8601 week bucket of a YYYY-MM-DD date.
func WeekKey(date string) (string, bool) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", false
	}
	year, week := d.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week), true
}

// MonthKey returns the YYYY-MM bucket of a YYYY-MM-DD date.
func MonthKey(date string) (string, bool) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", false
	}
	return d.Format("2006-01"), true
}

func GroupByWeek(runs []models.RunEntry) map[string][]models.RunEntry {
	return groupBy(runs, WeekKey)
}

func GroupByMonth(runs []models.RunEntry) map[string][]models.RunEntry {
	return groupBy(runs, MonthKey)
}

// groupBy keeps input order inside each bucket. Entries without a parseable
// date are left out.
func groupBy(runs []models.RunEntry, key func(string) (string, bool)) map[string][]models.RunEntry {
	out := make(map[string][]models.RunEntry)
	for _, r := range runs {
		k, ok := key(r.Date)
		if !ok {
			continue
		}
		out[k] = append(out[k], r)
	}
	return out
}

// BucketKeys returns the keys of a grouping in chronological order.
func BucketKeys(groups map[string][]models.RunEntry) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
