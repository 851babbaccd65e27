package statistic

import (
	"runlog/internal/models"
	"time"
)

type PeriodTotals struct {
	Count           int     `json:"count"`
	DistanceKm      float64 `json:"distanceKm"`
	DurationSec     int     `json:"durationSec"`
	AvgPaceSecPerKm float64 `json:"avgPaceSecPerKm"`
}

type Summary struct {
	Week      PeriodTotals `json:"week"`
	Month     PeriodTotals `json:"month"`
	AllTime   PeriodTotals `json:"allTime"`
	LongestKm float64      `json:"longestKm"`
	Planned   int          `json:"planned"`
}

type Bucket struct {
	Key string `json:"key"`
	PeriodTotals
}

func Totals(runs []models.RunEntry) PeriodTotals {
	return PeriodTotals{
		Count:           len(runs),
		DistanceKm:      SumDistance(runs),
		DurationSec:     SumDuration(runs),
		AvgPaceSecPerKm: AvgPace(runs),
	}
}

// Summarize computes the dashboard totals relative to now. Only completed
// entries count towards distance and time; planned ones are tallied apart.
func Summarize(runs []models.RunEntry, now time.Time) Summary {
	weekStart := startOfWeek(now).Format(DateLayout)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(DateLayout)

	var done, week, month []models.RunEntry
	var s Summary
	for _, r := range runs {
		if r.EffectiveStatus() == models.StatusPlanned {
			s.Planned++
			continue
		}
		done = append(done, r)
		if r.Date >= weekStart {
			week = append(week, r)
		}
		if r.Date >= monthStart {
			month = append(month, r)
		}
		if r.DistanceKm > s.LongestKm {
			s.LongestKm = r.DistanceKm
		}
	}

	s.Week = Totals(week)
	s.Month = Totals(month)
	s.AllTime = Totals(done)
	return s
}

// BucketSummaries totals each bucket of a grouping, oldest first.
func BucketSummaries(groups map[string][]models.RunEntry) []Bucket {
	keys := BucketKeys(groups)
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Key: k, PeriodTotals: Totals(groups[k])})
	}
	return out
}

// startOfWeek returns Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -offset)
}
