package query

import (
	"fmt"
	"runlog/internal/models"
	"sort"
	"strings"
)

type SortKey string

const (
	SortDate     SortKey = "date"
	SortDistance SortKey = "distance"
	SortDuration SortKey = "duration"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSort validates a sort key and direction. Empty values mean date
// ascending.
func ParseSort(key, dir string) (SortKey, Direction, error) {
	var k SortKey
	switch SortKey(strings.ToLower(strings.TrimSpace(key))) {
	case "", SortDate:
		k = SortDate
	case SortDistance:
		k = SortDistance
	case SortDuration:
		k = SortDuration
	default:
		return "", "", fmt.Errorf("unknown sort key %q", key)
	}

	switch Direction(strings.ToLower(strings.TrimSpace(dir))) {
	case "", Asc:
		return k, Asc, nil
	case Desc:
		return k, Desc, nil
	}
	return "", "", fmt.Errorf("unknown sort direction %q", dir)
}

// Sort returns a sorted copy of runs. Ties keep their input order.
func Sort(runs []models.RunEntry, key SortKey, dir Direction) []models.RunEntry {
	out := make([]models.RunEntry, len(runs))
	copy(out, runs)

	less := func(a, b models.RunEntry) bool {
		switch key {
		case SortDistance:
			return a.DistanceKm < b.DistanceKm
		case SortDuration:
			return a.DurationSec < b.DurationSec
		default:
			return a.Date < b.Date
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
