// Package pace converts between second counts and their clock-style display
// forms and derives running pace from duration and distance.
package pace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered in place of a pace that cannot be computed.
const Placeholder = "—"

// Calc returns seconds per kilometer, or 0 when distance is not positive.
func Calc(durationSec int, distanceKm float64) float64 {
	if !(distanceKm > 0) {
		return 0
	}
	return float64(durationSec) / distanceKm
}

// ParseDuration parses "H:MM:SS" into seconds. Every field must be a
// non-empty run of digits; any other input yields 0.
func ParseDuration(text string) int {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 3 {
		return 0
	}
	var fields [3]int
	for i, p := range parts {
		n, ok := parseField(p)
		if !ok {
			return 0
		}
		fields[i] = n
	}
	return fields[0]*3600 + fields[1]*60 + fields[2]
}

// ParseDurationLoose accepts "H:MM:SS", "MM:SS" or a bare second count.
func ParseDurationLoose(text string) int {
	text = strings.TrimSpace(text)
	parts := strings.Split(text, ":")
	switch len(parts) {
	case 1:
		n, _ := parseField(parts[0])
		return n
	case 2:
		return ParseDuration("0:" + text)
	default:
		return ParseDuration(text)
	}
}

func parseField(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatDuration renders seconds as HH:MM:SS. Hours do not wrap at 24.
func FormatDuration(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatPace renders seconds per kilometer as MM:SS. The value is rounded to
// whole seconds before it is split, so the seconds field never reads 60.
func FormatPace(secPerKm float64) string {
	if !(secPerKm > 0) || math.IsInf(secPerKm, 0) {
		return Placeholder
	}
	total := int(math.Round(secPerKm))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
