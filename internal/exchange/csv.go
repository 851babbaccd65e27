package exchange

import (
	"io"
	"runlog/internal/models"
	"strconv"
	"strings"
)

var csvHeader = []string{"date", "distance_km", "duration_sec", "pace_sec_per_km", "type", "rpe", "tags", "notes", "status"}

// WriteCSV writes runs with every field quoted. Rows are separated by "\n"
// and the last row has no line terminator.
func WriteCSV(w io.Writer, runs []models.RunEntry) error {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, r := range runs {
		b.WriteByte('\n')
		rpe := ""
		if r.RPE != nil {
			rpe = strconv.Itoa(*r.RPE)
		}
		fields := []string{
			r.Date,
			formatNumber(r.DistanceKm),
			strconv.Itoa(r.DurationSec),
			formatNumber(r.PaceSecPerKm),
			string(r.Type),
			rpe,
			strings.Join(r.Tags, ";"),
			r.Notes,
			string(r.EffectiveStatus()),
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(f))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
