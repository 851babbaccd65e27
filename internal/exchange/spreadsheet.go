package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"runlog/internal/models"
	"runlog/internal/pace"
	"runlog/internal/providers"
	"strings"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrEmptyWorkbook     = errors.New("workbook has no sheets")
)

// minDateLen drops rows whose date cell cannot hold a YYYY-MM-DD value.
const minDateLen = 8

// ParseFormat accepts "xlsx" or "csv".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// DetectFormat picks the format from a file name's extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

// ParseSpreadsheet reads the first sheet (or the CSV body) and maps each row
// with a usable date to a new entry. The result is meant for a merge import.
func ParseSpreadsheet(r io.Reader, format Format, ids providers.IDGenerator) ([]models.RunEntry, error) {
	var rows [][]string
	var err error
	switch format {
	case FormatXLSX:
		rows, err = readWorkbook(r)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	entries := make([]models.RunEntry, 0, len(rows))
	if len(rows) == 0 {
		return entries, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := header[name]; !seen {
			header[name] = i
		}
	}

	for _, row := range rows[1:] {
		cell := func(name string) string {
			idx, ok := header[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}
		if entry, ok := mapRow(cell, ids); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func mapRow(cell func(string) string, ids providers.IDGenerator) (models.RunEntry, bool) {
	date := cell("date")
	if len(date) < minDateLen {
		return models.RunEntry{}, false
	}

	distanceKm := toNumber(cell("distance_km"))
	durationSec := int(math.Round(toNumber(cell("duration_sec"))))

	runType, ok := models.ParseRunType(cell("type"))
	if !ok {
		runType = models.RunEasy
	}

	var rpe *int
	if raw := strings.TrimSpace(cell("rpe")); raw != "" {
		if v, err := cast.ToFloat64E(raw); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			rounded := int(math.Round(v))
			rpe = &rounded
		}
	}

	status := models.StatusPlanned
	if cell("status") == string(models.StatusDone) {
		status = models.StatusDone
	}

	return models.RunEntry{
		ID:           ids.NewID(),
		Date:         date,
		DistanceKm:   distanceKm,
		DurationSec:  durationSec,
		PaceSecPerKm: pace.Calc(durationSec, distanceKm),
		Type:         runType,
		RPE:          rpe,
		Tags:         splitTags(cell("tags")),
		Notes:        cell("notes"),
		Status:       status,
	}, true
}

// toNumber coerces a cell to a finite number, 0 when it is not one.
func toNumber(s string) float64 {
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func splitTags(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}
