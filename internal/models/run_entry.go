package models

import (
	"bytes"
	"math"
	"runlog/internal/pace"
	"strings"

	json "github.com/goccy/go-json"
)

type RunType string

const (
	RunEasy      RunType = "Easy"
	RunTempo     RunType = "Tempo"
	RunIntervals RunType = "Intervals"
	RunHill      RunType = "Hill"
	RunLong      RunType = "Long"
	RunRecovery  RunType = "Recovery"
	RunStrength  RunType = "Strength"
)

var runTypes = []RunType{RunEasy, RunTempo, RunIntervals, RunHill, RunLong, RunRecovery, RunStrength}

// RunTypes lists the run types in display order.
func RunTypes() []RunType {
	out := make([]RunType, len(runTypes))
	copy(out, runTypes)
	return out
}

// ParseRunType matches s against the run types, ignoring case and
// surrounding whitespace.
func ParseRunType(s string) (RunType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range runTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

type RunStatus string

const (
	StatusPlanned RunStatus = "planned"
	StatusDone    RunStatus = "done"
)

// ParseRunStatus accepts "planned" and "done" case-insensitively.
func ParseRunStatus(s string) (RunStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(StatusPlanned):
		return StatusPlanned, true
	case string(StatusDone):
		return StatusDone, true
	}
	return "", false
}

// RunEntry is one logged or planned workout.
type RunEntry struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	DistanceKm   float64   `json:"distanceKm"`
	DurationSec  int       `json:"durationSec"`
	PaceSecPerKm float64   `json:"paceSecPerKm"`
	Type         RunType   `json:"type"`
	RPE          *int      `json:"rpe,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       RunStatus `json:"status,omitempty"`
}

// runEntryJSON mirrors RunEntry with numeric fields that accept any JSON
// number, as exported files may carry fractional durations.
type runEntryJSON struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	DistanceKm   float64   `json:"distanceKm"`
	DurationSec  float64   `json:"durationSec"`
	PaceSecPerKm float64   `json:"paceSecPerKm"`
	Type         RunType   `json:"type"`
	RPE          *float64  `json:"rpe,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       RunStatus `json:"status,omitempty"`
}

// UnmarshalJSON rounds durationSec and rpe to whole numbers.
func (r *RunEntry) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var raw runEntryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = RunEntry{
		ID:           raw.ID,
		Date:         raw.Date,
		DistanceKm:   raw.DistanceKm,
		DurationSec:  int(math.Round(raw.DurationSec)),
		PaceSecPerKm: raw.PaceSecPerKm,
		Type:         raw.Type,
		Tags:         raw.Tags,
		Notes:        raw.Notes,
		Status:       raw.Status,
	}
	if raw.RPE != nil {
		rpe := int(math.Round(*raw.RPE))
		r.RPE = &rpe
	}
	return nil
}

// EffectiveStatus treats an entry without a status as done.
func (r RunEntry) EffectiveStatus() RunStatus {
	if r.Status == "" {
		return StatusDone
	}
	return r.Status
}

// WithPace returns a copy whose pace is derived from its own duration and distance.
func (r RunEntry) WithPace() RunEntry {
	out := r.Clone()
	out.PaceSecPerKm = pace.Calc(out.DurationSec, out.DistanceKm)
	return out
}

// Clone copies the entry including its tag slice and RPE pointer.
func (r RunEntry) Clone() RunEntry {
	out := r
	if r.Tags != nil {
		out.Tags = make([]string, len(r.Tags))
		copy(out.Tags, r.Tags)
	}
	if r.RPE != nil {
		rpe := *r.RPE
		out.RPE = &rpe
	}
	return out
}

// RunDraft carries the user-set fields of a new entry.
type RunDraft struct {
	Date        string    `json:"date"`
	DistanceKm  float64   `json:"distanceKm"`
	DurationSec int       `json:"durationSec"`
	Type        RunType   `json:"type"`
	RPE         *int      `json:"rpe,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      RunStatus `json:"status,omitempty"`
}

// Entry builds the entry for id with pace derived.
func (d RunDraft) Entry(id string) RunEntry {
	return RunEntry{
		ID:          id,
		Date:        d.Date,
		DistanceKm:  d.DistanceKm,
		DurationSec: d.DurationSec,
		Type:        d.Type,
		RPE:         d.RPE,
		Tags:        d.Tags,
		Notes:       d.Notes,
		Status:      d.Status,
	}.WithPace()
}

// CloneRuns deep-copies a slice of entries. A nil input gives an empty slice.
func CloneRuns(runs []RunEntry) []RunEntry {
	out := make([]RunEntry, len(runs))
	for i, r := range runs {
		out[i] = r.Clone()
	}
	return out
}
