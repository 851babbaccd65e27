package controllers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"runlog/internal/exchange"
	"runlog/internal/models"
	"runlog/internal/providers"
	"runlog/internal/query"
	"runlog/internal/services"
	"runlog/internal/statistic"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const (
	maxRequestBodySize = 1 << 20  // 1 MB
	maxImportBodySize  = 32 << 20 // 32 MB
)

type RunController struct {
	logger  providers.Logger
	service services.RunServiceInterface
	cache   providers.CacheProviderInterface
	ids     providers.IDGenerator
	now     func() time.Time
}

func NewRunController(logger providers.Logger, service services.RunServiceInterface, cache providers.CacheProviderInterface, ids providers.IDGenerator) *RunController {
	return &RunController{
		logger:  logger,
		service: service,
		cache:   cache,
		ids:     ids,
		now:     time.Now,
	}
}

// runPayload is the request body of add and update.
type runPayload struct {
	ID          string   `json:"id"`
	Date        string   `json:"date" validate:"required|date"`
	DistanceKm  float64  `json:"distanceKm" validate:"min:0"`
	DurationSec int      `json:"durationSec" validate:"min:0"`
	Type        string   `json:"type" validate:"required|in:Easy,Tempo,Intervals,Hill,Long,Recovery,Strength"`
	RPE         *int     `json:"rpe,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Status      string   `json:"status,omitempty" validate:"in:planned,done"`
}

func (p *runPayload) validate() error {
	v := validate.Struct(p)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	if p.RPE != nil && (*p.RPE < 1 || *p.RPE > 10) {
		return errors.New("rpe must be between 1 and 10")
	}
	return nil
}

func (p *runPayload) draft() models.RunDraft {
	return models.RunDraft{
		Date:        p.Date,
		DistanceKm:  p.DistanceKm,
		DurationSec: p.DurationSec,
		Type:        models.RunType(p.Type),
		RPE:         p.RPE,
		Tags:        p.Tags,
		Notes:       p.Notes,
		Status:      models.RunStatus(p.Status),
	}
}

type importResponse struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (rc *RunController) decodePayload(w http.ResponseWriter, r *http.Request) (*runPayload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}
	if err := payload.validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return &payload, true
}

func (rc *RunController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := rc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// statsKey ties a cache entry to the collection revision and the current day.
func (rc *RunController) statsKey(name string) string {
	return name + ":" + strconv.FormatUint(rc.service.Revision(), 10) + ":" + rc.now().Format(statistic.DateLayout)
}

func (rc *RunController) ListRuns(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	key, dir, err := query.ParseSort(values.Get("sort"), values.Get("dir"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	runs := query.Apply(rc.service.Runs(), query.FilterFromValues(values))
	if values.Get("sort") != "" {
		runs = query.Sort(runs, key, dir)
	}
	writeJSON(w, http.StatusOK, runs)
}

func (rc *RunController) GetRun(w http.ResponseWriter, r *http.Request) {
	entry, ok := rc.service.Get(r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (rc *RunController) AddRun(w http.ResponseWriter, r *http.Request) {
	payload, ok := rc.decodePayload(w, r)
	if !ok {
		return
	}
	entry := rc.service.Add(payload.draft())
	writeJSON(w, http.StatusCreated, entry)
}

func (rc *RunController) UpdateRun(w http.ResponseWriter, r *http.Request) {
	payload, ok := rc.decodePayload(w, r)
	if !ok {
		return
	}
	if payload.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}
	if !rc.service.Update(payload.draft().Entry(payload.ID)) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	entry, _ := rc.service.Get(payload.ID)
	writeJSON(w, http.StatusOK, entry)
}

// DeleteRun succeeds whether or not the id exists.
func (rc *RunController) DeleteRun(w http.ResponseWriter, r *http.Request) {
	rc.service.Delete(r.URL.Query().Get("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (rc *RunController) DuplicateRun(w http.ResponseWriter, r *http.Request) {
	entry, ok := rc.service.Duplicate(r.URL.Query().Get("id"))
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (rc *RunController) Import(w http.ResponseWriter, r *http.Request) {
	mode, err := models.ParseImportMode(r.URL.Query().Get("mode"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	snapshot, err := exchange.DecodeJSON(data)
	if err != nil {
		rc.logger.Warnf(providers.TypePost, "Rejected import: %s", err)
		http.Error(w, rejectionMessage(err), http.StatusBadRequest)
		return
	}

	rc.service.Import(snapshot, mode)
	writeJSON(w, http.StatusOK, importResponse{Imported: len(snapshot.Runs), Total: rc.service.Len()})
}

func (rc *RunController) ImportSpreadsheet(w http.ResponseWriter, r *http.Request) {
	format, err := exchange.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBodySize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	entries, err := exchange.ParseSpreadsheet(bytes.NewReader(data), format, rc.ids)
	if err != nil {
		rc.logger.Warnf(providers.TypePost, "Rejected spreadsheet: %s", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rc.service.Import(models.NewSnapshot(entries), models.ImportMerge)
	writeJSON(w, http.StatusOK, importResponse{Imported: len(entries), Total: rc.service.Len()})
}

func (rc *RunController) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := exchange.EncodeJSON(rc.service.Snapshot())
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="runs.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (rc *RunController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := exchange.WriteCSV(&buf, rc.service.Snapshot().Runs); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="runs.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (rc *RunController) Reset(w http.ResponseWriter, r *http.Request) {
	rc.service.Reset()
	rc.cache.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (rc *RunController) GetStats(w http.ResponseWriter, r *http.Request) {
	rc.serveFromCacheOrCompute(w, rc.statsKey("stats"), func() (any, error) {
		return statistic.Summarize(rc.service.Runs(), rc.now()), nil
	})
}

func (rc *RunController) GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	rc.serveFromCacheOrCompute(w, rc.statsKey("weekly"), func() (any, error) {
		return statistic.BucketSummaries(statistic.GroupByWeek(doneRuns(rc.service.Runs()))), nil
	})
}

func (rc *RunController) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	rc.serveFromCacheOrCompute(w, rc.statsKey("monthly"), func() (any, error) {
		return statistic.BucketSummaries(statistic.GroupByMonth(doneRuns(rc.service.Runs()))), nil
	})
}

func doneRuns(runs []models.RunEntry) []models.RunEntry {
	return query.Apply(runs, query.Filter{Status: string(models.StatusDone)})
}

// rejectionMessage strips decoder detail so the client sees one of the two
// import rejection messages.
func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidJSON):
		return models.ErrInvalidJSON.Error()
	case errors.Is(err, models.ErrInvalidSnapshot):
		return models.ErrInvalidSnapshot.Error()
	}
	return err.Error()
}
