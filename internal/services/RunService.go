package services

import (
	"runlog/internal/models"
	"runlog/internal/persistence/interfaces"
	"runlog/internal/providers"
	"sync"
)

type RunServiceInterface interface {
	Add(draft models.RunDraft) models.RunEntry
	Update(entry models.RunEntry) bool
	Delete(id string) bool
	Duplicate(id string) (models.RunEntry, bool)
	Import(snapshot models.Snapshot, mode models.ImportMode)
	Reset()
	Get(id string) (models.RunEntry, bool)
	Runs() []models.RunEntry
	Snapshot() models.Snapshot
	Len() int
	Revision() uint64
	Subscribe(fn func(models.Snapshot)) (cancel func())
}

// RunService owns the canonical run collection. Every mutation schedules a
// save of the full collection through the gateway.
type RunService struct {
	mu       sync.RWMutex
	runs     []models.RunEntry
	revision uint64

	gateway interfaces.GatewayInterface
	ids     providers.IDGenerator
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	subMu      sync.Mutex
	subs       map[int]func(models.Snapshot)
	nextSubID  int
	pending    []models.Snapshot
	delivering bool
}

func NewRunService(gateway interfaces.GatewayInterface, ids providers.IDGenerator, logger providers.Logger, metrics providers.MetricsProviderInterface) RunServiceInterface {
	snapshot := gateway.Load()
	rs := &RunService{
		runs:    models.CloneRuns(snapshot.Runs),
		gateway: gateway,
		ids:     ids,
		logger:  logger,
		metrics: metrics,
		subs:    make(map[int]func(models.Snapshot)),
	}
	metrics.SetRunsTotal(len(rs.runs))
	return rs
}

func (rs *RunService) Add(draft models.RunDraft) models.RunEntry {
	entry := draft.Entry(rs.ids.NewID())

	rs.mu.Lock()
	rs.runs = append(rs.runs, entry)
	rs.commitLocked()
	rs.mu.Unlock()

	rs.logger.Debugf(providers.TypeApp, "Added run %s on %s", entry.ID, entry.Date)
	rs.deliver()
	return entry.Clone()
}

func (rs *RunService) Update(entry models.RunEntry) bool {
	updated := entry.WithPace()

	rs.mu.Lock()
	found := false
	for i := range rs.runs {
		if rs.runs[i].ID == entry.ID {
			rs.runs[i] = updated.Clone()
			found = true
		}
	}
	if !found {
		rs.mu.Unlock()
		return false
	}
	rs.commitLocked()
	rs.mu.Unlock()

	rs.logger.Debugf(providers.TypeApp, "Updated run %s", entry.ID)
	rs.deliver()
	return true
}

func (rs *RunService) Delete(id string) bool {
	rs.mu.Lock()
	kept := rs.runs[:0:0]
	for _, r := range rs.runs {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rs.runs) {
		rs.mu.Unlock()
		return false
	}
	rs.runs = kept
	rs.commitLocked()
	rs.mu.Unlock()

	rs.logger.Debugf(providers.TypeApp, "Deleted run %s", id)
	rs.deliver()
	return true
}

// Duplicate copies the first entry with id under a fresh id.
func (rs *RunService) Duplicate(id string) (models.RunEntry, bool) {
	rs.mu.Lock()
	idx := rs.indexLocked(id)
	if idx < 0 {
		rs.mu.Unlock()
		return models.RunEntry{}, false
	}
	dup := rs.runs[idx].Clone()
	dup.ID = rs.ids.NewID()
	rs.runs = append(rs.runs, dup)
	rs.commitLocked()
	rs.mu.Unlock()

	rs.logger.Debugf(providers.TypeApp, "Duplicated run %s as %s", id, dup.ID)
	rs.deliver()
	return dup.Clone(), true
}

// Import adopts a parsed snapshot. Replace takes the runs exactly as given;
// merge appends them, minting ids only for entries that have none.
func (rs *RunService) Import(snapshot models.Snapshot, mode models.ImportMode) {
	incoming := models.CloneRuns(snapshot.Runs)

	rs.mu.Lock()
	if mode == models.ImportReplace {
		rs.runs = incoming
	} else {
		for i := range incoming {
			if incoming[i].ID == "" {
				incoming[i].ID = rs.ids.NewID()
			}
		}
		rs.runs = append(rs.runs, incoming...)
	}
	out := rs.commitLocked()
	rs.mu.Unlock()

	rs.logger.Infof(providers.TypeApp, "Imported %d runs (%s), collection now holds %d", len(incoming), mode, len(out.Runs))
	rs.deliver()
}

// Reset empties the collection and deletes it from storage. Any save still
// waiting in the gateway is discarded.
func (rs *RunService) Reset() {
	rs.mu.Lock()
	rs.runs = []models.RunEntry{}
	rs.revision++
	rs.gateway.Reset()
	rs.metrics.SetRunsTotal(0)
	rs.enqueueLocked(models.EmptySnapshot())
	rs.mu.Unlock()

	rs.logger.Infof(providers.TypeApp, "Collection reset")
	rs.deliver()
}

func (rs *RunService) Get(id string) (models.RunEntry, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	idx := rs.indexLocked(id)
	if idx < 0 {
		return models.RunEntry{}, false
	}
	return normalize(rs.runs[idx]), true
}

// Runs returns a copy of the collection with every status made explicit.
func (rs *RunService) Runs() []models.RunEntry {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make([]models.RunEntry, len(rs.runs))
	for i, r := range rs.runs {
		out[i] = normalize(r)
	}
	return out
}

// Snapshot returns the stored collection as is, for persistence and export.
func (rs *RunService) Snapshot() models.Snapshot {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return models.NewSnapshot(rs.runs)
}

func (rs *RunService) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.runs)
}

// Revision changes on every mutation.
func (rs *RunService) Revision() uint64 {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.revision
}

func (rs *RunService) Subscribe(fn func(models.Snapshot)) (cancel func()) {
	rs.subMu.Lock()
	defer rs.subMu.Unlock()

	id := rs.nextSubID
	rs.nextSubID++
	rs.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			rs.subMu.Lock()
			delete(rs.subs, id)
			rs.subMu.Unlock()
		})
	}
}

// commitLocked bumps the revision and hands the new state to the gateway.
// Must be called with rs.mu held for writing.
func (rs *RunService) commitLocked() models.Snapshot {
	rs.revision++
	snapshot := models.NewSnapshot(rs.runs)
	rs.gateway.Save(snapshot)
	rs.metrics.SetRunsTotal(len(rs.runs))
	rs.enqueueLocked(snapshot)
	return snapshot
}

func (rs *RunService) indexLocked(id string) int {
	for i, r := range rs.runs {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// enqueueLocked queues snapshot for subscribers in commit order.
// Must be called with rs.mu held for writing.
func (rs *RunService) enqueueLocked(snapshot models.Snapshot) {
	rs.subMu.Lock()
	rs.pending = append(rs.pending, snapshot)
	rs.subMu.Unlock()
}

// deliver hands queued snapshots to subscribers outside rs.mu. Only one
// goroutine delivers at a time, so observers see snapshots in commit order.
// A mutation made from inside a callback is queued and delivered by the
// goroutine already delivering.
func (rs *RunService) deliver() {
	rs.subMu.Lock()
	if rs.delivering {
		rs.subMu.Unlock()
		return
	}
	rs.delivering = true
	for len(rs.pending) > 0 {
		snapshot := rs.pending[0]
		rs.pending = rs.pending[1:]
		fns := make([]func(models.Snapshot), 0, len(rs.subs))
		for id := 0; id < rs.nextSubID; id++ {
			if fn, ok := rs.subs[id]; ok {
				fns = append(fns, fn)
			}
		}
		rs.subMu.Unlock()

		for _, fn := range fns {
			fn(models.NewSnapshot(snapshot.Runs))
		}

		rs.subMu.Lock()
	}
	rs.pending = nil
	rs.delivering = false
	rs.subMu.Unlock()
}

func normalize(r models.RunEntry) models.RunEntry {
	out := r.Clone()
	out.Status = r.EffectiveStatus()
	return out
}
