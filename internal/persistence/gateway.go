package persistence

import (
	"errors"
	"runlog/internal/models"
	"runlog/internal/persistence/interfaces"
	"runlog/internal/providers"
	"runlog/internal/structures"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const DefaultDebounce = 300 * time.Millisecond

// Gateway loads and saves the whole run collection under a single key.
// Saves are debounced: within one window only the latest snapshot is written.
type Gateway struct {
	store   interfaces.KVStoreInterface
	key     string
	delay   time.Duration
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	mu      sync.Mutex
	timer   *time.Timer
	pending *models.Snapshot
	gen     uint64

	// writeMu serializes physical writes and deletes.
	writeMu sync.Mutex
	writes  atomic.Int64
}

// NewGateway builds the gateway. A nil store means memory-only operation.
func NewGateway(conf *structures.Config, store interfaces.KVStoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Gateway {
	delay := conf.Storage.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Gateway{
		store:   store,
		key:     conf.Storage.Key,
		delay:   delay,
		logger:  logger,
		metrics: metrics,
	}
}

func (g *Gateway) Load() models.Snapshot {
	if g.store == nil {
		return models.EmptySnapshot()
	}

	data, err := g.store.Get(g.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			g.logger.Debugf(providers.TypeStorage, "No stored collection under %s", g.key)
		} else {
			g.logger.Warnf(providers.TypeStorage, "Failed to read %s, starting empty: %s", g.key, err)
		}
		return models.EmptySnapshot()
	}

	snapshot, err := models.ParseSnapshot(data)
	if err != nil {
		g.logger.Warnf(providers.TypeStorage, "Stored collection under %s is unreadable, starting empty: %s", g.key, err)
		return models.EmptySnapshot()
	}
	g.logger.Infof(providers.TypeStorage, "Loaded %d runs from %s", len(snapshot.Runs), g.key)
	return snapshot
}

// Save schedules snapshot to be written after the debounce window, replacing
// any snapshot still waiting.
func (g *Gateway) Save(snapshot models.Snapshot) {
	if g.store == nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pending = &snapshot
	g.gen++
	gen := g.gen
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.delay, func() { g.fire(gen) })
}

func (g *Gateway) fire(gen uint64) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	if gen != g.gen || g.pending == nil {
		g.mu.Unlock()
		return
	}
	snapshot := *g.pending
	g.pending = nil
	g.timer = nil
	g.mu.Unlock()

	if err := g.write(snapshot); err != nil {
		g.logger.Errorf(providers.TypeStorage, "Error while persisting runs: %s", err)
	}
}

// Flush writes the waiting snapshot now, if there is one.
func (g *Gateway) Flush() error {
	if g.store == nil {
		return nil
	}

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	snapshot := g.takePendingLocked()
	g.mu.Unlock()

	if snapshot == nil {
		return nil
	}
	return g.write(*snapshot)
}

// Reset drops any waiting snapshot and deletes the stored collection. A write
// already under way finishes first, so the delete is always the last word.
func (g *Gateway) Reset() {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.mu.Lock()
	g.takePendingLocked()
	g.mu.Unlock()

	if g.store == nil {
		return
	}
	err := g.store.Delete(g.key)
	g.metrics.IncPersistenceWrites("delete", err == nil)
	if err != nil {
		g.logger.Errorf(providers.TypeStorage, "Failed to delete %s: %s", g.key, err)
		return
	}
	g.logger.Infof(providers.TypeStorage, "Deleted stored collection %s", g.key)
}

func (g *Gateway) Close() error {
	err := g.Flush()
	if g.store != nil {
		if cerr := g.store.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Writes reports how many snapshots reached the store.
func (g *Gateway) Writes() int64 {
	return g.writes.Load()
}

// takePendingLocked disarms the timer and invalidates any timer callback that
// already fired. Must be called under g.mu.
func (g *Gateway) takePendingLocked() *models.Snapshot {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.gen++
	snapshot := g.pending
	g.pending = nil
	return snapshot
}

func (g *Gateway) write(snapshot models.Snapshot) error {
	start := time.Now()
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	err = g.store.Put(g.key, data)
	g.metrics.ObservePersistenceDuration(time.Since(start))
	g.metrics.IncPersistenceWrites("put", err == nil)
	if err != nil {
		return err
	}
	g.writes.Inc()
	g.logger.Debugf(providers.TypeStorage, "Persisted %d runs to %s", len(snapshot.Runs), g.key)
	return nil
}
