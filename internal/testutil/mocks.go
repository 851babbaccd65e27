package testutil

import (
	"runlog/internal/models"
	"runlog/internal/providers"
	"strconv"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockKVStore is an in-memory interfaces.KVStoreInterface that records
// every physical operation. NotFound is returned for missing keys.
type MockKVStore struct {
	mu       sync.Mutex
	Data     map[string][]byte
	Puts     [][]byte
	Deletes  int
	NotFound error
	GetErr   error
	PutErr   error
	// PutDelay stalls each Put, to widen race windows in tests.
	PutDelay time.Duration
}

func NewMockKVStore(notFound error) *MockKVStore {
	return &MockKVStore{Data: make(map[string][]byte), NotFound: notFound}
}

func (m *MockKVStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	val, ok := m.Data[key]
	if !ok {
		return nil, m.NotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockKVStore) Put(key string, value []byte) error {
	if m.PutDelay > 0 {
		time.Sleep(m.PutDelay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.Data[key] = stored
	m.Puts = append(m.Puts, stored)
	return nil
}

func (m *MockKVStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	m.Deletes++
	return nil
}

func (m *MockKVStore) Close() error { return nil }

func (m *MockKVStore) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Puts)
}

func (m *MockKVStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Data[key]
	return ok
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	Writes      map[string]int
	RunsTotal   int
	CacheHits   int
	CacheMisses int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (m *MockMetrics) IncPersistenceWrites(op string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Writes == nil {
		m.Writes = make(map[string]int)
	}
	if ok {
		m.Writes[op]++
	}
}
func (m *MockMetrics) SetRunsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunsTotal = count
}

// MockGateway implements interfaces.GatewayInterface without timers: every
// Save is recorded synchronously.
type MockGateway struct {
	mu        sync.Mutex
	Initial   models.Snapshot
	Saves     []models.Snapshot
	Loads     int
	Resets    int
	Flushes   int
	LastSaved *models.Snapshot
}

func (m *MockGateway) Load() models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.Initial.Runs == nil {
		return models.EmptySnapshot()
	}
	return models.NewSnapshot(m.Initial.Runs)
}

func (m *MockGateway) Save(snapshot models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves = append(m.Saves, snapshot)
	m.LastSaved = &snapshot
}

func (m *MockGateway) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Flushes++
	return nil
}

func (m *MockGateway) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets++
	m.LastSaved = nil
}

func (m *MockGateway) Close() error { return m.Flush() }

// Writes counts recorded saves.
func (m *MockGateway) Writes() int64 {
	return int64(m.SaveCount())
}

func (m *MockGateway) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Saves)
}

// SequentialIDs mints "id-1", "id-2", ...
type SequentialIDs struct {
	mu   sync.Mutex
	next int
}

func (s *SequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return "id-" + strconv.Itoa(s.next)
}
