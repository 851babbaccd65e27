package persistence

import (
	"os"
	"path/filepath"
	"runlog/internal/persistence/interfaces"
	"runlog/internal/providers"
	"runlog/internal/structures"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	sqliteFileName = "runlog.db"
)

// NewKVStore opens the configured backend. When it cannot be opened the
// gateway runs memory-only, so the failure is logged and nil returned.
func NewKVStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) interfaces.KVStoreInterface {
	switch conf.Storage.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(conf.Storage.Path, 0755); err != nil {
			logger.Warnf(providers.TypeStorage, "Durable store unavailable, running memory-only: %s", err)
			return nil
		}
		store, err := NewSQLiteStore(filepath.Join(conf.Storage.Path, sqliteFileName))
		if err != nil {
			logger.Warnf(providers.TypeStorage, "Durable store unavailable, running memory-only: %s", err)
			return nil
		}
		logger.Infof(providers.TypeStorage, "Using sqlite store at %s", conf.Storage.Path)
		return store
	default:
		store, err := NewFileStore(conf.Storage.Path, compressor)
		if err != nil {
			logger.Warnf(providers.TypeStorage, "Durable store unavailable, running memory-only: %s", err)
			return nil
		}
		logger.Infof(providers.TypeStorage, "Using file store at %s", conf.Storage.Path)
		return store
	}
}
