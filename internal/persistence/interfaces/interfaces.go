package interfaces

import "runlog/internal/models"

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// KVStoreInterface is a durable byte store addressed by key. Get of a missing
// key returns persistence.ErrNotFound; Delete of a missing key succeeds.
type KVStoreInterface interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

type GatewayInterface interface {
	Load() models.Snapshot
	Save(snapshot models.Snapshot)
	Flush() error
	Reset()
	Close() error
	Writes() int64
}
