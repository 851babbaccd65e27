package persistence

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runlog/internal/persistence/interfaces"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("key not found")

const fileSuffix = ".json.zst"

// FileStore keeps each key in its own zstd-compressed file under dir.
type FileStore struct {
	mu         sync.Mutex
	dir        string
	compressor interfaces.CompressorInterface
}

func NewFileStore(dir string, compressor interfaces.CompressorInterface) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{dir: dir, compressor: compressor}, nil
}

func (f *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.dir, name+fileSuffix)
}

func (f *FileStore) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f.compressor.Decompress(data)
}

// Put replaces the value atomically: write to a temp file, fsync, rename.
func (f *FileStore) Put(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.compressor.Compress(value)
	if err != nil {
		return err
	}

	fileName := f.path(key)
	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Close() error {
	f.compressor.Close()
	return nil
}
