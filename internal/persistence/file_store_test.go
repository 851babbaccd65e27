package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"runlog/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PutCreatesFile(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, &testutil.MockCompressor{})
	require.NoError(t, err)

	require.NoError(t, fs.Put(testKey, []byte(`{"version":1,"runs":[]}`)))

	_, err = os.Stat(filepath.Join(dir, testKey+fileSuffix))
	assert.NoError(t, err)

	// Temp file should not exist
	_, err = os.Stat(filepath.Join(dir, testKey+fileSuffix+".tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_GetMissing(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), &testutil.MockCompressor{})
	require.NoError(t, err)

	_, err = fs.Get(testKey)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStore_RoundTripWithZstd(t *testing.T) {
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	fs, err := NewFileStore(t.TempDir(), comp)
	require.NoError(t, err)
	defer fs.Close()

	payload := []byte(`{"version":1,"runs":[{"id":"a","date":"2024-01-01"}]}`)
	require.NoError(t, fs.Put(testKey, payload))

	got, err := fs.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileStore_PutReplaces(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), &testutil.MockCompressor{})
	require.NoError(t, err)

	require.NoError(t, fs.Put(testKey, []byte("one")))
	require.NoError(t, fs.Put(testKey, []byte("two")))
	got, err := fs.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got)
}

func TestFileStore_CompressError(t *testing.T) {
	dir := t.TempDir()
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	fs, err := NewFileStore(dir, comp)
	require.NoError(t, err)

	assert.Error(t, fs.Put(testKey, []byte("x")))
	_, err = os.Stat(filepath.Join(dir, testKey+fileSuffix))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), &testutil.MockCompressor{})
	require.NoError(t, err)

	require.NoError(t, fs.Put(testKey, []byte("x")))
	require.NoError(t, fs.Delete(testKey))
	require.NoError(t, fs.Delete(testKey))
	_, err = fs.Get(testKey)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFileStore_KeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, &testutil.MockCompressor{})
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(fs.path("../../etc/passwd")))
}

func TestFileStore_CloseReleasesCompressor(t *testing.T) {
	comp := &testutil.MockCompressor{}
	fs, err := NewFileStore(t.TempDir(), comp)
	require.NoError(t, err)
	require.NoError(t, fs.Close())
	assert.True(t, comp.Closed)
}

func TestFileStore_ThroughGateway(t *testing.T) {
	dir := t.TempDir()
	comp, err := NewZstdCompressor()
	require.NoError(t, err)
	fs, err := NewFileStore(dir, comp)
	require.NoError(t, err)

	g := NewGateway(testConfig(time.Hour), fs, &testutil.MockLogger{}, &testutil.MockMetrics{})
	g.Save(snapshotOf("a", "b"))
	require.NoError(t, g.Flush())

	reopened := NewGateway(testConfig(time.Hour), fs, &testutil.MockLogger{}, &testutil.MockMetrics{})
	assert.Len(t, reopened.Load().Runs, 2)

	reopened.Reset()
	assert.Empty(t, reopened.Load().Runs)
	require.NoError(t, reopened.Close())
}
