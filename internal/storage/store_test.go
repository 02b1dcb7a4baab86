package storage_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-mehek/LinkingLink-client/internal/storage"
)

type recordedError struct {
	op  string
	err error
}

type errorRecorder struct {
	mu     sync.Mutex
	errors []recordedError
}

func (r *errorRecorder) handle(op string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, recordedError{op: op, err: err})
}

func (r *errorRecorder) ops() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]string, 0, len(r.errors))
	for _, e := range r.errors {
		ops = append(ops, e.op)
	}

	return ops
}

func testRoundTrip(t *testing.T, store storage.TokenStore) {
	t.Helper()

	assert.Empty(t, store.Load())

	store.Save("abc123")
	assert.Equal(t, "abc123", store.Load())

	store.Save("def456")
	assert.Equal(t, "def456", store.Load())

	store.Clear()
	assert.Empty(t, store.Load())

	store.Clear()
	assert.Empty(t, store.Load())
}

func TestMemoryStore(t *testing.T) {
	testRoundTrip(t, storage.NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	rec := &errorRecorder{}
	path := filepath.Join(t.TempDir(), "nested", "storage.json")

	store := storage.NewFileStore(path, storage.WithErrorHandler(rec.handle))
	testRoundTrip(t, store)

	assert.Empty(t, rec.ops())
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")

	storage.NewFileStore(path).Save("abc123")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.Equal(t, "abc123", storage.NewFileStore(path).Load())
}

func TestFileStoreKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"theme":"dark"}`), 0600))

	store := storage.NewFileStore(path)
	store.Save("abc123")
	store.Clear()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))
}

func TestFileStoreSwallowsFailures(t *testing.T) {
	rec := &errorRecorder{}

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store := storage.NewFileStore(filepath.Join(blocker, "storage.json"), storage.WithErrorHandler(rec.handle))

	assert.NotPanics(t, func() {
		store.Save("abc123")
	})
	assert.Empty(t, store.Load())

	assert.Contains(t, rec.ops(), storage.OpSave)
}

func TestFileStoreCorruptedFile(t *testing.T) {
	rec := &errorRecorder{}
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := storage.NewFileStore(path, storage.WithErrorHandler(rec.handle))

	assert.Empty(t, store.Load())
	assert.Equal(t, []string{storage.OpLoad}, rec.ops())

	store.Save("abc123")
	assert.Equal(t, []string{storage.OpLoad, storage.OpSave}, rec.ops())
	assert.Equal(t, "abc123", store.Load())

	rec.mu.Lock()
	assert.ErrorIs(t, rec.errors[1].err, storage.ErrCorrupted)
	rec.mu.Unlock()

	store.Clear()
	assert.Empty(t, store.Load())
	assert.Len(t, rec.ops(), 2)
}

func TestFileStoreCorruptedFileClear(t *testing.T) {
	rec := &errorRecorder{}
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2"), 0600))

	store := storage.NewFileStore(path, storage.WithErrorHandler(rec.handle))
	store.Clear()

	assert.Equal(t, []string{storage.OpClear}, rec.ops())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestFileStoreNullFile(t *testing.T) {
	rec := &errorRecorder{}
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0600))

	store := storage.NewFileStore(path, storage.WithErrorHandler(rec.handle))

	assert.Empty(t, store.Load())
	assert.NotPanics(t, func() {
		store.Save("abc123")
	})
	assert.Equal(t, "abc123", store.Load())

	assert.NotPanics(t, func() {
		store.Clear()
	})
	assert.Empty(t, store.Load())
	assert.Empty(t, rec.ops())
}

func TestFileStoreWithoutHandler(t *testing.T) {
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "storage.json"))

	assert.NotPanics(t, func() {
		store.Clear()
	})
	assert.Empty(t, store.Load())
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	testCases := []struct {
		name     string
		driver   string
		path     string
		expected any
	}{
		{name: "Memory", driver: storage.DriverMemory, expected: &storage.MemoryStore{}},
		{name: "File", driver: storage.DriverFile, path: filepath.Join(dir, "storage.json"), expected: &storage.FileStore{}},
		{name: "Default", driver: "", path: filepath.Join(dir, "default.json"), expected: &storage.FileStore{}},
		{name: "SQLite", driver: storage.DriverSQLite, path: filepath.Join(dir, "storage.db"), expected: &storage.SQLiteStore{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, err := storage.Open(tc.driver, tc.path)
			require.NoError(t, err)
			defer store.Close()

			assert.IsType(t, tc.expected, store)
			testRoundTrip(t, store)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := storage.Open("redis", "")

	require.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestOpenFallsBackToMemory(t *testing.T) {
	rec := &errorRecorder{}

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := storage.Open(storage.DriverSQLite, filepath.Join(blocker, "storage.db"), storage.WithErrorHandler(rec.handle))
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &storage.MemoryStore{}, store)
	assert.Equal(t, []string{storage.OpOpen}, rec.ops())
}
