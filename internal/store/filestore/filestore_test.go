package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/glucoffee/internal/domain"
	"github.com/alexanderramin/glucoffee/internal/store"
	"github.com/alexanderramin/glucoffee/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.RecordStore {
		return New(t.TempDir(), nil)
	})
}

func TestSave_WritesPrivateFileWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	require.NoError(t, s.Save(context.Background(), "alice", storetest.SampleRecord()))

	info, err := os.Stat(s.Path("alice"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tmp, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, tmp)
}

func TestLoad_ReadsLegacyFile(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"user_profile": {"name": "Budi", "created_at": null},
		"findrisc": {"score": null, "risk_level": null, "last_updated": null, "raw_answers": {}},
		"coffee_history": [{"date": "2024-11-02T09:00:00", "drink": "Kopi Susu", "volume": "Reguler (≈350ml)", "quantity": 1, "topping": [], "sugar": 9.5}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "budi.json"), []byte(legacy), 0o600))

	rec, err := New(dir, nil).Load(context.Background(), "budi")
	require.NoError(t, err)
	assert.Equal(t, "Budi", rec.Profile.Name)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, 9.5, rec.Events[0].SugarGrams)
}

func TestLoad_CorruptFileIsStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o600))

	_, err := New(dir, nil).Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestUpdate_UnwritableDirIsStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := New(filepath.Join(blocker, "records"), nil)
	err := s.Update(context.Background(), "alice", func(rec *domain.Record) error { return nil })
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestUpdate_HonoursContextWhileLocked(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)

	held := newRecordLock(s.Path("alice"))
	require.NoError(t, held.Lock(context.Background()))
	defer held.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := s.Update(ctx, "alice", func(rec *domain.Record) error { return nil })
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}

func TestAtomicWrite_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	require.NoError(t, atomicWrite(path, []byte("one")))
	require.NoError(t, atomicWrite(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
