package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "identity.json")

	s, err := NewFileStore(path, config.DurabilityStrict, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, newIdentityRequest("SCF-1", baseTime)))
	require.NoError(t, s.UpdateStatus(ctx, "SCF-1", models.StatusApproved))
	require.NoError(t, s.SetInfoRequired(ctx, "SCF-1", true))

	reopened, err := NewFileStore(path, config.DurabilityStrict, logger.Nop())
	require.NoError(t, err)

	got, err := reopened.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.True(t, got.InfoRequired)
}

func TestFileStore_WritesJSONArrayWithPrivateMode(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "identity.json")

	s, err := NewFileStore(path, config.DurabilityBestEffort, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, newIdentityRequest("SCF-2", baseTime)))
	require.NoError(t, s.Save(ctx, newIdentityRequest("SCF-1", baseTime)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk []models.IdentityRequest
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Len(t, onDisk, 2)
	assert.Equal(t, "SCF-1", onDisk[0].RequestID)
	assert.Equal(t, "SCF-2", onDisk[1].RequestID)

	// no temp files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	t.Run("best-effort starts empty", func(t *testing.T) {
		s, err := NewFileStore(path, config.DurabilityBestEffort, logger.Nop())
		require.NoError(t, err)

		list, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("strict fails", func(t *testing.T) {
		_, err := NewFileStore(path, config.DurabilityStrict, logger.Nop())
		assert.ErrorIs(t, err, ErrPersisting)
	})
}

// unwritable points the store at a path below a regular file, so every
// persist fails.
func unwritable(t *testing.T, f *fileStore) {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	f.path = filepath.Join(blocker, "identity.json")
}

func TestFileStore_StrictRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	f, err := newFileStore(filepath.Join(t.TempDir(), "identity.json"), config.DurabilityStrict, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, f.Save(ctx, newIdentityRequest("SCF-1", baseTime)))

	unwritable(t, f)

	err = f.Save(ctx, newIdentityRequest("SCF-2", baseTime))
	assert.ErrorIs(t, err, ErrPersisting)
	_, err = f.Get(ctx, "SCF-2")
	assert.ErrorIs(t, err, ErrIdentityRequestNotFound, "failed insert is rolled back")

	err = f.UpdateStatus(ctx, "SCF-1", models.StatusRejected)
	assert.ErrorIs(t, err, ErrPersisting)
	err = f.SetInfoRequired(ctx, "SCF-1", true)
	assert.ErrorIs(t, err, ErrPersisting)

	got, err := f.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status, "failed update is rolled back")
	assert.False(t, got.InfoRequired)
	assert.Equal(t, baseTime, got.UpdatedAt)

	replaced := newIdentityRequest("SCF-1", baseTime)
	replaced.Address.City = "Elsewhere"
	assert.ErrorIs(t, f.Save(ctx, replaced), ErrPersisting)
	got, err = f.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", got.Address.City, "failed replace restores the previous record")
}

func TestFileStore_BestEffortSwallowsWriteFailure(t *testing.T) {
	ctx := context.Background()
	f, err := newFileStore(filepath.Join(t.TempDir(), "identity.json"), config.DurabilityBestEffort, logger.Nop())
	require.NoError(t, err)

	unwritable(t, f)

	require.NoError(t, f.Save(ctx, newIdentityRequest("SCF-1", baseTime)))
	require.NoError(t, f.UpdateStatus(ctx, "SCF-1", models.StatusApproved))

	got, err := f.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status, "memory state is kept")
}
