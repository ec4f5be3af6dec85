package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

func TestMemoryStore_CopiesOnSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(logger.Nop())

	req := newIdentityRequest("SCF-1", baseTime)
	require.NoError(t, s.Save(ctx, req))

	// caller mutations after Save do not leak into the store
	req.Personal.FirstName = "Changed"
	req.Documents.IDFront.Name = "changed.png"

	got, err := s.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Personal.FirstName)
	assert.Equal(t, "front.png", got.Documents.IDFront.Name)

	// mutations of a returned record do not leak either
	got.Documents.IDFront.Name = "other.png"
	again, err := s.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, "front.png", again.Documents.IDFront.Name)
}

func TestMemoryStore_UpdateRefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(logger.Nop())
	later := baseTime.Add(time.Minute)
	s.now = func() time.Time { return later }

	require.NoError(t, s.Save(ctx, newIdentityRequest("SCF-1", baseTime)))
	require.NoError(t, s.UpdateStatus(ctx, "SCF-1", models.StatusRejected))

	got, err := s.Get(ctx, "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, baseTime, got.CreatedAt)
}

func TestMemoryStore_ListEmpty(t *testing.T) {
	s := newMemoryStore(logger.Nop())

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := newMemoryStore(logger.Nop())
	require.NoError(t, s.Save(ctx, newIdentityRequest("SCF-1", baseTime)))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = s.SetInfoRequired(ctx, "SCF-1", (i+j)%2 == 0)
				_, _ = s.Get(ctx, "SCF-1")
				_, _ = s.List(ctx)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
