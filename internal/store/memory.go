package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

// memoryStore keeps identity requests in a map guarded by an RWMutex.
// Records are copied on the way in and on the way out, so callers never
// share memory with the store.
type memoryStore struct {
	mu      sync.RWMutex
	records map[string]models.IdentityRequest
	now     func() time.Time
	logger  *logger.Logger
}

// NewMemoryStore constructs an empty in-process [IdentityStore].
func NewMemoryStore(log *logger.Logger) IdentityStore {
	log.Debug().Msg("creating memory identity store")
	return newMemoryStore(log)
}

func newMemoryStore(log *logger.Logger) *memoryStore {
	return &memoryStore{
		records: make(map[string]models.IdentityRequest),
		now:     utcNow,
		logger:  log,
	}
}

func (m *memoryStore) Save(_ context.Context, req models.IdentityRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[req.RequestID] = cloneRequest(req)
	return nil
}

func (m *memoryStore) Get(_ context.Context, requestID string) (models.IdentityRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	req, ok := m.records[requestID]
	if !ok {
		return models.IdentityRequest{}, ErrIdentityRequestNotFound
	}
	return cloneRequest(req), nil
}

func (m *memoryStore) List(_ context.Context) ([]models.IdentityRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshot(), nil
}

func (m *memoryStore) UpdateStatus(_ context.Context, requestID string, status models.IdentityStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mutate(requestID, func(req *models.IdentityRequest) {
		req.Status = status
	})
	return nil
}

func (m *memoryStore) SetInfoRequired(_ context.Context, requestID string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mutate(requestID, func(req *models.IdentityRequest) {
		req.InfoRequired = value
	})
	return nil
}

func (m *memoryStore) Close() error {
	return nil
}

// mutate applies fn to the record and refreshes UpdatedAt. It reports the
// previous value so the file store can roll back. Callers hold m.mu.
func (m *memoryStore) mutate(requestID string, fn func(req *models.IdentityRequest)) (models.IdentityRequest, bool) {
	req, ok := m.records[requestID]
	if !ok {
		return models.IdentityRequest{}, false
	}
	prev := cloneRequest(req)

	fn(&req)
	req.UpdatedAt = m.now()
	m.records[requestID] = req

	return prev, true
}

// snapshot returns a sorted copy of all records. Callers hold m.mu.
func (m *memoryStore) snapshot() []models.IdentityRequest {
	out := make([]models.IdentityRequest, 0, len(m.records))
	for _, req := range m.records {
		out = append(out, cloneRequest(req))
	}
	sortRequests(out)
	return out
}

func sortRequests(reqs []models.IdentityRequest) {
	slices.SortFunc(reqs, func(a, b models.IdentityRequest) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.RequestID, b.RequestID)
	})
}

func cloneRequest(req models.IdentityRequest) models.IdentityRequest {
	out := req
	if req.Documents.IDFront != nil {
		front := *req.Documents.IDFront
		out.Documents.IDFront = &front
	}
	if req.Documents.IDBack != nil {
		back := *req.Documents.IDBack
		out.Documents.IDBack = &back
	}
	return out
}

func utcNow() time.Time {
	return time.Now().UTC()
}
