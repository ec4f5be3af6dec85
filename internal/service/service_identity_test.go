// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/crypto"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/mock"
	"github.com/MKhiriev/go-identity-portal/internal/store"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/internal/validators"
	"github.com/MKhiriev/go-identity-portal/models"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	errStorage     = errors.New("storage error")
	requestIDShape = regexp.MustCompile(`^SCF-[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	fixedNow       = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func validPayload() models.RegistrationPayload {
	return models.RegistrationPayload{
		FirstName:         " Jane ",
		LastName:          "Doe",
		Email:             "jane@example.com",
		Phone:             "555-010-0100",
		Relationship:      "Spouse",
		ServiceMemberName: "John Doe",
		Branch:            "Army",
		DOB:               "1990-03-15",
		SSN:               "123-45-6789",
		Street:            "1 Main St",
		City:              "Springfield",
		State:             "IL",
		Zip:               "62701",
		IDFront:           &models.IdentityDocument{Name: "front.png", Size: 1024, Type: "image/png"},
	}
}

func testCipher(t *testing.T) crypto.FieldCipher {
	t.Helper()
	c, err := crypto.NewFieldCipher("test-passphrase")
	require.NoError(t, err)
	return c
}

type identityDeps struct {
	store    *mock.MockIdentityStore
	verifier *mock.MockVerifier
	metrics  *metrics.Metrics
}

// newRawIdentityService bypasses the validation wrapper.
func newRawIdentityService(t *testing.T, cipher crypto.FieldCipher, timeout time.Duration) (*identityService, identityDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := identityDeps{
		store:    mock.NewMockIdentityStore(ctrl),
		verifier: mock.NewMockVerifier(ctrl),
		metrics:  metrics.New(),
	}
	return &identityService{
		identityStore: deps.store,
		cipher:        cipher,
		verifier:      deps.verifier,
		idGenerator:   utils.NewUUIDGenerator(),
		verifyTimeout: timeout,
		now:           func() time.Time { return fixedNow },
		metrics:       deps.metrics,
		logger:        logger.Nop(),
	}, deps
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestIdentityService_Register_SavesEncryptedPendingRecord(t *testing.T) {
	cipher := testCipher(t)
	svc, deps := newRawIdentityService(t, cipher, time.Second)

	var saved models.IdentityRequest
	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r models.IdentityRequest) error {
			saved = r
			return nil
		})
	deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.StatusPending, nil)
	deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusPending).Return(nil)

	resp, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)

	assert.Regexp(t, requestIDShape, resp.RequestID)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, MessageRequestReceived, resp.Message)

	assert.Equal(t, resp.RequestID, saved.RequestID)
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.False(t, saved.InfoRequired)
	assert.Equal(t, fixedNow, saved.CreatedAt)
	assert.Equal(t, saved.CreatedAt, saved.UpdatedAt)
	assert.Equal(t, "Jane", saved.Personal.FirstName, "fields are trimmed")
	assert.Equal(t, "1 Main St", saved.Address.Street)
	require.NotNil(t, saved.Documents.IDFront)
	assert.Nil(t, saved.Documents.IDBack)

	assert.NotContains(t, saved.Sensitive.EncryptedSSN, "6789")
	assert.NotEqual(t, "1990-03-15", saved.Sensitive.EncryptedDOB)

	dob, err := cipher.Decrypt(saved.Sensitive.EncryptedDOB)
	require.NoError(t, err)
	assert.Equal(t, "1990-03-15", dob)
	ssn, err := cipher.Decrypt(saved.Sensitive.EncryptedSSN)
	require.NoError(t, err)
	assert.Equal(t, "123-45-6789", ssn)
}

func TestIdentityService_Register_AppliesVerifierStatus(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)

	var requestID string
	gomock.InOrder(
		deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r models.IdentityRequest) error {
				requestID = r.RequestID
				return nil
			}),
		deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.StatusApproved, nil),
		deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusApproved).
			DoAndReturn(func(_ context.Context, id string, _ models.IdentityStatus) error {
				assert.Equal(t, requestID, id)
				return nil
			}),
	)

	resp, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, resp.Status)
}

func TestIdentityService_Register_VerifierErrorKeepsPending(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)

	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.IdentityStatus(""), errors.New("upstream down"))
	deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusPending).Return(nil)

	resp, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
}

func TestIdentityService_Register_VerifierTimeoutKeepsPending(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), 20*time.Millisecond)

	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (models.IdentityStatus, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})
	deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusPending).Return(nil)

	start := time.Now()
	resp, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestIdentityService_Register_UnknownVerifierStatusKeepsPending(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)

	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.IdentityStatus("MAYBE"), nil)
	deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusPending).Return(nil)

	resp, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, resp.Status)
}

func TestIdentityService_Register_CipherErrorPersistsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	cipher := mock.NewMockFieldCipher(ctrl)
	cipher.EXPECT().Encrypt(gomock.Any()).Return("", crypto.ErrConfiguration)

	svc, _ := newRawIdentityService(t, cipher, time.Second)

	_, err := svc.Register(context.Background(), validPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncryptingSensitiveData)
	assert.ErrorIs(t, err, crypto.ErrConfiguration)
}

func TestIdentityService_Register_SaveError(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)

	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errStorage)

	_, err := svc.Register(context.Background(), validPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSavingIdentityRequest)
	assert.ErrorIs(t, err, errStorage)
}

func TestIdentityService_Register_UpdateStatusError(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)

	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.StatusPending, nil)
	deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusPending).Return(errStorage)

	_, err := svc.Register(context.Background(), validPayload())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSavingIdentityRequest)
	assert.ErrorIs(t, err, errStorage)
}

// countingStore records how often the registration flow writes to the store.
type countingStore struct {
	store.IdentityStore
	saves         int
	statusUpdates []models.IdentityStatus
}

func (c *countingStore) Save(ctx context.Context, r models.IdentityRequest) error {
	c.saves++
	return c.IdentityStore.Save(ctx, r)
}

func (c *countingStore) UpdateStatus(ctx context.Context, requestID string, status models.IdentityStatus) error {
	c.statusUpdates = append(c.statusUpdates, status)
	return c.IdentityStore.UpdateStatus(ctx, requestID, status)
}

func TestIdentityService_Register_PendingVerdictIsWrittenBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mock.NewMockVerifier(ctrl)
	verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.StatusPending, nil)

	counting := &countingStore{IdentityStore: store.NewMemoryStore(logger.Nop())}
	svc := &identityService{
		identityStore: counting,
		cipher:        testCipher(t),
		verifier:      verifier,
		idGenerator:   utils.NewUUIDGenerator(),
		verifyTimeout: time.Second,
		now:           time.Now,
		metrics:       metrics.New(),
		logger:        logger.Nop(),
	}

	resp, err := svc.Register(context.Background(), validPayload())
	require.NoError(t, err)

	assert.Equal(t, 1, counting.saves)
	assert.Equal(t, []models.IdentityStatus{models.StatusPending}, counting.statusUpdates)

	rec, err := counting.Get(context.Background(), resp.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, rec.Status)
	assert.False(t, rec.UpdatedAt.Before(rec.CreatedAt))
}

func TestIdentityService_Register_UniqueRequestIDs(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)

	deps.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	deps.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.StatusPending, nil).Times(3)
	deps.store.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), models.StatusPending).Return(nil).Times(3)

	seen := make(map[string]struct{})
	for range 3 {
		resp, err := svc.Register(context.Background(), validPayload())
		require.NoError(t, err)
		seen[resp.RequestID] = struct{}{}
	}
	assert.Len(t, seen, 3)
}

// ─────────────────────────────────────────────
// Validation wrapper
// ─────────────────────────────────────────────

func TestNewIdentityService_RejectsInvalidPayloadBeforeStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	identityStore := mock.NewMockIdentityStore(ctrl)
	v := mock.NewMockVerifier(ctrl)

	svc := NewIdentityService(identityStore, testCipher(t), v, config.Verification{Timeout: time.Second}, metrics.New(), logger.Nop())

	payload := validPayload()
	payload.Email = "not-an-email"
	payload.SSN = "12"
	payload.IDFront = nil

	_, err := svc.Register(context.Background(), payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrInvalidSubmission)

	var vErr *validators.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"email", "ssn", "idFront"}, vErr.Fields)
}

func TestNewIdentityService_StatusPassesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	identityStore := mock.NewMockIdentityStore(ctrl)

	identityStore.EXPECT().Get(gomock.Any(), "SCF-1").Return(models.IdentityRequest{
		RequestID: "SCF-1",
		Status:    models.StatusApproved,
	}, nil)

	svc := NewIdentityService(identityStore, testCipher(t), mock.NewMockVerifier(ctrl), config.Verification{}, nil, logger.Nop())

	resp, err := svc.Status(context.Background(), "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, MessageApproved, resp.Message)
}

// ─────────────────────────────────────────────
// Status
// ─────────────────────────────────────────────

func TestIdentityService_Status_MissingID(t *testing.T) {
	svc, _ := newRawIdentityService(t, testCipher(t), time.Second)

	_, err := svc.Status(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingRequestID)
}

func TestIdentityService_Status_NotFound(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)
	deps.store.EXPECT().Get(gomock.Any(), "SCF-missing").
		Return(models.IdentityRequest{}, store.ErrIdentityRequestNotFound)

	_, err := svc.Status(context.Background(), "SCF-missing")
	assert.ErrorIs(t, err, store.ErrIdentityRequestNotFound)
}

func TestIdentityService_Status_ReturnsTimestamps(t *testing.T) {
	svc, deps := newRawIdentityService(t, testCipher(t), time.Second)
	updated := fixedNow.Add(time.Hour)
	deps.store.EXPECT().Get(gomock.Any(), "SCF-1").Return(models.IdentityRequest{
		RequestID: "SCF-1",
		Status:    models.StatusPending,
		CreatedAt: fixedNow,
		UpdatedAt: updated,
	}, nil)

	resp, err := svc.Status(context.Background(), "SCF-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusResponse{
		RequestID: "SCF-1",
		Status:    models.StatusPending,
		CreatedAt: fixedNow,
		UpdatedAt: updated,
		Message:   MessageInProgress,
	}, resp)
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status       models.IdentityStatus
		infoRequired bool
		want         string
	}{
		{models.StatusPending, false, MessageInProgress},
		{models.StatusPending, true, MessageInfoRequired},
		{models.StatusApproved, false, MessageApproved},
		{models.StatusApproved, true, MessageApproved},
		{models.StatusRejected, false, MessageRejected},
		{models.StatusRejected, true, MessageRejected},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessage(tt.status, tt.infoRequired))
		})
	}
}
