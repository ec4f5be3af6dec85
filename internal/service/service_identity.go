// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/crypto"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/store"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/internal/verifier"
	"github.com/MKhiriev/go-identity-portal/models"
)

// Applicant-facing messages.
const (
	MessageRequestReceived = "Request received. Verification is pending."

	MessageInfoRequired = "Additional verification is required. Contact support to continue."
	MessageInProgress   = "Verification is in progress."
	MessageApproved     = "Your request has been approved."
	MessageRejected     = "Additional verification is required."
)

// identityService is the concrete implementation of IdentityService.
//
// Plaintext SSN and DOB exist only inside Register, between decoding the
// payload and sealing them with cipher.
type identityService struct {
	identityStore store.IdentityStore
	cipher        crypto.FieldCipher
	verifier      verifier.Verifier

	idGenerator   *utils.UUIDGenerator
	verifyTimeout time.Duration
	now           func() time.Time

	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewIdentityService constructs an IdentityService backed by identityStore.
// The returned service validates payloads before registering them.
func NewIdentityService(
	identityStore store.IdentityStore,
	cipher crypto.FieldCipher,
	v verifier.Verifier,
	cfg config.Verification,
	m *metrics.Metrics,
	logger *logger.Logger,
) IdentityService {
	return NewIdentityValidationService(m).Wrap(&identityService{
		identityStore: identityStore,
		cipher:        cipher,
		verifier:      v,
		idGenerator:   utils.NewUUIDGenerator(),
		verifyTimeout: cfg.Timeout,
		now:           func() time.Time { return time.Now().UTC() },
		metrics:       m,
		logger:        logger,
	})
}

// Register stores a new PENDING request and applies the verifier's answer.
//
// A verifier error or timeout keeps the request PENDING. Encryption and
// persistence errors abort the registration.
func (s *identityService) Register(ctx context.Context, payload models.RegistrationPayload) (models.RegistrationResponse, error) {
	requestID := s.idGenerator.NewRequestID()
	log := logger.FromContext(ctx).WithRequestID(requestID)

	record, err := s.buildRecord(requestID, payload)
	if err != nil {
		s.metrics.IncrementRegistration(metrics.OutcomeFailed)
		log.Err(err).Msg("sensitive fields could not be encrypted")
		return models.RegistrationResponse{}, err
	}

	if err = s.identityStore.Save(ctx, record); err != nil {
		s.metrics.IncrementRegistration(metrics.OutcomeFailed)
		log.Err(err).Msg("identity request was not saved")
		return models.RegistrationResponse{}, fmt.Errorf("%w: %w", ErrSavingIdentityRequest, err)
	}
	log.Info().Time("createdAt", record.CreatedAt).Msg("identity request received")

	// the verifier's answer is always written back, even when it is PENDING
	status := s.verify(ctx, log, requestID)
	if err = s.identityStore.UpdateStatus(ctx, requestID, status); err != nil {
		s.metrics.IncrementRegistration(metrics.OutcomeFailed)
		log.Err(err).Msg("verified status was not saved")
		return models.RegistrationResponse{}, fmt.Errorf("%w: %w", ErrSavingIdentityRequest, err)
	}
	if status != record.Status {
		s.metrics.IncrementTransition(record.Status, status)
		log.Info().
			Str("from", string(record.Status)).
			Str("to", string(status)).
			Msg("status changed by verifier")
	}

	s.metrics.IncrementRegistration(metrics.OutcomeAccepted)
	return models.RegistrationResponse{
		RequestID: requestID,
		Status:    status,
		Message:   MessageRequestReceived,
	}, nil
}

// verify asks the verifier for a status within verifyTimeout and falls back
// to PENDING.
func (s *identityService) verify(ctx context.Context, log *logger.Logger, requestID string) models.IdentityStatus {
	verifyCtx := ctx
	if s.verifyTimeout > 0 {
		var cancel context.CancelFunc
		verifyCtx, cancel = context.WithTimeout(ctx, s.verifyTimeout)
		defer cancel()
	}

	status, err := s.verifier.Verify(verifyCtx, requestID)
	if err == nil && !status.IsValid() {
		err = fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	if err != nil {
		s.metrics.IncrementVerificationFallback()
		log.Warn().
			Bool("timeout", errors.Is(err, context.DeadlineExceeded)).
			Msg("verification unavailable, request stays PENDING")
		return models.StatusPending
	}

	return status
}

func (s *identityService) buildRecord(requestID string, p models.RegistrationPayload) (models.IdentityRequest, error) {
	encryptedDOB, err := s.cipher.Encrypt(strings.TrimSpace(p.DOB))
	if err != nil {
		return models.IdentityRequest{}, fmt.Errorf("%w: dob: %w", ErrEncryptingSensitiveData, err)
	}
	encryptedSSN, err := s.cipher.Encrypt(strings.TrimSpace(p.SSN))
	if err != nil {
		return models.IdentityRequest{}, fmt.Errorf("%w: ssn: %w", ErrEncryptingSensitiveData, err)
	}

	now := s.now()
	return models.IdentityRequest{
		RequestID:    requestID,
		Status:       models.StatusPending,
		InfoRequired: false,
		CreatedAt:    now,
		UpdatedAt:    now,
		Personal: models.PersonalInfo{
			FirstName: strings.TrimSpace(p.FirstName),
			LastName:  strings.TrimSpace(p.LastName),
			Email:     strings.TrimSpace(p.Email),
			Phone:     strings.TrimSpace(p.Phone),
		},
		Relationship: models.RelationshipInfo{
			Relationship:          strings.TrimSpace(p.Relationship),
			ConnectionDescription: strings.TrimSpace(p.ConnectionDescription),
		},
		ServiceMember: models.ServiceMemberInfo{
			Name:   strings.TrimSpace(p.ServiceMemberName),
			Branch: strings.TrimSpace(p.Branch),
			Rank:   strings.TrimSpace(p.Rank),
			Unit:   strings.TrimSpace(p.Unit),
			Region: strings.TrimSpace(p.Region),
		},
		Address: models.Address{
			Street: strings.TrimSpace(p.Street),
			City:   strings.TrimSpace(p.City),
			State:  strings.TrimSpace(p.State),
			Zip:    strings.TrimSpace(p.Zip),
		},
		Sensitive: models.SensitiveFields{
			EncryptedDOB: encryptedDOB,
			EncryptedSSN: encryptedSSN,
		},
		Documents: models.Documents{
			IDFront: p.IDFront,
			IDBack:  p.IDBack,
		},
	}, nil
}

// Status returns the current status of a request with the message shown to
// the applicant.
func (s *identityService) Status(ctx context.Context, requestID string) (models.StatusResponse, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return models.StatusResponse{}, ErrMissingRequestID
	}

	record, err := s.identityStore.Get(ctx, requestID)
	if err != nil {
		if !errors.Is(err, store.ErrIdentityRequestNotFound) {
			logger.FromContext(ctx).WithRequestID(requestID).Err(err).Msg("status lookup failed")
		}
		return models.StatusResponse{}, fmt.Errorf("status lookup: %w", err)
	}

	return models.StatusResponse{
		RequestID: record.RequestID,
		Status:    record.Status,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		Message:   StatusMessage(record.Status, record.InfoRequired),
	}, nil
}

// StatusMessage returns the applicant message for a status and the
// info-required flag. The flag only changes the PENDING message.
func StatusMessage(status models.IdentityStatus, infoRequired bool) string {
	switch status {
	case models.StatusApproved:
		return MessageApproved
	case models.StatusRejected:
		return MessageRejected
	default:
		if infoRequired {
			return MessageInfoRequired
		}
		return MessageInProgress
	}
}
