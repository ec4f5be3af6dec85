package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-identity-portal/internal/crypto"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/store"
	"github.com/MKhiriev/go-identity-portal/models"
)

// Pagination bounds of the admin list.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MinPageSize     = 5
	MaxPageSize     = 50
)

// MessageStatusUpdated acknowledges an admin update.
const MessageStatusUpdated = "Status updated."

type adminService struct {
	identityStore store.IdentityStore
	cipher        crypto.FieldCipher

	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewAdminService(identityStore store.IdentityStore, cipher crypto.FieldCipher, m *metrics.Metrics, logger *logger.Logger) AdminService {
	return &adminService{
		identityStore: identityStore,
		cipher:        cipher,
		metrics:       m,
		logger:        logger,
	}
}

// List filters every stored request by status and free text, then returns
// the requested page of masked records. Total counts the filtered records.
func (s *adminService) List(ctx context.Context, query models.AdminListQuery) (models.AdminListResponse, error) {
	page, pageSize := normalizePage(query.Page), normalizePageSize(query.PageSize)

	records, err := s.identityStore.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("identity requests could not be listed")
		return models.AdminListResponse{}, fmt.Errorf("list identity requests: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query.Query))
	filtered := make([]models.IdentityRequest, 0, len(records))
	for _, record := range records {
		if query.Status != "" && record.Status != query.Status {
			continue
		}
		if needle != "" && !strings.Contains(searchText(record), needle) {
			continue
		}
		filtered = append(filtered, record)
	}

	// compare in pages first so a huge page number cannot overflow the offset
	start := len(filtered)
	if page-1 <= len(filtered)/pageSize {
		start = min((page-1)*pageSize, len(filtered))
	}
	end := min(start+pageSize, len(filtered))

	out := make([]models.AdminRecord, 0, end-start)
	for _, record := range filtered[start:end] {
		out = append(out, s.toAdminRecord(ctx, record))
	}

	return models.AdminListResponse{
		Records:  out,
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update applies a staff decision. Status and the info-required flag are
// independent; the flag is only written when the payload carries it.
func (s *adminService) Update(ctx context.Context, payload models.AdminUpdatePayload) (models.AdminUpdateResponse, error) {
	requestID := strings.TrimSpace(payload.RequestID)
	if requestID == "" || payload.Status == "" {
		return models.AdminUpdateResponse{}, ErrMissingUpdateFields
	}
	if !payload.Status.IsValid() {
		return models.AdminUpdateResponse{}, fmt.Errorf("%w: %q", ErrUnknownStatus, payload.Status)
	}

	log := logger.FromContext(ctx).WithRequestID(requestID)

	current, err := s.identityStore.Get(ctx, requestID)
	if err != nil {
		return models.AdminUpdateResponse{}, fmt.Errorf("admin update: %w", err)
	}

	if err = s.identityStore.UpdateStatus(ctx, requestID, payload.Status); err != nil {
		log.Err(err).Msg("status was not updated")
		return models.AdminUpdateResponse{}, fmt.Errorf("admin update status: %w", err)
	}
	if payload.InfoRequired != nil {
		if err = s.identityStore.SetInfoRequired(ctx, requestID, *payload.InfoRequired); err != nil {
			log.Err(err).Msg("info-required flag was not updated")
			return models.AdminUpdateResponse{}, fmt.Errorf("admin update info required: %w", err)
		}
	}

	s.metrics.IncrementTransition(current.Status, payload.Status)
	event := log.Info().
		Str("from", string(current.Status)).
		Str("to", string(payload.Status))
	if payload.InfoRequired != nil {
		event = event.Bool("infoRequired", *payload.InfoRequired)
	}
	event.Msg("status updated by staff")

	infoRequired := false
	if payload.InfoRequired != nil {
		infoRequired = *payload.InfoRequired
	}

	return models.AdminUpdateResponse{
		RequestID:    requestID,
		Status:       payload.Status,
		InfoRequired: infoRequired,
		Message:      MessageStatusUpdated,
	}, nil
}

func (s *adminService) toAdminRecord(ctx context.Context, r models.IdentityRequest) models.AdminRecord {
	return models.AdminRecord{
		RequestID:    r.RequestID,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		InfoRequired: r.InfoRequired,
		Applicant:    r.Personal,
		Relationship: r.Relationship.Relationship,
		ServiceMember: models.AdminServiceMember{
			Name:   r.ServiceMember.Name,
			Branch: r.ServiceMember.Branch,
		},
		Identity: models.MaskedIdentity{
			DOB: s.maskedField(ctx, r.RequestID, r.Sensitive.EncryptedDOB, MaskDOB, UnknownDOBMask),
			SSN: s.maskedField(ctx, r.RequestID, r.Sensitive.EncryptedSSN, MaskSSN, UnknownSSNMask),
		},
		Address: models.Address{
			Street: RedactedStreet,
			City:   r.Address.City,
			State:  r.Address.State,
			Zip:    r.Address.Zip,
		},
	}
}

// maskedField decrypts blob and masks it. A blob that cannot be decrypted
// is shown as unknown so one bad record does not fail the whole page.
func (s *adminService) maskedField(ctx context.Context, requestID, blob string, mask func(string) string, unknown string) string {
	plain, err := s.cipher.Decrypt(blob)
	if err != nil {
		logger.FromContext(ctx).WithRequestID(requestID).Warn().Err(err).Msg("sensitive field could not be decrypted")
		return unknown
	}
	return mask(plain)
}

func searchText(r models.IdentityRequest) string {
	return strings.ToLower(strings.Join([]string{
		r.RequestID,
		r.Personal.FirstName,
		r.Personal.LastName,
		r.Personal.Email,
		r.ServiceMember.Name,
	}, " "))
}

func normalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// normalizePageSize clamps every value, zero included. Callers that saw no
// page size at all pass DefaultPageSize.
func normalizePageSize(size int) int {
	return max(MinPageSize, min(size, MaxPageSize))
}
