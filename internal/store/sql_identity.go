// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

// sqlIdentityStore is the database/sql implementation of [IdentityStore].
//
// Each row keeps the full record as JSON in the "record" column. The
// status, info_required, created_at and updated_at columns are authoritative
// and are copied over the decoded record on every read, so UpdateStatus and
// SetInfoRequired touch only columns.
type sqlIdentityStore struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLStore constructs an [IdentityStore] on an open, migrated connection.
func NewSQLStore(db *DB, log *logger.Logger) IdentityStore {
	log.Debug().Str("driver", db.driver).Msg("creating sql identity store")
	return &sqlIdentityStore{
		db:     db,
		now:    utcNow,
		logger: log,
	}
}

// identityRow mirrors one row of identity_requests.
type identityRow struct {
	RequestID    string
	Status       string
	InfoRequired bool
	Record       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r identityRow) toModel() (models.IdentityRequest, error) {
	var req models.IdentityRequest
	if err := json.Unmarshal([]byte(r.Record), &req); err != nil {
		return models.IdentityRequest{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}

	req.RequestID = r.RequestID
	req.Status = models.IdentityStatus(r.Status)
	req.InfoRequired = r.InfoRequired
	req.CreatedAt = r.CreatedAt.UTC()
	req.UpdatedAt = r.UpdatedAt.UTC()
	return req, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdentityRow(s rowScanner) (identityRow, error) {
	var row identityRow
	err := s.Scan(&row.RequestID, &row.Status, &row.InfoRequired, &row.Record, &row.CreatedAt, &row.UpdatedAt)
	return row, err
}

func (s *sqlIdentityStore) Save(ctx context.Context, req models.IdentityRequest) error {
	log := logger.FromContext(ctx)

	record, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}

	query, args, err := buildUpsertQuery(s.db.builder(), req, record)
	if err != nil {
		log.Err(err).Str("func", "*sqlIdentityStore.Save").Msg("error building upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*sqlIdentityStore.Save").Str("requestId", req.RequestID).Msg("failed to save identity request")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlIdentityStore) Get(ctx context.Context, requestID string) (models.IdentityRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectByIDQuery(s.db.builder(), requestID)
	if err != nil {
		return models.IdentityRequest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var row identityRow
	err = s.db.withRetry(ctx, func() error {
		var scanErr error
		row, scanErr = scanIdentityRow(s.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.IdentityRequest{}, ErrIdentityRequestNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*sqlIdentityStore.Get").Str("requestId", requestID).Msg("failed to get identity request")
		return models.IdentityRequest{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return row.toModel()
}

func (s *sqlIdentityStore) List(ctx context.Context) ([]models.IdentityRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectAllQuery(s.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result []models.IdentityRequest
	err = s.db.withRetry(ctx, func() error {
		var listErr error
		result, listErr = s.list(ctx, query, args)
		return listErr
	})
	if err != nil {
		log.Err(err).Str("func", "*sqlIdentityStore.List").Msg("failed to list identity requests")
		return nil, err
	}

	// drivers differ in timestamp precision
	sortRequests(result)
	return result, nil
}

func (s *sqlIdentityStore) list(ctx context.Context, query string, args []any) ([]models.IdentityRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result := make([]models.IdentityRequest, 0)
	for rows.Next() {
		row, err := scanIdentityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		req, err := row.toModel()
		if err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func (s *sqlIdentityStore) UpdateStatus(ctx context.Context, requestID string, status models.IdentityStatus) error {
	query, args, err := buildUpdateStatusQuery(s.db.builder(), requestID, status, s.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.exec(ctx, "*sqlIdentityStore.UpdateStatus", requestID, query, args)
}

func (s *sqlIdentityStore) SetInfoRequired(ctx context.Context, requestID string, value bool) error {
	query, args, err := buildUpdateInfoRequiredQuery(s.db.builder(), requestID, value, s.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return s.exec(ctx, "*sqlIdentityStore.SetInfoRequired", requestID, query, args)
}

// exec runs an UPDATE. Zero affected rows means the id is unknown, which is
// not an error.
func (s *sqlIdentityStore) exec(ctx context.Context, funcName, requestID, query string, args []any) error {
	err := s.db.withRetry(ctx, func() error {
		_, execErr := s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Str("requestId", requestID).Msg("failed to update identity request")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (s *sqlIdentityStore) Close() error {
	return s.db.Close()
}
