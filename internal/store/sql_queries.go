package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-identity-portal/models"
)

const identityRequestsTable = "identity_requests"

var identityRequestColumns = []string{
	"request_id",
	"status",
	"info_required",
	"record",
	"created_at",
	"updated_at",
}

// upsertSuffix replaces every column of an existing row. EXCLUDED works for
// both PostgreSQL and SQLite.
const upsertSuffix = `ON CONFLICT (request_id) DO UPDATE SET
	status = EXCLUDED.status,
	info_required = EXCLUDED.info_required,
	record = EXCLUDED.record,
	created_at = EXCLUDED.created_at,
	updated_at = EXCLUDED.updated_at`

func buildUpsertQuery(b sq.StatementBuilderType, req models.IdentityRequest, record []byte) (string, []any, error) {
	return b.Insert(identityRequestsTable).
		Columns(identityRequestColumns...).
		Values(
			req.RequestID,
			string(req.Status),
			req.InfoRequired,
			string(record),
			req.CreatedAt.UTC(),
			req.UpdatedAt.UTC(),
		).
		Suffix(upsertSuffix).
		ToSql()
}

func buildSelectByIDQuery(b sq.StatementBuilderType, requestID string) (string, []any, error) {
	return b.Select(identityRequestColumns...).
		From(identityRequestsTable).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
}

func buildSelectAllQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(identityRequestColumns...).
		From(identityRequestsTable).
		OrderBy("created_at ASC", "request_id ASC").
		ToSql()
}

func buildUpdateStatusQuery(b sq.StatementBuilderType, requestID string, status models.IdentityStatus, now time.Time) (string, []any, error) {
	return b.Update(identityRequestsTable).
		Set("status", string(status)).
		Set("updated_at", now).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
}

func buildUpdateInfoRequiredQuery(b sq.StatementBuilderType, requestID string, value bool, now time.Time) (string, []any, error) {
	return b.Update(identityRequestsTable).
		Set("info_required", value).
		Set("updated_at", now).
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
}
