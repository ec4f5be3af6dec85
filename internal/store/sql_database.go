package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/migrations"
)

// maxRetries is how many times a transient database error is retried.
const maxRetries = 3

// retryDelays are the pauses before each retry.
var retryDelays = [maxRetries]time.Duration{
	50 * time.Millisecond,
	200 * time.Millisecond,
	500 * time.Millisecond,
}

// DB is a database connection bound to a driver, a query placeholder format
// and the error classifier of that driver.
type DB struct {
	*sql.DB
	driver             string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// builder returns a squirrel statement builder with the driver's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}

// withRetry runs op and retries it while the classifier reports the error
// as transient.
func (db *DB) withRetry(ctx context.Context, op func() error) error {
	err := op()
	for attempt := 0; attempt < maxRetries && err != nil; attempt++ {
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*DB.withRetry").
			Int("attempt", attempt+1).
			Msg("transient database error, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelays[attempt]):
		}
		err = op()
	}
	return err
}

// NewConnect opens a connection for the configured driver.
func NewConnect(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	if cfg.Driver == config.DriverSQLite {
		return NewConnectSQLite(ctx, cfg.DSN, log)
	}
	return NewConnectPostgres(ctx, cfg.DSN, log)
}
