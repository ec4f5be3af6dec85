package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
)

// NewIdentityStore builds the backend selected by cfg.Backend. The sql
// backend connects and runs migrations before returning.
func NewIdentityStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (IdentityStore, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(log), nil
	case config.BackendFile:
		return NewFileStore(cfg.Path, cfg.Durability, log)
	case config.BackendSQL:
		db, err := NewConnect(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting identity store database: %w", err)
		}
		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("error migrating identity store database: %w", err)
		}
		return NewSQLStore(db, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
