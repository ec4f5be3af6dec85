// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

// fileStore is the memory store backed by a JSON array file. Every mutation
// rewrites the whole file through a temp file and a rename.
//
// With [config.DurabilityBestEffort] read and write failures are logged and
// swallowed. With [config.DurabilityStrict] they are returned and the
// in-memory mutation is undone.
type fileStore struct {
	*memoryStore
	path   string
	strict bool
}

// NewFileStore loads the file at path and returns an [IdentityStore] backed
// by it. A missing file starts an empty store. A corrupt or unreadable file
// starts an empty store in best-effort mode and is an error in strict mode.
func NewFileStore(path, durability string, log *logger.Logger) (IdentityStore, error) {
	return newFileStore(path, durability, log)
}

func newFileStore(path, durability string, log *logger.Logger) (*fileStore, error) {
	f := &fileStore{
		memoryStore: newMemoryStore(log),
		path:        path,
		strict:      durability == config.DurabilityStrict,
	}

	if err := f.load(); err != nil {
		if f.strict {
			return nil, err
		}
		log.Warn().Err(err).Msg("identity store file was not loaded, starting empty")
	}

	log.Debug().Int("records", len(f.records)).Bool("strict", f.strict).Msg("file identity store created")
	return f, nil
}

func (f *fileStore) Save(ctx context.Context, req models.IdentityRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, existed := f.records[req.RequestID]
	f.records[req.RequestID] = cloneRequest(req)

	return f.commit(ctx, req.RequestID, func() {
		if existed {
			f.records[req.RequestID] = prev
			return
		}
		delete(f.records, req.RequestID)
	})
}

func (f *fileStore) UpdateStatus(ctx context.Context, requestID string, status models.IdentityStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, ok := f.mutate(requestID, func(req *models.IdentityRequest) {
		req.Status = status
	})
	if !ok {
		return nil
	}

	return f.commit(ctx, requestID, func() { f.records[requestID] = prev })
}

func (f *fileStore) SetInfoRequired(ctx context.Context, requestID string, value bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, ok := f.mutate(requestID, func(req *models.IdentityRequest) {
		req.InfoRequired = value
	})
	if !ok {
		return nil
	}

	return f.commit(ctx, requestID, func() { f.records[requestID] = prev })
}

// commit persists the current state. On failure it either rolls back and
// returns the error (strict) or logs it (best-effort). Callers hold f.mu.
func (f *fileStore) commit(ctx context.Context, requestID string, rollback func()) error {
	err := f.persist()
	if err == nil {
		return nil
	}

	if f.strict {
		rollback()
		return err
	}

	logger.FromContext(ctx).Warn().Err(err).
		Str("func", "*fileStore.commit").
		Str("requestId", requestID).
		Msg("identity store file was not written")
	return nil
}

func (f *fileStore) load() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: reading %s: %w", ErrPersisting, f.path, err)
	}

	var reqs []models.IdentityRequest
	if err = json.Unmarshal(data, &reqs); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrPersisting, f.path, err)
	}

	for _, req := range reqs {
		f.records[req.RequestID] = req
	}
	return nil
}

func (f *fileStore) persist() error {
	data, err := json.MarshalIndent(f.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding records: %w", ErrPersisting, err)
	}

	dir := filepath.Dir(f.path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrPersisting, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", ErrPersisting, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing temp file: %w", ErrPersisting, err)
	}
	if err = tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: chmod temp file: %w", ErrPersisting, err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: syncing temp file: %w", ErrPersisting, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %w", ErrPersisting, err)
	}

	if err = os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("%w: renaming temp file: %w", ErrPersisting, err)
	}
	return nil
}
