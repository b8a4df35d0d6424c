// ABOUTME: Page content store keeping one {rawText, markdownText} record per page key
// ABOUTME: Wraps a namespaced key-value backend and surfaces backend failures as PersistenceError

package store

import (
	"context"
	"encoding/json"
	"errors"

	coreerrors "tabscribe-api/core/errors"
	"tabscribe-api/core/domain"
	"tabscribe-api/core/interfaces"
)

// PageStore implements interfaces.PageStore
type PageStore struct {
	kv     interfaces.KeyValueStore
	logger interfaces.Logger
}

// NewPageStore creates a page store over kv
func NewPageStore(kv interfaces.KeyValueStore, logger interfaces.Logger) *PageStore {
	return &PageStore{kv: kv, logger: logger}
}

// Put replaces the whole record at key
func (s *PageStore) Put(ctx context.Context, key string, record domain.PageRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return &coreerrors.PersistenceError{Op: "encode", Key: key, Err: err}
	}

	if err := s.kv.Set(ctx, key, data, 0); err != nil {
		return &coreerrors.PersistenceError{Op: "put", Key: key, Err: err}
	}
	return nil
}

// Get returns the record at key; an unknown key is not an error
func (s *PageStore) Get(ctx context.Context, key string) (domain.PageRecord, bool, error) {
	var record domain.PageRecord

	data, err := s.kv.Get(ctx, key)
	if coreerrors.IsKeyNotFound(err) {
		return record, false, nil
	}
	if err != nil {
		return record, false, &coreerrors.PersistenceError{Op: "get", Key: key, Err: err}
	}

	if err := json.Unmarshal(data, &record); err != nil {
		return record, false, &coreerrors.PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return record, true, nil
}

// ClearAll removes every page record. Settings live in a different namespace.
func (s *PageStore) ClearAll(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return &coreerrors.PersistenceError{Op: "clear", Err: err}
	}
	return nil
}

// ClearStale deletes every record whose key starts with prefix and returns
// how many were removed. Individual delete failures are logged and reported
// together after the sweep.
func (s *PageStore) ClearStale(ctx context.Context, prefix string) (int, error) {
	keys, err := s.kv.Keys(ctx, prefix)
	if err != nil {
		return 0, &coreerrors.PersistenceError{Op: "list", Key: prefix, Err: err}
	}

	var (
		removed int
		errs    []error
	)
	for _, key := range keys {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to remove stale page record", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			errs = append(errs, &coreerrors.PersistenceError{Op: "delete", Key: key, Err: err})
			continue
		}
		removed++
	}

	if removed > 0 {
		s.logger.Info("Removed stale page records", map[string]interface{}{
			"prefix": prefix,
			"count":  removed,
		})
	}

	return removed, errors.Join(errs...)
}
