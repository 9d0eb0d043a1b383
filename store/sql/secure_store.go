// Package sqlstore persists session tokens through bun so the client can
// share a database with the host application.
package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-auth-client/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SecureStore keeps one row per storage key in auth_client_tokens.
type SecureStore struct {
	db   *bun.DB
	repo repository.Repository[*tokenRecord]
}

func (s *SecureStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.repo == nil || s.db == nil {
		return fmt.Errorf("sqlstore: secure store is not configured")
	}
	trimmedKey := strings.TrimSpace(key)
	if trimmedKey == "" {
		return fmt.Errorf("sqlstore: storage key is required")
	}
	now := time.Now().UTC()

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Model((*tokenRecord)(nil)).
			Set("token_value = ?", value).
			Set("updated_at = ?", now).
			Where("storage_key = ?", trimmedKey).
			Exec(ctx)
		if err != nil {
			return err
		}
		updated, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if updated > 0 {
			return nil
		}

		record := &tokenRecord{
			ID:         uuid.NewString(),
			StorageKey: trimmedKey,
			TokenValue: value,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		_, err = s.repo.CreateTx(ctx, tx, record)
		return err
	})
}

func (s *SecureStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.repo == nil {
		return "", false, fmt.Errorf("sqlstore: secure store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("storage_key", "=", strings.TrimSpace(key)),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return "", false, err
	}
	if len(records) == 0 {
		return "", false, nil
	}
	return records[0].TokenValue, true, nil
}

func (s *SecureStore) Delete(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: secure store is not configured")
	}
	_, err := s.db.NewDelete().
		Model((*tokenRecord)(nil)).
		Where("storage_key = ?", strings.TrimSpace(key)).
		Exec(ctx)
	return err
}

var _ core.SecureStore = (*SecureStore)(nil)
