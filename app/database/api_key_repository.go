package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ APIKeyRepository = (*APIKeyRepo)(nil)

type APIKeyRepo struct {
	db *DB
}

func NewAPIKeyRepository(db *DB) *APIKeyRepo {
	return &APIKeyRepo{db: db}
}

func (r *APIKeyRepo) CreateKey(key string) (*APIKey, error) {
	apiKey := &APIKey{
		ID:        uuid.NewString(),
		Key:       key,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.Exec(`
		INSERT INTO api_keys (id, key, created_at)
		VALUES (?, ?, ?)
	`, apiKey.ID, apiKey.Key, apiKey.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert api key: %w", err)
	}

	return apiKey, nil
}

func (r *APIKeyRepo) KeyExists(key string) (bool, error) {
	var exists int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM api_keys WHERE key = ?`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check api key: %w", err)
	}
	return exists > 0, nil
}
