package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ SpecRepository = (*SpecRepo)(nil)

type SpecRepo struct {
	db *DB
}

func NewSpecRepository(db *DB) *SpecRepo {
	return &SpecRepo{db: db}
}

// ReplaceSpecs swaps a device's spec rows for a freshly scraped set in one
// transaction. Specs never mutate individually, so replacement is the only
// write path.
func (r *SpecRepo) ReplaceSpecs(deviceID string, specs []SpecRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM specs WHERE device_id = ?`, deviceID); err != nil {
		return fmt.Errorf("failed to delete existing specs: %w", err)
	}

	now := time.Now().UTC()
	for _, spec := range specs {
		_, err := tx.Exec(`
			INSERT INTO specs (id, device_id, category, name, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), deviceID, spec.Category, spec.Name, spec.Description, now)
		if err != nil {
			return fmt.Errorf("failed to insert spec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit specs: %w", err)
	}

	return nil
}

func (r *SpecRepo) GetSpecsByDevice(deviceID string) ([]Spec, error) {
	rows, err := r.db.Query(`
		SELECT id, device_id, category, name, description, created_at
		FROM specs
		WHERE device_id = ?
		ORDER BY category, name
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get specs: %w", err)
	}
	defer rows.Close()

	var specs []Spec
	for rows.Next() {
		var s Spec
		err := rows.Scan(&s.ID, &s.DeviceID, &s.Category, &s.Name, &s.Description, &s.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan spec row: %w", err)
		}
		specs = append(specs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spec rows: %w", err)
	}

	return specs, nil
}
