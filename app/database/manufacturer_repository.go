package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ ManufacturerRepository = (*ManufacturerRepo)(nil)

type ManufacturerRepo struct {
	db *DB
}

func NewManufacturerRepository(db *DB) *ManufacturerRepo {
	return &ManufacturerRepo{db: db}
}

// UpsertManufacturer inserts a manufacturer or refreshes its URLs, keyed by
// name (case-insensitive). Returns the database ID.
func (r *ManufacturerRepo) UpsertManufacturer(name, url, imageURL string) (string, error) {
	existing, err := r.GetManufacturerByName(name)
	if err != nil {
		return "", fmt.Errorf("failed to check existing manufacturer: %w", err)
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err = r.db.Exec(`
			UPDATE manufacturers
			SET url = ?, image_url = ?, updated_at = ?
			WHERE id = ?
		`, url, imageURL, now, existing.ID)
		if err != nil {
			return "", fmt.Errorf("failed to update manufacturer: %w", err)
		}
		return existing.ID, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO manufacturers (id, name, url, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, name, url, imageURL, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert manufacturer: %w", err)
	}

	return id, nil
}

func (r *ManufacturerRepo) GetManufacturer(id string) (*Manufacturer, error) {
	return r.getManufacturer(`WHERE id = ?`, id)
}

func (r *ManufacturerRepo) GetManufacturerByName(name string) (*Manufacturer, error) {
	return r.getManufacturer(`WHERE name = ? COLLATE NOCASE`, name)
}

func (r *ManufacturerRepo) getManufacturer(where string, arg any) (*Manufacturer, error) {
	var m Manufacturer
	err := r.db.QueryRow(`
		SELECT id, name, url, COALESCE(image_url, ''), created_at, updated_at
		FROM manufacturers `+where,
		arg).Scan(&m.ID, &m.Name, &m.URL, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manufacturer: %w", err)
	}

	return &m, nil
}

func (r *ManufacturerRepo) ListManufacturers() ([]Manufacturer, error) {
	rows, err := r.db.Query(`
		SELECT id, name, url, COALESCE(image_url, ''), created_at, updated_at
		FROM manufacturers
		ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}
	defer rows.Close()

	var manufacturers []Manufacturer
	for rows.Next() {
		var m Manufacturer
		err := rows.Scan(&m.ID, &m.Name, &m.URL, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manufacturer row: %w", err)
		}
		manufacturers = append(manufacturers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manufacturer rows: %w", err)
	}

	return manufacturers, nil
}

func (r *ManufacturerRepo) GetManufacturerCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM manufacturers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get manufacturer count: %w", err)
	}
	return count, nil
}
