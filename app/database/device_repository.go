package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ DeviceRepository = (*DeviceRepo)(nil)

type DeviceRepo struct {
	db *DB
}

func NewDeviceRepository(db *DB) *DeviceRepo {
	return &DeviceRepo{db: db}
}

// UpsertDevice inserts a device or refreshes its scraped fields, keyed by the
// device page URL. Returns the database ID.
func (r *DeviceRepo) UpsertDevice(manufacturerID string, record DeviceRecord) (string, error) {
	existing, err := r.GetDeviceByURL(record.URL)
	if err != nil {
		return "", fmt.Errorf("failed to check existing device: %w", err)
	}

	now := time.Now().UTC()

	if existing != nil {
		_, err = r.db.Exec(`
			UPDATE devices
			SET manufacturer_id = ?, name = ?, rating = ?, release_date = ?,
			    image_url = ?, updated_at = ?
			WHERE id = ?
		`, manufacturerID, record.Name, record.Rating, record.ReleaseDate,
			record.ImageURL, now, existing.ID)
		if err != nil {
			return "", fmt.Errorf("failed to update device: %w", err)
		}
		return existing.ID, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO devices (id, manufacturer_id, name, rating, release_date,
		                     image_url, url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, manufacturerID, record.Name, record.Rating, record.ReleaseDate,
		record.ImageURL, record.URL, now, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert device: %w", err)
	}

	return id, nil
}

func (r *DeviceRepo) GetDevice(id string) (*Device, error) {
	return r.getDevice(`WHERE id = ?`, id)
}

func (r *DeviceRepo) GetDeviceByURL(url string) (*Device, error) {
	return r.getDevice(`WHERE url = ?`, url)
}

func (r *DeviceRepo) getDevice(where string, arg any) (*Device, error) {
	var d Device
	err := r.db.QueryRow(`
		SELECT id, manufacturer_id, name, rating, release_date,
		       COALESCE(image_url, ''), url, created_at, updated_at
		FROM devices `+where,
		arg).Scan(&d.ID, &d.ManufacturerID, &d.Name, &d.Rating, &d.ReleaseDate,
		&d.ImageURL, &d.URL, &d.CreatedAt, &d.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	return &d, nil
}

// ListDevicesWithManufacturer returns every device joined to its manufacturer.
// Rows are unordered: filtering, ordering and pagination belong to the ranker.
func (r *DeviceRepo) ListDevicesWithManufacturer() ([]DeviceWithManufacturer, error) {
	rows, err := r.db.Query(`
		SELECT d.id, d.manufacturer_id, d.name, d.rating, d.release_date,
		       COALESCE(d.image_url, ''), d.url, d.created_at, d.updated_at,
		       m.name
		FROM devices d
		JOIN manufacturers m ON m.id = d.manufacturer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []DeviceWithManufacturer
	for rows.Next() {
		var d DeviceWithManufacturer
		err := rows.Scan(&d.ID, &d.ManufacturerID, &d.Name, &d.Rating, &d.ReleaseDate,
			&d.ImageURL, &d.URL, &d.CreatedAt, &d.UpdatedAt, &d.ManufacturerName)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device row: %w", err)
		}
		devices = append(devices, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device rows: %w", err)
	}

	return devices, nil
}

func (r *DeviceRepo) UpdateDevice(id string, update DeviceUpdate) error {
	result, err := r.db.Exec(`
		UPDATE devices
		SET name = COALESCE(?, name),
		    rating = COALESCE(?, rating),
		    release_date = COALESCE(?, release_date),
		    updated_at = ?
		WHERE id = ?
	`, update.Name, update.Rating, update.ReleaseDate, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *DeviceRepo) GetDeviceCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM devices`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get device count: %w", err)
	}
	return count, nil
}

func (r *DeviceRepo) GetDeviceCountByManufacturer(manufacturerID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM devices WHERE manufacturer_id = ?`,
		manufacturerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get device count: %w", err)
	}
	return count, nil
}
