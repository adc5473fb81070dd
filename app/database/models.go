package database

import (
	"time"
)

type Manufacturer struct {
	ID        string // Database UUID
	Name      string
	URL       string // Catalog page URL the manufacturer was scraped from
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Device struct {
	ID             string // Database UUID
	ManufacturerID string
	Name           string
	Rating         *float64  // Catalog rating, absent when the source shows none
	ReleaseDate    time.Time // Canonical date, never zero (sentinel policy)
	ImageURL       string
	URL            string // Device page URL, unique per device
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Spec struct {
	ID          string
	DeviceID    string
	Category    string
	Name        string
	Description string
	CreatedAt   time.Time
}

type APIKey struct {
	ID        string
	Key       string
	CreatedAt time.Time
}

// DeviceWithManufacturer is a device row joined to its owning manufacturer,
// the unit the ranking pipeline operates on.
type DeviceWithManufacturer struct {
	Device
	ManufacturerName string
}
