package database

import (
	"time"
)

// DeviceRecord carries the normalized fields of a scraped or submitted device.
type DeviceRecord struct {
	Name        string
	URL         string
	ImageURL    string
	Rating      *float64
	ReleaseDate time.Time
}

// SpecRecord carries one scraped spec-table row.
type SpecRecord struct {
	Category    string
	Name        string
	Description string
}

// DeviceUpdate carries the mutable device fields; nil means unchanged.
type DeviceUpdate struct {
	Name        *string
	Rating      *float64
	ReleaseDate *time.Time
}

type ManufacturerRepository interface {
	UpsertManufacturer(name, url, imageURL string) (string, error)
	GetManufacturer(id string) (*Manufacturer, error)
	GetManufacturerByName(name string) (*Manufacturer, error)
	ListManufacturers() ([]Manufacturer, error)
	GetManufacturerCount() (int, error)
}

type DeviceRepository interface {
	UpsertDevice(manufacturerID string, record DeviceRecord) (string, error)
	GetDevice(id string) (*Device, error)
	GetDeviceByURL(url string) (*Device, error)
	ListDevicesWithManufacturer() ([]DeviceWithManufacturer, error)
	UpdateDevice(id string, update DeviceUpdate) error
	GetDeviceCount() (int, error)
	GetDeviceCountByManufacturer(manufacturerID string) (int, error)
}

type SpecRepository interface {
	ReplaceSpecs(deviceID string, specs []SpecRecord) error
	GetSpecsByDevice(deviceID string) ([]Spec, error)
}

type APIKeyRepository interface {
	CreateKey(key string) (*APIKey, error)
	KeyExists(key string) (bool, error)
}
