package api

import (
	"github.com/leshawn-rice/grabaphone/app/catalog"
	"github.com/leshawn-rice/grabaphone/app/database"
	"github.com/leshawn-rice/grabaphone/app/device"
)

type Handler struct {
	manufacturerRepo database.ManufacturerRepository
	deviceRepo       database.DeviceRepository
	specRepo         database.SpecRepository
	apiKeyRepo       database.APIKeyRepository
	configCache      *catalog.ConfigCache
	sanitizer        *device.Sanitizer
	ranker           *device.Ranker
	normalizer       *device.Normalizer
}

// SpecEntry is one spec-table row inside a device response, grouped under its
// category.
type SpecEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DeviceResponse is the wire form of a device. ReleaseDate is nil when the
// stored date is a sentinel; clients only ever see real dates.
type DeviceResponse struct {
	ID           string                 `json:"id"`
	Manufacturer string                 `json:"manufacturer"`
	Name         string                 `json:"name"`
	Rating       *float64               `json:"rating"`
	ReleaseDate  *string                `json:"release_date"`
	ImageURL     string                 `json:"image_url"`
	DeviceURL    string                 `json:"device_url"`
	Specs        map[string][]SpecEntry `json:"specs"`
}

type ManufacturerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
	DeviceCount int    `json:"device_count"`
}
