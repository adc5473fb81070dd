package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mazen160/go-random"

	"github.com/leshawn-rice/grabaphone/app/catalog"
	"github.com/leshawn-rice/grabaphone/app/database"
	"github.com/leshawn-rice/grabaphone/app/device"
)

const apiKeyLength = 12

func NewHandler(configCache *catalog.ConfigCache,
	manufacturerRepo database.ManufacturerRepository, deviceRepo database.DeviceRepository,
	specRepo database.SpecRepository, apiKeyRepo database.APIKeyRepository,
	sanitizer *device.Sanitizer, ranker *device.Ranker, normalizer *device.Normalizer) *Handler {
	return &Handler{
		manufacturerRepo: manufacturerRepo,
		deviceRepo:       deviceRepo,
		specRepo:         specRepo,
		apiKeyRepo:       apiKeyRepo,
		configCache:      configCache,
		sanitizer:        sanitizer,
		ranker:           ranker,
		normalizer:       normalizer,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if manufacturerCount, err := h.manufacturerRepo.GetManufacturerCount(); err == nil {
		health["manufacturers"] = manufacturerCount
	}

	if deviceCount, err := h.deviceRepo.GetDeviceCount(); err == nil {
		health["devices"] = deviceCount
	}

	health["loaded_sources"] = h.configCache.GetSourceCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetDevices(c *gin.Context) {
	fs := h.sanitizer.Run(queryParams(c, device.QueryFields), device.QueryFields)

	rows, err := h.deviceRepo.ListDevicesWithManufacturer()
	if err != nil {
		slog.Error("Database error", "operation", "list_devices", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	page := h.ranker.Run(rows, fs, time.Now().UTC())

	devices := make([]DeviceResponse, 0, len(page))
	for _, row := range page {
		specs, err := h.specRepo.GetSpecsByDevice(row.ID)
		if err != nil {
			slog.Error("Database error", "operation", "get_specs", "device", row.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		devices = append(devices, h.serializeDevice(row, specs))
	}

	c.JSON(http.StatusOK, gin.H{
		"devices": devices,
		"total":   len(devices),
	})
}

func (h *Handler) GetManufacturers(c *gin.Context) {
	fs := h.sanitizer.Run(queryParams(c, device.ManufacturerQueryFields), device.ManufacturerQueryFields)

	all, err := h.manufacturerRepo.ListManufacturers()
	if err != nil {
		slog.Error("Database error", "operation", "list_manufacturers", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	matched := make([]database.Manufacturer, 0, len(all))
	for _, m := range all {
		if fs.Name != nil && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(*fs.Name)) {
			continue
		}
		matched = append(matched, m)
	}

	if fs.Offset >= len(matched) {
		matched = nil
	} else {
		end := fs.Offset + fs.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[fs.Offset:end]
	}

	manufacturers := make([]ManufacturerResponse, 0, len(matched))
	for _, m := range matched {
		count, err := h.deviceRepo.GetDeviceCountByManufacturer(m.ID)
		if err != nil {
			slog.Error("Database error", "operation", "count_devices", "manufacturer", m.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		manufacturers = append(manufacturers, ManufacturerResponse{
			ID:          m.ID,
			Name:        m.Name,
			URL:         m.URL,
			ImageURL:    m.ImageURL,
			DeviceCount: count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"manufacturers": manufacturers,
		"total":         len(manufacturers),
	})
}

func (h *Handler) CreateAPIKey(c *gin.Context) {
	// Regenerate on the rare collision with an existing key.
	for attempt := 0; attempt < 10; attempt++ {
		key, err := random.String(apiKeyLength)
		if err != nil {
			slog.Error("Key generation error", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate key"})
			return
		}

		exists, err := h.apiKeyRepo.KeyExists(key)
		if err != nil {
			slog.Error("Database error", "operation", "key_exists", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if exists {
			continue
		}

		apiKey, err := h.apiKeyRepo.CreateKey(key)
		if err != nil {
			slog.Error("Database error", "operation", "create_key", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"key": apiKey.Key})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate a unique key"})
}

type createManufacturerRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
}

func (h *Handler) CreateManufacturer(c *gin.Context) {
	var req createManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fields 'name' and 'url' are required"})
		return
	}

	id, err := h.manufacturerRepo.UpsertManufacturer(req.Name, req.URL, req.ImageURL)
	if err != nil {
		slog.Error("Database error", "operation", "upsert_manufacturer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   id,
		"name": req.Name,
	})
}

type createDeviceRequest struct {
	Manufacturer string   `json:"manufacturer"`
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	ImageURL     string   `json:"image_url"`
	Rating       *float64 `json:"rating"`
	ReleaseDate  string   `json:"release_date"`
}

func (h *Handler) CreateDevice(c *gin.Context) {
	var req createDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Manufacturer == "" || req.Name == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fields 'manufacturer', 'name' and 'url' are required"})
		return
	}

	manufacturer, err := h.manufacturerRepo.GetManufacturerByName(req.Manufacturer)
	if err != nil {
		slog.Error("Database error", "operation", "get_manufacturer", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if manufacturer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Manufacturer not found"})
		return
	}

	id, err := h.deviceRepo.UpsertDevice(manufacturer.ID, database.DeviceRecord{
		Name:        req.Name,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		Rating:      req.Rating,
		ReleaseDate: h.normalizer.ResolveAvailability(req.ReleaseDate),
	})
	if err != nil {
		slog.Error("Database error", "operation", "upsert_device", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           id,
		"manufacturer": manufacturer.Name,
		"name":         req.Name,
	})
}

type updateDeviceRequest struct {
	Name        *string  `json:"name"`
	Rating      *float64 `json:"rating"`
	ReleaseDate *string  `json:"release_date"`
}

func (h *Handler) UpdateDevice(c *gin.Context) {
	id := c.Param("id")

	var req updateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == nil && req.Rating == nil && req.ReleaseDate == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	update := database.DeviceUpdate{
		Name:   req.Name,
		Rating: req.Rating,
	}
	if req.ReleaseDate != nil {
		releaseDate := h.normalizer.ResolveAvailability(*req.ReleaseDate)
		update.ReleaseDate = &releaseDate
	}

	if err := h.deviceRepo.UpdateDevice(id, update); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Device not found"})
			return
		}
		slog.Error("Database error", "operation", "update_device", "device", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// queryParams copies only the keys actually present in the request query, so
// the sanitizer can tell an absent parameter from an empty one.
func queryParams(c *gin.Context, fields []device.Field) map[string]any {
	params := make(map[string]any, len(fields))
	query := c.Request.URL.Query()
	for _, field := range fields {
		if values, ok := query[string(field)]; ok && len(values) > 0 {
			params[string(field)] = values[0]
		}
	}
	return params
}

func (h *Handler) serializeDevice(row database.DeviceWithManufacturer, specs []database.Spec) DeviceResponse {
	resp := DeviceResponse{
		ID:           row.ID,
		Manufacturer: row.ManufacturerName,
		Name:         row.Name,
		Rating:       row.Rating,
		ImageURL:     row.ImageURL,
		DeviceURL:    row.URL,
		Specs:        make(map[string][]SpecEntry),
	}

	if !h.normalizer.IsSentinel(row.ReleaseDate) {
		formatted := row.ReleaseDate.Format("2006-01-02")
		resp.ReleaseDate = &formatted
	}

	for _, spec := range specs {
		resp.Specs[spec.Category] = append(resp.Specs[spec.Category], SpecEntry{
			Name:        spec.Name,
			Description: spec.Description,
		})
	}

	return resp
}
