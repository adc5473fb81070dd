package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/leshawn-rice/grabaphone/app/catalog"
	"github.com/leshawn-rice/grabaphone/app/database"
	"github.com/leshawn-rice/grabaphone/app/device"
	"github.com/leshawn-rice/grabaphone/app/scraper"
)

// ScrapeManufacturerTask fetches one manufacturer's device listing, upserts
// the devices and fans out one ScrapeDeviceTask per device page.
type ScrapeManufacturerTask struct {
	Task
	Source         *catalog.Source
	ManufacturerID string
	PageURL        string
	fetcher        *scraper.Fetcher
	scraper        *scraper.Scraper
	normalizer     *device.Normalizer
	deviceRepo     database.DeviceRepository
	specRepo       database.SpecRepository
	enqueuer       TaskSchedulerInterface
}

func NewScrapeManufacturerTask(source *catalog.Source, manufacturerID, pageURL string,
	fetcher *scraper.Fetcher, catalogScraper *scraper.Scraper, normalizer *device.Normalizer,
	deviceRepo database.DeviceRepository, specRepo database.SpecRepository,
	enqueuer TaskSchedulerInterface) *ScrapeManufacturerTask {
	return &ScrapeManufacturerTask{
		Task:           NewTask(TaskTypeScrapeManufacturer, source.Name),
		Source:         source,
		ManufacturerID: manufacturerID,
		PageURL:        pageURL,
		fetcher:        fetcher,
		scraper:        catalogScraper,
		normalizer:     normalizer,
		deviceRepo:     deviceRepo,
		specRepo:       specRepo,
		enqueuer:       enqueuer,
	}
}

func (t *ScrapeManufacturerTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetcher.Run(ctx, t.PageURL, time.Duration(t.Source.Settings.Timeout)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to fetch device listing: %w", err)
	}

	devices, err := t.scraper.ParseDevices(data)
	if err != nil {
		return fmt.Errorf("failed to parse device listing: %w", err)
	}

	if len(devices) > t.Source.Settings.MaxDevices {
		devices = devices[:t.Source.Settings.MaxDevices]
	}

	enqueued := 0
	for _, d := range devices {
		if d.URL == "" {
			slog.Warn("Device without page URL, skipping", "source", t.SourceName, "device", d.Name)
			continue
		}

		// Spec scraping owns the canonical date; until it runs a new
		// device carries the unknown sentinel, an existing one keeps
		// its stored date
		releaseDate := device.UnknownSentinel
		if existing, err := t.deviceRepo.GetDeviceByURL(d.URL); err != nil {
			return fmt.Errorf("failed to check existing device: %w", err)
		} else if existing != nil {
			releaseDate = existing.ReleaseDate
		}

		record := database.DeviceRecord{
			Name:        d.Name,
			URL:         d.URL,
			ImageURL:    d.ImageURL,
			Rating:      t.scraper.ParseRating(d.RatingText),
			ReleaseDate: releaseDate,
		}

		id, err := t.deviceRepo.UpsertDevice(t.ManufacturerID, record)
		if err != nil {
			return fmt.Errorf("failed to upsert device %s: %w", d.Name, err)
		}

		task := NewScrapeDeviceTask(t.Source, id, d.URL, t.fetcher, t.scraper,
			t.normalizer, t.deviceRepo, t.specRepo)
		if err := t.enqueuer.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue ScrapeDeviceTask", "source", t.SourceName, "device", d.Name, "error", err)
			continue
		}
		enqueued++
	}

	slog.Info("Task completed",
		"type", "ScrapeManufacturer",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"devices", len(devices),
		"enqueued", enqueued)

	return nil
}
