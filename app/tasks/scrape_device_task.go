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

// ScrapeDeviceTask fetches one device page, replaces its spec table and
// normalizes the scraped availability text into the canonical release date.
type ScrapeDeviceTask struct {
	Task
	Source     *catalog.Source
	DeviceID   string
	PageURL    string
	fetcher    *scraper.Fetcher
	scraper    *scraper.Scraper
	normalizer *device.Normalizer
	deviceRepo database.DeviceRepository
	specRepo   database.SpecRepository
}

func NewScrapeDeviceTask(source *catalog.Source, deviceID, pageURL string,
	fetcher *scraper.Fetcher, catalogScraper *scraper.Scraper, normalizer *device.Normalizer,
	deviceRepo database.DeviceRepository, specRepo database.SpecRepository) *ScrapeDeviceTask {
	return &ScrapeDeviceTask{
		Task:       NewTask(TaskTypeScrapeDevice, source.Name),
		Source:     source,
		DeviceID:   deviceID,
		PageURL:    pageURL,
		fetcher:    fetcher,
		scraper:    catalogScraper,
		normalizer: normalizer,
		deviceRepo: deviceRepo,
		specRepo:   specRepo,
	}
}

func (t *ScrapeDeviceTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetcher.Run(ctx, t.PageURL, time.Duration(t.Source.Settings.Timeout)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to fetch device page: %w", err)
	}

	specs, err := t.scraper.ParseSpecs(data)
	if err != nil {
		return fmt.Errorf("failed to parse device page: %w", err)
	}

	records := make([]database.SpecRecord, 0, len(specs))
	for _, spec := range specs {
		records = append(records, database.SpecRecord{
			Category:    spec.Category,
			Name:        spec.Name,
			Description: spec.Description,
		})
	}

	if err := t.specRepo.ReplaceSpecs(t.DeviceID, records); err != nil {
		return fmt.Errorf("failed to store specs: %w", err)
	}

	releaseDate := t.normalizer.ResolveAvailability(t.scraper.FindReleaseText(specs))
	if err := t.deviceRepo.UpdateDevice(t.DeviceID, database.DeviceUpdate{ReleaseDate: &releaseDate}); err != nil {
		return fmt.Errorf("failed to update release date: %w", err)
	}

	slog.Info("Task completed",
		"type", "ScrapeDevice",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"specs", len(records),
		"release_date", releaseDate.Format("2006-01-02"))

	return nil
}
