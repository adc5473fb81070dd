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

// ScrapeCatalogTask fetches a source's manufacturers directory, upserts every
// manufacturer found and fans out one ScrapeManufacturerTask per manufacturer.
type ScrapeCatalogTask struct {
	Task
	Source           *catalog.Source
	fetcher          *scraper.Fetcher
	scraper          *scraper.Scraper
	normalizer       *device.Normalizer
	manufacturerRepo database.ManufacturerRepository
	deviceRepo       database.DeviceRepository
	specRepo         database.SpecRepository
	enqueuer         TaskSchedulerInterface
}

func NewScrapeCatalogTask(source *catalog.Source, fetcher *scraper.Fetcher,
	catalogScraper *scraper.Scraper, normalizer *device.Normalizer,
	manufacturerRepo database.ManufacturerRepository, deviceRepo database.DeviceRepository,
	specRepo database.SpecRepository, enqueuer TaskSchedulerInterface) *ScrapeCatalogTask {
	return &ScrapeCatalogTask{
		Task:             NewTask(TaskTypeScrapeCatalog, source.Name),
		Source:           source,
		fetcher:          fetcher,
		scraper:          catalogScraper,
		normalizer:       normalizer,
		manufacturerRepo: manufacturerRepo,
		deviceRepo:       deviceRepo,
		specRepo:         specRepo,
		enqueuer:         enqueuer,
	}
}

func (t *ScrapeCatalogTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.Source.Settings.Enabled {
		slog.Debug("Source disabled, skipping", "source", t.SourceName)
		return nil
	}

	data, err := t.fetcher.Run(ctx, t.Source.URL, time.Duration(t.Source.Settings.Timeout)*time.Second)
	if err != nil {
		return fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	manufacturers, err := t.scraper.ParseManufacturers(data)
	if err != nil {
		return fmt.Errorf("failed to parse catalog page: %w", err)
	}

	enqueued := 0
	for _, m := range manufacturers {
		if m.URL == "" {
			slog.Warn("Manufacturer without catalog URL, skipping", "source", t.SourceName, "manufacturer", m.Name)
			continue
		}

		id, err := t.manufacturerRepo.UpsertManufacturer(m.Name, m.URL, m.ImageURL)
		if err != nil {
			return fmt.Errorf("failed to upsert manufacturer %s: %w", m.Name, err)
		}

		task := NewScrapeManufacturerTask(t.Source, id, m.URL, t.fetcher, t.scraper,
			t.normalizer, t.deviceRepo, t.specRepo, t.enqueuer)
		if err := t.enqueuer.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue ScrapeManufacturerTask", "source", t.SourceName, "manufacturer", m.Name, "error", err)
			continue
		}
		enqueued++
	}

	slog.Info("Task completed",
		"type", "ScrapeCatalog",
		"source", t.SourceName,
		"duration", t.GetDuration(),
		"manufacturers", len(manufacturers),
		"enqueued", enqueued)

	return nil
}
