package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/leshawn-rice/grabaphone/app/catalog"
	"github.com/leshawn-rice/grabaphone/app/cfg"
	"github.com/leshawn-rice/grabaphone/app/database"
	"github.com/leshawn-rice/grabaphone/app/device"
	"github.com/leshawn-rice/grabaphone/app/scraper"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

type Scheduler struct {
	configCache      *catalog.ConfigCache
	fetcher          *scraper.Fetcher
	scraper          *scraper.Scraper
	normalizer       *device.Normalizer
	manufacturerRepo database.ManufacturerRepository
	deviceRepo       database.DeviceRepository
	specRepo         database.SpecRepository
	interval         time.Duration
	workerCount      int
	ctx              context.Context
	cancel           context.CancelFunc
	wg               sync.WaitGroup
	taskQueue        chan TaskInterface

	// nextRun tracks per-source refresh deadlines; scraping restarts from
	// scratch after a process restart
	nextRun   map[string]time.Time
	nextRunMu sync.Mutex
}

func NewScheduler(configCache *catalog.ConfigCache, fetcher *scraper.Fetcher,
	catalogScraper *scraper.Scraper, normalizer *device.Normalizer,
	manufacturerRepo database.ManufacturerRepository, deviceRepo database.DeviceRepository,
	specRepo database.SpecRepository) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache:      configCache,
		fetcher:          fetcher,
		scraper:          catalogScraper,
		normalizer:       normalizer,
		manufacturerRepo: manufacturerRepo,
		deviceRepo:       deviceRepo,
		specRepo:         specRepo,
		interval:         time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:      cfg.WorkerCount,
		ctx:              ctx,
		cancel:           cancel,
		taskQueue:        make(chan TaskInterface, 300),
		nextRun:          make(map[string]time.Time),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueDueSources()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueDueSources()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueDueSources() {
	sources := s.configCache.GetEnabledSources()
	if len(sources) == 0 {
		slog.Debug("No enabled catalog sources found")
		return
	}

	now := time.Now().UTC()

	s.nextRunMu.Lock()
	defer s.nextRunMu.Unlock()

	for _, source := range sources {
		if deadline, ok := s.nextRun[source.Name]; ok && deadline.After(now) {
			slog.Debug("Source not due for refresh yet", "source", source.Name, "next_run", deadline)
			continue
		}

		task := NewScrapeCatalogTask(source, s.fetcher, s.scraper, s.normalizer,
			s.manufacturerRepo, s.deviceRepo, s.specRepo, s)
		if err := s.EnqueueTask(task); err != nil {
			slog.Warn("Failed to enqueue ScrapeCatalogTask", "source", source.Name, "error", err)
			continue
		}

		s.nextRun[source.Name] = now.Add(time.Duration(source.Settings.RefreshInterval) * time.Second)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "source", task.GetSourceName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
