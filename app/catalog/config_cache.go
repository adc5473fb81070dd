package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigCache loads and caches catalog source configurations from a directory
// of YAML files, one file per source.
type ConfigCache struct {
	sourcesDir string
	cache      map[string]*Source
	mu         sync.RWMutex
}

func NewConfigCache(sourcesDir string) *ConfigCache {
	return &ConfigCache{
		sourcesDir: sourcesDir,
		cache:      make(map[string]*Source),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.sourcesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.sourcesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive source name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		sourceName := fileName[:len(fileName)-4]

		source, err := cc.LoadSource(sourceName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Catalog source loaded", "source", sourceName, "enabled", source.Settings.Enabled, "refresh_interval", source.Settings.RefreshInterval)
	}

	return nil
}

func (cc *ConfigCache) LoadSource(sourceName string) (*Source, error) {
	sourceFile := cc.getSourceFilePath(sourceName)
	source, err := cc.parseSource(sourceFile)
	if err != nil {
		return nil, err
	}

	source.Name = sourceName

	if err := cc.validateSource(source); err != nil {
		return nil, fmt.Errorf("invalid source %s: %w", sourceFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[source.Name] = source

	return source, nil
}

func (cc *ConfigCache) GetSource(sourceName string) (*Source, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	source, ok := cc.cache[sourceName]
	if !ok {
		return nil, fmt.Errorf("catalog source with name '%s' not found", sourceName)
	}
	return source, nil
}

func (cc *ConfigCache) GetSources() map[string]*Source {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	sourcesCopy := make(map[string]*Source, len(cc.cache))
	for k, v := range cc.cache {
		sourcesCopy[k] = v
	}
	return sourcesCopy
}

func (cc *ConfigCache) GetEnabledSources() map[string]*Source {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	enabled := make(map[string]*Source)
	for k, v := range cc.cache {
		if v.Settings.Enabled {
			enabled[k] = v
		}
	}
	return enabled
}

func (cc *ConfigCache) GetSourceCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseSource(sourceFile string) (*Source, error) {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var source Source
	if err := yaml.Unmarshal(data, &source); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if source.Settings.RefreshInterval == 0 {
		source.Settings.RefreshInterval = 86400
	}
	if source.Settings.MaxDevices == 0 {
		source.Settings.MaxDevices = 100
	}
	if source.Settings.Timeout == 0 {
		source.Settings.Timeout = 30
	}

	return &source, nil
}

func (cc *ConfigCache) validateSource(source *Source) error {
	if source == nil {
		return fmt.Errorf("source is nil")
	}

	requiredFields := map[string]string{
		"source name": source.Name,
		"source URL":  source.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"refresh interval": source.Settings.RefreshInterval,
		"max devices":      source.Settings.MaxDevices,
		"timeout":          source.Settings.Timeout,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	return nil
}

func (cc *ConfigCache) getSourceFilePath(sourceName string) string {
	return filepath.Join(cc.sourcesDir, sourceName+".yml")
}
