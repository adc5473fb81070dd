package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigCacheLoadValidSource(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://www.phonearena.com/phones/manufacturers/Apple"

settings:
  enabled: true
  refresh_interval: 43200
  max_devices: 50
  timeout: 15
`

	err := os.WriteFile(filepath.Join(tempDir, "apple.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	err = configCache.Run()
	if err != nil {
		t.Fatal(err)
	}

	if configCache.GetSourceCount() != 1 {
		t.Errorf("Expected 1 source, got %d", configCache.GetSourceCount())
	}

	source, err := configCache.GetSource("apple")
	if err != nil {
		t.Fatal(err)
	}

	if source.Name != "apple" {
		t.Errorf("Expected name 'apple', got '%s'", source.Name)
	}
	if source.URL != "https://www.phonearena.com/phones/manufacturers/Apple" {
		t.Errorf("Unexpected URL '%s'", source.URL)
	}
	if source.Settings.RefreshInterval != 43200 {
		t.Errorf("Expected refresh interval 43200, got %d", source.Settings.RefreshInterval)
	}
	if source.Settings.MaxDevices != 50 {
		t.Errorf("Expected max devices 50, got %d", source.Settings.MaxDevices)
	}
}

func TestConfigCacheLoadSourceWithDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://www.phonearena.com/phones/manufacturers/Samsung"

settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "samsung.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	source, err := configCache.GetSource("samsung")
	if err != nil {
		t.Fatal(err)
	}

	if source.Settings.RefreshInterval != 86400 {
		t.Errorf("Expected default refresh interval 86400, got %d", source.Settings.RefreshInterval)
	}
	if source.Settings.MaxDevices != 100 {
		t.Errorf("Expected default max devices 100, got %d", source.Settings.MaxDevices)
	}
	if source.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", source.Settings.Timeout)
	}
}

func TestConfigCacheMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	content := `
settings:
  enabled: true
`

	err := os.WriteFile(filepath.Join(tempDir, "broken.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err == nil {
		t.Error("Expected error for source without URL")
	}
}

func TestConfigCacheNegativeInterval(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/phones"

settings:
  enabled: true
  refresh_interval: -60
`

	err := os.WriteFile(filepath.Join(tempDir, "negative.yml"), []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err == nil {
		t.Error("Expected error for negative refresh interval")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache("/nonexistent/path")
	if err := configCache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if configCache.GetSourceCount() != 0 {
		t.Errorf("Expected 0 sources, got %d", configCache.GetSourceCount())
	}
}

func TestConfigCacheEnabledSources(t *testing.T) {
	tempDir := t.TempDir()

	enabled := `
url: "https://example.com/a"
settings:
  enabled: true
`
	disabled := `
url: "https://example.com/b"
settings:
  enabled: false
`

	if err := os.WriteFile(filepath.Join(tempDir, "a.yml"), []byte(enabled), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "b.yml"), []byte(disabled), 0644); err != nil {
		t.Fatal(err)
	}

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if configCache.GetSourceCount() != 2 {
		t.Errorf("Expected 2 sources, got %d", configCache.GetSourceCount())
	}

	enabledSources := configCache.GetEnabledSources()
	if len(enabledSources) != 1 {
		t.Errorf("Expected 1 enabled source, got %d", len(enabledSources))
	}
	if _, ok := enabledSources["a"]; !ok {
		t.Error("Expected source 'a' to be enabled")
	}
}
