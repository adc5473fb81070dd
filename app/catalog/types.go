package catalog

// Source describes one manufacturer catalog page to scrape.
type Source struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings SourceSettings `yaml:"settings"`
}

type SourceSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	MaxDevices      int  `yaml:"max_devices"`      // cap on devices ingested per refresh
	Timeout         int  `yaml:"timeout"`          // seconds, per HTTP fetch
}
