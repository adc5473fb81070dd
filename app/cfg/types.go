package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	SourcesDir        string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	MasterKey         string

	// Scraping configuration
	UserAgent              string
	UnreleasedHorizonYears int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
