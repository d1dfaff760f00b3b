package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	SourcesFile          string
	Port                 string
	SchedulerInterval    int // hours
	MaxArticlesPerSource int
	RequestTimeout       int // seconds
	RequestDelay         int // milliseconds between page fetches
	APIAccessKey         string

	// AI provider configuration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}
