package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./nextgen.db" description:"Path to the SQLite database file"`

	// Application configuration
	SourcesFile          string `long:"sources-file" env:"SOURCES_FILE" default:"./sources.yml" description:"YAML file describing categories and their connectors"`
	Port                 string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SchedulerInterval    int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"24" description:"Ingestion interval in hours"`
	MaxArticlesPerSource int    `long:"max-articles" env:"MAX_ARTICLES_PER_SOURCE" default:"50" description:"Maximum articles fetched per source per run"`
	RequestTimeout       int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`
	RequestDelay         int    `long:"request-delay" env:"REQUEST_DELAY" default:"1000" description:"Delay between page fetches in milliseconds"`
	APIAccessKey         string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for mutating endpoints (optional)"`

	// AI provider configuration
	OpenAIAPIKey  string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"OpenAI API key (enrichment is disabled when unset)"`
	OpenAIModel   string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"Model used for summarization and structuring"`
	OpenAIBaseURL string `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"Override base URL for OpenAI-compatible endpoints"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:               raw.DBPath,
		SourcesFile:          raw.SourcesFile,
		Port:                 raw.Port,
		SchedulerInterval:    raw.SchedulerInterval,
		MaxArticlesPerSource: raw.MaxArticlesPerSource,
		RequestTimeout:       raw.RequestTimeout,
		RequestDelay:         raw.RequestDelay,
		APIAccessKey:         raw.APIAccessKey,
		OpenAIAPIKey:         raw.OpenAIAPIKey,
		OpenAIModel:          raw.OpenAIModel,
		OpenAIBaseURL:        raw.OpenAIBaseURL,
		UserAgent:            raw.UserAgent,
		Debug:                raw.Debug,
		Version:              GetVersion(),
	}

	return cfg, nil
}
