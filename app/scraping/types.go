package scraping

import (
	"context"
	"time"
)

// Candidate is a not-yet-persisted article produced by a connector during one
// ingestion run. The source URL is the dedup key.
type Candidate struct {
	Title       string
	Content     string
	Summary     string
	SourceURL   string
	SourceName  string
	Category    string
	PublishedAt *time.Time
	ImageURL    string
}

// Connector pulls candidate articles for a category from one upstream source.
// Fetch re-queries upstream on every call; results are finite and unordered
// beyond whatever the upstream returns.
type Connector interface {
	Name() string
	// Configured reports whether the connector has the parameters it needs
	// for the category, with an operator-readable reason when it does not.
	Configured(category string) (bool, string)
	Fetch(ctx context.Context, category string) ([]Candidate, error)
}
