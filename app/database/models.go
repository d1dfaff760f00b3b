package database

import (
	"time"
)

// Staged article curation statuses.
const (
	StatusPending    = "pending"
	StatusStructured = "structured"
	StatusPublished  = "published"
)

// Ingestion log outcomes.
const (
	LogStatusRunning = "running"
	LogStatusSuccess = "success"
	LogStatusError   = "error"
	LogStatusSkipped = "skipped"
)

// RawArticle is a staged article awaiting curation. source_url is unique
// across all staged articles; that uniqueness is the ingestion dedup contract.
type RawArticle struct {
	ID          int64
	Title       string
	Content     string
	Summary     string
	SourceURL   string
	SourceName  string
	Category    string
	PublishedAt *time.Time
	ScrapedAt   time.Time
	ImageURL    string
	ContentType string // news, research, analysis, how-to
	Status      string // pending, structured, published
}

// ArticleSection is a bilingual section owned by a staged article. Sections
// are replaced wholesale whenever structuring is saved again.
type ArticleSection struct {
	ID           int64
	RawArticleID int64
	TitleEN      string
	ContentEN    string
	TitleTE      string
	ContentTE    string
}

// Article is a published article visible to end consumers.
type Article struct {
	ID          int64
	TitleEN     string
	SummaryEN   string
	ContentEN   string
	TitleTE     string
	SummaryTE   string
	ContentTE   string
	Category    string
	SourceURL   string
	SourceName  string
	PublishedAt *time.Time
	ScrapedAt   time.Time
	ImageURL    string
	ContentType string
	IsActive    bool
}

// IngestionLog records one (connector, category) execution. Rows are appended
// at start and only the completion fields are filled in afterwards.
type IngestionLog struct {
	ID            int64
	SourceName    string
	Category      string
	ArticlesFound int
	ArticlesNew   int
	Status        string // running, success, error, skipped
	ErrorMessage  string
	StartedAt     time.Time
	CompletedAt   *time.Time
}
