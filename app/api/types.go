package api

import (
	"time"

	"github.com/lthutara/nextgen-technologies/app/curation"
)

type rawArticleResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	SourceURL   string     `json:"source_url"`
	SourceName  string     `json:"source_name"`
	Category    string     `json:"category"`
	PublishedAt *time.Time `json:"published_date"`
	ScrapedAt   time.Time  `json:"scraped_date"`
	ImageURL    string     `json:"image_url"`
	ContentType string     `json:"content_type"`
	Status      string     `json:"status"`
}

type articleResponse struct {
	ID          int64      `json:"id"`
	TitleEN     string     `json:"title_en"`
	SummaryEN   string     `json:"summary_en"`
	ContentEN   string     `json:"content_en"`
	TitleTE     string     `json:"title_te"`
	SummaryTE   string     `json:"summary_te"`
	ContentTE   string     `json:"content_te"`
	Category    string     `json:"category"`
	SourceURL   string     `json:"source_url"`
	SourceName  string     `json:"source_name"`
	PublishedAt *time.Time `json:"published_date"`
	ScrapedAt   time.Time  `json:"scraped_date"`
	ImageURL    string     `json:"image_url"`
	ContentType string     `json:"content_type"`
}

type logResponse struct {
	ID            int64      `json:"id"`
	SourceName    string     `json:"source_name"`
	Category      string     `json:"category"`
	ArticlesFound int        `json:"articles_found"`
	ArticlesNew   int        `json:"articles_new"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
}

type structureRequest struct {
	ArticleType string `json:"article_type"`
}

type saveSectionsRequest struct {
	ArticleTitle string                           `json:"article_title"`
	ArticleType  string                           `json:"article_type"`
	Sections     map[string]curation.SectionValue `json:"sections"`
}
