package database

// RawArticleRepository defines staged article operations used by the
// ingestion coordinator and the curation service.
type RawArticleRepository interface {
	Insert(article *RawArticle) (int64, error)
	GetRawArticle(id int64) (*RawArticle, error)
	ExistsBySourceURL(sourceURL string) (bool, error)
	ListRawArticles(limit, offset int) ([]RawArticle, error)
	UpdateSummary(id int64, summary string) error
	SaveStructured(id int64, title, contentType string, sections []ArticleSection) error
	Delete(id int64) error
	GetSections(rawArticleID int64) ([]ArticleSection, error)
}

// ArticleRepository defines published article operations.
type ArticleRepository interface {
	Publish(article *Article, rawArticleID int64) (int64, error)
	ExistsBySourceURL(sourceURL string) (bool, error)
	ListActive(limit, offset int) ([]Article, error)
}

// LogRepository defines ingestion run log operations.
type LogRepository interface {
	StartLog(sourceName, category string) (int64, error)
	CompleteLog(id int64, found, new int, status, errorMessage string) error
	GetRecentLogs(limit int) ([]IngestionLog, error)
}
