package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ ArticleRepository = (*ArticleRepo)(nil)

// ArticleRepo handles database operations for published articles.
type ArticleRepo struct {
	db *DB
}

func NewArticleRepository(db *DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Publish inserts a published article and flips the staged article's status to
// published in one transaction. The staged article is kept as an audit trail.
func (r *ArticleRepo) Publish(article *Article, rawArticleID int64) (int64, error) {
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = time.Now().UTC()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO articles (
			title_en, summary_en, content_en, title_te, summary_te, content_te,
			category, source_url, source_name, published_at, scraped_at,
			image_url, content_type, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.TitleEN, article.SummaryEN, article.ContentEN,
		article.TitleTE, article.SummaryTE, article.ContentTE,
		article.Category, article.SourceURL, article.SourceName,
		article.PublishedAt, article.ScrapedAt, article.ImageURL,
		article.ContentType, article.IsActive)
	if err != nil {
		return 0, fmt.Errorf("failed to insert article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get article id: %w", err)
	}

	_, err = tx.Exec(`UPDATE raw_articles SET status = ? WHERE id = ?`, StatusPublished, rawArticleID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark raw article published: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit publish: %w", err)
	}

	return id, nil
}

func (r *ArticleRepo) ExistsBySourceURL(sourceURL string) (bool, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM articles WHERE source_url = ? LIMIT 1`, sourceURL).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check article by source url: %w", err)
	}
	return true, nil
}

// ListActive returns visible published articles, newest first.
func (r *ArticleRepo) ListActive(limit, offset int) ([]Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title_en, summary_en, content_en, title_te, summary_te, content_te,
		       category, source_url, source_name, published_at, scraped_at,
		       image_url, content_type, is_active
		FROM articles
		WHERE is_active = TRUE
		ORDER BY scraped_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var article Article
		var publishedAt sql.NullTime

		err := rows.Scan(
			&article.ID, &article.TitleEN, &article.SummaryEN, &article.ContentEN,
			&article.TitleTE, &article.SummaryTE, &article.ContentTE,
			&article.Category, &article.SourceURL, &article.SourceName,
			&publishedAt, &article.ScrapedAt, &article.ImageURL,
			&article.ContentType, &article.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		if publishedAt.Valid {
			article.PublishedAt = &publishedAt.Time
		}

		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}
