package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

var _ RawArticleRepository = (*RawArticleRepo)(nil)

// RawArticleRepo handles database operations for staged articles.
type RawArticleRepo struct {
	db *DB
}

func NewRawArticleRepository(db *DB) *RawArticleRepo {
	return &RawArticleRepo{db: db}
}

// IsUniqueViolation reports whether err is a unique constraint failure. The
// source_url constraint doubles as the dedup backstop for concurrent runs, so
// callers treat this outcome as "already present" rather than a failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *RawArticleRepo) Insert(article *RawArticle) (int64, error) {
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = time.Now().UTC()
	}
	if article.ContentType == "" {
		article.ContentType = "news"
	}
	if article.Status == "" {
		article.Status = StatusPending
	}

	result, err := r.db.Exec(`
		INSERT INTO raw_articles (
			title, content, summary, source_url, source_name, category,
			published_at, scraped_at, image_url, content_type, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.Title, article.Content, article.Summary, article.SourceURL,
		article.SourceName, article.Category, article.PublishedAt,
		article.ScrapedAt, article.ImageURL, article.ContentType, article.Status)
	if err != nil {
		if IsUniqueViolation(err) {
			return 0, err
		}
		return 0, fmt.Errorf("failed to insert raw article: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get raw article id: %w", err)
	}

	return id, nil
}

func (r *RawArticleRepo) GetRawArticle(id int64) (*RawArticle, error) {
	var article RawArticle
	var publishedAt sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, title, content, summary, source_url, source_name, category,
		       published_at, scraped_at, image_url, content_type, status
		FROM raw_articles
		WHERE id = ?
	`, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.Summary,
		&article.SourceURL, &article.SourceName, &article.Category,
		&publishedAt, &article.ScrapedAt, &article.ImageURL,
		&article.ContentType, &article.Status,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get raw article: %w", err)
	}

	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}

	return &article, nil
}

func (r *RawArticleRepo) ExistsBySourceURL(sourceURL string) (bool, error) {
	var id int64
	err := r.db.QueryRow(`SELECT id FROM raw_articles WHERE source_url = ? LIMIT 1`, sourceURL).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check raw article by source url: %w", err)
	}
	return true, nil
}

// ListRawArticles returns staged articles ordered by scrape time, newest first.
func (r *RawArticleRepo) ListRawArticles(limit, offset int) ([]RawArticle, error) {
	rows, err := r.db.Query(`
		SELECT id, title, content, summary, source_url, source_name, category,
		       published_at, scraped_at, image_url, content_type, status
		FROM raw_articles
		ORDER BY scraped_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list raw articles: %w", err)
	}
	defer rows.Close()

	var articles []RawArticle
	for rows.Next() {
		var article RawArticle
		var publishedAt sql.NullTime

		err := rows.Scan(
			&article.ID, &article.Title, &article.Content, &article.Summary,
			&article.SourceURL, &article.SourceName, &article.Category,
			&publishedAt, &article.ScrapedAt, &article.ImageURL,
			&article.ContentType, &article.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan raw article row: %w", err)
		}

		if publishedAt.Valid {
			article.PublishedAt = &publishedAt.Time
		}

		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw article rows: %w", err)
	}

	return articles, nil
}

func (r *RawArticleRepo) UpdateSummary(id int64, summary string) error {
	_, err := r.db.Exec(`UPDATE raw_articles SET summary = ? WHERE id = ?`, summary, id)
	if err != nil {
		return fmt.Errorf("failed to update raw article summary: %w", err)
	}
	return nil
}

// SaveStructured updates title, content type and status, and replaces every
// section of the article in a single transaction. A failed insert rolls back
// the delete so the article never ends up with zero sections by accident.
func (r *RawArticleRepo) SaveStructured(id int64, title, contentType string, sections []ArticleSection) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE raw_articles
		SET title = ?, content_type = ?, status = ?
		WHERE id = ?
	`, title, contentType, StatusStructured, id)
	if err != nil {
		return fmt.Errorf("failed to update raw article: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM article_sections WHERE raw_article_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete article sections: %w", err)
	}

	for _, section := range sections {
		_, err := tx.Exec(`
			INSERT INTO article_sections (raw_article_id, title_en, content_en, title_te, content_te)
			VALUES (?, ?, ?, ?, ?)
		`, id, section.TitleEN, section.ContentEN, section.TitleTE, section.ContentTE)
		if err != nil {
			return fmt.Errorf("failed to insert article section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit structured content: %w", err)
	}

	return nil
}

// Delete removes a staged article; sections cascade via the foreign key.
func (r *RawArticleRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM raw_articles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete raw article: %w", err)
	}
	return nil
}

func (r *RawArticleRepo) GetSections(rawArticleID int64) ([]ArticleSection, error) {
	rows, err := r.db.Query(`
		SELECT id, raw_article_id, title_en, content_en, title_te, content_te
		FROM article_sections
		WHERE raw_article_id = ?
		ORDER BY id
	`, rawArticleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get article sections: %w", err)
	}
	defer rows.Close()

	var sections []ArticleSection
	for rows.Next() {
		var section ArticleSection
		err := rows.Scan(&section.ID, &section.RawArticleID,
			&section.TitleEN, &section.ContentEN, &section.TitleTE, &section.ContentTE)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article section row: %w", err)
		}
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article section rows: %w", err)
	}

	return sections, nil
}
