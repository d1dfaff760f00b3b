package database

import (
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

func TestInsertAndGetRawArticle(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	published := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	id, err := repo.Insert(&RawArticle{
		Title:       "Quantum Error Correction Milestone",
		Content:     "Full article body",
		Summary:     "Short summary",
		SourceURL:   "https://example.com/articles/qec",
		SourceName:  "Example News",
		Category:    "Quantum Computing",
		PublishedAt: &published,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Error("Expected non-zero id")
	}

	article, err := repo.GetRawArticle(id)
	if err != nil {
		t.Fatal(err)
	}
	if article == nil {
		t.Fatal("Expected article, got nil")
	}

	if article.Title != "Quantum Error Correction Milestone" {
		t.Errorf("Expected title 'Quantum Error Correction Milestone', got '%s'", article.Title)
	}
	if article.Status != StatusPending {
		t.Errorf("Expected default status '%s', got '%s'", StatusPending, article.Status)
	}
	if article.ContentType != "news" {
		t.Errorf("Expected default content type 'news', got '%s'", article.ContentType)
	}
	if article.PublishedAt == nil || !article.PublishedAt.Equal(published) {
		t.Errorf("Expected published at %v, got %v", published, article.PublishedAt)
	}
	if article.ScrapedAt.IsZero() {
		t.Error("Expected scraped at to be defaulted")
	}
}

func TestGetRawArticleNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	article, err := repo.GetRawArticle(12345)
	if err != nil {
		t.Fatal(err)
	}
	if article != nil {
		t.Errorf("Expected nil for missing article, got %+v", article)
	}
}

func TestInsertDuplicateSourceURL(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	first := &RawArticle{Title: "First", SourceURL: "https://example.com/dup", Category: "AI"}
	if _, err := repo.Insert(first); err != nil {
		t.Fatal(err)
	}

	second := &RawArticle{Title: "Second", SourceURL: "https://example.com/dup", Category: "AI"}
	_, err := repo.Insert(second)
	if err == nil {
		t.Fatal("Expected unique violation on duplicate source_url")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("Expected unique violation, got %v", err)
	}
}

func TestExistsBySourceURL(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	exists, err := repo.ExistsBySourceURL("https://example.com/missing")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("Expected missing URL to not exist")
	}

	if _, err := repo.Insert(&RawArticle{Title: "A", SourceURL: "https://example.com/a", Category: "AI"}); err != nil {
		t.Fatal(err)
	}

	exists, err = repo.ExistsBySourceURL("https://example.com/a")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("Expected staged URL to exist")
	}
}

func TestUpdateSummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	id, err := repo.Insert(&RawArticle{Title: "A", SourceURL: "https://example.com/a", Category: "AI"})
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.UpdateSummary(id, "a fresh summary"); err != nil {
		t.Fatal(err)
	}

	article, err := repo.GetRawArticle(id)
	if err != nil {
		t.Fatal(err)
	}
	if article.Summary != "a fresh summary" {
		t.Errorf("Expected updated summary, got '%s'", article.Summary)
	}
}

func TestSaveStructuredReplacesSections(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	id, err := repo.Insert(&RawArticle{Title: "A", SourceURL: "https://example.com/a", Category: "AI"})
	if err != nil {
		t.Fatal(err)
	}

	initial := []ArticleSection{
		{RawArticleID: id, TitleEN: "Topic Overview", ContentEN: "v1", TitleTE: "Topic Overview_te", ContentTE: "v1_te"},
		{RawArticleID: id, TitleEN: "Key Findings", ContentEN: "v1", TitleTE: "Key Findings_te", ContentTE: "v1_te"},
	}
	if err := repo.SaveStructured(id, "Structured Title", "News", initial); err != nil {
		t.Fatal(err)
	}

	replacement := []ArticleSection{
		{RawArticleID: id, TitleEN: "Detailed Summary", ContentEN: "v2", TitleTE: "Detailed Summary_te", ContentTE: "v2_te"},
	}
	if err := repo.SaveStructured(id, "Updated Title", "Research", replacement); err != nil {
		t.Fatal(err)
	}

	sections, err := repo.GetSections(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 1 {
		t.Fatalf("Expected 1 section after replacement, got %d", len(sections))
	}
	if sections[0].TitleEN != "Detailed Summary" {
		t.Errorf("Expected replacement section, got '%s'", sections[0].TitleEN)
	}

	article, err := repo.GetRawArticle(id)
	if err != nil {
		t.Fatal(err)
	}
	if article.Title != "Updated Title" {
		t.Errorf("Expected updated title, got '%s'", article.Title)
	}
	if article.ContentType != "Research" {
		t.Errorf("Expected updated content type, got '%s'", article.ContentType)
	}
	if article.Status != StatusStructured {
		t.Errorf("Expected status '%s', got '%s'", StatusStructured, article.Status)
	}
}

func TestDeleteCascadesSections(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	id, err := repo.Insert(&RawArticle{Title: "A", SourceURL: "https://example.com/a", Category: "AI"})
	if err != nil {
		t.Fatal(err)
	}

	sections := []ArticleSection{
		{RawArticleID: id, TitleEN: "Topic Overview", ContentEN: "v", TitleTE: "Topic Overview_te", ContentTE: "v_te"},
	}
	if err := repo.SaveStructured(id, "A", "News", sections); err != nil {
		t.Fatal(err)
	}

	if err := repo.Delete(id); err != nil {
		t.Fatal(err)
	}

	article, err := repo.GetRawArticle(id)
	if err != nil {
		t.Fatal(err)
	}
	if article != nil {
		t.Error("Expected article to be deleted")
	}

	remaining, err := repo.GetSections(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("Expected sections to cascade, got %d rows", len(remaining))
	}
}

func TestListRawArticlesOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewRawArticleRepository(db)

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Insert(&RawArticle{Title: "Old", SourceURL: "https://example.com/old", Category: "AI", ScrapedAt: older}); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Insert(&RawArticle{Title: "New", SourceURL: "https://example.com/new", Category: "AI", ScrapedAt: newer}); err != nil {
		t.Fatal(err)
	}

	articles, err := repo.ListRawArticles(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "New" {
		t.Errorf("Expected newest first, got '%s'", articles[0].Title)
	}

	paged, err := repo.ListRawArticles(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(paged) != 1 || paged[0].Title != "Old" {
		t.Errorf("Expected offset to skip newest, got %+v", paged)
	}
}
