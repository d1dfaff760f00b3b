package curation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lthutara/nextgen-technologies/app/ai"
	"github.com/lthutara/nextgen-technologies/app/database"
)

var (
	// ErrNotFound signals an operation on a staged article id that does not
	// exist.
	ErrNotFound = errors.New("raw article not found")
	// ErrInvalidTransition signals a disposition the state machine forbids,
	// e.g. rejecting an already-published article.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUnsupportedType signals a content type outside the schema set.
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrExtractionFailed signals that no article body could be recovered
	// from the source URL.
	ErrExtractionFailed = errors.New("could not extract article content")
)

// fallbackSectionTitle wraps a raw AI response that failed to parse as JSON.
const fallbackSectionTitle = "Content Structuring"

// Extractor recovers the main body text of a page; empty content means the
// extraction failed.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (title, content string)
}

// Generator produces text from a prompt and reports whether a credential is
// configured at all.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// Service drives a staged article through enrichment and disposition.
type Service struct {
	rawRepo     database.RawArticleRepository
	articleRepo database.ArticleRepository
	extractor   Extractor
	generator   Generator
}

func NewService(rawRepo database.RawArticleRepository, articleRepo database.ArticleRepository,
	extractor Extractor, generator Generator) *Service {
	return &Service{
		rawRepo:     rawRepo,
		articleRepo: articleRepo,
		extractor:   extractor,
		generator:   generator,
	}
}

// Summarize extracts the full article text and asks the AI for a fresh
// summary. The summary is persisted only on success; any failure leaves the
// article untouched.
func (s *Service) Summarize(ctx context.Context, id int64) (string, error) {
	article, err := s.getRawArticle(id)
	if err != nil {
		return "", err
	}

	_, content := s.extractor.Extract(ctx, article.SourceURL)
	if content == "" {
		return "", fmt.Errorf("%w: %s", ErrExtractionFailed, article.SourceURL)
	}

	summary, err := s.generator.Generate(ctx, summaryPrompt(content))
	if err != nil {
		return "", err
	}

	if err := s.rawRepo.UpdateSummary(id, summary); err != nil {
		return "", err
	}

	slog.Info("Article summarized", "id", id, "summary_length", len(summary))
	return summary, nil
}

// Structure asks the AI to analyze the article against the content type's
// field schema and returns the bilingual section map for review. Nothing is
// persisted; SaveStructured commits the reviewed result.
func (s *Service) Structure(ctx context.Context, id int64, contentType string) (map[string]Section, error) {
	if !s.generator.Configured() {
		return nil, fmt.Errorf("cannot structure content: %w", ai.ErrNotConfigured)
	}

	article, err := s.getRawArticle(id)
	if err != nil {
		return nil, err
	}

	schema, ok := Schema(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}

	_, content := s.extractor.Extract(ctx, article.SourceURL)
	if content == "" {
		// The staged body is usually the feed summary; better than nothing.
		content = article.Content
	}

	response, err := s.generator.Generate(ctx, structurePrompt(schema, content))
	if err != nil {
		return nil, err
	}

	parsed := parseStructuredResponse(response)

	sections := make(map[string]Section, len(parsed))
	for name, value := range parsed {
		sections[name] = Section{EN: value, TE: value + "_te"}
	}

	return sections, nil
}

// SaveStructured replaces the article's title, content type and sections, and
// advances its status to structured. The section replacement is atomic.
func (s *Service) SaveStructured(ctx context.Context, id int64, title, contentType string, sections map[string]SectionValue) error {
	if _, err := s.getRawArticle(id); err != nil {
		return err
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]database.ArticleSection, 0, len(sections))
	for _, name := range names {
		value := sections[name]
		rows = append(rows, database.ArticleSection{
			RawArticleID: id,
			TitleEN:      name,
			ContentEN:    value.EN,
			TitleTE:      name + "_te",
			ContentTE:    value.TE,
		})
	}

	if err := s.rawRepo.SaveStructured(id, title, contentType, rows); err != nil {
		return err
	}

	slog.Info("Structured content saved", "id", id, "sections", len(rows))
	return nil
}

// Approve publishes the staged article as-is and marks it published. The
// staged record is retained as an audit trail.
func (s *Service) Approve(ctx context.Context, id int64) (*database.Article, error) {
	raw, err := s.getRawArticle(id)
	if err != nil {
		return nil, err
	}

	article := &database.Article{
		TitleEN:     raw.Title,
		SummaryEN:   raw.Summary,
		ContentEN:   raw.Content,
		Category:    raw.Category,
		SourceURL:   raw.SourceURL,
		SourceName:  raw.SourceName,
		PublishedAt: raw.PublishedAt,
		ScrapedAt:   raw.ScrapedAt,
		ImageURL:    raw.ImageURL,
		ContentType: raw.ContentType,
		IsActive:    true,
	}

	articleID, err := s.articleRepo.Publish(article, id)
	if err != nil {
		return nil, err
	}
	article.ID = articleID

	slog.Info("Article approved", "raw_id", id, "article_id", articleID)
	return article, nil
}

// Reject hard-deletes a staged article and its sections. Published articles
// cannot be rejected.
func (s *Service) Reject(ctx context.Context, id int64) error {
	raw, err := s.getRawArticle(id)
	if err != nil {
		return err
	}

	if raw.Status == database.StatusPublished {
		return fmt.Errorf("%w: cannot reject a published article", ErrInvalidTransition)
	}

	if err := s.rawRepo.Delete(id); err != nil {
		return err
	}

	slog.Info("Article rejected", "id", id)
	return nil
}

// PublishFinal publishes externally assembled bilingual data for a staged
// article and marks the staged record published without deleting it.
func (s *Service) PublishFinal(ctx context.Context, id int64, final FinalArticle) (*database.Article, error) {
	if _, err := s.getRawArticle(id); err != nil {
		return nil, err
	}

	contentType := final.ContentType
	if contentType == "" {
		contentType = "news"
	}

	article := &database.Article{
		TitleEN:     final.TitleEN,
		SummaryEN:   final.SummaryEN,
		ContentEN:   final.ContentEN,
		TitleTE:     final.TitleTE,
		SummaryTE:   final.SummaryTE,
		ContentTE:   final.ContentTE,
		Category:    final.Category,
		SourceURL:   final.SourceURL,
		SourceName:  final.SourceName,
		PublishedAt: final.PublishedAt,
		ImageURL:    final.ImageURL,
		ContentType: contentType,
		IsActive:    true,
	}

	articleID, err := s.articleRepo.Publish(article, id)
	if err != nil {
		return nil, err
	}
	article.ID = articleID

	slog.Info("Article published", "raw_id", id, "article_id", articleID)
	return article, nil
}

func (s *Service) getRawArticle(id int64) (*database.RawArticle, error) {
	article, err := s.rawRepo.GetRawArticle(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return article, nil
}

// parseStructuredResponse strips Markdown fencing, parses the response as a
// JSON object, and degrades to a single fallback field holding the raw text
// when parsing fails. Nested objects are flattened to "key: value" lines.
func parseStructuredResponse(response string) map[string]string {
	cleaned := stripCodeFence(response)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		slog.Warn("Failed to parse structured AI response as JSON", "error", err)
		return map[string]string{fallbackSectionTitle: cleaned}
	}

	out := make(map[string]string, len(parsed))
	for name, value := range parsed {
		out[name] = flattenValue(value)
	}
	return out
}

func flattenValue(value any) string {
	nested, ok := value.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	keys := make([]string, 0, len(nested))
	for k := range nested {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, nested[k]))
	}
	return strings.Join(lines, "\n")
}

// stripCodeFence unwraps ```json ... ``` or ``` ... ``` blocks the model
// sometimes emits despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)

	marker := "```json"
	idx := strings.Index(s, marker)
	if idx < 0 {
		marker = "```"
		idx = strings.Index(s, marker)
	}
	if idx < 0 {
		return s
	}

	s = s[idx+len(marker):]
	if end := strings.Index(s, "```"); end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}
