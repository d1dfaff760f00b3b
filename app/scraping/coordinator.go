package scraping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lthutara/nextgen-technologies/app/config"
	"github.com/lthutara/nextgen-technologies/app/database"
)

// ErrUnknownCategory is returned when ingestion is requested for a category
// absent from the sources configuration.
var ErrUnknownCategory = errors.New("unknown category")

// SourceResult is the per-connector outcome of one category run.
type SourceResult struct {
	Found  int    `json:"found"`
	New    int    `json:"new"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RunResult aggregates one category's ingestion run.
type RunResult struct {
	Category   string                  `json:"category"`
	TotalFound int                     `json:"total_found"`
	TotalNew   int                     `json:"total_new"`
	Sources    map[string]SourceResult `json:"sources"`
}

// Coordinator runs the configured connectors for a category, dedups their
// candidates against staged and published articles, and records a log row per
// (connector, category) execution.
type Coordinator struct {
	sources     *config.Sources
	connectors  map[string]Connector
	rawRepo     database.RawArticleRepository
	articleRepo database.ArticleRepository
	logRepo     database.LogRepository
}

func NewCoordinator(sources *config.Sources, connectors []Connector,
	rawRepo database.RawArticleRepository, articleRepo database.ArticleRepository,
	logRepo database.LogRepository) *Coordinator {
	registry := make(map[string]Connector, len(connectors))
	for _, connector := range connectors {
		registry[connector.Name()] = connector
	}
	return &Coordinator{
		sources:     sources,
		connectors:  registry,
		rawRepo:     rawRepo,
		articleRepo: articleRepo,
		logRepo:     logRepo,
	}
}

// Run executes every connector configured for the category. One connector's
// failure is recorded in its log row and does not stop the others.
func (c *Coordinator) Run(ctx context.Context, category string) (*RunResult, error) {
	cat := c.sources.Get(category)
	if cat == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	result := &RunResult{
		Category: category,
		Sources:  make(map[string]SourceResult, len(cat.Connectors)),
	}

	for _, name := range cat.Connectors {
		connector, ok := c.connectors[name]
		if !ok {
			slog.Warn("Connector not registered", "connector", name, "category", category)
			continue
		}

		sourceResult := c.runConnector(ctx, connector, category)
		result.Sources[name] = sourceResult
		result.TotalFound += sourceResult.Found
		result.TotalNew += sourceResult.New
	}

	return result, nil
}

// RunAll sweeps every configured category. A failure in one category is
// logged and the sweep continues.
func (c *Coordinator) RunAll(ctx context.Context) []RunResult {
	results := make([]RunResult, 0, len(c.sources.Categories))
	for _, category := range c.sources.CategoryNames() {
		result, err := c.Run(ctx, category)
		if err != nil {
			slog.Error("Category run failed", "category", category, "error", err)
			continue
		}
		results = append(results, *result)
		slog.Info("Category run completed", "category", category,
			"found", result.TotalFound, "new", result.TotalNew)
	}
	return results
}

func (c *Coordinator) runConnector(ctx context.Context, connector Connector, category string) SourceResult {
	logID, err := c.logRepo.StartLog(connector.Name(), category)
	if err != nil {
		slog.Error("Failed to start ingestion log", "connector", connector.Name(),
			"category", category, "error", err)
		return SourceResult{Status: database.LogStatusError, Error: err.Error()}
	}

	if ok, reason := connector.Configured(category); !ok {
		c.completeLog(logID, 0, 0, database.LogStatusSkipped, reason)
		slog.Info("Connector skipped", "connector", connector.Name(),
			"category", category, "reason", reason)
		return SourceResult{Status: database.LogStatusSkipped, Error: reason}
	}

	candidates, err := connector.Fetch(ctx, category)
	if err != nil {
		c.completeLog(logID, 0, 0, database.LogStatusError, err.Error())
		slog.Error("Connector fetch failed", "connector", connector.Name(),
			"category", category, "error", err)
		return SourceResult{Status: database.LogStatusError, Error: err.Error()}
	}

	newCount := 0
	for _, candidate := range candidates {
		inserted, err := c.insertIfNew(candidate)
		if err != nil {
			slog.Error("Failed to stage candidate", "source_url", candidate.SourceURL, "error", err)
			continue
		}
		if inserted {
			newCount++
		}
	}

	c.completeLog(logID, len(candidates), newCount, database.LogStatusSuccess, "")
	return SourceResult{Found: len(candidates), New: newCount, Status: database.LogStatusSuccess}
}

// insertIfNew stages a candidate unless its source URL is already staged or
// published. The unique constraint on raw_articles.source_url is the backstop
// when two runs race past the existence checks.
func (c *Coordinator) insertIfNew(candidate Candidate) (bool, error) {
	staged, err := c.rawRepo.ExistsBySourceURL(candidate.SourceURL)
	if err != nil {
		return false, err
	}
	if staged {
		return false, nil
	}

	published, err := c.articleRepo.ExistsBySourceURL(candidate.SourceURL)
	if err != nil {
		return false, err
	}
	if published {
		return false, nil
	}

	_, err = c.rawRepo.Insert(&database.RawArticle{
		Title:       candidate.Title,
		Content:     candidate.Content,
		Summary:     candidate.Summary,
		SourceURL:   candidate.SourceURL,
		SourceName:  candidate.SourceName,
		Category:    candidate.Category,
		PublishedAt: candidate.PublishedAt,
		ImageURL:    candidate.ImageURL,
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (c *Coordinator) completeLog(id int64, found, new int, status, message string) {
	if err := c.logRepo.CompleteLog(id, found, new, status, message); err != nil {
		slog.Error("Failed to complete ingestion log", "log_id", id, "error", err)
	}
}
