package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lthutara/nextgen-technologies/app/ai"
	"github.com/lthutara/nextgen-technologies/app/curation"
	"github.com/lthutara/nextgen-technologies/app/database"
	"github.com/lthutara/nextgen-technologies/app/scraping"
)

type Handler struct {
	coordinator *scraping.Coordinator
	curation    *curation.Service
	rawRepo     database.RawArticleRepository
	articleRepo database.ArticleRepository
	logRepo     database.LogRepository
}

func NewHandler(coordinator *scraping.Coordinator, curationService *curation.Service,
	rawRepo database.RawArticleRepository, articleRepo database.ArticleRepository,
	logRepo database.LogRepository) *Handler {
	return &Handler{
		coordinator: coordinator,
		curation:    curationService,
		rawRepo:     rawRepo,
		articleRepo: articleRepo,
		logRepo:     logRepo,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// RunIngestion triggers ingestion for one category (?category=) or sweeps
// every configured category. Partial failures are reflected in the per-source
// results, never as a failed request.
func (h *Handler) RunIngestion(c *gin.Context) {
	category := c.Query("category")

	if category == "" {
		results := h.coordinator.RunAll(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"results": results})
		return
	}

	result, err := h.coordinator.Run(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, scraping.ErrUnknownCategory) {
			c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
			return
		}
		slog.Error("Ingestion run failed", "category", category, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "ingestion failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListRawArticles(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	articles, err := h.rawRepo.ListRawArticles(limit, offset)
	if err != nil {
		slog.Error("Database error", "operation", "list_raw_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list raw articles"})
		return
	}

	out := make([]rawArticleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, rawArticleResponse{
			ID: a.ID, Title: a.Title, Content: a.Content, Summary: a.Summary,
			SourceURL: a.SourceURL, SourceName: a.SourceName, Category: a.Category,
			PublishedAt: a.PublishedAt, ScrapedAt: a.ScrapedAt, ImageURL: a.ImageURL,
			ContentType: a.ContentType, Status: a.Status,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListArticles(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)

	articles, err := h.articleRepo.ListActive(limit, offset)
	if err != nil {
		slog.Error("Database error", "operation", "list_articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to list articles"})
		return
	}

	out := make([]articleResponse, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleResponse{
			ID: a.ID, TitleEN: a.TitleEN, SummaryEN: a.SummaryEN, ContentEN: a.ContentEN,
			TitleTE: a.TitleTE, SummaryTE: a.SummaryTE, ContentTE: a.ContentTE,
			Category: a.Category, SourceURL: a.SourceURL, SourceName: a.SourceName,
			PublishedAt: a.PublishedAt, ScrapedAt: a.ScrapedAt, ImageURL: a.ImageURL,
			ContentType: a.ContentType,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetLogs(c *gin.Context) {
	limit := intQuery(c, "limit", 20)

	logs, err := h.logRepo.GetRecentLogs(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "failed to get ingestion logs"})
		return
	}

	out := make([]logResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, logResponse{
			ID: l.ID, SourceName: l.SourceName, Category: l.Category,
			ArticlesFound: l.ArticlesFound, ArticlesNew: l.ArticlesNew,
			Status: l.Status, ErrorMessage: l.ErrorMessage,
			StartedAt: l.StartedAt, CompletedAt: l.CompletedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) Summarize(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	summary, err := h.curation.Summarize(c.Request.Context(), id)
	if err != nil {
		h.renderCurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Article summarized successfully!",
		"new_summary": summary,
	})
}

func (h *Handler) Structure(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req structureRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ArticleType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing article_type."})
		return
	}

	sections, err := h.curation.Structure(c.Request.Context(), id, req.ArticleType)
	if err != nil {
		h.renderCurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "structured_sections": sections})
}

func (h *Handler) SaveSections(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req saveSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		req.ArticleTitle == "" || req.ArticleType == "" || len(req.Sections) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Missing article_title, article_type or sections data"})
		return
	}

	if err := h.curation.SaveStructured(c.Request.Context(), id, req.ArticleTitle, req.ArticleType, req.Sections); err != nil {
		h.renderCurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Structured sections saved and article status updated!"})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.curation.Approve(c.Request.Context(), id)
	if err != nil {
		h.renderCurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Raw article approved and published!",
		"article_id": article.ID,
	})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.curation.Reject(c.Request.Context(), id); err != nil {
		h.renderCurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Raw article rejected!"})
}

func (h *Handler) PublishFinal(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var final curation.FinalArticle
	if err := c.ShouldBindJSON(&final); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid final article payload"})
		return
	}

	article, err := h.curation.PublishFinal(c.Request.Context(), id, final)
	if err != nil {
		h.renderCurationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Final article published!",
		"article_id": article.ID,
	})
}

// renderCurationError maps state-machine errors to HTTP outcomes. Enrichment
// failures are rendered in the "[Generation failed: ...]" marker format
// operators already recognize.
func (h *Handler) renderCurationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, curation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Raw article not found"})
	case errors.Is(err, curation.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	case errors.Is(err, curation.ErrUnsupportedType):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, ai.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"detail": ai.FailureMessage(err)})
	case errors.Is(err, curation.ErrExtractionFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"detail": ai.FailureMessage(err)})
	default:
		slog.Error("Curation operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": ai.FailureMessage(err)})
	}
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid article id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
