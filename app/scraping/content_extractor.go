package scraping

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// richTextSelector matches sources that split one article body across several
// rich-text blocks; all matching blocks are concatenated in document order.
const richTextSelector = "div.rich-text"

// containerSelectors is the priority list of single-container patterns tried
// when no rich-text blocks are present. First match with paragraph text wins.
var containerSelectors = []string{
	"article",
	"#main-content",
	".main-content",
	"#content",
	".article-body",
	".post-content",
	"main",
}

// ContentExtractor fetches a page and isolates the main textual body.
// It never returns an error: an empty content string means extraction failed
// and the caller should apply its own fallback.
type ContentExtractor struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func NewContentExtractor(client *http.Client, userAgent string, timeout time.Duration) *ContentExtractor {
	if client == nil {
		client = &http.Client{}
	}
	return &ContentExtractor{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Extract returns the recovered title and main body text of the page at
// pageURL. Both are empty when the page cannot be fetched or holds no
// extractable paragraphs.
func (e *ContentExtractor) Extract(ctx context.Context, pageURL string) (string, string) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		slog.Debug("Content extraction failed to build request", "url", pageURL, "error", err)
		return "", ""
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		slog.Debug("Content extraction fetch failed", "url", pageURL, "error", err)
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("Content extraction got non-OK status", "url", pageURL, "status", resp.StatusCode)
		return "", ""
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		slog.Debug("Content extraction failed to parse HTML", "url", pageURL, "error", err)
		return "", ""
	}

	return extractTitle(doc), extractContent(doc)
}

func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractContent(doc *goquery.Document) string {
	// Multi-block rich-text articles first: every block contributes.
	if blocks := doc.Find(richTextSelector); blocks.Length() > 0 {
		if text := paragraphText(blocks); text != "" {
			return text
		}
	}

	for _, selector := range containerSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		if text := paragraphText(container); text != "" {
			return text
		}
	}

	return paragraphText(doc.Find("body"))
}

func paragraphText(sel *goquery.Selection) string {
	var paragraphs []string
	sel.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.Join(paragraphs, "\n\n")
}
