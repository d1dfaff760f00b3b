package scraping

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lthutara/nextgen-technologies/app/config"
)

var _ Connector = (*RSSConnector)(nil)

// RSSConnector fetches candidate articles from the feed endpoints configured
// for a category. Each entry's truncated feed body is replaced with the full
// article text via the content extractor when possible.
type RSSConnector struct {
	sources      *config.Sources
	client       *http.Client
	parser       *gofeed.Parser
	extractor    *ContentExtractor
	userAgent    string
	maxArticles  int
	requestDelay time.Duration
}

func NewRSSConnector(sources *config.Sources, client *http.Client, extractor *ContentExtractor,
	userAgent string, maxArticles int, requestDelay time.Duration) *RSSConnector {
	if client == nil {
		client = &http.Client{}
	}
	return &RSSConnector{
		sources:      sources,
		client:       client,
		parser:       gofeed.NewParser(),
		extractor:    extractor,
		userAgent:    userAgent,
		maxArticles:  maxArticles,
		requestDelay: requestDelay,
	}
}

func (c *RSSConnector) Name() string {
	return config.ConnectorRSS
}

func (c *RSSConnector) Configured(category string) (bool, string) {
	if len(c.sources.FeedsFor(category)) == 0 {
		return false, fmt.Sprintf("no feeds configured for category %q", category)
	}
	return true, ""
}

// Fetch pulls entries from every configured feed for the category. A failure
// on one feed endpoint is logged and skipped; the remaining feeds still run.
func (c *RSSConnector) Fetch(ctx context.Context, category string) ([]Candidate, error) {
	feeds := c.sources.FeedsFor(category)
	if len(feeds) == 0 {
		return nil, nil
	}

	// At least one entry per feed even when the budget is smaller than the
	// feed list.
	perFeed := c.maxArticles / len(feeds)
	if perFeed < 1 {
		perFeed = 1
	}

	var candidates []Candidate
	for _, feedURL := range feeds {
		feed, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			slog.Warn("Skipping feed endpoint", "category", category, "feed", feedURL, "error", err)
			continue
		}

		sourceName := sourceNameFromURL(feedURL)
		if feed.Title != "" {
			sourceName = feed.Title
		}

		count := 0
		for _, entry := range feed.Items {
			if count >= perFeed {
				break
			}
			candidates = append(candidates, c.buildCandidate(ctx, entry, category, sourceName))
			count++

			if c.requestDelay > 0 {
				select {
				case <-ctx.Done():
					return candidates, ctx.Err()
				case <-time.After(c.requestDelay):
				}
			}
		}
	}

	return candidates, nil
}

func (c *RSSConnector) buildCandidate(ctx context.Context, entry *gofeed.Item, category, sourceName string) Candidate {
	candidate := Candidate{
		Title:       entry.Title,
		Summary:     entry.Description,
		SourceURL:   entry.Link,
		SourceName:  sourceName,
		Category:    category,
		PublishedAt: entry.PublishedParsed,
	}

	if entry.Image != nil {
		candidate.ImageURL = entry.Image.URL
	}

	// Feeds usually truncate the body; fetch the full article text and fall
	// back to the feed-provided summary when extraction yields nothing.
	_, content := c.extractor.Extract(ctx, entry.Link)
	if content == "" {
		content = entry.Description
	}
	candidate.Content = content

	return candidate
}

func (c *RSSConnector) fetchFeed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := c.parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	return feed, nil
}

// sourceNameFromURL derives a display name from the feed endpoint's domain.
func sourceNameFromURL(feedURL string) string {
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Hostname() == "" {
		return feedURL
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}
