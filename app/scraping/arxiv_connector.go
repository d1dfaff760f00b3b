package scraping

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/lthutara/nextgen-technologies/app/config"
)

const (
	arxivSourceName = "arXiv"
	summaryRuneCap  = 200
)

// arxivQueries maps portal categories to arXiv search expressions. A category
// without a mapping yields an empty result, not an error.
var arxivQueries = map[string]string{
	"AI":                "cat:cs.AI OR cat:cs.LG OR cat:cs.CL",
	"Quantum Computing": "cat:quant-ph",
}

var _ Connector = (*ArxivConnector)(nil)

// ArxivConnector issues one bounded query against the arXiv metadata API,
// newest submissions first. The API speaks Atom, so the response goes through
// the same feed parser the RSS connector uses.
type ArxivConnector struct {
	baseURL    string
	client     *http.Client
	parser     *gofeed.Parser
	userAgent  string
	maxResults int
}

func NewArxivConnector(client *http.Client, userAgent string, maxResults int) *ArxivConnector {
	if client == nil {
		client = &http.Client{}
	}
	return &ArxivConnector{
		baseURL:    "http://export.arxiv.org/api/query",
		client:     client,
		parser:     gofeed.NewParser(),
		userAgent:  userAgent,
		maxResults: maxResults,
	}
}

func (c *ArxivConnector) Name() string {
	return config.ConnectorArxiv
}

func (c *ArxivConnector) Configured(category string) (bool, string) {
	if _, ok := arxivQueries[category]; !ok {
		return false, fmt.Sprintf("no arXiv query mapping for category %q", category)
	}
	return true, ""
}

func (c *ArxivConnector) Fetch(ctx context.Context, category string) ([]Candidate, error) {
	searchQuery, ok := arxivQueries[category]
	if !ok {
		return nil, nil
	}

	params := url.Values{}
	params.Set("search_query", searchQuery)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", c.maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query arXiv: %w", err)
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
		return nil, fmt.Errorf("failed to parse arXiv response: %w", err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, entry := range feed.Items {
		abstract := collapseWhitespace(entry.Description)
		candidates = append(candidates, Candidate{
			Title:       collapseWhitespace(entry.Title),
			Content:     abstract,
			Summary:     truncateSummary(abstract),
			SourceURL:   cmp.Or(entry.GUID, entry.Link),
			SourceName:  arxivSourceName,
			Category:    category,
			PublishedAt: entry.PublishedParsed,
		})
	}

	return candidates, nil
}

func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryRuneCap {
		return s
	}
	return string(runes[:summaryRuneCap]) + "..."
}

// collapseWhitespace flattens the hard-wrapped text arXiv returns.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
