package scraping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newExtractorServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestExtractor() *ContentExtractor {
	return NewContentExtractor(nil, "test-agent", 5*time.Second)
}

func TestExtractRichTextBlocks(t *testing.T) {
	html := `<html><head><title>Page Title</title></head><body>
		<h1>Article Headline</h1>
		<div class="rich-text"><p>First block paragraph.</p></div>
		<div class="rich-text"><p>Second block paragraph.</p><p>Third paragraph.</p></div>
	</body></html>`
	server := newExtractorServer(t, html)

	title, content := newTestExtractor().Extract(context.Background(), server.URL)

	if title != "Article Headline" {
		t.Errorf("Expected title 'Article Headline', got '%s'", title)
	}
	expected := "First block paragraph.\n\nSecond block paragraph.\n\nThird paragraph."
	if content != expected {
		t.Errorf("Expected concatenated rich-text blocks, got '%s'", content)
	}
}

func TestExtractContainerFallback(t *testing.T) {
	html := `<html><head><title>Fallback Title</title></head><body>
		<article><p>Main body text.</p><p>More body text.</p></article>
		<div id="sidebar"><p>Sidebar noise.</p></div>
	</body></html>`
	server := newExtractorServer(t, html)

	title, content := newTestExtractor().Extract(context.Background(), server.URL)

	if title != "Fallback Title" {
		t.Errorf("Expected title from <title> tag, got '%s'", title)
	}
	expected := "Main body text.\n\nMore body text."
	if content != expected {
		t.Errorf("Expected article container text, got '%s'", content)
	}
}

func TestExtractContainerPriority(t *testing.T) {
	// An empty <article> must not shadow a later container with content.
	html := `<html><body>
		<article></article>
		<div id="main-content"><p>Actual content.</p></div>
	</body></html>`
	server := newExtractorServer(t, html)

	_, content := newTestExtractor().Extract(context.Background(), server.URL)

	if content != "Actual content." {
		t.Errorf("Expected later container to win over empty article, got '%s'", content)
	}
}

func TestExtractBodyFallback(t *testing.T) {
	html := `<html><body><p>Loose paragraph one.</p><p>Loose paragraph two.</p></body></html>`
	server := newExtractorServer(t, html)

	_, content := newTestExtractor().Extract(context.Background(), server.URL)

	expected := "Loose paragraph one.\n\nLoose paragraph two."
	if content != expected {
		t.Errorf("Expected body paragraphs, got '%s'", content)
	}
}

func TestExtractNoParagraphs(t *testing.T) {
	html := `<html><body><div>No paragraph tags here at all</div></body></html>`
	server := newExtractorServer(t, html)

	title, content := newTestExtractor().Extract(context.Background(), server.URL)

	if content != "" {
		t.Errorf("Expected empty content, got '%s'", content)
	}
	if title != "" {
		t.Errorf("Expected empty title, got '%s'", title)
	}
}

func TestExtractNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	title, content := newTestExtractor().Extract(context.Background(), server.URL)

	if title != "" || content != "" {
		t.Errorf("Expected empty result on 404, got title '%s' content '%s'", title, content)
	}
}

func TestExtractUnreachableHost(t *testing.T) {
	title, content := newTestExtractor().Extract(context.Background(), "http://127.0.0.1:1/nope")

	if title != "" || content != "" {
		t.Errorf("Expected empty result on fetch failure, got title '%s' content '%s'", title, content)
	}
}
