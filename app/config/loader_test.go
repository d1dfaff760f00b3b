package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write sources file: %v", err)
	}
	return path
}

func TestLoadValidSources(t *testing.T) {
	path := writeSourcesFile(t, `
categories:
  - name: AI
    connectors: [rss, arxiv]
    feeds:
      - https://news.mit.edu/topic/artificial-intelligence2/rss
      - https://ai.googleblog.com/atom.xml
  - name: Quantum Computing
    connectors: [arxiv]
`)

	sources, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(sources.Categories) != 2 {
		t.Fatalf("Expected 2 categories, got: %d", len(sources.Categories))
	}

	ai := sources.Get("AI")
	if ai == nil {
		t.Fatal("Expected AI category to exist")
	}
	if len(ai.Connectors) != 2 {
		t.Errorf("Expected 2 connectors for AI, got: %d", len(ai.Connectors))
	}
	if len(sources.FeedsFor("AI")) != 2 {
		t.Errorf("Expected 2 feeds for AI, got: %d", len(sources.FeedsFor("AI")))
	}
	if sources.Get("Defence Tech") != nil {
		t.Error("Expected unknown category lookup to return nil")
	}

	names := sources.CategoryNames()
	if len(names) != 2 || names[0] != "AI" || names[1] != "Quantum Computing" {
		t.Errorf("Expected category names in file order, got: %v", names)
	}
}

func TestLoadRejectsUnknownConnector(t *testing.T) {
	path := writeSourcesFile(t, `
categories:
  - name: AI
    connectors: [reddit]
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Expected error for unknown connector")
	}
}

func TestLoadRejectsMissingConnectors(t *testing.T) {
	path := writeSourcesFile(t, `
categories:
  - name: AI
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Expected error for category without connectors")
	}
}

func TestLoadRejectsDuplicateCategory(t *testing.T) {
	path := writeSourcesFile(t, `
categories:
  - name: AI
    connectors: [rss]
    feeds: [https://example.com/feed]
  - name: AI
    connectors: [arxiv]
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Expected error for duplicate category")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader("/nonexistent/sources.yml").Load(); err == nil {
		t.Error("Expected error for missing sources file")
	}
}
