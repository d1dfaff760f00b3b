package config

// Connector name constants used in sources.yml.
const (
	ConnectorRSS   = "rss"
	ConnectorArxiv = "arxiv"
)

// Sources describes which connectors run for each category.
type Sources struct {
	Categories []Category `yaml:"categories"`
}

// Category binds a category name to its connector list and feed endpoints.
type Category struct {
	Name       string   `yaml:"name"`
	Connectors []string `yaml:"connectors"`
	Feeds      []string `yaml:"feeds"`
}

// Get returns the category entry by name, or nil when unknown.
func (s *Sources) Get(name string) *Category {
	for i := range s.Categories {
		if s.Categories[i].Name == name {
			return &s.Categories[i]
		}
	}
	return nil
}

// CategoryNames returns category names in configuration order.
func (s *Sources) CategoryNames() []string {
	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	return names
}

// FeedsFor returns the feed URL list configured for a category.
func (s *Sources) FeedsFor(category string) []string {
	if c := s.Get(category); c != nil {
		return c.Feeds
	}
	return nil
}
