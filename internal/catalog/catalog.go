// Package catalog provides full-text search over scraped servers and their
// capabilities, backed by an in-memory bleve index. The serve command builds
// a catalog from an exported results file.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// SearchOptions narrows a catalog search.
type SearchOptions struct {
	Category string // exact category filter
	Language string // exact implementation-language filter
	Limit    int    // max hits, defaults to 15, capped at 100
}

// Hit is one search result.
type Hit struct {
	ServerName string   `json:"server_name"`
	GitHubURL  string   `json:"github_url"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights,omitempty"`
}

// Catalog indexes servers for keyword search and exact lookup.
type Catalog struct {
	index   bleve.Index
	servers map[string]*models.Server
}

// New builds an in-memory catalog over the given results.
func New(ctx context.Context, results *models.ScrapeResults) (*Catalog, error) {
	index, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating catalog index: %w", err)
	}

	c := &Catalog{
		index:   index,
		servers: make(map[string]*models.Server, len(results.Servers)),
	}
	if err := c.indexServers(ctx, results); err != nil {
		index.Close()
		return nil, err
	}
	return c, nil
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	textMapping := bleve.NewTextFieldMapping()
	textMapping.Analyzer = "standard"
	textMapping.Store = true
	textMapping.Index = true
	textMapping.IncludeTermVectors = true

	keywordMapping := bleve.NewTextFieldMapping()
	keywordMapping.Analyzer = "keyword"
	keywordMapping.Store = true
	keywordMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("name", textMapping)
	docMapping.AddFieldMappingsAt("description", textMapping)
	docMapping.AddFieldMappingsAt("capabilities", textMapping)
	docMapping.AddFieldMappingsAt("categories", keywordMapping)
	docMapping.AddFieldMappingsAt("language", keywordMapping)
	docMapping.AddFieldMappingsAt("github_url", keywordMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func (c *Catalog) indexServers(ctx context.Context, results *models.ScrapeResults) error {
	const batchSize = 500

	batch := c.index.NewBatch()
	for i := range results.Servers {
		if i%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		server := &results.Servers[i]
		c.servers[server.Name] = server

		if err := batch.Index(server.Name, serverToDocument(server)); err != nil {
			return fmt.Errorf("indexing %s: %w", server.Name, err)
		}
		if batch.Size() >= batchSize {
			if err := c.index.Batch(batch); err != nil {
				return fmt.Errorf("executing index batch: %w", err)
			}
			batch = c.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := c.index.Batch(batch); err != nil {
			return fmt.Errorf("executing final index batch: %w", err)
		}
	}
	return nil
}

// serverToDocument flattens a server into the indexed fields. Capability
// names and descriptions go into one searchable text field.
func serverToDocument(s *models.Server) map[string]interface{} {
	var capabilities strings.Builder
	for _, t := range s.Tools {
		capabilities.WriteString(t.Name)
		capabilities.WriteString(" ")
		capabilities.WriteString(t.Description)
		capabilities.WriteString("\n")
	}
	for _, p := range s.Prompts {
		capabilities.WriteString(p.Name)
		capabilities.WriteString(" ")
		capabilities.WriteString(p.Description)
		capabilities.WriteString("\n")
	}
	for _, r := range s.Resources {
		capabilities.WriteString(r.Name)
		capabilities.WriteString(" ")
		capabilities.WriteString(r.Description)
		capabilities.WriteString("\n")
	}

	var language string
	if s.RepositoryStats != nil {
		language = strings.ToLower(s.RepositoryStats.Language)
	}

	return map[string]interface{}{
		"name":         s.Name,
		"description":  s.Description,
		"capabilities": capabilities.String(),
		"categories":   s.Categories,
		"language":     language,
		"github_url":   s.GitHubURL,
	}
}

// Search runs a bleve query-string search with optional category and language
// filters combined as a conjunction.
func (c *Catalog) Search(ctx context.Context, queryStr string, options *SearchOptions) ([]Hit, error) {
	if options == nil {
		options = &SearchOptions{}
	}
	limit := options.Limit
	if limit <= 0 || limit > 100 {
		limit = 15
	}

	var queries []query.Query
	queries = append(queries, bleve.NewQueryStringQuery(queryStr))

	if options.Category != "" {
		q := bleve.NewMatchQuery(options.Category)
		q.SetField("categories")
		queries = append(queries, q)
	}
	if options.Language != "" {
		q := bleve.NewMatchQuery(strings.ToLower(options.Language))
		q.SetField("language")
		queries = append(queries, q)
	}

	var finalQuery query.Query
	if len(queries) == 1 {
		finalQuery = queries[0]
	} else {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	searchRequest := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	highlightStyle := "html"
	searchRequest.Highlight = bleve.NewHighlight()
	searchRequest.Highlight.Style = &highlightStyle
	searchRequest.Highlight.Fields = []string{"description", "capabilities"}
	searchRequest.Fields = []string{"name", "github_url"}

	searchResult, err := c.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}

	hits := make([]Hit, 0, len(searchResult.Hits))
	for _, h := range searchResult.Hits {
		name, _ := h.Fields["name"].(string)
		url, _ := h.Fields["github_url"].(string)

		var highlights []string
		for _, snippets := range h.Fragments {
			highlights = append(highlights, snippets...)
		}
		if len(highlights) > 3 {
			highlights = highlights[:3]
		}

		hits = append(hits, Hit{
			ServerName: name,
			GitHubURL:  url,
			Score:      h.Score,
			Highlights: highlights,
		})
	}
	return hits, nil
}

// Server returns the full record for a server by exact name.
func (c *Catalog) Server(name string) (*models.Server, bool) {
	s, ok := c.servers[name]
	return s, ok
}

// Len reports how many servers the catalog holds.
func (c *Catalog) Len() int {
	return len(c.servers)
}

// Close releases the underlying index.
func (c *Catalog) Close() error {
	if c.index != nil {
		return c.index.Close()
	}
	return nil
}
