// Package graphstore persists scrape results into a Neo4j property graph.
//
// Node labels: MCPServer, Tool, Prompt, Resource, Category, Tag, Language,
// Organization, ScrapingRun. Tools are scoped per server via a composite
// (name, server_name) key so same-named tools on different servers stay
// distinct.
package graphstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Store wraps a Neo4j driver for scrape-result persistence.
type Store struct {
	driver neo4j.DriverWithContext
}

// New connects to Neo4j and verifies connectivity before returning.
func New(ctx context.Context, uri, username, password string) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("creating Neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("connecting to Neo4j at %s: %w", uri, err)
	}
	return &Store{driver: driver}, nil
}

// Close releases the underlying driver.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

var constraints = []string{
	"CREATE CONSTRAINT server_name_unique IF NOT EXISTS FOR (s:MCPServer) REQUIRE s.name IS UNIQUE",
	"CREATE CONSTRAINT tool_name_unique IF NOT EXISTS FOR (t:Tool) REQUIRE (t.name, t.server_name) IS UNIQUE",
	"CREATE CONSTRAINT category_name_unique IF NOT EXISTS FOR (c:Category) REQUIRE c.name IS UNIQUE",
	"CREATE CONSTRAINT language_name_unique IF NOT EXISTS FOR (l:Language) REQUIRE l.name IS UNIQUE",
	"CREATE CONSTRAINT tag_name_unique IF NOT EXISTS FOR (tag:Tag) REQUIRE tag.name IS UNIQUE",
	"CREATE CONSTRAINT org_name_unique IF NOT EXISTS FOR (o:Organization) REQUIRE o.name IS UNIQUE",
}

// EnsureConstraints creates the uniqueness constraints the schema relies on.
// Safe to call on every run.
func (s *Store) EnsureConstraints(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		for _, c := range constraints {
			if _, err := tx.Run(ctx, c, nil); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

// Clear removes every node and relationship. Used before a full re-import.
func (s *Store) Clear(ctx context.Context) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		_, err := tx.Run(ctx, "MATCH (n) DETACH DELETE n", nil)
		return nil, err
	})
	return err
}

// ImportStats counts the nodes and relationships written by one import.
type ImportStats struct {
	Servers       int
	Tools         int
	Prompts       int
	Resources     int
	Categories    int
	Tags          int
	Languages     int
	Organizations int
}

// StoreResults writes a full scrape run into the graph: one ScrapingRun node
// plus one subgraph per server. Each server is its own write transaction so a
// bad record does not roll back the whole import.
func (s *Store) StoreResults(ctx context.Context, results *models.ScrapeResults) (*ImportStats, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	if err := s.storeRunMetadata(ctx, session, results); err != nil {
		return nil, fmt.Errorf("storing run metadata: %w", err)
	}

	stats := &ImportStats{}
	for i := range results.Servers {
		server := &results.Servers[i]
		if err := s.storeServer(ctx, session, server, stats); err != nil {
			return stats, fmt.Errorf("storing server %s: %w", server.Name, err)
		}
	}
	return stats, nil
}

func (s *Store) storeRunMetadata(ctx context.Context, session neo4j.SessionWithContext, results *models.ScrapeResults) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
			MERGE (run:ScrapingRun {id: $id})
			SET run.scraped_at = $scrapedAt,
			    run.total_servers = $total,
			    run.successful_scrapes = $successful,
			    run.failed_scrapes = $failed,
			    run.reference_servers = $reference,
			    run.third_party_servers = $thirdParty
		`
		params := map[string]interface{}{
			"id":         results.RunID,
			"scrapedAt":  results.ScrapedAt.UTC().Format("2006-01-02T15:04:05Z"),
			"total":      results.TotalServers,
			"successful": results.SuccessfulScrapes,
			"failed":     results.FailedScrapes,
			"reference":  results.ReferenceServers,
			"thirdParty": results.ThirdPartyServers,
		}
		_, err := tx.Run(ctx, query, params)
		return nil, err
	})
	return err
}

func (s *Store) storeServer(ctx context.Context, session neo4j.SessionWithContext, server *models.Server, stats *ImportStats) error {
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
			MERGE (s:MCPServer {name: $name})
			SET s.github_url = $githubUrl,
			    s.description = $description,
			    s.server_type = $serverType,
			    s.is_accessible = $isAccessible,
			    s.is_archived = $isArchived,
			    s.extraction_confidence = $confidence,
			    s.stars = $stars,
			    s.forks = $forks,
			    s.error_message = $errorMessage
		`
		var stars, forks int
		if server.RepositoryStats != nil {
			stars = server.RepositoryStats.Stars
			forks = server.RepositoryStats.Forks
		}
		params := map[string]interface{}{
			"name":         server.Name,
			"githubUrl":    server.GitHubURL,
			"description":  server.Description,
			"serverType":   string(server.ServerType),
			"isAccessible": server.IsAccessible,
			"isArchived":   server.IsArchived,
			"confidence":   server.ExtractionConfidence,
			"stars":        stars,
			"forks":        forks,
			"errorMessage": server.ErrorMessage,
		}
		if _, err := tx.Run(ctx, query, params); err != nil {
			return nil, err
		}
		stats.Servers++

		for _, tool := range server.Tools {
			if err := mergeCapability(ctx, tx, "Tool", "HAS_TOOL", server.Name, tool.Name, tool.Description); err != nil {
				return nil, err
			}
			stats.Tools++
		}
		for _, prompt := range server.Prompts {
			if err := mergeCapability(ctx, tx, "Prompt", "HAS_PROMPT", server.Name, prompt.Name, prompt.Description); err != nil {
				return nil, err
			}
			stats.Prompts++
		}
		for _, resource := range server.Resources {
			if err := mergeCapability(ctx, tx, "Resource", "HAS_RESOURCE", server.Name, resource.Name, resource.Description); err != nil {
				return nil, err
			}
			stats.Resources++
		}

		for _, category := range server.Categories {
			if err := mergeLinked(ctx, tx, "Category", "BELONGS_TO_CATEGORY", server.Name, category); err != nil {
				return nil, err
			}
			stats.Categories++
		}
		for _, tag := range server.Tags {
			if err := mergeLinked(ctx, tx, "Tag", "HAS_TAG", server.Name, tag); err != nil {
				return nil, err
			}
			stats.Tags++
		}
		if server.RepositoryStats != nil && server.RepositoryStats.Language != "" {
			if err := mergeLinked(ctx, tx, "Language", "IMPLEMENTED_IN", server.Name, server.RepositoryStats.Language); err != nil {
				return nil, err
			}
			stats.Languages++
		}
		if org := organizationFor(server); org != "" {
			query := `
				MATCH (s:MCPServer {name: $serverName})
				MERGE (o:Organization {name: $org})
				MERGE (o)-[:MAINTAINS]->(s)
			`
			params := map[string]interface{}{"serverName": server.Name, "org": org}
			if _, err := tx.Run(ctx, query, params); err != nil {
				return nil, err
			}
			stats.Organizations++
		}

		return nil, nil
	})
	return err
}

// mergeCapability merges a per-server capability node and links it to the
// server. The label and relationship type come from a fixed call-site set,
// never from user input.
func mergeCapability(ctx context.Context, tx neo4j.ManagedTransaction, label, rel, serverName, name, description string) error {
	query := fmt.Sprintf(`
		MATCH (s:MCPServer {name: $serverName})
		MERGE (c:%s {name: $name, server_name: $serverName})
		SET c.description = $description
		MERGE (s)-[:%s]->(c)
	`, label, rel)
	params := map[string]interface{}{
		"serverName":  serverName,
		"name":        name,
		"description": description,
	}
	_, err := tx.Run(ctx, query, params)
	return err
}

func mergeLinked(ctx context.Context, tx neo4j.ManagedTransaction, label, rel, serverName, name string) error {
	query := fmt.Sprintf(`
		MATCH (s:MCPServer {name: $serverName})
		MERGE (n:%s {name: $name})
		MERGE (s)-[:%s]->(n)
	`, label, rel)
	params := map[string]interface{}{"serverName": serverName, "name": name}
	_, err := tx.Run(ctx, query, params)
	return err
}

// organizationFor derives the maintaining organization from the GitHub owner.
func organizationFor(server *models.Server) string {
	url := strings.TrimPrefix(server.GitHubURL, "https://github.com/")
	if url == server.GitHubURL {
		return ""
	}
	if i := strings.Index(url, "/"); i > 0 {
		return url[:i]
	}
	return ""
}

// GraphStats summarizes what the graph currently holds.
type GraphStats struct {
	Servers       int64
	Tools         int64
	Categories    int64
	Languages     int64
	Tags          int64
	Organizations int64
	Relationships int64
}

// Statistics counts nodes per label plus total relationships.
func (s *Store) Statistics(ctx context.Context) (*GraphStats, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		stats := &GraphStats{}
		counts := []struct {
			query string
			dest  *int64
		}{
			{"MATCH (s:MCPServer) RETURN count(s) as count", &stats.Servers},
			{"MATCH (t:Tool) RETURN count(t) as count", &stats.Tools},
			{"MATCH (c:Category) RETURN count(c) as count", &stats.Categories},
			{"MATCH (l:Language) RETURN count(l) as count", &stats.Languages},
			{"MATCH (tag:Tag) RETURN count(tag) as count", &stats.Tags},
			{"MATCH (o:Organization) RETURN count(o) as count", &stats.Organizations},
			{"MATCH ()-[r]->() RETURN count(r) as count", &stats.Relationships},
		}
		for _, c := range counts {
			n, err := countQuery(ctx, tx, c.query)
			if err != nil {
				return nil, err
			}
			*c.dest = n
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*GraphStats), nil
}

func countQuery(ctx context.Context, tx neo4j.ManagedTransaction, query string) (int64, error) {
	result, err := tx.Run(ctx, query, nil)
	if err != nil {
		return 0, err
	}
	if result.Next(ctx) {
		if count, ok := result.Record().Get("count"); ok {
			return count.(int64), nil
		}
	}
	return 0, result.Err()
}

// SimilarServer is one row of a category-overlap similarity query.
type SimilarServer struct {
	Name             string
	SharedCategories int64
	ToolCount        int64
}

// FindSimilar returns servers sharing categories with the named server,
// ordered by overlap then tool count.
func (s *Store) FindSimilar(ctx context.Context, serverName string, limit int) ([]SimilarServer, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		query := `
			MATCH (s1:MCPServer {name: $name})-[:BELONGS_TO_CATEGORY]->(c:Category)<-[:BELONGS_TO_CATEGORY]-(s2:MCPServer)
			WHERE s1 <> s2
			WITH s2, count(c) as shared
			OPTIONAL MATCH (s2)-[:HAS_TOOL]->(t:Tool)
			RETURN s2.name as name, shared, count(t) as toolCount
			ORDER BY shared DESC, toolCount DESC
			LIMIT $limit
		`
		params := map[string]interface{}{"name": serverName, "limit": limit}

		result, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		var similar []SimilarServer
		for result.Next(ctx) {
			record := result.Record()
			row := SimilarServer{}
			if v, ok := record.Get("name"); ok {
				row.Name = v.(string)
			}
			if v, ok := record.Get("shared"); ok {
				row.SharedCategories = v.(int64)
			}
			if v, ok := record.Get("toolCount"); ok {
				row.ToolCount = v.(int64)
			}
			similar = append(similar, row)
		}
		return similar, result.Err()
	})
	if err != nil {
		return nil, err
	}
	return result.([]SimilarServer), nil
}
