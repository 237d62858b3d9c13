// Package analytics computes ecosystem reports over scrape results using an
// in-memory similarity graph, so reports work straight off a results file
// without a Neo4j connection.
package analytics

import (
	"errors"
	"sort"
	"strings"

	"github.com/dominikbraun/graph"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// CountEntry is a name with its occurrence count, used for top-N listings.
type CountEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SimilarPair records two servers and the categories they share.
type SimilarPair struct {
	ServerA          string   `json:"server_a"`
	ServerB          string   `json:"server_b"`
	SharedCategories []string `json:"shared_categories"`
}

// Report is the full analytics output for one scrape run.
type Report struct {
	TotalServers      int     `json:"total_servers"`
	AccessibleServers int     `json:"accessible_servers"`
	TotalTools        int     `json:"total_tools"`
	TotalPrompts      int     `json:"total_prompts"`
	TotalResources    int     `json:"total_resources"`
	MeanConfidence    float64 `json:"mean_confidence"`

	TopCategories []CountEntry  `json:"top_categories"`
	TopLanguages  []CountEntry  `json:"top_languages"`
	TopToolNames  []CountEntry  `json:"top_tool_names"`
	HubServers    []CountEntry  `json:"hub_servers"`
	SimilarPairs  []SimilarPair `json:"similar_pairs"`
}

// Analyzer builds reports from scrape results.
type Analyzer struct {
	topN     int
	maxPairs int
}

// NewAnalyzer returns an Analyzer with the given listing sizes. Non-positive
// values fall back to 10 entries and 25 pairs.
func NewAnalyzer(topN, maxPairs int) *Analyzer {
	if topN <= 0 {
		topN = 10
	}
	if maxPairs <= 0 {
		maxPairs = 25
	}
	return &Analyzer{topN: topN, maxPairs: maxPairs}
}

// Analyze computes the full report.
func (a *Analyzer) Analyze(results *models.ScrapeResults) (*Report, error) {
	report := &Report{TotalServers: len(results.Servers)}

	categoryCounts := make(map[string]int)
	languageCounts := make(map[string]int)
	toolNameCounts := make(map[string]int)
	var confidenceSum float64

	for i := range results.Servers {
		s := &results.Servers[i]
		if s.IsAccessible {
			report.AccessibleServers++
		}
		report.TotalTools += len(s.Tools)
		report.TotalPrompts += len(s.Prompts)
		report.TotalResources += len(s.Resources)
		confidenceSum += s.ExtractionConfidence

		for _, c := range s.Categories {
			categoryCounts[c]++
		}
		if s.RepositoryStats != nil && s.RepositoryStats.Language != "" {
			languageCounts[strings.ToLower(s.RepositoryStats.Language)]++
		}
		for _, t := range s.Tools {
			toolNameCounts[strings.ToLower(t.Name)]++
		}
	}
	if len(results.Servers) > 0 {
		report.MeanConfidence = confidenceSum / float64(len(results.Servers))
	}

	report.TopCategories = topEntries(categoryCounts, a.topN)
	report.TopLanguages = topEntries(languageCounts, a.topN)
	report.TopToolNames = topEntries(toolNameCounts, a.topN)

	g, err := buildSimilarityGraph(results)
	if err != nil {
		return nil, err
	}
	report.HubServers = hubServers(g, a.topN)
	report.SimilarPairs = similarPairs(g, a.maxPairs)

	return report, nil
}

// buildSimilarityGraph builds an undirected weighted graph where vertices are
// server names and an edge joins two servers sharing at least one category.
// The edge carries the shared categories as an attribute and its weight is the
// overlap size. Servers sharing a name collapse into a single vertex.
func buildSimilarityGraph(results *models.ScrapeResults) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Weighted())

	byCategory := make(map[string][]string)
	for i := range results.Servers {
		s := &results.Servers[i]
		if err := g.AddVertex(s.Name); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, err
		}
		for _, c := range s.Categories {
			byCategory[c] = append(byCategory[c], s.Name)
		}
	}

	shared := make(map[[2]string]map[string]bool)
	for category, servers := range byCategory {
		for i := 0; i < len(servers); i++ {
			for j := i + 1; j < len(servers); j++ {
				if servers[i] == servers[j] {
					continue
				}
				key := pairKey(servers[i], servers[j])
				if shared[key] == nil {
					shared[key] = make(map[string]bool)
				}
				shared[key][category] = true
			}
		}
	}

	for key, categories := range shared {
		names := sortedKeys(categories)
		err := g.AddEdge(key[0], key[1],
			graph.EdgeWeight(len(categories)),
			graph.EdgeAttribute("categories", strings.Join(names, ",")))
		if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, err
		}
	}

	return g, nil
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// hubServers ranks servers by similarity-graph degree.
func hubServers(g graph.Graph[string, string], n int) []CountEntry {
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil
	}

	degrees := make(map[string]int, len(adjacency))
	for server, neighbors := range adjacency {
		if len(neighbors) > 0 {
			degrees[server] = len(neighbors)
		}
	}
	return topEntries(degrees, n)
}

// similarPairs lists the highest-overlap edges of the similarity graph.
func similarPairs(g graph.Graph[string, string], limit int) []SimilarPair {
	edges, err := g.Edges()
	if err != nil {
		return nil
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Properties.Weight != edges[j].Properties.Weight {
			return edges[i].Properties.Weight > edges[j].Properties.Weight
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	if len(edges) > limit {
		edges = edges[:limit]
	}

	pairs := make([]SimilarPair, 0, len(edges))
	for _, e := range edges {
		var categories []string
		if attr, ok := e.Properties.Attributes["categories"]; ok && attr != "" {
			categories = strings.Split(attr, ",")
		}
		pairs = append(pairs, SimilarPair{
			ServerA:          e.Source,
			ServerB:          e.Target,
			SharedCategories: categories,
		})
	}
	return pairs
}

func topEntries(counts map[string]int, n int) []CountEntry {
	entries := make([]CountEntry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, CountEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Name < entries[j].Name
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
