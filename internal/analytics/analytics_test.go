package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Test Plan for analytics:
// - Totals, accessibility counts, and mean confidence aggregate correctly
// - Top listings are count-descending with name tiebreaks and truncate to N
// - Servers sharing categories are joined in the similarity graph; pairs
//   rank by overlap size and carry the shared categories
// - Hub servers rank by similarity-graph degree
// - Servers listed twice under the same name collapse into one vertex
// - Empty results produce an empty report without errors

func sampleResults() *models.ScrapeResults {
	return &models.ScrapeResults{
		Servers: []models.Server{
			{
				Name:                 "alpha",
				Categories:           []string{"database", "web"},
				IsAccessible:         true,
				ExtractionConfidence: 0.8,
				Tools:                []models.Tool{{Name: "query"}, {Name: "fetch"}},
				RepositoryStats:      &models.RepositoryStats{Language: "Python"},
			},
			{
				Name:                 "beta",
				Categories:           []string{"database", "web"},
				IsAccessible:         true,
				ExtractionConfidence: 0.6,
				Tools:                []models.Tool{{Name: "query"}},
				RepositoryStats:      &models.RepositoryStats{Language: "Python"},
			},
			{
				Name:                 "gamma",
				Categories:           []string{"web"},
				ExtractionConfidence: 0.4,
			},
		},
	}
}

func TestAnalyze_Aggregates(t *testing.T) {
	t.Parallel()

	report, err := NewAnalyzer(2, 25).Analyze(sampleResults())
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalServers)
	assert.Equal(t, 2, report.AccessibleServers)
	assert.Equal(t, 3, report.TotalTools)
	assert.Zero(t, report.TotalPrompts)
	assert.InDelta(t, 0.6, report.MeanConfidence, 1e-9)

	assert.Equal(t, []CountEntry{{Name: "web", Count: 3}, {Name: "database", Count: 2}}, report.TopCategories)
	assert.Equal(t, []CountEntry{{Name: "python", Count: 2}}, report.TopLanguages)
	assert.Equal(t, []CountEntry{{Name: "query", Count: 2}, {Name: "fetch", Count: 1}}, report.TopToolNames)
}

func TestAnalyze_SimilarityGraph(t *testing.T) {
	t.Parallel()

	report, err := NewAnalyzer(10, 25).Analyze(sampleResults())
	require.NoError(t, err)

	// Every server shares "web" with the other two, so all have degree 2.
	assert.Equal(t, []CountEntry{
		{Name: "alpha", Count: 2},
		{Name: "beta", Count: 2},
		{Name: "gamma", Count: 2},
	}, report.HubServers)

	require.Len(t, report.SimilarPairs, 3)
	top := report.SimilarPairs[0]
	assert.ElementsMatch(t, []string{"alpha", "beta"}, []string{top.ServerA, top.ServerB})
	assert.Equal(t, []string{"database", "web"}, top.SharedCategories)
	for _, pair := range report.SimilarPairs[1:] {
		assert.Equal(t, []string{"web"}, pair.SharedCategories)
	}
}

func TestAnalyze_PairLimit(t *testing.T) {
	t.Parallel()

	report, err := NewAnalyzer(10, 1).Analyze(sampleResults())
	require.NoError(t, err)

	require.Len(t, report.SimilarPairs, 1)
	assert.Equal(t, []string{"database", "web"}, report.SimilarPairs[0].SharedCategories)
}

func TestAnalyze_DuplicateServerNames(t *testing.T) {
	t.Parallel()

	// Reference and community listings can both carry a server under the
	// same name. The duplicates must collapse into one vertex instead of
	// failing the whole report.
	results := &models.ScrapeResults{
		Servers: []models.Server{
			{Name: "memory", Categories: []string{"memory"}},
			{Name: "memory", Categories: []string{"memory"}},
			{Name: "redis", Categories: []string{"memory"}},
		},
	}

	report, err := NewAnalyzer(5, 5).Analyze(results)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalServers)
	require.Len(t, report.SimilarPairs, 1)
	assert.ElementsMatch(t, []string{"memory", "redis"},
		[]string{report.SimilarPairs[0].ServerA, report.SimilarPairs[0].ServerB})
	for _, pair := range report.SimilarPairs {
		assert.NotEqual(t, pair.ServerA, pair.ServerB)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	report, err := NewAnalyzer(0, 0).Analyze(&models.ScrapeResults{})
	require.NoError(t, err)

	assert.Zero(t, report.TotalServers)
	assert.Zero(t, report.MeanConfidence)
	assert.Empty(t, report.TopCategories)
	assert.Empty(t, report.HubServers)
	assert.Empty(t, report.SimilarPairs)
}
