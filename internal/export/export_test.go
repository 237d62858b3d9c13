package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Test Plan for export:
// - WriteJSON then ReadJSON round-trips the full document and creates
//   missing parent directories
// - WriteCSV emits the fixed header and one flattened row per server
// - Servers without repository or package metadata get empty cells
// - ReadJSON reports missing and malformed files

func sampleResults() *models.ScrapeResults {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &models.ScrapeResults{
		RunID:             "run-1",
		TotalServers:      2,
		SuccessfulScrapes: 2,
		ScrapedAt:         time.Date(2024, 3, 2, 8, 30, 0, 0, time.UTC),
		Servers: []models.Server{
			{
				Name:        "weather",
				GitHubURL:   "https://github.com/acme/weather-mcp",
				Description: "Live weather lookups",
				ServerType:  models.ServerTypeThirdParty,
				RepositoryStats: &models.RepositoryStats{
					Stars:     42,
					Forks:     7,
					Language:  "Python",
					Topics:    []string{"mcp", "weather"},
					CreatedAt: &created,
				},
				PackageInfo: &models.PackageInfo{
					Name:    "weather-mcp",
					Version: "1.2.0",
					Author:  "Acme",
					License: "MIT",
				},
				Tools: []models.Tool{
					{Name: "get_forecast", NameResolved: true},
					{Name: "get_alerts", NameResolved: true},
				},
				Categories:           []string{"time", "web"},
				ExtractionConfidence: 0.8,
				IsAccessible:         true,
			},
			{
				Name:       "echo",
				GitHubURL:  "https://github.com/modelcontextprotocol/servers/tree/main/src/echo",
				ServerType: models.ServerTypeReference,
			},
		},
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "out", "results.json")
	results := sampleResults()

	require.NoError(t, WriteJSON(results, path))

	loaded, err := ReadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, results, loaded)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, WriteCSV(sampleResults(), path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])

	weather := rows[1]
	assert.Equal(t, "weather", weather[0])
	assert.Equal(t, "third_party", weather[3])
	assert.Equal(t, "true", weather[4])
	assert.Equal(t, "42", weather[6])
	assert.Equal(t, "7", weather[7])
	assert.Equal(t, "Python", weather[8])
	assert.Equal(t, "mcp, weather", weather[9])
	assert.Equal(t, "time, web", weather[10])
	assert.Equal(t, "2", weather[11])
	assert.Equal(t, "get_forecast, get_alerts", weather[14])
	assert.Equal(t, "weather-mcp", weather[15])
	assert.Equal(t, "MIT", weather[18])
	assert.Equal(t, "2024-03-01T12:00:00Z", weather[19])
	assert.Equal(t, "", weather[20])

	echo := rows[2]
	assert.Equal(t, "echo", echo[0])
	assert.Equal(t, "false", echo[4])
	assert.Equal(t, "0", echo[6])
	assert.Equal(t, "", echo[8])
	assert.Equal(t, "0", echo[11])
}

func TestReadJSON_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadJSON(bad)
	assert.Error(t, err)
}
