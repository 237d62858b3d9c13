package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgordon-dev/github-mcp-scraper/internal/catalog"
	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Test Plan for the MCP tool handlers:
// - catalog_search returns ranked hits as JSON text content
// - catalog_server_info returns the full server record
// - Missing required arguments and non-map argument payloads produce tool
//   errors, not Go errors
// - Unknown server names produce a tool error

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	results := &models.ScrapeResults{
		Servers: []models.Server{
			{
				Name:        "weather",
				GitHubURL:   "https://github.com/acme/weather-mcp",
				Description: "Live weather forecasts",
				Categories:  []string{"web"},
				Tools: []models.Tool{
					{Name: "get_forecast", Description: "Fetch the forecast for a city"},
				},
			},
		},
	}

	cat, err := catalog.New(context.Background(), results)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent")
	return content.Text
}

func TestCatalogSearchHandler_ValidQuery(t *testing.T) {
	t.Parallel()

	handler := createCatalogSearchHandler(testCatalog(t))

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "catalog_search",
			Arguments: map[string]interface{}{
				"query": "forecast",
			},
		},
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)

	var response searchResponse
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &response))

	assert.Equal(t, 1, response.Total)
	require.Len(t, response.Hits, 1)
	assert.Equal(t, "weather", response.Hits[0].ServerName)
	assert.Equal(t, "https://github.com/acme/weather-mcp", response.Hits[0].GitHubURL)
}

func TestCatalogSearchHandler_MissingQuery(t *testing.T) {
	t.Parallel()

	handler := createCatalogSearchHandler(testCatalog(t))

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "catalog_search",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestCatalogSearchHandler_NonMapArguments(t *testing.T) {
	t.Parallel()

	handler := createCatalogSearchHandler(testCatalog(t))

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "catalog_search",
			Arguments: "not a map",
		},
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestServerInfoHandler_Found(t *testing.T) {
	t.Parallel()

	handler := createServerInfoHandler(testCatalog(t))

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "catalog_server_info",
			Arguments: map[string]interface{}{
				"name": "weather",
			},
		},
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)

	var server models.Server
	require.NoError(t, json.Unmarshal([]byte(textContent(t, result)), &server))

	assert.Equal(t, "weather", server.Name)
	require.Len(t, server.Tools, 1)
	assert.Equal(t, "get_forecast", server.Tools[0].Name)
}

func TestServerInfoHandler_NotFound(t *testing.T) {
	t.Parallel()

	handler := createServerInfoHandler(testCatalog(t))

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "catalog_server_info",
			Arguments: map[string]interface{}{
				"name": "absent",
			},
		},
	}

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
