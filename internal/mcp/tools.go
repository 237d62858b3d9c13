package mcp

// Implementation Plan:
// 1. AddCatalogSearchTool - keyword search over the scraped catalog
// 2. AddServerInfoTool - full record lookup by server name
// 3. Handlers parse MCP arguments, call the catalog, return JSON text

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cgordon-dev/github-mcp-scraper/internal/catalog"
)

// searchResponse is the JSON payload returned by catalog_search.
type searchResponse struct {
	Hits  []catalog.Hit `json:"hits"`
	Total int           `json:"total"`
}

// AddCatalogSearchTool registers the catalog_search tool. Composable with
// other tool registrations.
func AddCatalogSearchTool(s *server.MCPServer, cat *catalog.Catalog) {
	tool := mcp.NewTool(
		"catalog_search",
		mcp.WithDescription("Search the scraped MCP server catalog by keyword. Matches server names, descriptions, and tool/prompt/resource names. Returns servers ranked by relevance."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Keyword search query (e.g., 'postgres database', 'web scraping')")),
		mcp.WithString("category",
			mcp.Description("Filter results to one category (e.g., 'database', 'web', 'ai')")),
		mcp.WithString("language",
			mcp.Description("Filter results by implementation language (e.g., 'python', 'typescript')")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-100, default: 15)")),
	)

	s.AddTool(tool, createCatalogSearchHandler(cat))
}

func createCatalogSearchHandler(cat *catalog.Catalog) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		options := &catalog.SearchOptions{Limit: 15}
		if category, ok := argsMap["category"].(string); ok {
			options.Category = category
		}
		if language, ok := argsMap["language"].(string); ok {
			options.Language = language
		}
		if limit, ok := argsMap["limit"].(float64); ok {
			options.Limit = int(limit)
		}

		hits, err := cat.Search(ctx, query, options)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		jsonData, err := json.Marshal(&searchResponse{Hits: hits, Total: len(hits)})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// AddServerInfoTool registers the catalog_server_info tool, which returns the
// complete scraped record for one server.
func AddServerInfoTool(s *server.MCPServer, cat *catalog.Catalog) {
	tool := mcp.NewTool(
		"catalog_server_info",
		mcp.WithDescription("Fetch the full scraped record for one MCP server by exact name: tools, prompts, resources, repository stats, categories, and extraction confidence."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact server name as returned by catalog_search")),
	)

	s.AddTool(tool, createServerInfoHandler(cat))
}

func createServerInfoHandler(cat *catalog.Catalog) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		name, ok := argsMap["name"].(string)
		if !ok || name == "" {
			return mcp.NewToolResultError("name parameter is required"), nil
		}

		server, found := cat.Server(name)
		if !found {
			return mcp.NewToolResultError(fmt.Sprintf("no server named %q in the catalog", name)), nil
		}

		jsonData, err := json.Marshal(server)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal server record: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
