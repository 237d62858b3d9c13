package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgordon-dev/github-mcp-scraper/internal/export"
	"github.com/cgordon-dev/github-mcp-scraper/internal/mcp"
)

var serveInputFlag string

// serveCmd exposes a scraped catalog over MCP on stdio.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scraped results as an MCP catalog server",
	Long: `Serve loads an exported results file and exposes it over the Model
Context Protocol on stdio, with tools for keyword search and per-server
record lookup.

Examples:
  mcp-scraper serve --input mcp_servers.json
`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveInputFlag, "input", "i", "mcp_servers.json", "Results JSON file to serve")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	results, err := export.ReadJSON(serveInputFlag)
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}

	server, err := mcp.NewCatalogServer(ctx, results, Version)
	if err != nil {
		return fmt.Errorf("failed to create catalog server: %w", err)
	}
	defer server.Close()

	return server.Serve(ctx)
}
