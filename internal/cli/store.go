package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgordon-dev/github-mcp-scraper/internal/config"
	"github.com/cgordon-dev/github-mcp-scraper/internal/export"
	"github.com/cgordon-dev/github-mcp-scraper/internal/graphstore"
)

var (
	storeInputFlag string
	clearGraphFlag bool
)

// storeCmd loads a previously exported results file into Neo4j.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Load exported scrape results into Neo4j",
	Long: `Store reads a JSON results file produced by scrape and imports it
into the configured Neo4j instance as a property graph.

Examples:
  # Import the default export
  mcp-scraper store --input mcp_servers.json

  # Wipe the graph before importing
  mcp-scraper store --input mcp_servers.json --clear
`,
	RunE: runStore,
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.Flags().StringVarP(&storeInputFlag, "input", "i", "mcp_servers.json", "Results JSON file to import")
	storeCmd.Flags().BoolVar(&clearGraphFlag, "clear", false, "Delete all existing graph data before importing")
}

func runStore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Neo4j.URI == "" {
		return fmt.Errorf("neo4j.uri is not configured")
	}

	results, err := export.ReadJSON(storeInputFlag)
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}

	store, err := graphstore.New(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password)
	if err != nil {
		return fmt.Errorf("failed to connect to Neo4j: %w", err)
	}
	defer store.Close(ctx)

	if clearGraphFlag {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear graph: %w", err)
		}
		log.Println("Cleared existing graph data")
	}

	if err := store.EnsureConstraints(ctx); err != nil {
		return fmt.Errorf("failed to create graph constraints: %w", err)
	}

	stats, err := store.StoreResults(ctx, results)
	if err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	log.Printf("Graph import complete: %d servers, %d tools, %d prompts, %d resources, %d categories",
		stats.Servers, stats.Tools, stats.Prompts, stats.Resources, stats.Categories)

	graphStats, err := store.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("failed to read graph statistics: %w", err)
	}
	fmt.Printf("Graph now holds %d servers, %d tools, %d relationships\n",
		graphStats.Servers, graphStats.Tools, graphStats.Relationships)
	return nil
}
