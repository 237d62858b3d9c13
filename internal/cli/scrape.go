package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cgordon-dev/github-mcp-scraper/internal/config"
	"github.com/cgordon-dev/github-mcp-scraper/internal/export"
	"github.com/cgordon-dev/github-mcp-scraper/internal/github"
	"github.com/cgordon-dev/github-mcp-scraper/internal/graphstore"
	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
	"github.com/cgordon-dev/github-mcp-scraper/internal/scraper"
)

var (
	registryPathFlag string
	outputFlag       string
	formatFlag       string
	maxServersFlag   int
	noEnhanceFlag    bool
	noExtractFlag    bool
	quietFlag        bool
	storeGraphFlag   bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the MCP server registry",
	Long: `Scrape parses the registry checkout, crawls each server's GitHub
repository for metadata, and extracts tool, prompt, and resource
declarations from source code.

Examples:
  # Full scrape with GitHub enhancement
  mcp-scraper scrape --registry-path ./mcp_servers_repo

  # Quick sample without API calls
  mcp-scraper scrape --max-servers 10 --no-enhance

  # Export both JSON and CSV, then load into Neo4j
  mcp-scraper scrape --format both --store-graph
`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().StringVar(&registryPathFlag, "registry-path", "", "Path to the registry repository checkout")
	scrapeCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path")
	scrapeCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, csv, or both")
	scrapeCmd.Flags().IntVar(&maxServersFlag, "max-servers", 0, "Limit the number of servers processed (0 = all)")
	scrapeCmd.Flags().BoolVar(&noEnhanceFlag, "no-enhance", false, "Skip GitHub metadata enhancement")
	scrapeCmd.Flags().BoolVar(&noExtractFlag, "no-extract", false, "Skip capability extraction")
	scrapeCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	scrapeCmd.Flags().BoolVar(&storeGraphFlag, "store-graph", false, "Store results into Neo4j after scraping")
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling scrape...")
		cancel()
	}()

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyScrapeFlags(cfg)

	var client *github.Client
	needsClient := cfg.Scrape.EnhanceMetadata || cfg.Scrape.ExtractCapabilities
	if needsClient {
		token := cfg.GitHub.Token
		if token == "" {
			token = os.Getenv("GITHUB_TOKEN")
		}
		client, err = github.NewClient(token, github.WithMaxRetries(cfg.GitHub.MaxRetries))
		if err != nil {
			return fmt.Errorf("failed to create GitHub client: %w", err)
		}
		if token == "" && !quietFlag {
			log.Println("No GitHub token configured; API rate limits will be low")
		}
	}

	s, err := scraper.New(client, scraper.Options{
		RepoPath:            cfg.Registry.RepoPath,
		EnhanceMetadata:     cfg.Scrape.EnhanceMetadata,
		ExtractCapabilities: cfg.Scrape.ExtractCapabilities,
		MaxServers:          cfg.Scrape.MaxServers,
		MaxDepth:            cfg.Scrape.MaxDepth,
		Progress:            NewCLIProgressReporter(quietFlag),
	})
	if err != nil {
		return fmt.Errorf("failed to create scraper: %w", err)
	}

	results, err := s.ScrapeAll(ctx)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if err := exportResults(results, cfg.Output); err != nil {
		return err
	}

	if storeGraphFlag {
		if cfg.Neo4j.URI == "" {
			return fmt.Errorf("--store-graph requires neo4j.uri in configuration")
		}
		if err := storeResults(ctx, cfg, results); err != nil {
			return err
		}
	}

	if !quietFlag {
		printSummary(results, s)
	}
	return nil
}

func applyScrapeFlags(cfg *config.Config) {
	if registryPathFlag != "" {
		cfg.Registry.RepoPath = registryPathFlag
	}
	if outputFlag != "" {
		cfg.Output.Path = outputFlag
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
	if maxServersFlag > 0 {
		cfg.Scrape.MaxServers = maxServersFlag
	}
	if noEnhanceFlag {
		cfg.Scrape.EnhanceMetadata = false
	}
	if noExtractFlag {
		cfg.Scrape.ExtractCapabilities = false
	}
}

func exportResults(results *models.ScrapeResults, out config.OutputConfig) error {
	format := strings.ToLower(out.Format)

	if format == "json" || format == "both" {
		path := withExtension(out.Path, ".json")
		if err := export.WriteJSON(results, path); err != nil {
			return fmt.Errorf("JSON export failed: %w", err)
		}
		log.Printf("Results exported to JSON: %s", path)
	}
	if format == "csv" || format == "both" {
		path := withExtension(out.Path, ".csv")
		if err := export.WriteCSV(results, path); err != nil {
			return fmt.Errorf("CSV export failed: %w", err)
		}
		log.Printf("Results exported to CSV: %s", path)
	}
	return nil
}

func withExtension(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[:i] + ext
	}
	return path + ext
}

func storeResults(ctx context.Context, cfg *config.Config, results *models.ScrapeResults) error {
	store, err := graphstore.New(ctx, cfg.Neo4j.URI, cfg.Neo4j.Username, cfg.Neo4j.Password)
	if err != nil {
		return fmt.Errorf("failed to connect to Neo4j: %w", err)
	}
	defer store.Close(ctx)

	if err := store.EnsureConstraints(ctx); err != nil {
		return fmt.Errorf("failed to create graph constraints: %w", err)
	}
	stats, err := store.StoreResults(ctx, results)
	if err != nil {
		return fmt.Errorf("failed to store results: %w", err)
	}
	log.Printf("Graph import complete: %d servers, %d tools, %d prompts, %d resources",
		stats.Servers, stats.Tools, stats.Prompts, stats.Resources)
	return nil
}

func printSummary(results *models.ScrapeResults, s *scraper.Scraper) {
	fmt.Println()
	fmt.Println("Scraping summary")
	fmt.Printf("  Run ID:          %s\n", results.RunID)
	fmt.Printf("  Total servers:   %d\n", results.TotalServers)
	fmt.Printf("  Successful:      %d\n", results.SuccessfulScrapes)
	fmt.Printf("  Failed:          %d\n", results.FailedScrapes)
	fmt.Printf("  Files processed: %d\n", s.Stats().FilesProcessed())
	fmt.Printf("  Failed files:    %d\n", s.Stats().FailedFiles())
	fmt.Printf("  Rate limit hits: %d\n", s.Stats().RateLimitHits())

	var totalTools, totalPrompts, totalResources int
	for i := range results.Servers {
		totalTools += len(results.Servers[i].Tools)
		totalPrompts += len(results.Servers[i].Prompts)
		totalResources += len(results.Servers[i].Resources)
	}
	fmt.Printf("  Tools found:     %d\n", totalTools)
	fmt.Printf("  Prompts found:   %d\n", totalPrompts)
	fmt.Printf("  Resources found: %d\n", totalResources)

	if len(results.Errors) > 0 {
		fmt.Printf("  Errors: %d (first %d shown)\n", len(results.Errors), min(5, len(results.Errors)))
		for _, e := range results.Errors[:min(5, len(results.Errors))] {
			fmt.Printf("    - %s\n", e)
		}
	}
}
