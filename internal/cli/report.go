package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cgordon-dev/github-mcp-scraper/internal/analytics"
	"github.com/cgordon-dev/github-mcp-scraper/internal/config"
	"github.com/cgordon-dev/github-mcp-scraper/internal/export"
)

var (
	reportInputFlag string
	reportJSONFlag  bool
)

// reportCmd computes ecosystem analytics from an exported results file.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute ecosystem analytics from scrape results",
	Long: `Report analyzes an exported results file: top categories, languages,
tool names, hub servers, and category-overlap similarity pairs.

Examples:
  # Human-readable report
  mcp-scraper report --input mcp_servers.json

  # Machine-readable report
  mcp-scraper report --input mcp_servers.json --json
`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportInputFlag, "input", "i", "mcp_servers.json", "Results JSON file to analyze")
	reportCmd.Flags().BoolVar(&reportJSONFlag, "json", false, "Emit the report as JSON")
}

func runReport(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfigFromDir(rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	results, err := export.ReadJSON(reportInputFlag)
	if err != nil {
		return fmt.Errorf("failed to read results: %w", err)
	}

	analyzer := analytics.NewAnalyzer(cfg.Analytics.TopN, cfg.Analytics.MaxPairs)
	report, err := analyzer.Analyze(results)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if reportJSONFlag {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printReport(report)
	return nil
}

func printReport(report *analytics.Report) {
	fmt.Println("Ecosystem report")
	fmt.Printf("  Servers:         %d (%d accessible)\n", report.TotalServers, report.AccessibleServers)
	fmt.Printf("  Tools:           %d\n", report.TotalTools)
	fmt.Printf("  Prompts:         %d\n", report.TotalPrompts)
	fmt.Printf("  Resources:       %d\n", report.TotalResources)
	fmt.Printf("  Mean confidence: %.2f\n", report.MeanConfidence)

	printEntries := func(title string, entries []analytics.CountEntry) {
		if len(entries) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", title)
		for _, e := range entries {
			fmt.Printf("  %4d  %s\n", e.Count, e.Name)
		}
	}
	printEntries("Top categories", report.TopCategories)
	printEntries("Top languages", report.TopLanguages)
	printEntries("Most common tool names", report.TopToolNames)
	printEntries("Hub servers (similarity degree)", report.HubServers)

	if len(report.SimilarPairs) > 0 {
		fmt.Println("\nMost similar server pairs:")
		for _, p := range report.SimilarPairs {
			fmt.Printf("  %s <-> %s (%d shared)\n", p.ServerA, p.ServerB, len(p.SharedCategories))
		}
	}
}
