package cli

import (
	"fmt"
	"log"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// CLIProgressReporter implements scraper progress reporting with a progress
// bar.
type CLIProgressReporter struct {
	quiet     bool
	serverBar *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
}

func (c *CLIProgressReporter) OnRegistryParsed(totalServers int) {
	if c.quiet {
		return
	}
	log.Printf("Found %d servers in registry\n", totalServers)

	c.serverBar = progressbar.NewOptions(totalServers,
		progressbar.OptionSetDescription("Processing servers"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("servers/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnServerProcessed(name string) {
	if c.quiet {
		return
	}
	if c.serverBar != nil {
		c.serverBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(results *models.ScrapeResults) {
	if c.quiet {
		return
	}
	if c.serverBar != nil {
		c.serverBar.Finish()
		c.serverBar = nil
	}

	fmt.Println()
	fmt.Printf("✓ Scraping complete: %d successful, %d failed (took %.1fs)\n",
		results.SuccessfulScrapes, results.FailedScrapes, time.Since(c.startTime).Seconds())
	fmt.Printf("  Reference servers:   %d\n", results.ReferenceServers)
	fmt.Printf("  Third-party servers: %d\n", results.ThirdPartyServers)
}
