package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cgordon-dev/github-mcp-scraper/internal/config"
)

// Test Plan for scrape command helpers:
// - withExtension swaps the extension of the configured output path, or
//   appends one when the final path segment has none
// - applyScrapeFlags leaves configuration untouched when no flag was set
//   and overrides only the fields whose flags were given

func TestWithExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"mcp_servers.json", ".csv", "mcp_servers.csv"},
		{"mcp_servers.json", ".json", "mcp_servers.json"},
		{"results", ".json", "results.json"},
		{"out/results", ".csv", "out/results.csv"},
		{"out.d/results", ".csv", "out.d/results.csv"},
		{"results.data.json", ".csv", "results.data.csv"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, withExtension(tt.path, tt.ext), "%s + %s", tt.path, tt.ext)
	}
}

func TestApplyScrapeFlags(t *testing.T) {
	defer func() {
		registryPathFlag = ""
		outputFlag = ""
		formatFlag = ""
		maxServersFlag = 0
		noEnhanceFlag = false
		noExtractFlag = false
	}()

	cfg := config.Default()
	applyScrapeFlags(cfg)
	assert.Equal(t, config.Default(), cfg, "unset flags must not touch configuration")

	registryPathFlag = "./registry_checkout"
	formatFlag = "both"
	maxServersFlag = 25
	noEnhanceFlag = true
	applyScrapeFlags(cfg)

	assert.Equal(t, "./registry_checkout", cfg.Registry.RepoPath)
	assert.Equal(t, "both", cfg.Output.Format)
	assert.Equal(t, 25, cfg.Scrape.MaxServers)
	assert.False(t, cfg.Scrape.EnhanceMetadata)
	assert.True(t, cfg.Scrape.ExtractCapabilities, "no-extract was not set")
	assert.Equal(t, "mcp_servers.json", cfg.Output.Path, "output flag was not set")

	outputFlag = "custom_output"
	noExtractFlag = true
	applyScrapeFlags(cfg)

	assert.Equal(t, "custom_output", cfg.Output.Path)
	assert.False(t, cfg.Scrape.ExtractCapabilities)
}
