package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the configuration loader:
// - A directory without a config file yields the defaults
// - Values from .mcp-scraper/config.yml override the defaults
// - MCP_SCRAPER_* environment variables override the config file
// - A config file that fails validation is rejected

func writeConfig(t *testing.T, yml string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, ".mcp-scraper")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o644))
	return root
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, `
github:
  max_retries: 5
output:
  format: csv
  path: out/servers.csv
scrape:
  max_depth: 5
  enhance_metadata: false
`)

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.GitHub.MaxRetries)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "out/servers.csv", cfg.Output.Path)
	assert.Equal(t, 5, cfg.Scrape.MaxDepth)
	assert.False(t, cfg.Scrape.EnhanceMetadata)

	// Untouched sections keep their defaults.
	assert.Equal(t, "mcp_servers_repo", cfg.Registry.RepoPath)
	assert.True(t, cfg.Scrape.ExtractCapabilities)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	root := writeConfig(t, `
output:
  format: csv
`)
	t.Setenv("MCP_SCRAPER_OUTPUT_FORMAT", "both")
	t.Setenv("MCP_SCRAPER_GITHUB_TOKEN", "ghp_test")

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, "both", cfg.Output.Format)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, `
scrape:
  max_depth: 20
`)

	_, err := LoadConfigFromDir(root)
	assert.ErrorIs(t, err, ErrInvalidDepth)
}
