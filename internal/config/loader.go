package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (MCP_SCRAPER_*)
// 2. Config file (.mcp-scraper/config.yml or .mcp-scraper/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".mcp-scraper")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("MCP_SCRAPER")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., MCP_SCRAPER_GITHUB_TOKEN)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("github.token")
	v.BindEnv("github.max_retries")

	v.BindEnv("registry.repo_path")

	v.BindEnv("scrape.enhance_metadata")
	v.BindEnv("scrape.extract_capabilities")
	v.BindEnv("scrape.max_servers")
	v.BindEnv("scrape.max_depth")

	v.BindEnv("output.format")
	v.BindEnv("output.path")

	v.BindEnv("neo4j.uri")
	v.BindEnv("neo4j.username")
	v.BindEnv("neo4j.password")

	v.BindEnv("analytics.top_n")
	v.BindEnv("analytics.max_pairs")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - defaults + env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("github.token", defaults.GitHub.Token)
	v.SetDefault("github.max_retries", defaults.GitHub.MaxRetries)

	v.SetDefault("registry.repo_path", defaults.Registry.RepoPath)

	v.SetDefault("scrape.enhance_metadata", defaults.Scrape.EnhanceMetadata)
	v.SetDefault("scrape.extract_capabilities", defaults.Scrape.ExtractCapabilities)
	v.SetDefault("scrape.max_servers", defaults.Scrape.MaxServers)
	v.SetDefault("scrape.max_depth", defaults.Scrape.MaxDepth)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.path", defaults.Output.Path)

	v.SetDefault("neo4j.uri", defaults.Neo4j.URI)
	v.SetDefault("neo4j.username", defaults.Neo4j.Username)
	v.SetDefault("neo4j.password", defaults.Neo4j.Password)

	v.SetDefault("analytics.top_n", defaults.Analytics.TopN)
	v.SetDefault("analytics.max_pairs", defaults.Analytics.MaxPairs)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
