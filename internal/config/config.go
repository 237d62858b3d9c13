package config

// Config represents the complete scraper configuration.
// It can be loaded from .mcp-scraper/config.yml with environment variable
// overrides.
type Config struct {
	GitHub    GitHubConfig    `yaml:"github" mapstructure:"github"`
	Registry  RegistryConfig  `yaml:"registry" mapstructure:"registry"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Output    OutputConfig    `yaml:"output" mapstructure:"output"`
	Neo4j     Neo4jConfig     `yaml:"neo4j" mapstructure:"neo4j"`
	Analytics AnalyticsConfig `yaml:"analytics" mapstructure:"analytics"`
}

// GitHubConfig configures API access.
type GitHubConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`             // personal access token; empty means unauthenticated
	MaxRetries int    `yaml:"max_retries" mapstructure:"max_retries"` // retry attempts per API call
}

// RegistryConfig locates the registry repository checkout.
type RegistryConfig struct {
	RepoPath string `yaml:"repo_path" mapstructure:"repo_path"`
}

// ScrapeConfig controls what a scrape run does.
type ScrapeConfig struct {
	EnhanceMetadata     bool `yaml:"enhance_metadata" mapstructure:"enhance_metadata"`
	ExtractCapabilities bool `yaml:"extract_capabilities" mapstructure:"extract_capabilities"`
	MaxServers          int  `yaml:"max_servers" mapstructure:"max_servers"` // 0 means all
	MaxDepth            int  `yaml:"max_depth" mapstructure:"max_depth"`     // directory recursion bound
}

// OutputConfig controls export targets.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "json", "csv", or "both"
	Path   string `yaml:"path" mapstructure:"path"`     // output file path (extension swapped per format)
}

// Neo4jConfig configures graph persistence. Storing is skipped when URI is
// empty.
type Neo4jConfig struct {
	URI      string `yaml:"uri" mapstructure:"uri"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

// AnalyticsConfig sizes the report listings.
type AnalyticsConfig struct {
	TopN     int `yaml:"top_n" mapstructure:"top_n"`
	MaxPairs int `yaml:"max_pairs" mapstructure:"max_pairs"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Token:      "",
			MaxRetries: 3,
		},
		Registry: RegistryConfig{
			RepoPath: "mcp_servers_repo",
		},
		Scrape: ScrapeConfig{
			EnhanceMetadata:     true,
			ExtractCapabilities: true,
			MaxServers:          0,
			MaxDepth:            3,
		},
		Output: OutputConfig{
			Format: "json",
			Path:   "mcp_servers.json",
		},
		Neo4j: Neo4jConfig{
			URI:      "",
			Username: "neo4j",
			Password: "",
		},
		Analytics: AnalyticsConfig{
			TopN:     10,
			MaxPairs: 25,
		},
	}
}
