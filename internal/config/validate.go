package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrEmptyOutputPath indicates a missing output path
	ErrEmptyOutputPath = errors.New("empty output path")

	// ErrInvalidRetries indicates a negative retry count
	ErrInvalidRetries = errors.New("invalid retry count")

	// ErrInvalidDepth indicates an out-of-range recursion depth
	ErrInvalidDepth = errors.New("invalid max depth")

	// ErrInvalidMaxServers indicates a negative server limit
	ErrInvalidMaxServers = errors.New("invalid max servers")

	// ErrMissingNeo4jCredentials indicates a Neo4j URI without credentials
	ErrMissingNeo4jCredentials = errors.New("missing Neo4j credentials")

	// ErrInvalidAnalytics indicates non-positive analytics listing sizes
	ErrInvalidAnalytics = errors.New("invalid analytics settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateGitHub(&cfg.GitHub); err != nil {
		errs = append(errs, err)
	}
	if err := validateScrape(&cfg.Scrape); err != nil {
		errs = append(errs, err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}
	if err := validateNeo4j(&cfg.Neo4j); err != nil {
		errs = append(errs, err)
	}
	if err := validateAnalytics(&cfg.Analytics); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateGitHub(cfg *GitHubConfig) error {
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidRetries, cfg.MaxRetries)
	}
	return nil
}

func validateScrape(cfg *ScrapeConfig) error {
	var errs []error

	if cfg.MaxServers < 0 {
		errs = append(errs, fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidMaxServers, cfg.MaxServers))
	}
	if cfg.MaxDepth < 1 || cfg.MaxDepth > 10 {
		errs = append(errs, fmt.Errorf("%w: must be 1-10, got %d", ErrInvalidDepth, cfg.MaxDepth))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	format := strings.ToLower(cfg.Format)
	if format != "json" && format != "csv" && format != "both" {
		errs = append(errs, fmt.Errorf("%w: must be 'json', 'csv', or 'both', got '%s'", ErrInvalidFormat, cfg.Format))
	}
	if strings.TrimSpace(cfg.Path) == "" {
		errs = append(errs, ErrEmptyOutputPath)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateNeo4j(cfg *Neo4jConfig) error {
	// Neo4j is optional; only validate when a URI is configured.
	if cfg.URI == "" {
		return nil
	}
	if cfg.Username == "" || cfg.Password == "" {
		return fmt.Errorf("%w: uri is set but username or password is empty", ErrMissingNeo4jCredentials)
	}
	return nil
}

func validateAnalytics(cfg *AnalyticsConfig) error {
	if cfg.TopN < 1 || cfg.MaxPairs < 1 {
		return fmt.Errorf("%w: top_n and max_pairs must be >= 1", ErrInvalidAnalytics)
	}
	return nil
}
