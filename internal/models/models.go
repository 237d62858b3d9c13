package models

import (
	"strings"
	"time"
)

// ServerType distinguishes registry-hosted reference servers from
// community-maintained third-party servers.
type ServerType string

const (
	ServerTypeReference  ServerType = "reference"
	ServerTypeThirdParty ServerType = "third_party"
)

// Parameter describes a single tool or prompt parameter.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// Tool is a named callable operation an MCP server exposes.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  []Parameter `json:"parameters,omitempty"`
	Origin      string      `json:"origin,omitempty"` // repository-relative path of the declaring file

	// NameResolved is false when the tool name could not be resolved to a
	// literal and a best-effort syntactic transform was used instead.
	NameResolved bool `json:"name_resolved"`
}

// Prompt is a named parameterized template an MCP server exposes.
type Prompt struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Arguments   []Parameter `json:"arguments,omitempty"`

	NameResolved bool `json:"name_resolved"`
}

// Resource is a named addressable data endpoint an MCP server exposes.
type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URI         string `json:"uri,omitempty"` // concrete URI or URI template
	MimeType    string `json:"mime_type,omitempty"`

	NameResolved bool `json:"name_resolved"`
}

// RepositoryStats holds GitHub repository statistics.
type RepositoryStats struct {
	Stars      int        `json:"stars"`
	Forks      int        `json:"forks"`
	Watchers   int        `json:"watchers"`
	OpenIssues int        `json:"open_issues"`
	SizeKB     int        `json:"size_kb"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	PushedAt   *time.Time `json:"pushed_at,omitempty"`
	Language   string     `json:"language,omitempty"`
	Topics     []string   `json:"topics,omitempty"`
}

// PackageInfo holds metadata parsed from package.json or pyproject.toml.
type PackageInfo struct {
	Name            string            `json:"name,omitempty"`
	Version         string            `json:"version,omitempty"`
	Description     string            `json:"description,omitempty"`
	Author          string            `json:"author,omitempty"`
	License         string            `json:"license,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"dev_dependencies,omitempty"`
	Scripts         map[string]string `json:"scripts,omitempty"`
}

// Server is the complete metadata record for one MCP server.
type Server struct {
	Name        string     `json:"name"`
	GitHubURL   string     `json:"github_url"`
	Description string     `json:"description,omitempty"`
	FaviconURL  string     `json:"favicon_url,omitempty"`
	ServerType  ServerType `json:"server_type"`

	ReadmeContent            string `json:"readme_content,omitempty"`
	InstallationInstructions string `json:"installation_instructions,omitempty"`
	UsageExamples            string `json:"usage_examples,omitempty"`

	RepositoryStats *RepositoryStats `json:"repository_stats,omitempty"`
	PackageInfo     *PackageInfo     `json:"package_info,omitempty"`

	Tools     []Tool     `json:"tools,omitempty"`
	Prompts   []Prompt   `json:"prompts,omitempty"`
	Resources []Resource `json:"resources,omitempty"`

	ExtractionLog        []string `json:"extraction_log,omitempty"`
	ExtractionConfidence float64  `json:"extraction_confidence"`

	ScrapedAt    time.Time `json:"scraped_at"`
	IsAccessible bool      `json:"is_accessible"`
	IsArchived   bool      `json:"is_archived"`
	ErrorMessage string    `json:"error_message,omitempty"`

	Categories []string `json:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ScrapeResults aggregates the outcome of one full registry scrape.
type ScrapeResults struct {
	RunID             string    `json:"run_id"`
	TotalServers      int       `json:"total_servers"`
	SuccessfulScrapes int       `json:"successful_scrapes"`
	FailedScrapes     int       `json:"failed_scrapes"`
	ReferenceServers  int       `json:"reference_servers"`
	ThirdPartyServers int       `json:"third_party_servers"`
	Servers           []Server  `json:"servers"`
	ScrapedAt         time.Time `json:"scraped_at"`
	Errors            []string  `json:"errors,omitempty"`
}

// DedupeCapabilities removes same-named tools, prompts, and resources from a
// server, keeping the first occurrence. The extractor itself appends raw
// matches; callers run this post-pass before handing the server to storage.
func DedupeCapabilities(s *Server) {
	if len(s.Tools) > 1 {
		seen := make(map[string]bool, len(s.Tools))
		kept := s.Tools[:0]
		for _, t := range s.Tools {
			key := strings.ToLower(t.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, t)
		}
		s.Tools = kept
	}
	if len(s.Prompts) > 1 {
		seen := make(map[string]bool, len(s.Prompts))
		kept := s.Prompts[:0]
		for _, p := range s.Prompts {
			key := strings.ToLower(p.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, p)
		}
		s.Prompts = kept
	}
	if len(s.Resources) > 1 {
		seen := make(map[string]bool, len(s.Resources))
		kept := s.Resources[:0]
		for _, r := range s.Resources {
			key := strings.ToLower(r.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, r)
		}
		s.Resources = kept
	}
}
