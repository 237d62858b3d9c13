// Package crawler enriches registry entries with repository metadata: stars
// and activity statistics, package manifests, and README-derived
// installation/usage sections.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/github"
	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

var readmeCandidates = []string{"README.md", "readme.md", "README.rst", "README.txt"}

var (
	installHeadingRe = regexp.MustCompile(`(?i)^##?\s*(install|setup|getting started)`)
	usageHeadingRe   = regexp.MustCompile(`(?i)^##?\s*(usage|example|how to use)`)
)

// Crawler pulls repository metadata through the GitHub client.
type Crawler struct {
	client *github.Client
}

// New creates a Crawler.
func New(client *github.Client) *Crawler {
	return &Crawler{client: client}
}

// Enhance fills in repository statistics, package info, README content, and
// README-derived sections for one server. Failures mark the server
// inaccessible with an error message; they never propagate as errors because
// a single server must not abort the batch.
func (c *Crawler) Enhance(ctx context.Context, server *models.Server) {
	owner, repo, subpath, err := github.ParseRepoURL(server.GitHubURL)
	if err != nil {
		server.ErrorMessage = "invalid GitHub URL"
		server.IsAccessible = false
		return
	}

	info, err := c.client.Repository(ctx, owner, repo)
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			server.ErrorMessage = "repository not accessible"
		} else {
			server.ErrorMessage = fmt.Sprintf("error fetching repository metadata: %v", err)
		}
		server.IsAccessible = false
		return
	}

	server.RepositoryStats = &models.RepositoryStats{
		Stars:      info.Stars,
		Forks:      info.Forks,
		Watchers:   info.Watchers,
		OpenIssues: info.OpenIssues,
		SizeKB:     info.SizeKB,
		CreatedAt:  info.CreatedAt,
		UpdatedAt:  info.UpdatedAt,
		PushedAt:   info.PushedAt,
		Language:   info.Language,
		Topics:     info.Topics,
	}
	server.IsArchived = info.Archived

	server.PackageInfo = c.packageInfo(ctx, owner, repo, subpath)

	if server.ReadmeContent == "" {
		server.ReadmeContent = c.readmeContent(ctx, owner, repo, subpath)
	}
	if server.ReadmeContent != "" {
		server.InstallationInstructions = extractSection(server.ReadmeContent, installHeadingRe)
		server.UsageExamples = extractSection(server.ReadmeContent, usageHeadingRe)
	}
}

// packageInfo tries package.json then pyproject.toml at the server's root.
func (c *Crawler) packageInfo(ctx context.Context, owner, repo, subpath string) *models.PackageInfo {
	for _, filename := range []string{"package.json", "pyproject.toml"} {
		path := filename
		if subpath != "" {
			path = subpath + "/" + filename
		}
		content, err := c.client.FileContent(ctx, owner, repo, path)
		if err != nil {
			continue
		}

		var info *models.PackageInfo
		if filename == "package.json" {
			info = parsePackageJSON(content)
		} else {
			info = parsePyprojectTOML(content)
		}
		if info != nil {
			return info
		}
	}
	return nil
}

// readmeContent tries the usual README filenames at the server's root.
func (c *Crawler) readmeContent(ctx context.Context, owner, repo, subpath string) string {
	for _, filename := range readmeCandidates {
		path := filename
		if subpath != "" {
			path = subpath + "/" + filename
		}
		if content, err := c.client.FileContent(ctx, owner, repo, path); err == nil {
			return content
		}
	}
	return ""
}

// extractSection returns the lines from a matching heading up to the next
// heading.
func extractSection(readme string, heading *regexp.Regexp) string {
	var section []string
	inSection := false

	for _, line := range strings.Split(readme, "\n") {
		switch {
		case heading.MatchString(line):
			inSection = true
			section = append(section, line)
		case inSection && strings.HasPrefix(line, "#"):
			return strings.TrimSpace(strings.Join(section, "\n"))
		case inSection:
			section = append(section, line)
		}
	}
	return strings.TrimSpace(strings.Join(section, "\n"))
}
