// Package registry parses the MCP server registry: reference servers from
// the checked-out repository's src/ tree and community servers from the
// registry README's third-party section.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

const referenceURLBase = "https://github.com/modelcontextprotocol/servers/tree/main/src"

var (
	// - <img ... src="favicon"> **[Name](url)** - Description
	communityWithImgRe = regexp.MustCompile(`(?m)- <img[^>]*src="([^"]+)"[^>]*>\s*\*\*\[([^\]]+)\]\(([^)]+)\)\*\*\s*[-–]\s*([^\n]+)`)
	// - **[Name](url)** - Description
	communityPlainRe = regexp.MustCompile(`(?m)- \*\*\[([^\]]+)\]\(([^)]+)\)\*\*\s*[-–]\s*([^\n]+)`)
)

// Parser reads servers out of a local checkout of the registry repository.
type Parser struct {
	repoPath string
}

// NewParser creates a Parser for the given checkout directory.
func NewParser(repoPath string) *Parser {
	return &Parser{repoPath: repoPath}
}

// Parse returns every server the registry lists: reference servers first (in
// directory order), then community servers in README order.
func (p *Parser) Parse() ([]models.Server, error) {
	readmePath := filepath.Join(p.repoPath, "README.md")
	content, err := os.ReadFile(readmePath)
	if err != nil {
		return nil, fmt.Errorf("registry README not found at %s: %w", readmePath, err)
	}

	servers := p.parseReferenceServers()
	servers = append(servers, parseCommunityServers(string(content))...)
	return servers, nil
}

// parseReferenceServers scans src/ for server directories. Each directory's
// README supplies the description (first non-heading paragraph line).
func (p *Parser) parseReferenceServers() []models.Server {
	srcPath := filepath.Join(p.repoPath, "src")
	entries, err := os.ReadDir(srcPath)
	if err != nil {
		return nil
	}

	var servers []models.Server
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		server := models.Server{
			Name:         entry.Name(),
			GitHubURL:    referenceURLBase + "/" + entry.Name(),
			ServerType:   models.ServerTypeReference,
			IsAccessible: true,
		}

		if readme, err := os.ReadFile(filepath.Join(srcPath, entry.Name(), "README.md")); err == nil {
			server.ReadmeContent = string(readme)
			server.Description = firstParagraphLine(string(readme))
		}

		servers = append(servers, server)
	}
	return servers
}

// parseCommunityServers extracts third-party entries from the README's
// community section. Entries appear with or without a favicon img tag.
func parseCommunityServers(content string) []models.Server {
	section, ok := communitySection(content)
	if !ok {
		return nil
	}

	var servers []models.Server
	for _, m := range communityWithImgRe.FindAllStringSubmatch(section, -1) {
		servers = append(servers, models.Server{
			Name:         strings.TrimSpace(m[2]),
			GitHubURL:    strings.TrimSpace(m[3]),
			Description:  strings.TrimSpace(m[4]),
			FaviconURL:   m[1],
			ServerType:   models.ServerTypeThirdParty,
			IsAccessible: true,
		})
	}

	for _, m := range communityPlainRe.FindAllStringSubmatch(section, -1) {
		name := strings.TrimSpace(m[1])
		if hasServer(servers, name) {
			// Already captured by the img-tag pattern.
			continue
		}
		servers = append(servers, models.Server{
			Name:         name,
			GitHubURL:    strings.TrimSpace(m[2]),
			Description:  strings.TrimSpace(m[3]),
			ServerType:   models.ServerTypeThirdParty,
			IsAccessible: true,
		})
	}
	return servers
}

// communitySection isolates the third-party/community block of the README,
// from its heading to the next major section well past the start.
func communitySection(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	start := -1
	end := len(lines)

	for i, line := range lines {
		lower := strings.ToLower(line)
		if start < 0 {
			if strings.Contains(lower, "third-party servers") || strings.Contains(lower, "community servers") {
				start = i
			}
			continue
		}
		if strings.HasPrefix(line, "#") && i > start+5 {
			end = i
			break
		}
	}

	if start < 0 {
		return "", false
	}
	return strings.Join(lines[start:end], "\n"), true
}

func firstParagraphLine(readme string) string {
	for _, line := range strings.Split(readme, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
			continue
		}
		return trimmed
	}
	return ""
}

func hasServer(servers []models.Server, name string) bool {
	for _, s := range servers {
		if s.Name == name {
			return true
		}
	}
	return false
}

// ReferenceServerDir returns the local source directory for a reference
// server, used to build a filesystem-backed source lister.
func (p *Parser) ReferenceServerDir(name string) string {
	return filepath.Join(p.repoPath, "src", name)
}
