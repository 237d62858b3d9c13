package extract

import (
	"regexp"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// The fallback miner recovers a coarse tool list from documentation when
// structured extraction found nothing. Only tools are attempted; READMEs
// rarely describe prompts or resources structurally enough to mine.

var (
	// A "Tools" heading and everything up to the next heading or EOF.
	readmeToolSectionRe = regexp.MustCompile(`(?si)##?\s*Tools?\s*\n(.*?)(?:\n##|\z)`)

	// Bullet, numbered-list, and backtick-name line shapes.
	readmeLinePatterns = []*regexp.Regexp{
		regexp.MustCompile("[-*+]\\s*`?([\\w_]+)`?[:\\s-]+([^\n]+)"),
		regexp.MustCompile("\\d+\\.\\s*`?([\\w_]+)`?[: \\t-]+([^\n]+)"),
		regexp.MustCompile("`([\\w_]+)`[: \\t-]+([^\n]+)"),
	}
)

// Names too generic to be real tool declarations.
var genericNames = map[string]bool{
	"tool":     true,
	"tools":    true,
	"function": true,
	"method":   true,
}

// MineReadme scans free-form documentation for a Tools section and returns
// the tool declarations it lists. Candidate names shorter than three
// characters or equal to generic words are discarded as likely false
// positives. Lines matching more than one shape (a backticked bullet hits
// both the bullet and backtick patterns) yield a single declaration. Mined
// declarations carry no parameters.
func MineReadme(doc string) []models.Tool {
	var tools []models.Tool
	seen := make(map[string]bool)

	for _, section := range readmeToolSectionRe.FindAllStringSubmatch(doc, -1) {
		for _, pattern := range readmeLinePatterns {
			for _, m := range pattern.FindAllStringSubmatch(section[1], -1) {
				name := strings.TrimSpace(m[1])
				if len(name) <= 2 || genericNames[strings.ToLower(name)] {
					continue
				}
				if seen[strings.ToLower(name)] {
					continue
				}
				seen[strings.ToLower(name)] = true
				tools = append(tools, models.Tool{
					Name:         name,
					Description:  strings.TrimSpace(m[2]),
					NameResolved: true,
				})
			}
		}
	}

	return tools
}
