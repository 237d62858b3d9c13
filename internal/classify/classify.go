// Package classify assigns coarse categories and tags to servers from a
// fixed keyword dictionary over their names and descriptions.
package classify

import (
	"sort"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

var categoryKeywords = map[string][]string{
	"database":      {"database", "db", "sql", "postgres", "mysql", "mongodb", "sqlite"},
	"web":           {"web", "http", "api", "fetch", "browser", "scraping"},
	"filesystem":    {"file", "filesystem", "directory", "path"},
	"git":           {"git", "github", "version control", "repository"},
	"ai":            {"ai", "llm", "openai", "anthropic", "model", "chat"},
	"data":          {"data", "csv", "json", "xml", "excel"},
	"cloud":         {"aws", "azure", "gcp", "cloud", "s3", "lambda"},
	"development":   {"dev", "development", "build", "test", "ci/cd"},
	"communication": {"slack", "discord", "email", "notification"},
	"productivity":  {"calendar", "todo", "task", "note"},
	"time":          {"time", "date", "timezone", "schedule"},
	"memory":        {"memory", "cache", "storage", "knowledge"},
}

// Categorize assigns categories from keyword hits on the server's name and
// description, and tags from repository topics plus the primary language.
// Output slices are sorted for reproducible exports.
func Categorize(server *models.Server) {
	text := strings.ToLower(server.Name + " " + server.Description)

	categorySet := make(map[string]bool)
	for category, keywords := range categoryKeywords {
		for _, keyword := range keywords {
			if containsWord(text, keyword) {
				categorySet[category] = true
				break
			}
		}
	}

	tagSet := make(map[string]bool)
	if server.RepositoryStats != nil {
		for _, topic := range server.RepositoryStats.Topics {
			tagSet[strings.ToLower(topic)] = true
		}
		if server.RepositoryStats.Language != "" {
			tagSet[strings.ToLower(server.RepositoryStats.Language)] = true
		}
	}

	server.Categories = sortedKeys(categorySet)
	server.Tags = sortedKeys(tagSet)
}

// containsWord matches a keyword on word boundaries so "db" does not fire on
// "dbus"-free words like "feedback".
func containsWord(text, keyword string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], keyword)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(keyword)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
