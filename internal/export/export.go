// Package export writes scrape results to JSON and CSV files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// WriteJSON writes the full results document, indented, creating parent
// directories as needed.
func WriteJSON(results *models.ScrapeResults, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var csvHeader = []string{
	"name", "github_url", "description", "server_type", "is_accessible",
	"is_archived", "stars", "forks", "language", "topics", "categories",
	"tools_count", "prompts_count", "resources_count", "tool_names",
	"package_name", "package_version", "author", "license",
	"created_at", "updated_at", "error_message",
}

// WriteCSV writes a flat per-server summary table. Nested capability detail
// stays in the JSON export; the CSV carries counts and joined name lists.
func WriteCSV(results *models.ScrapeResults, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range results.Servers {
		if err := w.Write(serverRow(&results.Servers[i])); err != nil {
			return fmt.Errorf("writing row for %s: %w", results.Servers[i].Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func serverRow(s *models.Server) []string {
	var stars, forks int
	var language, topics, createdAt, updatedAt string
	if s.RepositoryStats != nil {
		stars = s.RepositoryStats.Stars
		forks = s.RepositoryStats.Forks
		language = s.RepositoryStats.Language
		topics = strings.Join(s.RepositoryStats.Topics, ", ")
		createdAt = formatTime(s.RepositoryStats.CreatedAt)
		updatedAt = formatTime(s.RepositoryStats.UpdatedAt)
	}

	var pkgName, pkgVersion, author, license string
	if s.PackageInfo != nil {
		pkgName = s.PackageInfo.Name
		pkgVersion = s.PackageInfo.Version
		author = s.PackageInfo.Author
		license = s.PackageInfo.License
	}

	toolNames := make([]string, len(s.Tools))
	for i, t := range s.Tools {
		toolNames[i] = t.Name
	}

	return []string{
		s.Name,
		s.GitHubURL,
		s.Description,
		string(s.ServerType),
		strconv.FormatBool(s.IsAccessible),
		strconv.FormatBool(s.IsArchived),
		strconv.Itoa(stars),
		strconv.Itoa(forks),
		language,
		topics,
		strings.Join(s.Categories, ", "),
		strconv.Itoa(len(s.Tools)),
		strconv.Itoa(len(s.Prompts)),
		strconv.Itoa(len(s.Resources)),
		strings.Join(toolNames, ", "),
		pkgName,
		pkgVersion,
		author,
		license,
		createdAt,
		updatedAt,
		s.ErrorMessage,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ReadJSON loads a previously exported results document. The serve command
// uses it to back the catalog without re-scraping.
func ReadJSON(path string) (*models.ScrapeResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var results models.ScrapeResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &results, nil
}
