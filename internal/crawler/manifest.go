package crawler

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// packageJSON mirrors the subset of package.json the catalog cares about.
// The author field takes both string and object forms in the wild.
type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Author          json.RawMessage   `json:"author"`
	License         string            `json:"license"`
	Keywords        []string          `json:"keywords"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

type pyprojectTOML struct {
	Project struct {
		Name        string   `toml:"name"`
		Version     string   `toml:"version"`
		Description string   `toml:"description"`
		License     any      `toml:"license"`
		Keywords    []string `toml:"keywords"`
		Authors     []struct {
			Name string `toml:"name"`
		} `toml:"authors"`
		Dependencies []string          `toml:"dependencies"`
		Scripts      map[string]string `toml:"scripts"`
	} `toml:"project"`
}

func parsePackageJSON(content string) *models.PackageInfo {
	var pkg packageJSON
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil
	}

	return &models.PackageInfo{
		Name:            pkg.Name,
		Version:         pkg.Version,
		Description:     pkg.Description,
		Author:          parseAuthor(pkg.Author),
		License:         pkg.License,
		Keywords:        pkg.Keywords,
		Dependencies:    pkg.Dependencies,
		DevDependencies: pkg.DevDependencies,
		Scripts:         pkg.Scripts,
	}
}

func parsePyprojectTOML(content string) *models.PackageInfo {
	var pyproject pyprojectTOML
	if err := toml.Unmarshal([]byte(content), &pyproject); err != nil {
		return nil
	}
	project := pyproject.Project

	info := &models.PackageInfo{
		Name:         project.Name,
		Version:      project.Version,
		Description:  project.Description,
		Keywords:     project.Keywords,
		Dependencies: parseRequirements(project.Dependencies),
		Scripts:      project.Scripts,
	}
	if len(project.Authors) > 0 {
		info.Author = project.Authors[0].Name
	}

	switch lic := project.License.(type) {
	case string:
		info.License = lic
	case map[string]any:
		if text, ok := lic["text"].(string); ok {
			info.License = text
		}
	}
	return info
}

// parseAuthor handles both "Jane <jane@example.com>" strings and
// {"name": ...} objects.
func parseAuthor(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Name
	}
	return ""
}

var requirementSplitRe = regexp.MustCompile(`[><=~!]+`)

// parseRequirements turns PEP 508 requirement strings into a name→constraint
// map; unconstrained entries get "*".
func parseRequirements(requirements []string) map[string]string {
	if len(requirements) == 0 {
		return nil
	}
	deps := make(map[string]string, len(requirements))
	for _, req := range requirements {
		req = strings.TrimSpace(req)
		if req == "" {
			continue
		}
		if loc := requirementSplitRe.FindStringIndex(req); loc != nil {
			deps[strings.TrimSpace(req[:loc[0]])] = strings.TrimSpace(req[loc[0]:])
		} else {
			deps[req] = "*"
		}
	}
	return deps
}
