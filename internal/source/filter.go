package source

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/cgordon-dev/github-mcp-scraper/internal/extract/rules"
)

// Directories pruned from traversal entirely, not merely skipped.
var skipDirs = map[string]bool{
	"node_modules":  true,
	".git":          true,
	"build":         true,
	"dist":          true,
	"__pycache__":   true,
	".pytest_cache": true,
	"coverage":      true,
	".nyc_output":   true,
	"target":        true,
	"bin":           true,
	"obj":           true,
	"vendor":        true,
	".vscode":       true,
	".idea":         true,
}

// Filename patterns that disqualify an otherwise-relevant file: test
// fixtures and toolchain configuration that never declares capabilities.
var defaultExcludePatterns = []string{
	"*test*",
	"*spec*",
	"*build*",
	"*dist*",
	"*webpack*",
	"*babel*",
	"*eslint*",
	"*prettier*",
}

// Filter decides which files are extraction candidates.
type Filter struct {
	exclude []glob.Glob
}

// NewFilter compiles the default exclusion patterns plus any extras.
func NewFilter(extraPatterns ...string) (*Filter, error) {
	f := &Filter{}
	for _, pattern := range append(append([]string{}, defaultExcludePatterns...), extraPatterns...) {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, err
		}
		f.exclude = append(f.exclude, g)
	}
	return f, nil
}

// Candidate reports whether a file name is worth extracting from: a
// supported extension and no exclusion match.
func (f *Filter) Candidate(name string) bool {
	lower := strings.ToLower(name)
	if _, ok := rules.LanguageForExtension(filepath.Ext(lower)); !ok {
		return false
	}
	for _, g := range f.exclude {
		if g.Match(lower) {
			return false
		}
	}
	return true
}

// SkipDir reports whether an entire directory is pruned from traversal.
func (f *Filter) SkipDir(name string) bool {
	return skipDirs[strings.ToLower(name)]
}
