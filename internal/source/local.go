package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/extract/rules"
)

// LocalLister walks a directory tree on the local filesystem. Reference
// servers checked out from the registry repository go through this path.
type LocalLister struct {
	root     string
	maxDepth int
	filter   *Filter
}

// NewLocalLister creates a lister rooted at dir. maxDepth <= 0 uses
// DefaultMaxDepth.
func NewLocalLister(dir string, maxDepth int, filter *Filter) *LocalLister {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &LocalLister{root: dir, maxDepth: maxDepth, filter: filter}
}

// ListUnits walks the tree in lexical order, pruning excluded directories and
// stopping below the depth bound. Unreadable files are recorded as warnings
// and skipped.
func (l *LocalLister) ListUnits(ctx context.Context) ([]Unit, []string, error) {
	if _, err := os.Stat(l.root); err != nil {
		// Missing root is "subtree empty", not fatal.
		return nil, []string{fmt.Sprintf("source root not found: %s", l.root)}, nil
	}

	var units []Unit
	var warnings []string

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", path, walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if l.filter.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			if strings.Count(rel, "/")+1 > l.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !l.filter.Candidate(d.Name()) {
			return nil
		}

		lang, ok := rules.LanguageForExtension(filepath.Ext(d.Name()))
		if !ok {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("unreadable file %s: %v", rel, err))
			return nil
		}

		units = append(units, Unit{
			Path:     rel,
			Language: lang,
			Content:  string(content),
		})
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}
	return units, warnings, nil
}
