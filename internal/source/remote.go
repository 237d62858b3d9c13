package source

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/cgordon-dev/github-mcp-scraper/internal/extract/rules"
	"github.com/cgordon-dev/github-mcp-scraper/internal/github"
)

// RemoteLister walks a GitHub repository through the contents API. Retry and
// backoff live in the github client; when the client ultimately gives up on
// a directory, that subtree is abandoned with a warning rather than failing
// the whole listing.
type RemoteLister struct {
	client   *github.Client
	owner    string
	repo     string
	subpath  string
	maxDepth int
	filter   *Filter
}

// NewRemoteLister creates a lister for owner/repo, optionally restricted to
// a subpath within the repository. maxDepth <= 0 uses DefaultMaxDepth.
func NewRemoteLister(client *github.Client, owner, repo, subpath string, maxDepth int, filter *Filter) *RemoteLister {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &RemoteLister{
		client:   client,
		owner:    owner,
		repo:     repo,
		subpath:  subpath,
		maxDepth: maxDepth,
		filter:   filter,
	}
}

// ListUnits traverses the repository breadth-first per directory level,
// depth-bounded, collecting candidate files in listing order.
func (l *RemoteLister) ListUnits(ctx context.Context) ([]Unit, []string, error) {
	var units []Unit
	var warnings []string

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if depth > l.maxDepth {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		entries, err := l.client.ListDirectory(ctx, l.owner, l.repo, dir)
		if err != nil {
			if errors.Is(err, github.ErrNotFound) {
				// Treated identically to an empty subtree.
				return nil
			}
			if errors.Is(err, github.ErrRateLimited) {
				warnings = append(warnings, fmt.Sprintf("abandoned %s after rate-limit retries", displayPath(dir)))
				return nil
			}
			warnings = append(warnings, fmt.Sprintf("abandoned %s: %v", displayPath(dir), err))
			return nil
		}

		for _, entry := range entries {
			switch entry.Type {
			case "dir":
				if l.filter.SkipDir(entry.Name) {
					continue
				}
				if err := walk(entry.Path, depth+1); err != nil {
					return err
				}
			case "file":
				if !l.filter.Candidate(entry.Name) {
					continue
				}
				lang, ok := rules.LanguageForExtension(path.Ext(entry.Name))
				if !ok {
					continue
				}
				content, err := l.client.FileContent(ctx, l.owner, l.repo, entry.Path)
				if err != nil {
					warnings = append(warnings, fmt.Sprintf("unreadable file %s: %v", entry.Path, err))
					continue
				}
				units = append(units, Unit{
					Path:     entry.Path,
					Language: lang,
					Content:  content,
				})
			}
		}
		return nil
	}

	if err := walk(l.subpath, 0); err != nil {
		return nil, warnings, err
	}
	return units, warnings, nil
}

func displayPath(dir string) string {
	if dir == "" {
		return "/"
	}
	return dir
}
