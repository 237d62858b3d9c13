// Package source produces the ordered sequence of source units for one
// server, whether backed by a local directory tree or a remote GitHub
// repository.
package source

import "context"

// Unit is one file's content plus its inferred language tag and
// repository-relative path. Units are ephemeral: created per file read and
// discarded after extraction.
type Unit struct {
	Path     string
	Language string
	Content  string
}

// Lister walks a server's source location. Each call re-walks from scratch.
// Warnings carry non-fatal traversal problems (abandoned subtrees, unreadable
// files) for the caller's extraction log.
type Lister interface {
	ListUnits(ctx context.Context) (units []Unit, warnings []string, err error)
}

// DefaultMaxDepth bounds traversal below the server root so pathological
// repository layouts stay cheap.
const DefaultMaxDepth = 3
