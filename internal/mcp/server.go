// Package mcp exposes a scraped server catalog over the Model Context
// Protocol, so the scraper's own output is queryable from MCP clients.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/cgordon-dev/github-mcp-scraper/internal/catalog"
	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// CatalogServer serves catalog search tools over stdio.
type CatalogServer struct {
	catalog *catalog.Catalog
	mcp     *server.MCPServer
}

// NewCatalogServer builds the catalog from scrape results and registers the
// search tools.
func NewCatalogServer(ctx context.Context, results *models.ScrapeResults, version string) (*CatalogServer, error) {
	cat, err := catalog.New(ctx, results)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	mcpServer := server.NewMCPServer(
		"mcp-scraper",
		version,
		server.WithToolCapabilities(true),
	)

	AddCatalogSearchTool(mcpServer, cat)
	AddServerInfoTool(mcpServer, cat)

	return &CatalogServer{
		catalog: cat,
		mcp:     mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until a shutdown signal or
// a server error.
func (s *CatalogServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving catalog of %d servers on stdio...", s.catalog.Len())
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the catalog index.
func (s *CatalogServer) Close() error {
	if s.catalog != nil {
		return s.catalog.Close()
	}
	return nil
}
