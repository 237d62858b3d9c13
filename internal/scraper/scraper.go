// Package scraper orchestrates a full registry scrape: parse the registry,
// enhance each server with GitHub metadata, extract capabilities from source,
// fall back to README mining, score confidence, and categorize.
package scraper

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cgordon-dev/github-mcp-scraper/internal/classify"
	"github.com/cgordon-dev/github-mcp-scraper/internal/crawler"
	"github.com/cgordon-dev/github-mcp-scraper/internal/extract"
	"github.com/cgordon-dev/github-mcp-scraper/internal/github"
	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
	"github.com/cgordon-dev/github-mcp-scraper/internal/registry"
	"github.com/cgordon-dev/github-mcp-scraper/internal/source"
)

// ProgressReporter receives scrape lifecycle events. Implementations must not
// block; the CLI backs it with a progress bar, tests use a no-op.
type ProgressReporter interface {
	OnRegistryParsed(totalServers int)
	OnServerProcessed(name string)
	OnComplete(results *models.ScrapeResults)
}

// NopProgressReporter discards all events.
type NopProgressReporter struct{}

func (NopProgressReporter) OnRegistryParsed(int)             {}
func (NopProgressReporter) OnServerProcessed(string)         {}
func (NopProgressReporter) OnComplete(*models.ScrapeResults) {}

// Options controls what a scrape run does.
type Options struct {
	// RepoPath is the local checkout of the registry repository.
	RepoPath string

	// EnhanceMetadata fetches repository stats, package manifests, and
	// README content from GitHub.
	EnhanceMetadata bool

	// ExtractCapabilities runs lexical extraction over server source.
	ExtractCapabilities bool

	// MaxServers truncates the registry list when positive. Used for
	// sampling runs.
	MaxServers int

	// MaxDepth bounds directory recursion during source listing.
	MaxDepth int

	Progress ProgressReporter
}

// Scraper wires the registry parser, crawler, and extractor together.
type Scraper struct {
	parser    *registry.Parser
	crawler   *crawler.Crawler
	client    *github.Client
	extractor *extract.Extractor
	filter    *source.Filter
	stats     *extract.Stats
	opts      Options
}

// New builds a Scraper. The GitHub client may be nil when both metadata
// enhancement and remote extraction are disabled.
func New(client *github.Client, opts Options) (*Scraper, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = source.DefaultMaxDepth
	}
	if opts.Progress == nil {
		opts.Progress = NopProgressReporter{}
	}
	filter, err := source.NewFilter()
	if err != nil {
		return nil, fmt.Errorf("compiling source filter: %w", err)
	}
	s := &Scraper{
		parser:    registry.NewParser(opts.RepoPath),
		crawler:   crawler.New(client),
		client:    client,
		extractor: extract.NewExtractor(),
		filter:    filter,
		stats:     &extract.Stats{},
		opts:      opts,
	}
	if client != nil {
		client.OnRateLimit(s.stats.AddRateLimitHit)
	}
	return s, nil
}

// Stats exposes the run's processing counters.
func (s *Scraper) Stats() *extract.Stats {
	return s.stats
}

// ScrapeAll processes every registry server. Failures are isolated per
// server: a panic-free error path records the message on the server record
// and counts it as a failed scrape without aborting the run.
func (s *Scraper) ScrapeAll(ctx context.Context) (*models.ScrapeResults, error) {
	servers, err := s.parser.Parse()
	if err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	if s.opts.MaxServers > 0 && len(servers) > s.opts.MaxServers {
		servers = servers[:s.opts.MaxServers]
	}
	s.opts.Progress.OnRegistryParsed(len(servers))

	results := &models.ScrapeResults{
		RunID:        uuid.NewString(),
		TotalServers: len(servers),
		ScrapedAt:    time.Now().UTC(),
	}

	for i := range servers {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		server := &servers[i]
		s.processServer(ctx, server)

		if server.IsAccessible && server.ErrorMessage == "" {
			results.SuccessfulScrapes++
		} else {
			results.FailedScrapes++
			if server.ErrorMessage != "" {
				results.Errors = append(results.Errors, fmt.Sprintf("%s: %s", server.Name, server.ErrorMessage))
			}
		}
		switch server.ServerType {
		case models.ServerTypeReference:
			results.ReferenceServers++
		case models.ServerTypeThirdParty:
			results.ThirdPartyServers++
		}
		s.opts.Progress.OnServerProcessed(server.Name)
	}

	results.Servers = servers
	s.opts.Progress.OnComplete(results)
	return results, nil
}

func (s *Scraper) processServer(ctx context.Context, server *models.Server) {
	server.ScrapedAt = time.Now().UTC()

	if s.opts.EnhanceMetadata && s.client != nil {
		s.crawler.Enhance(ctx, server)
	} else {
		server.IsAccessible = true
	}

	if s.opts.ExtractCapabilities {
		s.extractCapabilities(ctx, server)
	}

	classify.Categorize(server)
	models.DedupeCapabilities(server)
}

func (s *Scraper) extractCapabilities(ctx context.Context, server *models.Server) {
	lister, err := s.listerFor(server)
	if err != nil {
		server.ExtractionLog = append(server.ExtractionLog, fmt.Sprintf("Extraction skipped: %v", err))
		return
	}

	units, warnings, err := lister.ListUnits(ctx)
	if err != nil {
		server.ErrorMessage = err.Error()
		server.ExtractionLog = append(server.ExtractionLog, fmt.Sprintf("Source listing failed: %v", err))
		return
	}

	result := extract.NewResult()
	result.Log = append(result.Log, warnings...)
	for range warnings {
		s.stats.AddFailedFile()
	}

	for _, unit := range units {
		s.extractor.ExtractUnit(unit, result)
		s.stats.AddFileProcessed()
	}

	hadError := len(warnings) > 0
	confidence := extract.Confidence(result, result.ContributingFiles(), hadError)
	result.Log = append(result.Log, fmt.Sprintf("Extraction confidence score: %.2f/1.0", confidence))

	server.Tools = append(server.Tools, result.Tools...)
	server.Prompts = append(server.Prompts, result.Prompts...)
	server.Resources = append(server.Resources, result.Resources...)
	server.ExtractionLog = append(server.ExtractionLog, result.Log...)
	server.ExtractionConfidence = confidence

	// Lexical extraction found nothing; mine the README for documented tools.
	if result.Empty() && server.ReadmeContent != "" {
		mined := extract.MineReadme(server.ReadmeContent)
		if len(mined) > 0 {
			server.Tools = append(server.Tools, mined...)
			server.ExtractionLog = append(server.ExtractionLog,
				fmt.Sprintf("Extracted %d tools from README fallback", len(mined)))
		}
	}
}

// listerFor picks local listing for reference servers hosted inside the
// registry checkout, remote listing for everything else.
func (s *Scraper) listerFor(server *models.Server) (source.Lister, error) {
	if server.ServerType == models.ServerTypeReference && s.opts.RepoPath != "" {
		dir := s.parser.ReferenceServerDir(server.Name)
		return source.NewLocalLister(filepath.Clean(dir), s.opts.MaxDepth, s.filter), nil
	}

	if s.client == nil {
		return nil, fmt.Errorf("no GitHub client for remote extraction of %s", server.Name)
	}
	owner, repo, subpath, err := github.ParseRepoURL(server.GitHubURL)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %s: %w", server.GitHubURL, err)
	}
	return source.NewRemoteLister(s.client, owner, repo, subpath, s.opts.MaxDepth, s.filter), nil
}
