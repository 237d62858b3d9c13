// Package extract orchestrates heuristic capability extraction: applying the
// per-language rule sets to source units, accumulating results, scoring
// confidence, and mining documentation when structured extraction comes up
// empty.
package extract

import (
	"fmt"

	"github.com/cgordon-dev/github-mcp-scraper/internal/extract/rules"
	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
	"github.com/cgordon-dev/github-mcp-scraper/internal/source"
)

// Result accumulates one server's extraction across all of its source
// units. It is owned exclusively by the server-processing operation that
// created it; Confidence is defined only after every unit has been seen.
type Result struct {
	Tools     []models.Tool
	Prompts   []models.Prompt
	Resources []models.Resource

	Log        []string
	Confidence float64

	// contributed tracks distinct file paths that produced at least one
	// declaration, feeding the confidence scorer.
	contributed map[string]bool
}

// NewResult returns an empty accumulator.
func NewResult() *Result {
	return &Result{contributed: make(map[string]bool)}
}

// Empty reports whether no declarations of any kind have been accumulated.
func (r *Result) Empty() bool {
	return len(r.Tools) == 0 && len(r.Prompts) == 0 && len(r.Resources) == 0
}

// ContributingFiles returns the number of distinct files that produced at
// least one declaration.
func (r *Result) ContributingFiles() int {
	return len(r.contributed)
}

// Extractor applies the pattern library to source units.
type Extractor struct{}

// NewExtractor creates an Extractor. It carries no state between calls;
// running the same unit against two fresh accumulators yields identical
// results.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractUnit applies the language's rule set to one source unit and merges
// the findings into the accumulator. It never fails: a unit whose patterns
// all miss contributes zero declarations and exactly one log line, and an
// unregistered language tag logs the gap instead of aborting.
func (e *Extractor) ExtractUnit(unit source.Unit, result *Result) {
	if result.contributed == nil {
		result.contributed = make(map[string]bool)
	}

	if !rules.Supported(unit.Language) {
		result.Log = append(result.Log, fmt.Sprintf("no rule set for language %q (file %s)", unit.Language, unit.Path))
		return
	}

	partial := rules.Apply(unit.Language, unit.Content)
	if partial.Empty() {
		result.Log = append(result.Log, fmt.Sprintf("no matching declarations in %s", unit.Path))
		return
	}

	for i := range partial.Tools {
		partial.Tools[i].Origin = unit.Path
	}
	result.Tools = append(result.Tools, partial.Tools...)
	result.Prompts = append(result.Prompts, partial.Prompts...)
	result.Resources = append(result.Resources, partial.Resources...)
	result.contributed[unit.Path] = true

	result.Log = append(result.Log, fmt.Sprintf("extracted from %s: %d tools, %d prompts, %d resources",
		unit.Path, len(partial.Tools), len(partial.Prompts), len(partial.Resources)))
}
