// Package rules holds the per-language heuristic rule sets used to recover
// tool, prompt, and resource declarations from raw source text. Rules are
// purely lexical: they never build an AST and they never fail. A rule that
// does not match contributes nothing.
package rules

import (
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Language tags for the supported rule sets.
const (
	LangPython     = "python"
	LangTypeScript = "typescript"
	LangGo         = "go"
	LangRust       = "rust"
	LangJava       = "java"
	LangCSharp     = "csharp"
)

// Partial is the contribution of one rule (or one whole rule set) for a
// single source unit. Partials are concatenated; deduplication is deferred
// to the aggregation layer.
type Partial struct {
	Tools     []models.Tool
	Prompts   []models.Prompt
	Resources []models.Resource
}

// Empty reports whether the partial contains no declarations.
func (p Partial) Empty() bool {
	return len(p.Tools) == 0 && len(p.Prompts) == 0 && len(p.Resources) == 0
}

func (p *Partial) merge(other Partial) {
	p.Tools = append(p.Tools, other.Tools...)
	p.Prompts = append(p.Prompts, other.Prompts...)
	p.Resources = append(p.Resources, other.Resources...)
}

// Rule is one independent extraction heuristic. Apply must tolerate
// arbitrary malformed input and return an empty partial rather than fail.
type Rule struct {
	Name  string
	Apply func(src string) Partial
}

var ruleSets = map[string][]Rule{
	LangPython:     pythonRules,
	LangTypeScript: typescriptRules,
	LangGo:         goRules,
	LangRust:       rustRules,
	LangJava:       javaRules,
	LangCSharp:     csharpRules,
}

// ForLanguage returns the ordered rule set registered for a language tag,
// or nil when the tag is unknown.
func ForLanguage(lang string) []Rule {
	return ruleSets[lang]
}

// Supported reports whether a rule set is registered for the language tag.
func Supported(lang string) bool {
	_, ok := ruleSets[lang]
	return ok
}

var extensionLanguages = map[string]string{
	".py":   LangPython,
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".js":   LangTypeScript,
	".jsx":  LangTypeScript,
	".mjs":  LangTypeScript,
	".cjs":  LangTypeScript,
	".go":   LangGo,
	".rs":   LangRust,
	".java": LangJava,
	".cs":   LangCSharp,
	".csx":  LangCSharp,
}

// LanguageForExtension maps a file extension (with leading dot) to its
// language tag. JavaScript shares the TypeScript rule set.
func LanguageForExtension(ext string) (string, bool) {
	lang, ok := extensionLanguages[strings.ToLower(ext)]
	return lang, ok
}

// Apply runs every rule registered for the language over the source text and
// concatenates the results. Declarations with blank names are discarded here
// so no downstream consumer ever sees an empty name.
func Apply(lang, src string) Partial {
	var out Partial
	for _, rule := range ForLanguage(lang) {
		out.merge(clean(rule.Apply(src)))
	}
	return out
}

// clean drops declarations whose names are empty or whitespace-only.
func clean(p Partial) Partial {
	var out Partial
	for _, t := range p.Tools {
		if strings.TrimSpace(t.Name) != "" {
			out.Tools = append(out.Tools, t)
		}
	}
	for _, pr := range p.Prompts {
		if strings.TrimSpace(pr.Name) != "" {
			out.Prompts = append(out.Prompts, pr)
		}
	}
	for _, r := range p.Resources {
		if strings.TrimSpace(r.Name) != "" {
			out.Resources = append(out.Resources, r)
		}
	}
	return out
}
