package rules

import (
	"fmt"
	"regexp"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Rust servers lean on attribute macros: #[mcp::tool] / #[mcp::prompt] on
// functions, or #[tool] inside an impl block (rmcp style). Derive-tagged
// structs with a name: String field mark hand-rolled tool types whose impl
// methods are the callable surface.

var (
	rustAttrFnRe       = regexp.MustCompile(`#\[mcp::(tool|prompt)\]\s*(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`)
	rustToolAttrRe     = regexp.MustCompile(`(?s)#\[tool(?:\(([^)]*)\))?\]\s*(?:pub\s+)?(?:async\s+)?fn\s+(\w+)`)
	rustAttrDescRe     = regexp.MustCompile(`description\s*=\s*"([^"]*)"`)
	rustDeriveStructRe = regexp.MustCompile(`(?s)#\[derive\([^)]*\)\]\s*(?:pub\s+)?struct\s+(\w+)\s*\{[^}]*name:\s*String[^}]*\}`)
)

var rustRules = []Rule{
	{Name: "rust/mcp-attribute-fn", Apply: rustAttrFnRule},
	{Name: "rust/tool-attribute-fn", Apply: rustToolAttrRule},
	{Name: "rust/derive-tool-struct", Apply: rustDeriveStructRule},
}

func rustAttrFnRule(src string) Partial {
	var p Partial
	for _, m := range rustAttrFnRe.FindAllStringSubmatch(src, -1) {
		switch m[1] {
		case "tool":
			p.Tools = append(p.Tools, models.Tool{Name: m[2], NameResolved: true})
		case "prompt":
			p.Prompts = append(p.Prompts, models.Prompt{Name: m[2], NameResolved: true})
		}
	}
	return p
}

func rustToolAttrRule(src string) Partial {
	var p Partial
	for _, m := range rustToolAttrRe.FindAllStringSubmatch(src, -1) {
		tool := models.Tool{Name: m[2], NameResolved: true}
		if m[1] != "" {
			if dm := rustAttrDescRe.FindStringSubmatch(m[1]); dm != nil {
				tool.Description = dm[1]
			}
		}
		p.Tools = append(p.Tools, tool)
	}
	return p
}

// rustDeriveStructRule surfaces the methods of impl blocks for derive-tagged
// tool structs. Method names stand in for tool names; this is the weakest
// Rust heuristic and exists to avoid total misses on hand-rolled servers.
func rustDeriveStructRule(src string) Partial {
	var p Partial
	for _, m := range rustDeriveStructRe.FindAllStringSubmatch(src, -1) {
		structName := m[1]
		implRe, err := compileQuoted(`(?s)impl[^{]*%s[^{]*\{.*?fn\s+(\w+)`, structName)
		if err != nil {
			continue
		}
		for _, im := range implRe.FindAllStringSubmatch(src, -1) {
			p.Tools = append(p.Tools, models.Tool{
				Name:         im[1],
				Description:  fmt.Sprintf("Tool from %s struct", structName),
				NameResolved: true,
			})
		}
	}
	return p
}
