package rules

import (
	"regexp"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Python servers declare tools through decorator idioms (FastMCP's
// @mcp.tool(), the low-level @server.tool, bare @tool) or imperative
// server.add_tool("name") registration calls.

var (
	pyFastMCPRe    = regexp.MustCompile(`(?s)@mcp\.tool\(\)\s*(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)[^:]*:\s*(?:\n\s*"""(.*?)""")?`)
	pyServerToolRe = regexp.MustCompile(`(?s)@server\.tool\s*(?:\([^)]*\))?\s*(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)[^:]*:\s*(?:\n\s*"""(.*?)""")?`)
	pyBareToolRe   = regexp.MustCompile(`(?s)@tool\s*(?:\([^)]*\))?\s*(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)[^:]*:\s*(?:\n\s*"""(.*?)""")?`)
	pyAddToolRe    = regexp.MustCompile(`server\.add_tool\s*\(\s*["']([^"']+)["']`)

	pyPromptRe = regexp.MustCompile(`(?s)@(?:mcp|server)\.prompt\(\)\s*(?:async\s+)?def\s+(\w+)\s*\(([^)]*)\)[^:]*:\s*(?:\n\s*"""(.*?)""")?`)

	pyResourceRe = regexp.MustCompile(`(?s)@(?:mcp|server)\.resource\(\s*["']([^"']+)["']\s*\)\s*(?:async\s+)?def\s+(\w+)\s*\([^)]*\)[^:]*:\s*(?:\n\s*"""(.*?)""")?`)
)

var pythonRules = []Rule{
	{Name: "python/fastmcp-decorator", Apply: pyDecoratorRule(pyFastMCPRe)},
	{Name: "python/server-tool-decorator", Apply: pyDecoratorRule(pyServerToolRe)},
	{Name: "python/tool-decorator", Apply: pyDecoratorRule(pyBareToolRe)},
	{Name: "python/add-tool-call", Apply: pyAddToolRule},
	{Name: "python/prompt-decorator", Apply: pyPromptRule},
	{Name: "python/resource-decorator", Apply: pyResourceRule},
}

func pyDecoratorRule(re *regexp.Regexp) func(string) Partial {
	return func(src string) Partial {
		var p Partial
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			p.Tools = append(p.Tools, models.Tool{
				Name:         m[1],
				Description:  pyDocstringSummary(m[3]),
				Parameters:   pyPositionalParams(m[2]),
				NameResolved: true,
			})
		}
		return p
	}
}

func pyAddToolRule(src string) Partial {
	var p Partial
	for _, m := range pyAddToolRe.FindAllStringSubmatch(src, -1) {
		p.Tools = append(p.Tools, models.Tool{Name: m[1], NameResolved: true})
	}
	return p
}

func pyPromptRule(src string) Partial {
	var p Partial
	for _, m := range pyPromptRe.FindAllStringSubmatch(src, -1) {
		p.Prompts = append(p.Prompts, models.Prompt{
			Name:         m[1],
			Description:  pyDocstringSummary(m[3]),
			Arguments:    pyPositionalParams(m[2]),
			NameResolved: true,
		})
	}
	return p
}

func pyResourceRule(src string) Partial {
	var p Partial
	for _, m := range pyResourceRe.FindAllStringSubmatch(src, -1) {
		p.Resources = append(p.Resources, models.Resource{
			Name:         m[2],
			URI:          m[1],
			Description:  pyDocstringSummary(m[3]),
			NameResolved: true,
		})
	}
	return p
}

// pyDocstringSummary trims a captured docstring to its text content.
func pyDocstringSummary(doc string) string {
	return strings.TrimSpace(doc)
}

// pyPositionalParams derives parameters from a def's argument list. Arguments
// with defaults become optional; self/cls and **kwargs forms are skipped.
// Types come from annotations when present, otherwise unknown.
func pyPositionalParams(argList string) []models.Parameter {
	var params []models.Parameter
	for _, raw := range strings.Split(argList, ",") {
		arg := strings.TrimSpace(raw)
		if arg == "" || arg == "self" || arg == "cls" || strings.HasPrefix(arg, "*") {
			continue
		}

		required := !strings.Contains(arg, "=")
		if !required {
			arg = strings.TrimSpace(strings.SplitN(arg, "=", 2)[0])
		}

		name := arg
		typ := "unknown"
		if idx := strings.Index(arg, ":"); idx >= 0 {
			name = strings.TrimSpace(arg[:idx])
			typ = pyTypeName(strings.TrimSpace(arg[idx+1:]))
		}
		if name == "" {
			continue
		}

		params = append(params, models.Parameter{
			Name:     name,
			Type:     typ,
			Required: required,
		})
	}
	return params
}

func pyTypeName(annotation string) string {
	switch {
	case annotation == "str":
		return "string"
	case annotation == "dict" || strings.HasPrefix(annotation, "dict["), strings.HasPrefix(annotation, "Dict"):
		return "object"
	default:
		return "unknown"
	}
}
