package rules

import (
	"regexp"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// C# servers use [Tool] / [McpTool] / [McpServerTool] method attributes,
// optionally with Name/Description named arguments. [Description] attributes
// directly preceding the method provide descriptions in the official SDK
// style.

var (
	csToolRe     = regexp.MustCompile(`\[(?:McpServerTool|McpTool|Tool)(?:\(([^)]*)\))?\]\s*(?:\[Description\("([^"]*)"\)\]\s*)?(?:public\s+)?(?:static\s+)?(?:async\s+)?(?:Task<?[\w\[\], ]*>?\s+|[\w<>\[\]]+\s+)(\w+)\s*\(`)
	csAttrNameRe = regexp.MustCompile(`Name\s*=\s*"([^"]+)"`)
	csAttrDescRe = regexp.MustCompile(`Description\s*=\s*"([^"]*)"`)
)

var csharpRules = []Rule{
	{Name: "csharp/tool-attribute", Apply: csToolAttributeRule},
}

func csToolAttributeRule(src string) Partial {
	var p Partial
	for _, m := range csToolRe.FindAllStringSubmatch(src, -1) {
		attrs, inlineDesc, method := m[1], m[2], m[3]
		tool := models.Tool{Name: method, Description: inlineDesc, NameResolved: true}
		if attrs != "" {
			if nm := csAttrNameRe.FindStringSubmatch(attrs); nm != nil {
				tool.Name = nm[1]
			}
			if dm := csAttrDescRe.FindStringSubmatch(attrs); dm != nil {
				tool.Description = dm[1]
			}
		}
		p.Tools = append(p.Tools, tool)
	}
	return p
}
