package rules

import (
	"regexp"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Java servers annotate methods with @Tool or @McpTool. The annotation may
// carry name/description attributes; absent those, the method name is the
// tool name.

var (
	javaToolRe     = regexp.MustCompile(`@Tool(?:\(([^)]*)\))?\s*(?:public\s+)?(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\(`)
	javaMcpToolRe  = regexp.MustCompile(`@McpTool(?:\(([^)]*)\))?\s*(?:public\s+)?(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\(`)
	javaAttrNameRe = regexp.MustCompile(`name\s*=\s*"([^"]+)"`)
	javaAttrDescRe = regexp.MustCompile(`description\s*=\s*"([^"]*)"`)
)

var javaRules = []Rule{
	{Name: "java/tool-annotation", Apply: javaAnnotationRule(javaToolRe)},
	{Name: "java/mcptool-annotation", Apply: javaAnnotationRule(javaMcpToolRe)},
}

func javaAnnotationRule(re *regexp.Regexp) func(string) Partial {
	return func(src string) Partial {
		var p Partial
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			attrs, method := m[1], m[2]
			tool := models.Tool{Name: method, NameResolved: true}
			if attrs != "" {
				if nm := javaAttrNameRe.FindStringSubmatch(attrs); nm != nil {
					tool.Name = nm[1]
				}
				if dm := javaAttrDescRe.FindStringSubmatch(attrs); dm != nil {
					tool.Description = dm[1]
				}
			}
			p.Tools = append(p.Tools, tool)
		}
		return p
	}
}
