package rules

import (
	"regexp"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Go servers typically name their tools in const declarations that are later
// passed to an AddTool registration call, or pass string literals to AddTool
// directly. Struct literals with a Name field show up in hand-rolled servers.

var (
	goToolConstRe  = regexp.MustCompile(`const\s+(\w+Tool)\s*=\s*["` + "`" + `']([^"` + "`" + `']+)["` + "`" + `']`)
	goDirectAddRe  = regexp.MustCompile(`\w\.AddTool\s*\(\s*["` + "`" + `']([^"` + "`" + `']+)["` + "`" + `']`)
	goToolStructRe = regexp.MustCompile(`(?s)type\s+\w*Tool\w*\s+struct\s*\{[^}]*Name\s*:\s*["']([^"']+)["'][^}]*\}`)
	goNewToolRe    = regexp.MustCompile(`(?s)mcp\.NewTool\(\s*["` + "`" + `']([^"` + "`" + `']+)["` + "`" + `'](?:\s*,\s*mcp\.WithDescription\(\s*["` + "`" + `']([^"` + "`" + `']*)["` + "`" + `']\s*\))?`)
)

var goRules = []Rule{
	{Name: "go/const-plus-addtool", Apply: goConstRegistrationRule},
	{Name: "go/direct-addtool", Apply: goDirectAddRule},
	{Name: "go/tool-struct", Apply: goToolStructRule},
	{Name: "go/mcp-newtool", Apply: goNewToolRule},
}

// goConstRegistrationRule keeps a Tool constant only when a corresponding
// AddTool registration exists somewhere in the same file; an unused constant
// is more often a leftover than a declaration.
func goConstRegistrationRule(src string) Partial {
	var p Partial
	for _, m := range goToolConstRe.FindAllStringSubmatch(src, -1) {
		constName, toolName := m[1], m[2]
		addRe, err := compileQuoted(`\w\.AddTool\s*\(\s*\w*\.?%s`, constName)
		if err != nil || !addRe.MatchString(src) {
			continue
		}
		p.Tools = append(p.Tools, models.Tool{Name: toolName, NameResolved: true})
	}
	return p
}

func goDirectAddRule(src string) Partial {
	var p Partial
	for _, m := range goDirectAddRe.FindAllStringSubmatch(src, -1) {
		p.Tools = append(p.Tools, models.Tool{Name: m[1], NameResolved: true})
	}
	return p
}

func goToolStructRule(src string) Partial {
	var p Partial
	for _, m := range goToolStructRe.FindAllStringSubmatch(src, -1) {
		p.Tools = append(p.Tools, models.Tool{Name: m[1], NameResolved: true})
	}
	return p
}

// goNewToolRule covers mcp-go's builder style: mcp.NewTool("name",
// mcp.WithDescription("...")).
func goNewToolRule(src string) Partial {
	var p Partial
	for _, m := range goNewToolRe.FindAllStringSubmatch(src, -1) {
		p.Tools = append(p.Tools, models.Tool{
			Name:         m[1],
			Description:  m[2],
			NameResolved: true,
		})
	}
	return p
}
