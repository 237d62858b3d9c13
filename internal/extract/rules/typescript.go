package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// TypeScript (and plain JavaScript) servers built on the official SDK spread
// their declarations across several idioms: a const tools: Tool[] array
// returned from the ListTools handler, tool objects inlined in the handler's
// return value, a single Tool constant referenced by name, standalone TOOLS
// arrays, and exported tool-object constants. All are tried; overlapping
// matches are accepted and deduplicated downstream.

var (
	tsConstToolsHandlerRe = regexp.MustCompile(`(?s)server\.setRequestHandler\(ListToolsRequestSchema.*?const\s+tools:\s*Tool\[\]\s*=\s*\[(.*?)\].*?return\s*\{\s*tools\s*\}`)
	tsToolObjectRe        = regexp.MustCompile(`(?s)\{\s*name:\s*([^,\s]+)[^{}]*description:\s*["']([^"']*)["']`)

	tsInlineHandlerRe   = regexp.MustCompile(`(?s)server\.setRequestHandler\(ListToolsRequestSchema.*?return\s*\{.*?tools:\s*\[`)
	tsInlineToolRe      = regexp.MustCompile(`(?s)\{\s*name:\s*["']([^"']+)["'].*?description:\s*([^}]+?)\s*(?:,\s*inputSchema|\})`)
	tsConcatOperatorRe  = regexp.MustCompile(`\s*\+\s*`)
	tsQuoteRe           = regexp.MustCompile(`["']`)
	tsWhitespaceRunRe   = regexp.MustCompile(`\s+`)

	tsConstRefRe = regexp.MustCompile(`(?s)async\s*\(\s*\)\s*=>\s*\(\s*\{\s*tools:\s*\[([A-Z_]+)\]`)

	tsToolsArrayRe = regexp.MustCompile(`(?s)const\s+TOOLS\s*:\s*Tool\[\]\s*=\s*\[(.*?)\]`)
	tsNamedToolRe  = regexp.MustCompile(`(?s)\{\s*name:\s*["']([^"']+)["'].*?description:\s*["']([^"']*)["']`)

	tsExportConstRe = regexp.MustCompile(`(?s)export\s+const\s+(\w+)\s*=\s*\{\s*name:\s*["']([^"']+)["'].*?description:\s*["']([^"']*)["']`)

	tsPromptsHandlerRe = regexp.MustCompile(`(?s)server\.setRequestHandler\(ListPromptsRequestSchema.*?prompts:\s*\[(.*?)\]`)
	tsPromptObjectRe   = regexp.MustCompile(`(?s)\{\s*name:\s*([^,\s]+)[^{}]*?description:\s*["']([^"']*?)["']`)
	tsPromptArgRe      = regexp.MustCompile(`(?s)\{[^{}]*name:\s*["']([^"']+)["'][^{}]*description:\s*["']([^"']*)["'][^{}]*required:\s*(true|false)`)

	tsSyntheticResourcesRe = regexp.MustCompile(`const\s+ALL_RESOURCES.*?Array\.from\(\{\s*length:\s*(\d+)`)
	tsResourceTemplatesRe  = regexp.MustCompile(`(?s)resourceTemplates:\s*\[(.*?)\]`)
	tsURITemplateRe        = regexp.MustCompile(`uriTemplate:\s*["']([^"']+)["']`)
	tsResourceNameRe       = regexp.MustCompile(`name:\s*["']([^"']+)["']`)
	tsResourceDescRe       = regexp.MustCompile(`description:\s*["']([^"']*)["']`)

	tsPropertiesRe = regexp.MustCompile(`(?s)properties:\s*\{([^{}]+)\}`)
	tsPropertyRe   = regexp.MustCompile(`(?s)(\w+):\s*\{[^{}]*type:\s*["']([^"']+)["'][^{}]*\}`)
)

var typescriptRules = []Rule{
	{Name: "typescript/const-tools-handler", Apply: tsConstToolsHandlerRule},
	{Name: "typescript/inline-handler-tools", Apply: tsInlineHandlerRule},
	{Name: "typescript/tool-constant-ref", Apply: tsConstRefRule},
	{Name: "typescript/tools-array", Apply: tsToolsArrayRule},
	{Name: "typescript/exported-tool-const", Apply: tsExportConstRule},
	{Name: "typescript/prompts-handler", Apply: tsPromptsHandlerRule},
	{Name: "typescript/synthetic-resources", Apply: tsSyntheticResourcesRule},
	{Name: "typescript/resource-templates", Apply: tsResourceTemplatesRule},
}

// tsConstToolsHandlerRule covers the everything-server idiom: a const
// tools: Tool[] array inside the ListTools handler with enum-qualified names.
func tsConstToolsHandlerRule(src string) Partial {
	var p Partial
	m := tsConstToolsHandlerRe.FindStringSubmatch(src)
	if m == nil {
		return p
	}
	toolsArray := m[1]

	for _, tm := range tsToolObjectRe.FindAllStringSubmatch(toolsArray, -1) {
		nameExpr, description := tm[1], tm[2]
		name, resolved := ResolveName(nameExpr, src)
		if name == "" {
			continue
		}
		p.Tools = append(p.Tools, models.Tool{
			Name:         name,
			Description:  strings.TrimSpace(description),
			Parameters:   tsSchemaPresenceParams(toolsArray, nameExpr),
			NameResolved: resolved,
		})
	}
	return p
}

// tsInlineHandlerRule covers tools defined directly in the handler's return
// value (memory/filesystem servers). The tools array is recovered by bracket
// matching because the objects routinely nest.
func tsInlineHandlerRule(src string) Partial {
	var p Partial
	loc := tsInlineHandlerRe.FindStringIndex(src)
	if loc == nil {
		return p
	}

	section, ok := matchBracketSection(src, loc[1])
	if !ok {
		return p
	}

	for _, tm := range tsInlineToolRe.FindAllStringSubmatch(section, -1) {
		name := strings.TrimSpace(tm[1])
		description := tm[2]
		if description != "" {
			// Descriptions are often split across concatenated string
			// literals; collapse them into one normalized line.
			description = tsConcatOperatorRe.ReplaceAllString(description, " ")
			description = tsQuoteRe.ReplaceAllString(description, "")
			description = tsWhitespaceRunRe.ReplaceAllString(strings.TrimSpace(description), " ")
		}
		p.Tools = append(p.Tools, models.Tool{
			Name:         name,
			Description:  description,
			Parameters:   tsInputSchemaParams(section, name),
			NameResolved: true,
		})
	}
	return p
}

// tsConstRefRule covers `tools: [TOOL_CONSTANT]` in arrow-function handlers
// (sequentialthinking server), resolving the constant's definition.
func tsConstRefRule(src string) Partial {
	var p Partial
	m := tsConstRefRe.FindStringSubmatch(src)
	if m == nil {
		return p
	}

	defRe, err := compileQuoted(`(?s)const\s+%s:\s*Tool\s*=\s*\{\s*name:\s*["']([^"']+)["'].*?description:\s*`+"`([^`]*)`", m[1])
	if err != nil {
		return p
	}
	if dm := defRe.FindStringSubmatch(src); dm != nil {
		p.Tools = append(p.Tools, models.Tool{
			Name:         strings.TrimSpace(dm[1]),
			Description:  strings.TrimSpace(dm[2]),
			NameResolved: true,
		})
	}
	return p
}

// tsToolsArrayRule covers standalone `const TOOLS: Tool[] = [...]` arrays,
// a common third-party layout.
func tsToolsArrayRule(src string) Partial {
	var p Partial
	m := tsToolsArrayRe.FindStringSubmatch(src)
	if m == nil {
		return p
	}
	for _, tm := range tsNamedToolRe.FindAllStringSubmatch(m[1], -1) {
		p.Tools = append(p.Tools, models.Tool{
			Name:         strings.TrimSpace(tm[1]),
			Description:  strings.TrimSpace(tm[2]),
			NameResolved: true,
		})
	}
	return p
}

// tsExportConstRule covers exported tool-object constants.
func tsExportConstRule(src string) Partial {
	var p Partial
	for _, m := range tsExportConstRe.FindAllStringSubmatch(src, -1) {
		p.Tools = append(p.Tools, models.Tool{
			Name:         strings.TrimSpace(m[2]),
			Description:  strings.TrimSpace(m[3]),
			NameResolved: true,
		})
	}
	return p
}

func tsPromptsHandlerRule(src string) Partial {
	var p Partial
	m := tsPromptsHandlerRe.FindStringSubmatch(src)
	if m == nil {
		return p
	}
	promptsArray := m[1]

	for _, pm := range tsPromptObjectRe.FindAllStringSubmatch(promptsArray, -1) {
		nameExpr, description := pm[1], pm[2]
		name, resolved := ResolveName(nameExpr, src)
		if name == "" {
			continue
		}
		p.Prompts = append(p.Prompts, models.Prompt{
			Name:         name,
			Description:  strings.TrimSpace(description),
			Arguments:    tsPromptArguments(promptsArray, nameExpr),
			NameResolved: resolved,
		})
	}
	return p
}

// tsSyntheticResourcesRule reconstructs the generated test resources of the
// everything server, which builds them with Array.from({length: N}).
func tsSyntheticResourcesRule(src string) Partial {
	var p Partial
	m := tsSyntheticResourcesRe.FindStringSubmatch(src)
	if m == nil {
		return p
	}
	var count int
	fmt.Sscanf(m[1], "%d", &count)
	for i := 1; i <= count; i++ {
		mime := "text/plain"
		if i%2 == 0 {
			mime = "application/octet-stream"
		}
		p.Resources = append(p.Resources, models.Resource{
			Name:         fmt.Sprintf("Resource %d", i),
			Description:  fmt.Sprintf("Test resource %d", i),
			URI:          fmt.Sprintf("test://static/resource/%d", i),
			MimeType:     mime,
			NameResolved: true,
		})
	}
	return p
}

func tsResourceTemplatesRule(src string) Partial {
	var p Partial
	m := tsResourceTemplatesRe.FindStringSubmatch(src)
	if m == nil {
		return p
	}
	templates := m[1]

	uriMatch := tsURITemplateRe.FindStringSubmatch(templates)
	nameMatch := tsResourceNameRe.FindStringSubmatch(templates)
	if uriMatch == nil || nameMatch == nil {
		return p
	}

	resource := models.Resource{
		Name:         nameMatch[1],
		URI:          uriMatch[1],
		NameResolved: true,
	}
	if dm := tsResourceDescRe.FindStringSubmatch(templates); dm != nil {
		resource.Description = dm[1]
	}
	p.Resources = append(p.Resources, resource)
	return p
}

// tsSchemaPresenceParams records a single opaque object parameter when a tool
// object carries an inputSchema. Fully decoding nested JSON schemas is beyond
// what lexical matching can do reliably.
func tsSchemaPresenceParams(toolsContent, nameExpr string) []models.Parameter {
	objRe, err := compileQuoted(`(?s)\{[^{}]*name:\s*%s[^{}]*\}`, nameExpr)
	if err != nil {
		return nil
	}
	obj := objRe.FindString(toolsContent)
	if obj == "" || !strings.Contains(obj, "inputSchema") {
		return nil
	}
	return []models.Parameter{{
		Name:        "input",
		Type:        "object",
		Description: "Tool input parameters",
		Required:    true,
	}}
}

// tsInputSchemaParams extracts named parameters from an inputSchema
// properties block adjacent to the given tool name.
func tsInputSchemaParams(toolsContent, toolName string) []models.Parameter {
	objRe, err := compileQuoted(`(?s)\{[^{}]*name:\s*["']?%s["']?[^{}]*\}`, toolName)
	if err != nil {
		return nil
	}
	obj := objRe.FindString(toolsContent)
	if obj == "" {
		return nil
	}

	props := tsPropertiesRe.FindStringSubmatch(obj)
	if props == nil {
		return nil
	}

	var params []models.Parameter
	for _, pm := range tsPropertyRe.FindAllStringSubmatch(props[1], -1) {
		params = append(params, models.Parameter{
			Name:     pm[1],
			Type:     pm[2],
			Required: true,
		})
	}
	return params
}

func tsPromptArguments(promptsContent, nameExpr string) []models.Parameter {
	objRe, err := compileQuoted(`(?s)\{[^{}]*name:\s*%s[^{}]*\}`, nameExpr)
	if err != nil {
		return nil
	}
	obj := objRe.FindString(promptsContent)
	if obj == "" {
		return nil
	}

	argsRe := regexp.MustCompile(`(?s)arguments:\s*\[(.*?)\]`)
	args := argsRe.FindStringSubmatch(obj)
	if args == nil {
		return nil
	}

	var out []models.Parameter
	for _, am := range tsPromptArgRe.FindAllStringSubmatch(args[1], -1) {
		out = append(out, models.Parameter{
			Name:        am[1],
			Type:        "string",
			Description: am[2],
			Required:    am[3] == "true",
		})
	}
	return out
}

// matchBracketSection returns the text between position start (just past an
// opening bracket) and its matching closing bracket.
func matchBracketSection(src string, start int) (string, bool) {
	depth := 1
	for i := start; i < len(src); i++ {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return src[start:i], true
			}
		}
	}
	return "", false
}
