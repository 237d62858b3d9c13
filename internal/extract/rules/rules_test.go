package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Test Plan for the shared rule framework and remaining languages:
// - Extension mapping routes .js variants to the TypeScript rule set
// - Unknown extensions and languages are rejected
// - Blank-named declarations are discarded by Apply
// - Rust: #[mcp::tool] and #[mcp::prompt] attribute functions
// - Rust: #[tool(description = ...)] rmcp-style attributes
// - Java: @Tool annotations with and without name/description overrides
// - C#: [McpServerTool] attributes with Name override and [Description]

func TestLanguageForExtension(t *testing.T) {
	t.Parallel()

	for ext, want := range map[string]string{
		".py":   LangPython,
		".ts":   LangTypeScript,
		".tsx":  LangTypeScript,
		".mjs":  LangTypeScript,
		".go":   LangGo,
		".rs":   LangRust,
		".java": LangJava,
		".cs":   LangCSharp,
	} {
		lang, ok := LanguageForExtension(ext)
		require.True(t, ok, ext)
		assert.Equal(t, want, lang, ext)
	}

	_, ok := LanguageForExtension(".rb")
	assert.False(t, ok)

	assert.False(t, Supported("ruby"))
	assert.True(t, Supported(LangPython))
}

func TestClean_DropsBlankNames(t *testing.T) {
	t.Parallel()

	p := clean(Partial{
		Tools:     []models.Tool{{Name: "  "}, {Name: "keep"}},
		Prompts:   []models.Prompt{{Name: ""}},
		Resources: []models.Resource{{Name: "\t"}, {Name: "config"}},
	})

	require.Len(t, p.Tools, 1)
	assert.Equal(t, "keep", p.Tools[0].Name)
	assert.Empty(t, p.Prompts)
	require.Len(t, p.Resources, 1)
	assert.Equal(t, "config", p.Resources[0].Name)
}

func TestApply_UnknownLanguage(t *testing.T) {
	t.Parallel()

	p := Apply("cobol", "IDENTIFICATION DIVISION.")
	assert.True(t, p.Empty())
}

func TestRustRules_AttributeFunctions(t *testing.T) {
	t.Parallel()

	src := `
#[mcp::tool]
pub async fn fetch_page(url: String) -> Result<String> {
    todo!()
}

#[mcp::prompt]
fn summarize() {}
`
	p := Apply(LangRust, src)

	require.Len(t, p.Tools, 1)
	assert.Equal(t, "fetch_page", p.Tools[0].Name)
	require.Len(t, p.Prompts, 1)
	assert.Equal(t, "summarize", p.Prompts[0].Name)
}

func TestRustRules_ToolAttributeWithDescription(t *testing.T) {
	t.Parallel()

	src := `
#[tool(description = "Adds two numbers together")]
async fn add(&self, a: i64, b: i64) -> i64 {
    a + b
}
`
	p := Apply(LangRust, src)

	require.Len(t, p.Tools, 1)
	assert.Equal(t, "add", p.Tools[0].Name)
	assert.Equal(t, "Adds two numbers together", p.Tools[0].Description)
}

func TestJavaRules_ToolAnnotation(t *testing.T) {
	t.Parallel()

	src := `
public class WeatherTools {
    @Tool(name = "get_weather", description = "Get the current weather")
    public String getWeather(String city) {
        return lookup(city);
    }

    @Tool
    public int addNumbers(int a, int b) {
        return a + b;
    }
}
`
	p := Apply(LangJava, src)

	require.Len(t, p.Tools, 2)
	assert.Equal(t, "get_weather", p.Tools[0].Name)
	assert.Equal(t, "Get the current weather", p.Tools[0].Description)
	assert.Equal(t, "addNumbers", p.Tools[1].Name)
	assert.Empty(t, p.Tools[1].Description)
}

func TestCSharpRules_ToolAttribute(t *testing.T) {
	t.Parallel()

	src := `
public static class EchoTools
{
    [McpServerTool(Name = "echo")]
    [Description("Echoes the message back to the client.")]
    public static string Echo(string message) => message;

    [McpTool]
    public static async Task<string> GetTimeAsync() => DateTime.Now.ToString();
}
`
	p := Apply(LangCSharp, src)

	require.Len(t, p.Tools, 2)
	assert.Equal(t, "echo", p.Tools[0].Name)
	assert.Equal(t, "Echoes the message back to the client.", p.Tools[0].Description)
	assert.Equal(t, "GetTimeAsync", p.Tools[1].Name)
}
