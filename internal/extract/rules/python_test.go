package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the Python rule set:
// - Extract @mcp.tool() decorated functions with docstring and parameters
// - Extract @server.tool and bare @tool decorators
// - A file with two decorated functions yields exactly two tools
// - Arguments with defaults become optional parameters
// - self/cls/*args are skipped in parameter lists
// - Extract server.add_tool("name") registrations
// - Extract @mcp.prompt() and @mcp.resource("uri") declarations
// - A file with no declarations yields an empty partial

func TestPythonRules_FastMCPDecorator(t *testing.T) {
	t.Parallel()

	src := `
from mcp.server.fastmcp import FastMCP

mcp = FastMCP("demo")

@mcp.tool()
def query_database(sql: str, limit: int = 100) -> str:
    """Run a read-only SQL query."""
    return run(sql, limit)
`
	p := Apply(LangPython, src)

	require.Len(t, p.Tools, 1)
	tool := p.Tools[0]
	assert.Equal(t, "query_database", tool.Name)
	assert.Equal(t, "Run a read-only SQL query.", tool.Description)
	assert.True(t, tool.NameResolved)

	require.Len(t, tool.Parameters, 2)
	assert.Equal(t, "sql", tool.Parameters[0].Name)
	assert.Equal(t, "string", tool.Parameters[0].Type)
	assert.True(t, tool.Parameters[0].Required)
	assert.Equal(t, "limit", tool.Parameters[1].Name)
	assert.False(t, tool.Parameters[1].Required)
}

func TestPythonRules_TwoDecoratedFunctions(t *testing.T) {
	t.Parallel()

	src := `
@mcp.tool()
def first_tool(a: str):
    """First."""
    pass

@mcp.tool()
async def second_tool(b: dict):
    """Second."""
    pass
`
	p := Apply(LangPython, src)

	require.Len(t, p.Tools, 2)
	assert.Equal(t, "first_tool", p.Tools[0].Name)
	assert.Equal(t, "second_tool", p.Tools[1].Name)
	require.Len(t, p.Tools[1].Parameters, 1)
	assert.Equal(t, "object", p.Tools[1].Parameters[0].Type)
}

func TestPythonRules_SelfAndStarArgsSkipped(t *testing.T) {
	t.Parallel()

	src := `
@tool
def method_tool(self, name: str, *args, **kwargs):
    """Doc."""
    pass
`
	p := Apply(LangPython, src)

	require.Len(t, p.Tools, 1)
	require.Len(t, p.Tools[0].Parameters, 1)
	assert.Equal(t, "name", p.Tools[0].Parameters[0].Name)
}

func TestPythonRules_AddToolCall(t *testing.T) {
	t.Parallel()

	src := `server.add_tool("list_tables")` + "\n" + `server.add_tool('describe_table')`
	p := Apply(LangPython, src)

	require.Len(t, p.Tools, 2)
	assert.Equal(t, "list_tables", p.Tools[0].Name)
	assert.Equal(t, "describe_table", p.Tools[1].Name)
}

func TestPythonRules_PromptAndResource(t *testing.T) {
	t.Parallel()

	src := `
@mcp.prompt()
def summarize(text: str):
    """Summarize text."""
    pass

@mcp.resource("config://app")
def app_config():
    """Application configuration."""
    pass
`
	p := Apply(LangPython, src)

	require.Len(t, p.Prompts, 1)
	assert.Equal(t, "summarize", p.Prompts[0].Name)
	assert.Equal(t, "Summarize text.", p.Prompts[0].Description)

	require.Len(t, p.Resources, 1)
	assert.Equal(t, "app_config", p.Resources[0].Name)
	assert.Equal(t, "config://app", p.Resources[0].URI)
}

func TestPythonRules_NoDeclarations(t *testing.T) {
	t.Parallel()

	p := Apply(LangPython, "def helper():\n    return 42\n")
	assert.True(t, p.Empty())
}
