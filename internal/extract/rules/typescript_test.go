package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the TypeScript rule set:
// - Extract const tools: Tool[] arrays from the ListTools handler with
//   enum-qualified names resolved against the enum block
// - Unresolved enum members fall back to lowercase with NameResolved=false
// - Extract inline handler tools with concatenated string descriptions
// - Extract inputSchema properties as named parameters
// - Resolve a TOOL_CONSTANT reference to its definition
// - Extract standalone const TOOLS arrays and exported tool constants
// - Extract prompts from the ListPrompts handler
// - Reconstruct Array.from synthetic resources with alternating mime types
// - Extract resource templates

func TestTypeScriptRules_ConstToolsHandlerWithEnum(t *testing.T) {
	t.Parallel()

	src := `
enum ToolName {
  ECHO = "echo",
  ADD = "add",
}

server.setRequestHandler(ListToolsRequestSchema, async () => {
  const tools: Tool[] = [
    {
      name: ToolName.ECHO,
      description: "Echoes back the input",
      inputSchema: zodToJsonSchema(EchoSchema) as ToolInput,
    },
    {
      name: ToolName.ADD,
      description: "Adds two numbers",
      inputSchema: zodToJsonSchema(AddSchema) as ToolInput,
    },
  ];
  return { tools };
});
`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Tools, 2)
	assert.Equal(t, "echo", p.Tools[0].Name)
	assert.Equal(t, "Echoes back the input", p.Tools[0].Description)
	assert.True(t, p.Tools[0].NameResolved)
	assert.Equal(t, "add", p.Tools[1].Name)
	assert.True(t, p.Tools[1].NameResolved)

	// inputSchema presence surfaces as a single opaque object parameter.
	require.Len(t, p.Tools[0].Parameters, 1)
	assert.Equal(t, "input", p.Tools[0].Parameters[0].Name)
	assert.Equal(t, "object", p.Tools[0].Parameters[0].Type)
}

func TestTypeScriptRules_UnresolvedEnumFallback(t *testing.T) {
	t.Parallel()

	src := `
server.setRequestHandler(ListToolsRequestSchema, async () => {
  const tools: Tool[] = [
    {
      name: ToolName.PRINT_ENV,
      description: "Prints the environment",
    },
  ];
  return { tools };
});
`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Tools, 1)
	assert.Equal(t, "print_env", p.Tools[0].Name)
	assert.False(t, p.Tools[0].NameResolved)
}

func TestTypeScriptRules_InlineHandlerTools(t *testing.T) {
	t.Parallel()

	src := `
server.setRequestHandler(ListToolsRequestSchema, async () => {
  return {
    tools: [
      {
        name: "read_file",
        description:
          "Read the complete contents of a file " +
          "from the file system.",
        inputSchema: {
          type: "object",
          properties: {
            path: { type: "string" },
          },
          required: ["path"],
        },
      },
    ],
  };
});
`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Tools, 1)
	tool := p.Tools[0]
	assert.Equal(t, "read_file", tool.Name)
	assert.Equal(t, "Read the complete contents of a file from the file system.", tool.Description)
}

func TestTypeScriptRules_ToolConstantRef(t *testing.T) {
	t.Parallel()

	src := `
const SEQUENTIAL_THINKING_TOOL: Tool = {
  name: "sequentialthinking",
  description: ` + "`A detailed tool for dynamic problem-solving`" + `,
};

server.setRequestHandler(ListToolsRequestSchema, async () => ({
  tools: [SEQUENTIAL_THINKING_TOOL],
}));
`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Tools, 1)
	assert.Equal(t, "sequentialthinking", p.Tools[0].Name)
	assert.Equal(t, "A detailed tool for dynamic problem-solving", p.Tools[0].Description)
}

func TestTypeScriptRules_ToolsArrayAndExportedConst(t *testing.T) {
	t.Parallel()

	src := `
const TOOLS: Tool[] = [
  { name: "browser_navigate", description: "Navigate to a URL" },
];

export const SEARCH_TOOL = {
  name: "brave_web_search",
  description: "Performs a web search",
};
`
	p := Apply(LangTypeScript, src)

	names := make([]string, 0, len(p.Tools))
	for _, tool := range p.Tools {
		names = append(names, tool.Name)
	}
	assert.Contains(t, names, "browser_navigate")
	assert.Contains(t, names, "brave_web_search")
}

func TestTypeScriptRules_PromptsHandler(t *testing.T) {
	t.Parallel()

	src := `
server.setRequestHandler(ListPromptsRequestSchema, async () => {
  return {
    prompts: [
      { name: "simple_prompt", description: "A prompt without arguments" },
    ],
  };
});
`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Prompts, 1)
	assert.Equal(t, "simple_prompt", p.Prompts[0].Name)
	assert.Equal(t, "A prompt without arguments", p.Prompts[0].Description)
	assert.True(t, p.Prompts[0].NameResolved)
}

func TestTypeScriptRules_SyntheticResources(t *testing.T) {
	t.Parallel()

	src := `const ALL_RESOURCES: Resource[] = Array.from({ length: 4 }, (_, i) => {`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Resources, 4)
	assert.Equal(t, "Resource 1", p.Resources[0].Name)
	assert.Equal(t, "test://static/resource/1", p.Resources[0].URI)
	assert.Equal(t, "text/plain", p.Resources[0].MimeType)
	assert.Equal(t, "application/octet-stream", p.Resources[1].MimeType)
}

func TestTypeScriptRules_ResourceTemplates(t *testing.T) {
	t.Parallel()

	src := `
  return {
    resourceTemplates: [
      {
        uriTemplate: "postgres://{host}/{table}/schema",
        name: "Table schema",
        description: "Schema for a database table",
      },
    ],
  };
`
	p := Apply(LangTypeScript, src)

	require.Len(t, p.Resources, 1)
	assert.Equal(t, "Table schema", p.Resources[0].Name)
	assert.Equal(t, "postgres://{host}/{table}/schema", p.Resources[0].URI)
	assert.Equal(t, "Schema for a database table", p.Resources[0].Description)
}
