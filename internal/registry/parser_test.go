package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgordon-dev/github-mcp-scraper/internal/models"
)

// Test Plan for the registry parser:
// - Reference servers come from src/ directories, with descriptions lifted
//   from their READMEs
// - Community servers come from the README's third-party section, with and
//   without favicon img tags
// - Entries matched by the img pattern are not duplicated by the plain one
// - A missing registry README is an error
// - ReferenceServerDir points into the checkout's src tree

const registryReadme = `# MCP Servers

## Reference Servers

These live in src/.

## Third-Party Servers

### Community Servers

- <img height="12" src="https://example.com/favicon.ico"> **[Weather](https://github.com/acme/weather-mcp)** - Live weather lookups
- **[Calculator](https://github.com/acme/calc-mcp)** - Arithmetic over MCP
- **[Weather](https://github.com/acme/weather-mcp)** - Live weather lookups

## Resources

Nothing here.
`

func writeRegistry(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte(registryReadme), 0o644))

	echoDir := filepath.Join(root, "src", "echo")
	require.NoError(t, os.MkdirAll(echoDir, 0o755))
	readme := "# Echo Server\n\nA server that echoes its input back.\n"
	require.NoError(t, os.WriteFile(filepath.Join(echoDir, "README.md"), []byte(readme), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "fetch"), 0o755))
	return root
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	p := NewParser(writeRegistry(t))
	servers, err := p.Parse()
	require.NoError(t, err)
	require.Len(t, servers, 4)

	echo := servers[0]
	assert.Equal(t, "echo", echo.Name)
	assert.Equal(t, models.ServerTypeReference, echo.ServerType)
	assert.Equal(t, "https://github.com/modelcontextprotocol/servers/tree/main/src/echo", echo.GitHubURL)
	assert.Equal(t, "A server that echoes its input back.", echo.Description)
	assert.NotEmpty(t, echo.ReadmeContent)
	assert.True(t, echo.IsAccessible)

	fetch := servers[1]
	assert.Equal(t, "fetch", fetch.Name)
	assert.Empty(t, fetch.Description)

	weather := servers[2]
	assert.Equal(t, "Weather", weather.Name)
	assert.Equal(t, models.ServerTypeThirdParty, weather.ServerType)
	assert.Equal(t, "https://github.com/acme/weather-mcp", weather.GitHubURL)
	assert.Equal(t, "Live weather lookups", weather.Description)
	assert.Equal(t, "https://example.com/favicon.ico", weather.FaviconURL)

	calc := servers[3]
	assert.Equal(t, "Calculator", calc.Name)
	assert.Equal(t, "Arithmetic over MCP", calc.Description)
	assert.Empty(t, calc.FaviconURL)
}

func TestParser_MissingReadme(t *testing.T) {
	t.Parallel()

	_, err := NewParser(t.TempDir()).Parse()
	assert.Error(t, err)
}

func TestParser_ReferenceServerDir(t *testing.T) {
	t.Parallel()

	p := NewParser(filepath.Join("registry", "checkout"))
	assert.Equal(t, filepath.Join("registry", "checkout", "src", "echo"), p.ReferenceServerDir("echo"))
}
