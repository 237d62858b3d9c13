package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for ResolveName:
// - Resolve double- and single-quoted literals by unquoting
// - Resolve enum-qualified identifiers against an enum block in source
// - Fall back to lowercased member name when the enum is missing
// - Fall back when the enum exists but the member has no string value
// - Pass through bare identifiers unchanged
// - Handle empty input

func TestResolveName_QuotedLiterals(t *testing.T) {
	t.Parallel()

	name, resolved := ResolveName(`"echo"`, "")
	assert.Equal(t, "echo", name)
	assert.True(t, resolved)

	name, resolved = ResolveName(`'add_numbers'`, "")
	assert.Equal(t, "add_numbers", name)
	assert.True(t, resolved)
}

func TestResolveName_EnumLookup(t *testing.T) {
	t.Parallel()

	src := `
enum ToolName {
  ECHO = "echo",
  ADD = "add",
  LONG_RUNNING_OPERATION = "longRunningOperation",
}
`
	name, resolved := ResolveName("ToolName.ECHO", src)
	assert.Equal(t, "echo", name)
	assert.True(t, resolved)

	name, resolved = ResolveName("ToolName.LONG_RUNNING_OPERATION", src)
	assert.Equal(t, "longRunningOperation", name)
	assert.True(t, resolved)
}

func TestResolveName_FallbackWhenEnumMissing(t *testing.T) {
	t.Parallel()

	name, resolved := ResolveName("ToolName.ECHO", "const x = 1;")
	assert.Equal(t, "echo", name)
	assert.False(t, resolved)
}

func TestResolveName_FallbackWhenMemberMissing(t *testing.T) {
	t.Parallel()

	src := `enum ToolName { ECHO = "echo" }`
	name, resolved := ResolveName("ToolName.PRINT_ENV", src)
	assert.Equal(t, "print_env", name)
	assert.False(t, resolved)
}

func TestResolveName_BareIdentifier(t *testing.T) {
	t.Parallel()

	name, resolved := ResolveName("echo", "")
	assert.Equal(t, "echo", name)
	assert.True(t, resolved)
}

func TestResolveName_Empty(t *testing.T) {
	t.Parallel()

	name, resolved := ResolveName("  ", "")
	assert.Equal(t, "", name)
	assert.False(t, resolved)
}
