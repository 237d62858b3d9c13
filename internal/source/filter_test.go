package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the candidate filter:
// - Supported extensions pass, everything else is rejected
// - Default exclusion patterns drop test and build artifacts
// - Extra patterns extend the default set
// - Well-known dependency and output directories are pruned
// - Invalid extra patterns fail compilation

func TestFilter_Candidate(t *testing.T) {
	t.Parallel()

	f, err := NewFilter()
	require.NoError(t, err)

	assert.True(t, f.Candidate("server.py"))
	assert.True(t, f.Candidate("Index.TS"))
	assert.True(t, f.Candidate("main.go"))

	assert.False(t, f.Candidate("README.md"))
	assert.False(t, f.Candidate("Makefile"))
	assert.False(t, f.Candidate("test_server.py"))
	assert.False(t, f.Candidate("server.spec.ts"))
	assert.False(t, f.Candidate("webpack.config.js"))
}

func TestFilter_ExtraPatterns(t *testing.T) {
	t.Parallel()

	f, err := NewFilter("*generated*")
	require.NoError(t, err)

	assert.False(t, f.Candidate("generated_tools.py"))
	assert.True(t, f.Candidate("tools.py"))
}

func TestFilter_SkipDir(t *testing.T) {
	t.Parallel()

	f, err := NewFilter()
	require.NoError(t, err)

	assert.True(t, f.SkipDir("node_modules"))
	assert.True(t, f.SkipDir(".git"))
	assert.True(t, f.SkipDir("__pycache__"))
	assert.False(t, f.SkipDir("src"))
	assert.False(t, f.SkipDir("handlers"))
}

func TestNewFilter_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFilter("[")
	assert.Error(t, err)
}
