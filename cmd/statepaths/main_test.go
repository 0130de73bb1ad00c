package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/statepaths/internal/cli"
)

func TestRun(t *testing.T) {
	door := filepath.Join("..", "..", "hclmachine", "testdata", "door.hcl")

	var out, logs bytes.Buffer
	require.NoError(t, run(&out, &logs, []string{"-mode=graph", "-format=mermaid", "-log-level=error", door}))
	assert.Contains(t, out.String(), "stateDiagram-v2")
	assert.Contains(t, out.String(), "[*] --> closed")
}

func TestRun_Help(t *testing.T) {
	var out, logs bytes.Buffer
	require.NoError(t, run(&out, &logs, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_BadFlag(t *testing.T) {
	var out, logs bytes.Buffer
	err := run(&out, &logs, []string{"-mode=nope", "door.hcl"})

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
