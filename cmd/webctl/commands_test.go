package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
records:
  - address: https://facelook.example/john
    template: Social
    title: John on Facelook
    keywords: [facelook, john]
`

func run(t *testing.T, storeDir string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--backend", "sqlite", "--store", filepath.Join(storeDir, "cache.db")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSeedInspectExportPurge(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "records.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedYAML), 0o644))

	out, err := run(t, dir, "seed", seedPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 records")

	out, err = run(t, dir, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Records:    1")

	out, err = run(t, dir, "export", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "https://facelook.example/john")

	out, err = run(t, dir, "search", "faceloko")
	require.NoError(t, err)
	assert.Contains(t, out, `"suggested": "facelook"`)

	out, err = run(t, dir, "resolve", "https://facelook.example/john")
	require.NoError(t, err)
	assert.Contains(t, out, `"view": "content"`)

	_, err = run(t, dir, "purge")
	require.NoError(t, err)

	out, err = run(t, dir, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache is empty")
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, t.TempDir(), "export", "-f", "xml")
	assert.Error(t, err)
}

func TestSeedRequiresPath(t *testing.T) {
	_, err := run(t, t.TempDir(), "seed")
	assert.Error(t, err)
}
