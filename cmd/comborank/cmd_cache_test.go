package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	variants, rounds := writeInputs(t, dir)
	cacheDir := filepath.Join(dir, "cache")

	_, _, err := runCLI(t, "rank", "--variants", variants, "--rounds", rounds, "--cache", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.DirExists(t, cacheDir)

	stdout, _, err := runCLI(t, "cache", "clear", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cache cleared")
	assert.NoDirExists(t, cacheDir)
}

func TestCacheClear_UsesConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cacheDir := filepath.Join(dir, "from-config")
	require.NoError(t, os.MkdirAll(cacheDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".comborank.yaml"), []byte("cache:\n  dir: "+cacheDir+"\n"), 0o644))

	_, _, err := runCLI(t, "cache", "clear")
	require.NoError(t, err)
	assert.NoDirExists(t, cacheDir)
}

func TestCacheClear_RefusesForeignDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	_, _, err := runCLI(t, "cache", "clear", "--cache-dir", dir)
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}
