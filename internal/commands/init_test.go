package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runDemobank(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized demobank at")

	info, err := os.Stat(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(filepath.Join(dir, "demobank.yaml"))
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "users: demo_bank_users")
	assert.Contains(t, contents, "session: demo_bank_session")
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	_, err := runDemobank(t, "init", dir)
	require.NoError(t, err)

	_, err = runDemobank(t, "init", dir)
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_PostgresNeedsURL(t *testing.T) {
	_, err := runDemobank(t, "init", t.TempDir(), "--backend", "postgres")
	assert.ErrorContains(t, err, "postgres_url")
}

func TestInit_RejectsMemoryBackend(t *testing.T) {
	dir := t.TempDir()
	_, err := runDemobank(t, "init", dir, "--backend", "memory")
	assert.ErrorContains(t, err, "memory backend keeps no state")
	assert.NoFileExists(t, filepath.Join(dir, "demobank.yaml"))
}

func TestMemoryBackendFromEnvIsRejected(t *testing.T) {
	t.Setenv("DEMOBANK_STORAGE_BACKEND", "memory")
	c := newCLI(t)
	_, err := c.run("user", "register", "alice", "--pin", "1234")
	assert.ErrorContains(t, err, "memory backend keeps no state")
}

func TestInit_DataDirRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := runDemobank(t, "init", dir)
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, "demobank.yaml")
	_, err = runDemobank(t, "--config", cfgPath, "user", "register", "alice", "--pin", "1234")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "data", "demo_bank_users.json"))
	assert.NoError(t, err)
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := runDemobank(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "user", "whoami")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
