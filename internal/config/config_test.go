package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, c.Fetcher.BaseURL)
	assert.Equal(t, 30, c.Fetcher.ChunkDays)
	assert.Equal(t, 900*time.Millisecond, c.Fetcher.Pause)
	assert.Equal(t, 30*24*time.Hour, c.Fetcher.ChunkSize())
	assert.Equal(t, []string{"data/processed", "notebooks/data/processed"}, c.Dashboard.SearchDirs)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "config.yaml", `
fetcher:
  chunk_days: 14
  pause: 250ms
  raw_dir: out/raw
dashboard:
  port: "9000"
  search_dirs: [out/processed]
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 14, c.Fetcher.ChunkDays)
	assert.Equal(t, 250*time.Millisecond, c.Fetcher.Pause)
	assert.Equal(t, "out/raw", c.Fetcher.RawDir)
	assert.Equal(t, DefaultProcessedDir, c.Fetcher.ProcessedDir)
	assert.Equal(t, DefaultBaseURL, c.Fetcher.BaseURL)
	assert.Equal(t, "9000", c.Dashboard.Port)
	assert.Equal(t, []string{"out/processed"}, c.Dashboard.SearchDirs)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CI_API_BASE_URL", "http://localhost:1234/intensity")
	t.Setenv("CI_PAUSE", "0s")
	t.Setenv("API_PORT", "7000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234/intensity", c.Fetcher.BaseURL)
	assert.Equal(t, time.Duration(0), c.Fetcher.Pause)
	assert.Equal(t, "7000", c.Dashboard.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Dashboard.AllowedOrigins)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.yaml", "fetcher:\n  chunk_days: -1\n")
	_, err := Load(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_days")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	p = writeFile(t, dir, "garbage.yaml", "fetcher: [")
	_, err = Load(p)
	assert.Error(t, err)
}

func TestMergeDoesNotAliasBase(t *testing.T) {
	base := Default()
	out := Merge(base, &Config{Dashboard: DashboardConfig{SearchDirs: []string{"x"}}})
	assert.Equal(t, []string{"x"}, out.Dashboard.SearchDirs)
	assert.Equal(t, DefaultSearchDirs, base.Dashboard.SearchDirs)
}
