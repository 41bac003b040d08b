package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("from_utc,to_utc\n"), 0o644))
}

func TestLatestNoSnapshot(t *testing.T) {
	root := t.TempDir()
	_, err := Latest([]string{filepath.Join(root, "missing"), filepath.Join(root, "also-missing")})
	assert.True(t, errors.Is(err, ErrNoSnapshot))

	_, err = Latest(nil)
	assert.True(t, errors.Is(err, ErrNoSnapshot))
}

func TestLatestGlobFallbackPicksGreatestName(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))
	touch(t, filepath.Join(dir, "uk_ci_processed_20240301T000000Z.csv"))
	touch(t, filepath.Join(dir, "uk_ci_processed_20240201T000000Z.csv"))
	touch(t, filepath.Join(dir, "other.csv"))

	loc, err := Latest([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "uk_ci_processed_20240301T000000Z.csv"), loc.Path)
	assert.Equal(t, "20240301T000000Z", loc.Stamp)
	assert.False(t, loc.FromManifest)
}

func TestLatestFirstLocationWins(t *testing.T) {
	root := t.TempDir()
	primary := filepath.Join(root, "data", "processed")
	secondary := filepath.Join(root, "notebooks", "data", "processed")
	touch(t, filepath.Join(primary, "uk_ci_processed_20240101T000000Z.csv"))
	touch(t, filepath.Join(secondary, "uk_ci_processed_20250101T000000Z.csv"))

	loc, err := Latest([]string{primary, secondary})
	require.NoError(t, err)
	assert.Equal(t, primary, loc.Dir)

	require.NoError(t, os.RemoveAll(primary))
	loc, err = Latest([]string{primary, secondary})
	require.NoError(t, err)
	assert.Equal(t, secondary, loc.Dir)
}

func TestLatestPrefersManifestOrder(t *testing.T) {
	dir := t.TempDir()
	// Both files are listed; creation order decides, not the name.
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))
	touch(t, filepath.Join(dir, "uk_ci_processed_20990101T000000Z.csv"))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, AppendManifest(dir, ManifestEntry{Stamp: "20990101T000000Z", ProcessedFile: "uk_ci_processed_20990101T000000Z.csv"}, now))
	require.NoError(t, AppendManifest(dir, ManifestEntry{Stamp: "20240101T000000Z", ProcessedFile: "uk_ci_processed_20240101T000000Z.csv"}, now))

	loc, err := Latest([]string{dir})
	require.NoError(t, err)
	assert.True(t, loc.FromManifest)
	assert.Equal(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"), loc.Path)
}

func TestLatestPicksNewerFileMissingFromManifest(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))
	require.NoError(t, AppendManifest(dir, ManifestEntry{Stamp: "20240101T000000Z", ProcessedFile: "uk_ci_processed_20240101T000000Z.csv"}, now))
	touch(t, filepath.Join(dir, "uk_ci_processed_20240201T000000Z.csv"))

	loc, err := Latest([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, "20240201T000000Z", loc.Stamp)
	assert.Equal(t, filepath.Join(dir, "uk_ci_processed_20240201T000000Z.csv"), loc.Path)
	assert.False(t, loc.FromManifest)
}

func TestLatestKeepsManifestOverOlderUnlistedFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "uk_ci_processed_20231201T000000Z.csv"))
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))
	require.NoError(t, AppendManifest(dir, ManifestEntry{Stamp: "20240101T000000Z", ProcessedFile: "uk_ci_processed_20240101T000000Z.csv"}, now))

	loc, err := Latest([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, "20240101T000000Z", loc.Stamp)
	assert.True(t, loc.FromManifest)
}

func TestLatestSkipsManifestEntriesWithoutFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))
	require.NoError(t, AppendManifest(dir, ManifestEntry{Stamp: "20240101T000000Z", ProcessedFile: "uk_ci_processed_20240101T000000Z.csv"}, now))
	require.NoError(t, AppendManifest(dir, ManifestEntry{Stamp: "20240102T000000Z", ProcessedFile: "uk_ci_processed_20240102T000000Z.csv"}, now))

	loc, err := Latest([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, "20240101T000000Z", loc.Stamp)
}

func TestLatestIgnoresCorruptManifest(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("{"), 0o644))

	loc, err := Latest([]string{dir})
	require.NoError(t, err)
	assert.False(t, loc.FromManifest)
}

func TestListFallsBackToFileNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "uk_ci_processed_20240201T000000Z.csv"))
	touch(t, filepath.Join(dir, "uk_ci_processed_20240101T000000Z.csv"))

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "20240101T000000Z", entries[0].Stamp)
	assert.Equal(t, "20240201T000000Z", entries[1].Stamp)

	entries, err = List(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
