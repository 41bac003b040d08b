package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFile is written next to the processed snapshots it indexes.
const ManifestFile = "manifest.json"

// ManifestEntry records one fetcher run.
type ManifestEntry struct {
	ID    string `json:"id"`
	Stamp string `json:"stamp"`
	// ProcessedFile is a base name relative to the manifest's directory.
	ProcessedFile string    `json:"processed_file"`
	RawPath       string    `json:"raw_path"`
	Rows          int       `json:"rows"`
	StartUTC      time.Time `json:"start_utc"`
	EndUTC        time.Time `json:"end_utc"`
	CreatedAt     time.Time `json:"created_at"`
}

// Manifest lists snapshots in creation order, oldest first.
type Manifest struct {
	UpdatedAt string          `json:"updated_at"` // ISO 8601 timestamp
	Snapshots []ManifestEntry `json:"snapshots"`
}

// Latest returns the newest entry, if any.
func (m *Manifest) Latest() (ManifestEntry, bool) {
	if m == nil || len(m.Snapshots) == 0 {
		return ManifestEntry{}, false
	}
	return m.Snapshots[len(m.Snapshots)-1], true
}

// LoadManifest reads dir/manifest.json. A missing file is reported through
// os.IsNotExist on the returned error.
func LoadManifest(dir string) (*Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest in %s: %w", dir, err)
	}
	return &m, nil
}

// AppendManifest adds entry to dir's manifest, creating it if needed.
// The manifest is replaced atomically via rename.
func AppendManifest(dir string, entry ManifestEntry, now time.Time) error {
	m, err := LoadManifest(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		m = &Manifest{}
	}
	m.Snapshots = append(m.Snapshots, entry)
	m.UpdatedAt = now.UTC().Format(time.RFC3339)
	return saveManifest(dir, m)
}

func saveManifest(dir string, m *Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, ManifestFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}
