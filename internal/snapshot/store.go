package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"carbon-intensity/internal/model"

	"github.com/google/uuid"
)

// Store writes snapshot pairs under a raw and a processed directory.
type Store struct {
	RawDir       string
	ProcessedDir string

	Now func() time.Time
}

func NewStore(rawDir, processedDir string) *Store {
	return &Store{RawDir: rawDir, ProcessedDir: processedDir, Now: time.Now}
}

// SaveResult describes the files written by one Save.
type SaveResult struct {
	RawPath       string
	ProcessedPath string
	Entry         ManifestEntry
}

// Save writes the raw records and the tidy readings under one stamp, then
// appends the pair to the processed directory's manifest. If any step fails
// the files already written for this stamp are removed.
func (s *Store) Save(records []json.RawMessage, readings []model.Reading, start, end time.Time) (*SaveResult, error) {
	for _, dir := range []string{s.RawDir, s.ProcessedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	created := now().UTC()
	stamp := Stamp(created)
	res := &SaveResult{
		RawPath:       RawPath(s.RawDir, stamp),
		ProcessedPath: ProcessedPath(s.ProcessedDir, stamp),
	}

	if err := WriteRaw(res.RawPath, records); err != nil {
		return nil, err
	}
	if err := WriteProcessedCSV(res.ProcessedPath, readings); err != nil {
		os.Remove(res.RawPath)
		return nil, err
	}

	res.Entry = ManifestEntry{
		ID:            uuid.New().String(),
		Stamp:         stamp,
		ProcessedFile: filepath.Base(res.ProcessedPath),
		RawPath:       res.RawPath,
		Rows:          len(readings),
		StartUTC:      start.UTC(),
		EndUTC:        end.UTC(),
		CreatedAt:     created,
	}
	if err := AppendManifest(s.ProcessedDir, res.Entry, created); err != nil {
		os.Remove(res.RawPath)
		os.Remove(res.ProcessedPath)
		return nil, err
	}
	return res, nil
}
