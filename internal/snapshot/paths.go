package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// StampLayout is the UTC creation timestamp embedded in snapshot file names.
	StampLayout = "20060102T150405Z"

	RawPrefix       = "uk_ci_raw_"
	ProcessedPrefix = "uk_ci_processed_"
	ProcessedGlob   = ProcessedPrefix + "*.csv"
)

func Stamp(t time.Time) string {
	return t.UTC().Format(StampLayout)
}

func RawPath(dir, stamp string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.json", RawPrefix, stamp))
}

func ProcessedPath(dir, stamp string) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.csv", ProcessedPrefix, stamp))
}

// StampFromPath extracts the stamp from a processed or raw snapshot file name.
func StampFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	for _, prefix := range []string{ProcessedPrefix, RawPrefix} {
		if !strings.HasPrefix(base, prefix) {
			continue
		}
		s := strings.TrimSuffix(strings.TrimPrefix(base, prefix), filepath.Ext(base))
		if _, err := time.Parse(StampLayout, s); err != nil {
			return "", false
		}
		return s, true
	}
	return "", false
}
