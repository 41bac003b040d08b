package snapshot

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
)

// ErrNoSnapshot means no processed snapshot exists in any search location.
var ErrNoSnapshot = errors.New("no processed snapshot found")

// Located is the snapshot a dashboard load will read.
type Located struct {
	Path         string
	Dir          string
	Stamp        string
	FromManifest bool
}

// Latest picks the newest processed snapshot. Directories are checked in
// order and the first one with any snapshot wins. Within a directory the
// manifest's newest entry whose CSV still exists is preferred, unless a file
// the manifest doesn't list carries a later stamp. Without a usable manifest
// the lexicographically greatest file name is used.
func Latest(searchDirs []string) (*Located, error) {
	for _, dir := range searchDirs {
		if loc, ok := latestInDir(dir); ok {
			return loc, nil
		}
	}
	return nil, ErrNoSnapshot
}

func latestInDir(dir string) (*Located, bool) {
	m, err := LoadManifest(dir)
	if err != nil && !os.IsNotExist(err) {
		log.Printf("[Snapshot] Ignoring unreadable manifest in %s: %v", dir, err)
	}
	listed := map[string]bool{}
	var fromManifest *Located
	if m != nil {
		for _, e := range m.Snapshots {
			listed[e.ProcessedFile] = true
		}
		for i := len(m.Snapshots) - 1; i >= 0; i-- {
			e := m.Snapshots[i]
			p := filepath.Join(dir, e.ProcessedFile)
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				fromManifest = &Located{Path: p, Dir: dir, Stamp: e.Stamp, FromManifest: true}
				break
			}
		}
	}

	var unlisted []string
	for _, p := range globProcessed(dir) {
		if !listed[filepath.Base(p)] {
			unlisted = append(unlisted, p)
		}
	}
	if len(unlisted) == 0 {
		return fromManifest, fromManifest != nil
	}
	p := unlisted[len(unlisted)-1]
	stamp, ok := StampFromPath(p)
	if fromManifest != nil && (!ok || stamp <= manifestStamp(fromManifest)) {
		return fromManifest, true
	}
	if fromManifest != nil {
		log.Printf("[Snapshot] %s is newer than the manifest's latest entry in %s", filepath.Base(p), dir)
	}
	return &Located{Path: p, Dir: dir, Stamp: stamp}, true
}

// manifestStamp is the entry's stamp, or the one in its file name when the
// entry has none.
func manifestStamp(loc *Located) string {
	if loc.Stamp != "" {
		return loc.Stamp
	}
	s, _ := StampFromPath(loc.Path)
	return s
}

func globProcessed(dir string) []string {
	files, err := filepath.Glob(filepath.Join(dir, ProcessedGlob))
	if err != nil {
		return nil
	}
	sort.Strings(files)
	return files
}

// List returns the snapshots known in dir, oldest first: the manifest's
// entries when it exists, otherwise entries derived from file names.
func List(dir string) ([]ManifestEntry, error) {
	m, err := LoadManifest(dir)
	if err == nil {
		return m.Snapshots, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}
	var out []ManifestEntry
	for _, p := range globProcessed(dir) {
		stamp, _ := StampFromPath(p)
		out = append(out, ManifestEntry{Stamp: stamp, ProcessedFile: filepath.Base(p)})
	}
	return out, nil
}
