package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteRaw writes the verbatim API records as a JSON array. A nil or empty
// slice is written as []. The file must not already exist.
func WriteRaw(path string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal raw records: %w", err)
	}
	return writeExclusive(path, func(w io.Writer) error {
		_, err := w.Write(raw)
		return err
	})
}

// writeExclusive creates path, which must not exist, and fills it with
// write. A partially written file is removed on failure.
func writeExclusive(path string, write func(io.Writer) error) error {
	f, err := createExclusive(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func createExclusive(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}
