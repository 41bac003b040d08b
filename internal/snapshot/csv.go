package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"carbon-intensity/internal/model"
)

const (
	ColFromUTC  = "from_utc"
	ColToUTC    = "to_utc"
	ColForecast = "forecast_gco2_per_kwh"
	ColActual   = "actual_gco2_per_kwh"
	ColIndex    = "index_label"
)

// Header is the processed snapshot's column order.
var Header = []string{ColFromUTC, ColToUTC, ColForecast, ColActual, ColIndex}

// WriteProcessedCSV writes readings with a header row. Missing values are
// empty cells. The file must not already exist.
func WriteProcessedCSV(path string, readings []model.Reading) error {
	return writeExclusive(path, func(w io.Writer) error {
		return EncodeCSV(w, readings)
	})
}

func EncodeCSV(out io.Writer, readings []model.Reading) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, r := range readings {
		row := []string{
			fmtTime(r.FromUTC),
			fmtTime(r.ToUTC),
			fmtFloat(r.ForecastGCO2PerKWh),
			fmtFloat(r.ActualGCO2PerKWh),
			r.IndexLabel,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadProcessedCSV loads a processed snapshot. Columns are matched by header
// name, so extra columns are ignored and absent ones read as missing.
// Unparseable timestamps and numbers become missing values.
func ReadProcessedCSV(path string) ([]model.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	readings, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return readings, nil
}

func DecodeCSV(in io.Reader) ([]model.Reading, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	// A stray quote spoils one cell, not the whole snapshot.
	r.LazyQuotes = true

	header, err := r.Read()
	if err == io.EOF {
		return []model.Reading{}, nil
	}
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	out := []model.Reading{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rd := model.Reading{
			ForecastGCO2PerKWh: parseFloat(cell(row, ColForecast)),
			ActualGCO2PerKWh:   parseFloat(cell(row, ColActual)),
			IndexLabel:         cell(row, ColIndex),
		}
		rd.FromUTC, _ = model.ParseUTC(cell(row, ColFromUTC))
		rd.ToUTC, _ = model.ParseUTC(cell(row, ColToUTC))
		out = append(out, rd)
	}
	return out, nil
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func fmtFloat(x *float64) string {
	if x == nil {
		return ""
	}
	return strconv.FormatFloat(*x, 'f', -1, 64)
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v {
		return nil
	}
	return &v
}
