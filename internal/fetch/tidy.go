package fetch

import (
	"encoding/json"
	"log"

	"carbon-intensity/internal/model"
)

// Tidy flattens raw API records into readings sorted ascending by FromUTC.
// Row count is preserved: a record that fails to decode, or whose timestamps
// don't parse, becomes a row with missing fields rather than an error.
// Rows with a missing FromUTC sort last; ties keep their input order.
func Tidy(records []json.RawMessage) []model.Reading {
	out := make([]model.Reading, 0, len(records))
	for i, raw := range records {
		var rec model.IntensityRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			log.Printf("[Fetcher] Record %d is not a valid intensity record: %v", i, err)
			out = append(out, model.Reading{})
			continue
		}
		r := model.Reading{
			ForecastGCO2PerKWh: rec.Intensity.Forecast,
			ActualGCO2PerKWh:   rec.Intensity.Actual,
			IndexLabel:         rec.Intensity.Index,
		}
		r.FromUTC, _ = model.ParseUTC(rec.From)
		r.ToUTC, _ = model.ParseUTC(rec.To)
		out = append(out, r)
	}
	model.SortReadings(out)
	return out
}
