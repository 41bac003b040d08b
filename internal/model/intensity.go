package model

import "encoding/json"

// IntensityResponse matches the JSON shape returned by the carbon intensity API.
//
// Example:
// {
//   "data": [
//     {"from": "2024-01-01T00:00Z", "to": "2024-01-01T00:30Z",
//      "intensity": {"forecast": 120, "actual": 118, "index": "moderate"}}
//   ]
// }
//
// Records are kept as raw JSON so the raw snapshot can be written verbatim.
type IntensityResponse struct {
	Data []json.RawMessage `json:"data"`
}

// IntensityRecord is one half-hour record as the API sends it.
// Timestamps are left as strings; parsing happens during tidy so that
// malformed values become missing instead of failing the decode.
type IntensityRecord struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Intensity IntensityValues `json:"intensity"`
}

// IntensityValues holds the nested intensity fields. Forecast and actual
// are nullable upstream; recent intervals usually carry only a forecast.
type IntensityValues struct {
	Forecast *float64 `json:"forecast"`
	Actual   *float64 `json:"actual"`
	Index    string   `json:"index"`
}
