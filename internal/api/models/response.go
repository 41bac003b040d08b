package models

// SourceInfo identifies the processed snapshot a response was computed from.
type SourceInfo struct {
	Path         string `json:"path"`
	Stamp        string `json:"stamp,omitempty"`
	FromManifest bool   `json:"from_manifest"`
	Rows         int    `json:"rows"`
}

// SummaryResponse is GET /api/v1/summary.
type SummaryResponse struct {
	Source SourceInfo `json:"source"`

	// Headline metrics, gCO2/kWh. Null when undefined.
	LatestCI *float64 `json:"latest_ci"`
	Rolling7 *float64 `json:"rolling_7d_avg"`

	FirstUTC string `json:"first_utc,omitempty"`
	LastUTC  string `json:"last_utc,omitempty"`

	WithActual   int `json:"with_actual"`
	ForecastOnly int `json:"forecast_only"`
	Missing      int `json:"missing"`

	Stats IntensityStats `json:"stats"`
}

// IntensityStats describes the distribution of effective intensity.
type IntensityStats struct {
	Min  *float64 `json:"min"`
	Max  *float64 `json:"max"`
	Mean *float64 `json:"mean"`
	P05  *float64 `json:"p05"`
	P95  *float64 `json:"p95"`
}

// DailyResponse is GET /api/v1/daily.
type DailyResponse struct {
	Source SourceInfo   `json:"source"`
	Points []DailyPoint `json:"points"`
}

type DailyPoint struct {
	Date     string   `json:"date"` // YYYY-MM-DD, UTC
	Mean     *float64 `json:"mean"`
	Rolling7 *float64 `json:"rolling_7d"`
	Count    int      `json:"count"`
}

// HourlyResponse is GET /api/v1/hourly.
type HourlyResponse struct {
	Source SourceInfo  `json:"source"`
	Points []HourPoint `json:"points"`
}

type HourPoint struct {
	Hour  int      `json:"hour"`
	Mean  *float64 `json:"mean"`
	Count int      `json:"count"`
}

// SnapshotsResponse is GET /api/v1/snapshots.
type SnapshotsResponse struct {
	Dir       string         `json:"dir"`
	Snapshots []SnapshotInfo `json:"snapshots"`
}

type SnapshotInfo struct {
	ID            string `json:"id,omitempty"`
	Stamp         string `json:"stamp"`
	ProcessedFile string `json:"processed_file"`
	RawPath       string `json:"raw_path,omitempty"`
	Rows          int    `json:"rows"`
	StartUTC      string `json:"start_utc,omitempty"`
	EndUTC        string `json:"end_utc,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
