package model

import (
	"sort"
	"time"
)

// Reading is one tidy half-hour row of the processed snapshot.
// A zero FromUTC/ToUTC means the source timestamp was missing or unparseable.
type Reading struct {
	FromUTC time.Time
	ToUTC   time.Time

	// gCO2/kWh.
	ForecastGCO2PerKWh *float64
	ActualGCO2PerKWh   *float64

	IndexLabel string
}

// EffectiveIntensity returns the actual intensity when present, otherwise
// the forecast. It returns nil when both are absent; it never defaults to 0.
func (r Reading) EffectiveIntensity() *float64 {
	if r.ActualGCO2PerKWh != nil {
		v := *r.ActualGCO2PerKWh
		return &v
	}
	if r.ForecastGCO2PerKWh != nil {
		v := *r.ForecastGCO2PerKWh
		return &v
	}
	return nil
}

func (r Reading) HasTime() bool {
	return !r.FromUTC.IsZero()
}

func (r Reading) Duration() time.Duration {
	if r.FromUTC.IsZero() || r.ToUTC.IsZero() {
		return 0
	}
	return r.ToUTC.Sub(r.FromUTC)
}

// Float returns a pointer to v. Handy for building readings in code and tests.
func Float(v float64) *float64 {
	return &v
}

// SortReadings orders readings by FromUTC in place, missing timestamps last.
// Ties keep their input order.
func SortReadings(rs []Reading) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if !a.HasTime() {
			return false
		}
		if !b.HasTime() {
			return true
		}
		return a.FromUTC.Before(b.FromUTC)
	})
}
