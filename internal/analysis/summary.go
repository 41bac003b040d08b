package analysis

import (
	"math"
	"sort"
	"time"

	"carbon-intensity/internal/model"
)

// Summary holds the headline numbers and descriptive stats of a snapshot.
type Summary struct {
	Rows int

	FirstUTC time.Time
	LastUTC  time.Time

	// LatestCI is the effective intensity of the newest timestamped reading.
	LatestCI *float64
	// Rolling7 is the last value of the 7-day rolling daily mean.
	Rolling7 *float64

	WithActual   int
	ForecastOnly int
	Missing      int

	// Stats over non-nil effective intensities; nil when there are none.
	Min  *float64
	Max  *float64
	Mean *float64
	P05  *float64
	P95  *float64
}

// Report is everything the dashboard renders for one snapshot.
type Report struct {
	Summary Summary
	Daily   []DailyPoint
	Rolling []*float64
	Hourly  []HourPoint
}

// BuildReport derives every dashboard series from readings. It does not
// modify readings.
func BuildReport(readings []model.Reading) *Report {
	daily := DailyMeans(readings)
	rolling := RollingMean(daily, RollingWindowDays)
	rep := &Report{
		Summary: Summarize(readings),
		Daily:   daily,
		Rolling: rolling,
		Hourly:  HourOfDayProfile(readings),
	}
	if n := len(rolling); n > 0 {
		rep.Summary.Rolling7 = rolling[n-1]
	}
	return rep
}

// Summarize computes counts, the latest reading and distribution stats.
// Rolling7 is filled in by BuildReport.
func Summarize(readings []model.Reading) Summary {
	s := Summary{Rows: len(readings)}
	vals := make([]float64, 0, len(readings))
	latestIdx := -1
	for i, r := range readings {
		switch {
		case r.ActualGCO2PerKWh != nil:
			s.WithActual++
		case r.ForecastGCO2PerKWh != nil:
			s.ForecastOnly++
		default:
			s.Missing++
		}
		if ci := r.EffectiveIntensity(); ci != nil {
			vals = append(vals, *ci)
		}
		if !r.HasTime() {
			continue
		}
		if s.FirstUTC.IsZero() || r.FromUTC.Before(s.FirstUTC) {
			s.FirstUTC = r.FromUTC
		}
		if latestIdx < 0 || !r.FromUTC.Before(s.LastUTC) {
			s.LastUTC = r.FromUTC
			latestIdx = i
		}
	}
	if latestIdx >= 0 {
		s.LatestCI = readings[latestIdx].EffectiveIntensity()
	}
	if len(vals) == 0 {
		return s
	}

	sort.Float64s(vals)
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	s.Min = model.Float(vals[0])
	s.Max = model.Float(vals[len(vals)-1])
	s.Mean = model.Float(sum / float64(len(vals)))
	s.P05 = model.Float(percentileSorted(vals, 0.05))
	s.P95 = model.Float(percentileSorted(vals, 0.95))
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
