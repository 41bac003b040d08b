package analysis

import (
	"time"

	"carbon-intensity/internal/model"
)

// RollingWindowDays is the trailing window of the headline rolling average.
const RollingWindowDays = 7

// DailyPoint is the mean effective intensity of one UTC calendar day.
// Mean is nil for a day with no usable values.
type DailyPoint struct {
	Day   time.Time
	Mean  *float64
	Count int
}

// HourPoint is the mean effective intensity for one UTC hour of day.
type HourPoint struct {
	Hour  int
	Mean  *float64
	Count int
}

// DailyMeans resamples effective intensity to one point per UTC day, from
// the first to the last day with a timestamp. Days in between that have no
// readings are kept with a nil mean. Readings without a timestamp are skipped.
func DailyMeans(readings []model.Reading) []DailyPoint {
	type acc struct {
		sum   float64
		count int
	}
	byDay := map[time.Time]*acc{}
	var first, last time.Time
	for _, r := range readings {
		if !r.HasTime() {
			continue
		}
		day := truncateDay(r.FromUTC)
		if first.IsZero() || day.Before(first) {
			first = day
		}
		if last.IsZero() || day.After(last) {
			last = day
		}
		a, ok := byDay[day]
		if !ok {
			a = &acc{}
			byDay[day] = a
		}
		if ci := r.EffectiveIntensity(); ci != nil {
			a.sum += *ci
			a.count++
		}
	}
	if first.IsZero() {
		return []DailyPoint{}
	}

	out := []DailyPoint{}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		p := DailyPoint{Day: day}
		if a, ok := byDay[day]; ok && a.count > 0 {
			p.Mean = model.Float(a.sum / float64(a.count))
			p.Count = a.count
		}
		out = append(out, p)
	}
	return out
}

// RollingMean is a trailing mean over window points. The window shrinks at
// the start of the series (min periods 1). Nil points occupy a slot but are
// left out of the mean; a window holding only nils yields nil.
func RollingMean(points []DailyPoint, window int) []*float64 {
	if window < 1 {
		window = 1
	}
	out := make([]*float64, len(points))
	for i := range points {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		sum, n := 0.0, 0
		for _, p := range points[lo : i+1] {
			if p.Mean != nil {
				sum += *p.Mean
				n++
			}
		}
		if n > 0 {
			out[i] = model.Float(sum / float64(n))
		}
	}
	return out
}

// HourOfDayProfile groups effective intensity by UTC hour across all days.
// Only hours that occur in the readings are returned, in ascending order.
func HourOfDayProfile(readings []model.Reading) []HourPoint {
	var sums [24]float64
	var counts [24]int
	var seen [24]bool
	for _, r := range readings {
		if !r.HasTime() {
			continue
		}
		h := r.FromUTC.UTC().Hour()
		seen[h] = true
		if ci := r.EffectiveIntensity(); ci != nil {
			sums[h] += *ci
			counts[h]++
		}
	}
	out := []HourPoint{}
	for h := 0; h < 24; h++ {
		if !seen[h] {
			continue
		}
		p := HourPoint{Hour: h, Count: counts[h]}
		if counts[h] > 0 {
			p.Mean = model.Float(sums[h] / float64(counts[h]))
		}
		out = append(out, p)
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
