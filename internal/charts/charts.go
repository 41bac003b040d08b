package charts

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"carbon-intensity/internal/analysis"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 960
	DefaultHeight = 360

	unitLabel = "gCO2/kWh"
)

// ErrNoData is returned when a series has no plottable points.
var ErrNoData = errors.New("no data to plot")

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

// lineMarkerStyle draws the connecting line plus a dot per point.
func lineMarkerStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    4,
		DotColor:    col,
	}
}

// DailySVG renders the daily mean series with the rolling mean overlaid.
// rolling must be aligned with daily. Days without a value break the line.
func DailySVG(daily []analysis.DailyPoint, rolling []*float64) ([]byte, error) {
	dayRuns, rollRuns := dailySeries(daily, rolling)
	if len(dayRuns) == 0 {
		return nil, ErrNoData
	}

	var ys []float64
	var series, legend []chart.Series
	for i, r := range dayRuns {
		ys = append(ys, r.YValues...)
		series = append(series, r)
		if i == 0 {
			legend = append(legend, r)
		}
	}
	for i, r := range rollRuns {
		ys = append(ys, r.YValues...)
		series = append(series, r)
		if i == 0 {
			legend = append(legend, r)
		}
	}

	ch := chart.Chart{
		Title:      "Daily Average & 7-day Rolling",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date (UTC)",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis:  chart.YAxis{Name: unitLabel, Range: yRange(ys)},
		Series: series,
	}
	// One legend entry per line, not per segment.
	legendSrc := chart.Chart{Series: legend}
	ch.Elements = []chart.Renderable{chart.Legend(&legendSrc)}
	return render(&ch)
}

// dailySeries splits the daily and rolling lines into runs of consecutive
// days with a value.
func dailySeries(daily []analysis.DailyPoint, rolling []*float64) (dayRuns, rollRuns []chart.TimeSeries) {
	dayRuns = runs(daily, func(i int) *float64 { return daily[i].Mean },
		"Daily mean", lineMarkerStyle(chart.ColorBlue))
	rollRuns = runs(daily, func(i int) *float64 {
		if i < len(rolling) {
			return rolling[i]
		}
		return nil
	}, "7-day rolling", lineStyle(chart.ColorOrange))

	// A lone point needs a second x value for a non-empty range.
	if len(dayRuns) == 1 {
		dayRuns[0].XValues, dayRuns[0].YValues = padTimes(dayRuns[0].XValues, dayRuns[0].YValues)
	}
	if len(rollRuns) == 1 {
		rollRuns[0].XValues, rollRuns[0].YValues = padTimes(rollRuns[0].XValues, rollRuns[0].YValues)
	}
	return dayRuns, rollRuns
}

func runs(daily []analysis.DailyPoint, value func(i int) *float64, name string, style chart.Style) []chart.TimeSeries {
	var out []chart.TimeSeries
	open := false
	for i, p := range daily {
		v := value(i)
		if v == nil {
			open = false
			continue
		}
		if !open {
			out = append(out, chart.TimeSeries{Name: name, Style: style})
			open = true
		}
		last := &out[len(out)-1]
		last.XValues = append(last.XValues, p.Day)
		last.YValues = append(last.YValues, *v)
	}
	return out
}

// HourlySVG renders the hour-of-day profile as a line with markers.
func HourlySVG(hourly []analysis.HourPoint) ([]byte, error) {
	var xs, ys []float64
	for _, p := range hourly {
		if p.Mean != nil {
			xs = append(xs, float64(p.Hour))
			ys = append(ys, *p.Mean)
		}
	}
	if len(xs) == 0 {
		return nil, ErrNoData
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+0.5)
		ys = append(ys, ys[0])
	}

	ticks := make([]chart.Tick, 0, 24)
	for h := 0; h < 24; h += 2 {
		ticks = append(ticks, chart.Tick{Value: float64(h), Label: fmt.Sprintf("%02d", h)})
	}
	ch := chart.Chart{
		Title:      "Average Carbon Intensity by Hour of Day (UTC)",
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "Hour (UTC)",
			Range: &chart.ContinuousRange{Min: 0, Max: 23},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{Name: unitLabel, Range: yRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "ci", XValues: xs, YValues: ys, Style: lineMarkerStyle(chart.ColorBlue)},
		},
	}
	return render(&ch)
}

func render(ch *chart.Chart) ([]byte, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", ch.Title, err)
	}
	return buf.Bytes(), nil
}

// padTimes widens a single point so the x range isn't zero.
func padTimes(xs []time.Time, ys []float64) ([]time.Time, []float64) {
	if len(xs) != 1 {
		return xs, ys
	}
	return []time.Time{xs[0], xs[0].Add(time.Hour)}, []float64{ys[0], ys[0]}
}

// yRange returns an explicit range when all values are equal, since a flat
// series would otherwise produce a zero-height axis.
func yRange(series ...[]float64) chart.Range {
	first := true
	var lo, hi float64
	for _, s := range series {
		for _, v := range s {
			if first {
				lo, hi = v, v
				first = false
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if first || lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
