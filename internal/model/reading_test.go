package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveIntensity(t *testing.T) {
	tests := []struct {
		name     string
		reading  Reading
		expected *float64
	}{
		{"actual wins over forecast", Reading{ActualGCO2PerKWh: Float(120), ForecastGCO2PerKWh: Float(100)}, Float(120)},
		{"forecast when actual absent", Reading{ForecastGCO2PerKWh: Float(90)}, Float(90)},
		{"actual of zero is kept", Reading{ActualGCO2PerKWh: Float(0), ForecastGCO2PerKWh: Float(50)}, Float(0)},
		{"both absent is nil", Reading{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.reading.EffectiveIntensity()
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.expected, *got)
		})
	}
}

func TestEffectiveIntensityDoesNotAlias(t *testing.T) {
	r := Reading{ActualGCO2PerKWh: Float(10)}
	ci := r.EffectiveIntensity()
	*ci = 99
	assert.Equal(t, 10.0, *r.ActualGCO2PerKWh)
}

func TestSortReadings(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := []Reading{
		{FromUTC: t0.Add(time.Hour), IndexLabel: "c"},
		{IndexLabel: "missing-1"},
		{FromUTC: t0, IndexLabel: "a"},
		{FromUTC: t0.Add(30 * time.Minute), IndexLabel: "b"},
		{IndexLabel: "missing-2"},
	}
	SortReadings(rs)

	labels := make([]string, len(rs))
	for i, r := range rs {
		labels[i] = r.IndexLabel
	}
	assert.Equal(t, []string{"a", "b", "c", "missing-1", "missing-2"}, labels)
}

func TestParseUTC(t *testing.T) {
	want := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)
	for _, s := range []string{
		"2024-01-01T00:30Z",
		"2024-01-01T00:30:00Z",
		"2024-01-01T01:30:00+01:00",
		"2024-01-01 00:30:00+00:00",
		"2024-01-01 00:30:00",
	} {
		got, ok := ParseUTC(s)
		require.True(t, ok, s)
		assert.True(t, want.Equal(got), "%s parsed as %s", s, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	for _, s := range []string{"", "  ", "not a time", "2024-13-45T99:99Z"} {
		got, ok := ParseUTC(s)
		assert.False(t, ok, s)
		assert.True(t, got.IsZero())
	}
}
