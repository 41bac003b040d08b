package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func assertExactCover(t *testing.T, windows []Window, start, end time.Time) {
	t.Helper()
	require.NotEmpty(t, windows)
	assert.True(t, windows[0].Start.Equal(start), "first window starts at %s", windows[0].Start)
	assert.True(t, windows[len(windows)-1].End.Equal(end), "last window ends at %s", windows[len(windows)-1].End)
	for i, w := range windows {
		assert.True(t, w.Start.Before(w.End), "window %d is empty", i)
		if i > 0 {
			assert.True(t, windows[i-1].End.Equal(w.Start), "gap or overlap before window %d", i)
		}
	}
}

func TestChunkCoversRangeExactly(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, span := range []time.Duration{
		time.Hour,
		2 * day,
		29*day + 23*time.Hour,
		30 * day,
		31 * day,
		65 * day,
		90 * day,
		365*day + 7*time.Hour,
	} {
		end := start.Add(span)
		windows := Chunk(start, end, 30*day)
		assertExactCover(t, windows, start, end)
		for _, w := range windows {
			assert.LessOrEqual(t, w.Duration(), 30*day)
		}
	}
}

func TestChunkCounts(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Len(t, Chunk(start, start.Add(2*day), 30*day), 1)

	windows := Chunk(start, start.Add(65*day), 30*day)
	require.Len(t, windows, 3)
	assert.Equal(t, 30*day, windows[0].Duration())
	assert.Equal(t, 30*day, windows[1].Duration())
	assert.Equal(t, 5*day, windows[2].Duration())
}

func TestChunkExactMultipleHasNoTrailingPiece(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	windows := Chunk(start, start.Add(90*day), 30*day)
	require.Len(t, windows, 3)
	for _, w := range windows {
		assert.Equal(t, 30*day, w.Duration())
	}
}

func TestChunkEmptyAndInverted(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Chunk(start, start, 30*day))
	assert.Empty(t, Chunk(start, start.Add(-day), 30*day))
}

func TestChunkNonPositiveSize(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	windows := Chunk(start, start.Add(100*day), 0)
	require.Len(t, windows, 1)
	assertExactCover(t, windows, start, start.Add(100*day))
}
