package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"carbon-intensity/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records each requested window and serves one record per window.
type fakeClient struct {
	calls  []Window
	failOn int // 1-based call number that fails; 0 never fails
}

func (f *fakeClient) FetchWindow(ctx context.Context, start, end time.Time) (*model.IntensityResponse, error) {
	f.calls = append(f.calls, Window{Start: start, End: end})
	if f.failOn == len(f.calls) {
		return nil, errors.New("upstream returned 500")
	}
	rec := fmt.Sprintf(`{"from":%q,"to":%q,"intensity":{"forecast":100,"actual":null,"index":"moderate"}}`,
		start.Format("2006-01-02T15:04Z"), start.Add(30*time.Minute).Format("2006-01-02T15:04Z"))
	return &model.IntensityResponse{Data: []json.RawMessage{json.RawMessage(rec)}}, nil
}

func newTestFetcher(client WindowFetcher, sleeps *[]time.Duration) *Fetcher {
	f := New(client, 30*day, 900*time.Millisecond)
	f.Sleep = func(ctx context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}
	return f
}

func TestRunIssuesOneRequestPerChunkInOrder(t *testing.T) {
	client := &fakeClient{}
	var sleeps []time.Duration
	f := newTestFetcher(client, &sleeps)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(65 * day)
	records, err := f.Run(context.Background(), start, end)
	require.NoError(t, err)

	require.Len(t, client.calls, 3)
	assert.Len(t, records, 3)
	assert.Equal(t, []time.Duration{900 * time.Millisecond, 900 * time.Millisecond, 900 * time.Millisecond}, sleeps)
	for i := 1; i < len(client.calls); i++ {
		assert.True(t, client.calls[i-1].End.Equal(client.calls[i].Start))
	}
	assert.True(t, client.calls[2].End.Equal(end))
}

func TestRunShortRangeIsOneRequest(t *testing.T) {
	client := &fakeClient{}
	var sleeps []time.Duration
	f := newTestFetcher(client, &sleeps)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.Run(context.Background(), start, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, client.calls, 1)
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	client := &fakeClient{failOn: 2}
	var sleeps []time.Duration
	f := newTestFetcher(client, &sleeps)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records, err := f.Run(context.Background(), start, start.Add(90*day))
	require.Error(t, err)
	assert.Nil(t, records)
	assert.Len(t, client.calls, 2, "no request after the failing chunk")
	assert.Contains(t, err.Error(), "chunk 2/3")
}

func TestRunEmptyRange(t *testing.T) {
	client := &fakeClient{}
	var sleeps []time.Duration
	f := newTestFetcher(client, &sleeps)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records, err := f.Run(context.Background(), start, start)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Empty(t, client.calls)
}

func TestRunStopsWhenCancelledDuringPause(t *testing.T) {
	client := &fakeClient{}
	f := New(client, day, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.Run(ctx, start, start.Add(3*day))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunWithoutClient(t *testing.T) {
	f := &Fetcher{}
	_, err := f.Run(context.Background(), time.Now(), time.Now().Add(time.Hour))
	assert.Error(t, err)
}
