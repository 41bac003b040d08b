package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"carbon-intensity/internal/model"
)

// WindowFetcher is the upstream call the Fetcher drives; *data.CarbonIntensityClient
// implements it.
type WindowFetcher interface {
	FetchWindow(ctx context.Context, start, end time.Time) (*model.IntensityResponse, error)
}

// Fetcher walks a time range chunk by chunk, strictly sequentially, and
// concatenates the records of every chunk.
type Fetcher struct {
	Client    WindowFetcher
	ChunkSize time.Duration
	// Pause after each chunk request.
	Pause time.Duration

	// Sleep defaults to a context-aware timer; tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

func New(client WindowFetcher, chunkSize, pause time.Duration) *Fetcher {
	return &Fetcher{
		Client:    client,
		ChunkSize: chunkSize,
		Pause:     pause,
	}
}

// Run fetches [start, end). The first failing chunk aborts the whole run and
// no records are returned. An empty range returns an empty, non-nil slice.
func (f *Fetcher) Run(ctx context.Context, start, end time.Time) ([]json.RawMessage, error) {
	if f.Client == nil {
		return nil, fmt.Errorf("fetcher has no client")
	}
	windows := Chunk(start, end, f.ChunkSize)
	records := make([]json.RawMessage, 0)

	for i, w := range windows {
		resp, err := f.Client.FetchWindow(ctx, w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d (%s to %s): %w",
				i+1, len(windows), w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), err)
		}
		if resp != nil {
			records = append(records, resp.Data...)
		}
		log.Printf("[Fetcher] Chunk %d/%d done, %d records so far", i+1, len(windows), len(records))

		if err := f.sleep(ctx, f.Pause); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (f *Fetcher) sleep(ctx context.Context, d time.Duration) error {
	if f.Sleep != nil {
		return f.Sleep(ctx, d)
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
