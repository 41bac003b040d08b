package fetch

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingRange is returned when neither --days nor both --start/--end are given.
var ErrMissingRange = errors.New("provide --days OR both --start and --end (YYYY-MM-DD)")

// RangeOptions mirrors the fetch command's range flags.
type RangeOptions struct {
	Start   string // YYYY-MM-DD
	End     string // YYYY-MM-DD
	Days    int
	DaysSet bool
}

// ResolveRange turns the range flags into UTC instants. Days overrides
// Start/End and ends at now truncated to the UTC hour.
func ResolveRange(opts RangeOptions, now time.Time) (time.Time, time.Time, error) {
	if opts.DaysSet {
		if opts.Days < 0 {
			return time.Time{}, time.Time{}, fmt.Errorf("--days must not be negative, got %d", opts.Days)
		}
		end := now.UTC().Truncate(time.Hour)
		return end.AddDate(0, 0, -opts.Days), end, nil
	}
	if opts.Start == "" || opts.End == "" {
		return time.Time{}, time.Time{}, ErrMissingRange
	}
	start, err := time.Parse("2006-01-02", opts.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", opts.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end (expected YYYY-MM-DD): %w", err)
	}
	return start.UTC(), end.UTC(), nil
}
