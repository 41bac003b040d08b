package fetch

import "time"

// Window is one half-open sub-range [Start, End) of a fetch.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Chunk splits [start, end) into consecutive windows of at most size.
// The windows cover the range exactly once and the last one ends at end.
// An empty or inverted range yields no windows; a non-positive size yields
// a single window.
func Chunk(start, end time.Time, size time.Duration) []Window {
	if !start.Before(end) {
		return nil
	}
	if size <= 0 {
		return []Window{{Start: start, End: end}}
	}
	var out []Window
	cursor := start
	for cursor.Before(end) {
		chunkEnd := cursor.Add(size)
		if chunkEnd.After(end) {
			chunkEnd = end
		}
		out = append(out, Window{Start: cursor, End: chunkEnd})
		cursor = chunkEnd
	}
	return out
}
