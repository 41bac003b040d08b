package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"carbon-intensity/internal/config"
	"carbon-intensity/internal/data"
	"carbon-intensity/internal/fetch"
	"carbon-intensity/internal/snapshot"
)

// Fetch UK carbon intensity for a UTC range and save a raw JSON snapshot
// plus a tidy CSV snapshot.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) int {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	start := fs.String("start", "", "Start date (UTC) in YYYY-MM-DD")
	end := fs.String("end", "", "End date (UTC) in YYYY-MM-DD")
	days := fs.Int("days", 0, "Fetch last N days ending at the current UTC hour (overrides start/end)")
	cfgPath := fs.String("config", "", "Optional path to YAML config")
	baseURL := fs.String("base-url", "", "Override the intensity API base URL")
	rawDir := fs.String("raw-dir", "", "Override the raw snapshot directory")
	processedDir := fs.String("processed-dir", "", "Override the processed snapshot directory")
	pause := fs.Duration("pause", 0, "Pause after each chunk request (e.g. 900ms)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// Resolve the range before anything else so usage errors never touch the network.
	startUTC, endUTC, err := fetch.ResolveRange(fetch.RangeOptions{
		Start:   *start,
		End:     *end,
		Days:    *days,
		DaysSet: set["days"],
	}, now())
	if err != nil {
		fmt.Fprintln(stderr, err)
		if errors.Is(err, fetch.ErrMissingRange) {
			fs.Usage()
		}
		return 2
	}

	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
		return 1
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if *baseURL != "" {
		cfg.Fetcher.BaseURL = *baseURL
	}
	if *rawDir != "" {
		cfg.Fetcher.RawDir = *rawDir
	}
	if *processedDir != "" {
		cfg.Fetcher.ProcessedDir = *processedDir
	}
	if set["pause"] {
		cfg.Fetcher.Pause = *pause
	}

	fmt.Fprintf(stdout, "Fetching UK carbon intensity from %s to %s (UTC) ...\n",
		startUTC.Format(time.RFC3339), endUTC.Format(time.RFC3339))

	client := data.NewCarbonIntensityClient(cfg.Fetcher.BaseURL, cfg.Fetcher.Timeout)
	fetcher := fetch.New(client, cfg.Fetcher.ChunkSize(), cfg.Fetcher.Pause)
	records, err := fetcher.Run(ctx, startUTC, endUTC)
	if err != nil {
		fmt.Fprintf(stderr, "fetch failed: %v\n", err)
		return 1
	}
	readings := fetch.Tidy(records)

	store := snapshot.NewStore(cfg.Fetcher.RawDir, cfg.Fetcher.ProcessedDir)
	store.Now = now
	res, err := store.Save(records, readings, startUTC, endUTC)
	if err != nil {
		fmt.Fprintf(stderr, "save failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Saved raw JSON: %s\n", res.RawPath)
	fmt.Fprintf(stdout, "Saved processed CSV: %s\n", res.ProcessedPath)
	fmt.Fprintf(stdout, "Rows: %d\n", len(readings))
	fmt.Fprintln(stdout, "Done.")
	return 0
}
