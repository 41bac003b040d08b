package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"carbon-intensity/internal/analysis"
	"carbon-intensity/internal/config"
	"carbon-intensity/internal/model"
	"carbon-intensity/internal/snapshot"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "summary":
		os.Exit(cmdSummary(os.Args[2:], os.Stdout, os.Stderr))
	case "snapshots":
		os.Exit(cmdSnapshots(os.Args[2:], os.Stdout, os.Stderr))
	default:
		usage(os.Stdout)
		os.Exit(2)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  cli summary [--config config.yaml] [--dirs data/processed,notebooks/data/processed]")
	fmt.Fprintln(w, "  cli snapshots [--config config.yaml] [--dirs data/processed]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "notes:")
	fmt.Fprintln(w, "  - summary prints the dashboard headline numbers for the latest processed snapshot")
	fmt.Fprintln(w, "  - snapshots lists the snapshots in the first directory that has any")
}

func searchDirs(cfgPath, dirs string) ([]string, error) {
	if strings.TrimSpace(dirs) != "" {
		return splitPaths(dirs), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	return cfg.Dashboard.SearchDirs, nil
}

func cmdSummary(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "Optional path to YAML config")
	dirs := fs.String("dirs", "", "Comma-separated processed snapshot directories, in priority order")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	searched, err := searchDirs(*cfgPath, *dirs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	loc, err := snapshot.Latest(searched)
	if err != nil {
		fmt.Fprintf(stdout, "No processed CSV found. Run:\n\n  go run ./cmd/fetch --days 30\n")
		return 1
	}
	readings, err := snapshot.ReadProcessedCSV(loc.Path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	model.SortReadings(readings)
	rep := analysis.BuildReport(readings)
	s := rep.Summary

	fmt.Fprintf(stdout, "Using: %s (rows: %d)\n", loc.Path, s.Rows)
	fmt.Fprintf(stdout, "Range: %s to %s (UTC)\n", fmtTime(s.FirstUTC), fmtTime(s.LastUTC))
	fmt.Fprintf(stdout, "Latest half-hour (gCO2/kWh): %s\n", fmtNum(s.LatestCI, 0))
	fmt.Fprintf(stdout, "7-day average (gCO2/kWh):    %s\n", fmtNum(s.Rolling7, 0))
	fmt.Fprintf(stdout, "%-6s %-6s %-6s %-6s %-6s\n", "min", "p05", "mean", "p95", "max")
	fmt.Fprintf(stdout, "%-6s %-6s %-6s %-6s %-6s\n",
		fmtNum(s.Min, 0), fmtNum(s.P05, 0), fmtNum(s.Mean, 0), fmtNum(s.P95, 0), fmtNum(s.Max, 0))
	fmt.Fprintf(stdout, "actual=%d forecast-only=%d missing=%d\n", s.WithActual, s.ForecastOnly, s.Missing)
	return 0
}

func cmdSnapshots(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("snapshots", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "Optional path to YAML config")
	dirs := fs.String("dirs", "", "Comma-separated processed snapshot directories, in priority order")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	searched, err := searchDirs(*cfgPath, *dirs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	for _, dir := range searched {
		entries, err := snapshot.List(dir)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(stdout, "%s\n", dir)
		fmt.Fprintf(stdout, "%-18s %-8s %-22s %-22s %s\n", "stamp", "rows", "start", "end", "file")
		for _, e := range entries {
			fmt.Fprintf(stdout, "%-18s %-8d %-22s %-22s %s\n",
				e.Stamp, e.Rows, fmtTime(e.StartUTC), fmtTime(e.EndUTC), e.ProcessedFile)
		}
		return 0
	}
	fmt.Fprintln(stdout, "No snapshots found.")
	return 0
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func fmtNum(v *float64, prec int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}
