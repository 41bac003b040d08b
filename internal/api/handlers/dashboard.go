package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"carbon-intensity/internal/analysis"
	"carbon-intensity/internal/api/models"
	"carbon-intensity/internal/charts"
	"carbon-intensity/internal/metrics"
	"carbon-intensity/internal/model"
	"carbon-intensity/internal/snapshot"

	"github.com/gin-gonic/gin"
)

// FetchHint is shown when there is no processed snapshot to render.
const FetchHint = "go run ./cmd/fetch --days 30"

// DashboardHandler serves views of the latest processed snapshot. Every
// request re-selects and re-reads the snapshot; nothing is cached.
type DashboardHandler struct {
	SearchDirs []string
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(searchDirs []string) *DashboardHandler {
	return &DashboardHandler{SearchDirs: searchDirs}
}

type loadedSnapshot struct {
	loc      *snapshot.Located
	readings []model.Reading
	report   *analysis.Report
}

func (l *loadedSnapshot) source() models.SourceInfo {
	return models.SourceInfo{
		Path:         l.loc.Path,
		Stamp:        l.loc.Stamp,
		FromManifest: l.loc.FromManifest,
		Rows:         len(l.readings),
	}
}

func (h *DashboardHandler) load() (*loadedSnapshot, error) {
	loc, err := snapshot.Latest(h.SearchDirs)
	if err != nil {
		metrics.DashboardLoads.WithLabelValues("no_snapshot").Inc()
		return nil, err
	}
	readings, err := snapshot.ReadProcessedCSV(loc.Path)
	if err != nil {
		metrics.DashboardLoads.WithLabelValues("error").Inc()
		log.Printf("[Dashboard] Failed to load %s: %v", loc.Path, err)
		return nil, err
	}
	model.SortReadings(readings)
	report := analysis.BuildReport(readings)

	metrics.DashboardLoads.WithLabelValues("ok").Inc()
	metrics.SnapshotRows.Set(float64(len(readings)))
	if report.Summary.LatestCI != nil {
		metrics.LatestIntensity.Set(*report.Summary.LatestCI)
	}
	log.Printf("[Dashboard] Loaded %s (%d rows)", loc.Path, len(readings))
	return &loadedSnapshot{loc: loc, readings: readings, report: report}, nil
}

// loadOrRespond loads the snapshot or writes a JSON error and returns nil.
func (h *DashboardHandler) loadOrRespond(c *gin.Context) *loadedSnapshot {
	l, err := h.load()
	if err == nil {
		return l
	}
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NO_SNAPSHOT",
				Message: fmt.Sprintf("No processed CSV found. Run: %s", FetchHint),
				Details: map[string]interface{}{"search_dirs": h.SearchDirs},
			},
		})
		return nil
	}
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "SNAPSHOT_LOAD_ERROR",
			Message: fmt.Sprintf("Failed to load snapshot: %v", err),
		},
	})
	return nil
}

// GetSummary handles GET /api/v1/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	l := h.loadOrRespond(c)
	if l == nil {
		return
	}
	s := l.report.Summary
	c.JSON(http.StatusOK, models.SummaryResponse{
		Source:       l.source(),
		LatestCI:     s.LatestCI,
		Rolling7:     s.Rolling7,
		FirstUTC:     fmtTime(s.FirstUTC),
		LastUTC:      fmtTime(s.LastUTC),
		WithActual:   s.WithActual,
		ForecastOnly: s.ForecastOnly,
		Missing:      s.Missing,
		Stats: models.IntensityStats{
			Min:  s.Min,
			Max:  s.Max,
			Mean: s.Mean,
			P05:  s.P05,
			P95:  s.P95,
		},
	})
}

// GetDaily handles GET /api/v1/daily
func (h *DashboardHandler) GetDaily(c *gin.Context) {
	l := h.loadOrRespond(c)
	if l == nil {
		return
	}
	points := make([]models.DailyPoint, len(l.report.Daily))
	for i, p := range l.report.Daily {
		points[i] = models.DailyPoint{
			Date:     p.Day.Format("2006-01-02"),
			Mean:     p.Mean,
			Rolling7: l.report.Rolling[i],
			Count:    p.Count,
		}
	}
	c.JSON(http.StatusOK, models.DailyResponse{Source: l.source(), Points: points})
}

// GetHourly handles GET /api/v1/hourly
func (h *DashboardHandler) GetHourly(c *gin.Context) {
	l := h.loadOrRespond(c)
	if l == nil {
		return
	}
	points := make([]models.HourPoint, len(l.report.Hourly))
	for i, p := range l.report.Hourly {
		points[i] = models.HourPoint{Hour: p.Hour, Mean: p.Mean, Count: p.Count}
	}
	c.JSON(http.StatusOK, models.HourlyResponse{Source: l.source(), Points: points})
}

// DailyChart handles GET /charts/daily.svg
func (h *DashboardHandler) DailyChart(c *gin.Context) {
	l := h.loadOrRespond(c)
	if l == nil {
		return
	}
	svg, err := charts.DailySVG(l.report.Daily, l.report.Rolling)
	writeSVG(c, svg, err)
}

// HourlyChart handles GET /charts/hourly.svg
func (h *DashboardHandler) HourlyChart(c *gin.Context) {
	l := h.loadOrRespond(c)
	if l == nil {
		return
	}
	svg, err := charts.HourlySVG(l.report.Hourly)
	writeSVG(c, svg, err)
}

func writeSVG(c *gin.Context, svg []byte, err error) {
	switch {
	case errors.Is(err, charts.ErrNoData):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "NO_DATA", Message: "Snapshot has no plottable values"},
		})
	case err != nil:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CHART_ERROR", Message: err.Error()},
		})
	default:
		c.Data(http.StatusOK, "image/svg+xml", svg)
	}
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
