package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "carbon_intensity"

// Registry holds every dashboard metric, apart from the default registry.
var Registry = prometheus.NewRegistry()

var (
	// DashboardLoads counts snapshot loads by result: "ok", "no_snapshot", "error".
	DashboardLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "loads_total",
			Help:      "Number of dashboard snapshot loads by result",
		},
		[]string{"result"},
	)

	// SnapshotRows is the row count of the most recently loaded snapshot.
	SnapshotRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "snapshot_rows",
			Help:      "Rows in the most recently loaded processed snapshot",
		},
	)

	// LatestIntensity is the effective intensity (gCO2/kWh) of the newest reading loaded.
	LatestIntensity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "latest_gco2_per_kwh",
			Help:      "Effective carbon intensity of the latest reading in the loaded snapshot",
		},
	)

	// RequestDuration measures HTTP handler latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of dashboard HTTP requests",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		},
		[]string{"route", "status"},
	)
)

func init() {
	Registry.MustRegister(
		DashboardLoads,
		SnapshotRows,
		LatestIntensity,
		RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
