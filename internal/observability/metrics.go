package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// Weather fetches by outcome (success, http_error, transport_error, malformed, config_error).
	WeatherFetchesTotal *prometheus.CounterVec

	// Weather fetch latency. Watch for: p95 creeping towards the refresh interval.
	WeatherFetchDuration *prometheus.HistogramVec

	// Unix time of the last reading pushed to the display.
	WeatherLastUpdate prometheus.Gauge

	// Clock task firings. Should grow by ~1/s while running.
	ClockTicksTotal prometheus.Counter

	// Display messages dropped because the surface was not running.
	DroppedDispatchesTotal prometheus.Counter
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	WeatherFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherFetchesTotal",
			Help: "Total number of weather API fetches by outcome",
		},
		[]string{"outcome"},
	)
	WeatherFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherFetchDurationSeconds",
			Help:    "Weather API latency in seconds (per fetch)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)
	WeatherLastUpdate = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "weatherLastUpdateTimestampSeconds",
			Help: "Unix time of the last weather reading shown on the display",
		},
	)
	ClockTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clockTicksTotal",
			Help: "Total number of clock refreshes",
		},
	)
	DroppedDispatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "droppedDispatchesTotal",
			Help: "Display updates dropped because the surface was not running",
		},
	)

	registry.MustRegister(
		WeatherFetchesTotal, WeatherFetchDuration, WeatherLastUpdate,
		ClockTicksTotal, DroppedDispatchesTotal,
	)
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
