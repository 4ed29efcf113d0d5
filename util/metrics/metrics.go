package metrics

import "github.com/prometheus/client_golang/prometheus"

// RegisterPrometheusMetrics register all prometheus metrics with the global
// metrics handler.
func RegisterPrometheusMetrics() {
	prometheus.Register(DocumentsLoaded)
	prometheus.Register(ParseErrors)
	prometheus.Register(ValidationErrors)
	prometheus.Register(CatalogSize)
	prometheus.Register(RenderTimeSeconds)
}

// Prometheus metric names broken out for reuse.
const (
	DocumentsLoadedName   = "documents_loaded"
	ParseErrorsName       = "parse_errors"
	ValidationErrorsName  = "validation_errors"
	CatalogSizeName       = "catalog_size"
	RenderTimeSecondsName = "render_time_sec"
)

// Initialize the prometheus objects.
var (
	// AllMetricNames is a reference for all the custom metric names.
	AllMetricNames = []string{
		DocumentsLoadedName,
		ParseErrorsName,
		ValidationErrorsName,
		CatalogSizeName,
		RenderTimeSecondsName,
	}

	DocumentsLoaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: "catalog",
			Name:      DocumentsLoadedName,
			Help:      "Cumulative metadata documents parsed successfully.",
		})

	ParseErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Subsystem: "catalog",
			Name:      ParseErrorsName,
			Help:      "Cumulative documents rejected as malformed.",
		})

	ValidationErrors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: "catalog",
			Name:      ValidationErrorsName,
			Help:      "Diagnostics reported by the most recent validation pass.",
		})

	CatalogSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Subsystem: "catalog",
			Name:      CatalogSizeName,
			Help:      "Component records in the loaded catalog.",
		})

	RenderTimeSeconds = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Subsystem: "catalog",
			Name:      RenderTimeSecondsName,
			Help:      "Time in seconds spent rendering one record.",
		})
)
