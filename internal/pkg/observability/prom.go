package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "chartengine"
)

var (
	ChartVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "chart", "verify_duration_seconds"),
		Help:    "Duration of chart configuration verification in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	}, []string{"verifier"})
	ChartRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "chart", "rejections_total"),
		Help: "Chart configurations rejected, by verifier and chart type",
	}, []string{"verifier", "type"})
	ChartCalculateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "chart", "calculate_duration_seconds"),
		Help:    "Duration of a single chart calculation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14),
	}, []string{"type"})
	ChartElementsNA = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "chart", "elements_na_total"),
		Help: "Chart elements whose formula evaluated to NA",
	}, []string{"type"})
	ChartVisibility = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "chart", "results_total"),
		Help: "Calculated charts by type and visibility",
	}, []string{"type", "valid"})
	BatchItemFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "batch", "item_failures_total"),
		Help: "Batch items that failed with an error or a recovered panic",
	})
	WorkerCalcDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: prometheus.BuildFQName(ServiceName, "worker", "calc_duration_seconds"),
		Help: "Duration of last worker calculation in seconds",
	})
)
