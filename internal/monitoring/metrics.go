package monitoring

import (
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsService interface {
	// HTTP metrics
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)

	// Advice metrics
	RecordAdviceGenerated(source string)
	RecordChatReply(source string)

	// Completion backend metrics
	RecordCompletionCall(success bool, duration time.Duration)

	// Cache metrics
	RecordCacheLookup(hit bool)

	// Snapshot job metrics
	RecordSnapshotRun(portfolios int, duration time.Duration)
	IncrementSnapshotErrors()

	// System metrics
	RecordSystemMetrics()
}

type prometheusMetrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	adviceGeneratedTotal *prometheus.CounterVec
	chatRepliesTotal     *prometheus.CounterVec

	completionCallsTotal   *prometheus.CounterVec
	completionCallDuration prometheus.Histogram

	cacheLookupsTotal *prometheus.CounterVec

	snapshotRunsTotal   prometheus.Counter
	snapshotPortfolios  prometheus.Counter
	snapshotRunDuration prometheus.Histogram
	snapshotErrorsTotal prometheus.Counter

	memoryUsageGauge    prometheus.Gauge
	goroutineCountGauge prometheus.Gauge
	uptimeGauge         prometheus.Gauge

	startTime time.Time
}

func NewPrometheusMetrics() MetricsService {
	m := &prometheusMetrics{
		startTime: time.Now(),
	}

	m.initMetrics()
	return m
}

func (m *prometheusMetrics) initMetrics() {
	m.httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	m.httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisory_api_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	m.adviceGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_api_advice_generated_total",
			Help: "Total number of advice responses by source",
		},
		[]string{"source"},
	)

	m.chatRepliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_api_chat_replies_total",
			Help: "Total number of chat replies by source",
		},
		[]string{"source"},
	)

	m.completionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_api_completion_calls_total",
			Help: "Total number of text-completion backend calls",
		},
		[]string{"success"},
	)

	m.completionCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisory_api_completion_call_duration_seconds",
			Help:    "Text-completion backend call duration in seconds",
			Buckets: []float64{0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
		},
	)

	m.cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_api_cache_lookups_total",
			Help: "Total number of summary cache lookups",
		},
		[]string{"result"},
	)

	m.snapshotRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisory_api_snapshot_runs_total",
			Help: "Total number of snapshot job runs",
		},
	)

	m.snapshotPortfolios = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisory_api_snapshot_portfolios_total",
			Help: "Total number of portfolios snapshotted",
		},
	)

	m.snapshotRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisory_api_snapshot_run_duration_seconds",
			Help:    "Snapshot job run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 5.0, 30.0, 60.0},
		},
	)

	m.snapshotErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "advisory_api_snapshot_errors_total",
			Help: "Total number of snapshot job errors",
		},
	)

	m.memoryUsageGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisory_api_memory_usage_bytes",
			Help: "Current memory usage in bytes",
		},
	)

	m.goroutineCountGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisory_api_goroutines_count",
			Help: "Current number of goroutines",
		},
	)

	m.uptimeGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "advisory_api_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
}

func (m *prometheusMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordAdviceGenerated(source string) {
	m.adviceGeneratedTotal.WithLabelValues(source).Inc()
}

func (m *prometheusMetrics) RecordChatReply(source string) {
	m.chatRepliesTotal.WithLabelValues(source).Inc()
}

func (m *prometheusMetrics) RecordCompletionCall(success bool, duration time.Duration) {
	m.completionCallsTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.completionCallDuration.Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookupsTotal.WithLabelValues(result).Inc()
}

func (m *prometheusMetrics) RecordSnapshotRun(portfolios int, duration time.Duration) {
	m.snapshotRunsTotal.Inc()
	m.snapshotPortfolios.Add(float64(portfolios))
	m.snapshotRunDuration.Observe(duration.Seconds())
}

func (m *prometheusMetrics) IncrementSnapshotErrors() {
	m.snapshotErrorsTotal.Inc()
}

func (m *prometheusMetrics) RecordSystemMetrics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.memoryUsageGauge.Set(float64(memStats.Alloc))
	m.goroutineCountGauge.Set(float64(runtime.NumGoroutine()))
	m.uptimeGauge.Set(time.Since(m.startTime).Seconds())
}

// StartSystemMetricsRecording refreshes the system gauges in the background
func StartSystemMetricsRecording(metrics MetricsService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			metrics.RecordSystemMetrics()
		}
	}()
}

// Middleware records per-request metrics for every route
func Middleware(metrics MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

// Handler exposes the Prometheus scrape endpoint
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
