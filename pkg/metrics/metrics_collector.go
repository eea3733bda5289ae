package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector 指标收集器
type MetricsCollector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 报表查询指标
	reportQueryDuration *prometheus.HistogramVec
	reportRowsReturned  *prometheus.HistogramVec

	// 导出指标
	exportTotal    *prometheus.CounterVec
	exportDuration prometheus.Histogram
	exportFileSize prometheus.Histogram
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		reportQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_query_duration_seconds",
				Help:    "Redemption report query duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		reportRowsReturned: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "report_rows_returned",
				Help:    "Number of rows returned by report queries",
				Buckets: []float64{0, 10, 50, 100, 200, 1000, 5000},
			},
			[]string{"query"},
		),
		exportTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redemption_exports_total",
				Help: "Total number of redemption CSV exports",
			},
			[]string{"status"},
		),
		exportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "redemption_export_duration_seconds",
				Help:    "End-to-end duration of a redemption CSV export",
				Buckets: prometheus.DefBuckets,
			},
		),
		exportFileSize: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "redemption_export_file_bytes",
				Help:    "Size of exported CSV files in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
			},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordReportQuery 记录报表查询
func (m *MetricsCollector) RecordReportQuery(query string, rows int, duration time.Duration) {
	m.reportQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	m.reportRowsReturned.WithLabelValues(query).Observe(float64(rows))
}

// RecordExport 记录一次导出
func (m *MetricsCollector) RecordExport(status string, fileBytes int, duration time.Duration) {
	m.exportTotal.WithLabelValues(status).Inc()
	if status == "success" {
		m.exportDuration.Observe(duration.Seconds())
		m.exportFileSize.Observe(float64(fileBytes))
	}
}

var (
	globalCollector *MetricsCollector
	collectorOnce   sync.Once
)

// GetGlobalCollector 获取全局指标收集器
func GetGlobalCollector() *MetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = NewMetricsCollector()
	})
	return globalCollector
}
