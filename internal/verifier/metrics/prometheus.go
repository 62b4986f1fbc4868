package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "triggerx"
	subsystem = "sybil_verifier"
)

var (
	startTime = time.Now()

	// UptimeSeconds tracks the verifier uptime in seconds
	UptimeSeconds = promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "uptime_seconds",
		Help:      "Time passed since the verifier started in seconds",
	}, func() float64 {
		return time.Since(startTime).Seconds()
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests received",
	}, []string{"method", "endpoint", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request processing time",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	PanicRecoveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "panic_recoveries_total",
		Help:      "Panics recovered by the HTTP middleware",
	}, []string{"endpoint"})

	RequestTimeoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_timeouts_total",
		Help:      "Requests aborted by the timeout middleware",
	}, []string{"endpoint"})

	// VerificationsTotal counts outcomes; result is "verified" or a rejection reason
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "verifications_total",
		Help:      "Verification outcomes by result",
	}, []string{"result"})

	SourceFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "source_fetch_duration_seconds",
		Help:      "Time spent fetching posts from the social platform",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"source", "status"})

	StoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_operations_total",
		Help:      "Attestation store operations by backend, operation and result",
	}, []string{"backend", "operation", "result"})

	StoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "store_operation_duration_seconds",
		Help:      "Attestation store operation latency",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"backend", "operation"})
)
