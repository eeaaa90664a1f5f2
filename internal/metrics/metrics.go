package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricPrefix = "crewledger_"

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	billingConfirmTotal  *prometheus.CounterVec
	exchangeBuildLatency prometheus.Histogram
)

// Init registers the application metrics with the default registry.
// Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method and status code",
			},
			[]string{"method", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)
		billingConfirmTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "billing_confirm_total",
				Help: "Billing document confirmations by result",
			},
			[]string{"result"},
		)
		exchangeBuildLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "exchange_summary_build_seconds",
				Help:    "Latency of exchange settlement summary builds",
				Buckets: prometheus.DefBuckets,
			},
		)

		prometheus.MustRegister(httpRequests, httpLatency, billingConfirmTotal, exchangeBuildLatency)
	})
}

// ObserveBillingConfirm records the outcome of a confirm-and-post call
func ObserveBillingConfirm(result string) {
	if billingConfirmTotal != nil {
		billingConfirmTotal.WithLabelValues(result).Inc()
	}
}

// ObserveExchangeBuild records how long a summary build took
func ObserveExchangeBuild(d time.Duration) {
	if exchangeBuildLatency != nil {
		exchangeBuildLatency.Observe(d.Seconds())
	}
}

// statusRecorder captures the status code written by downstream handlers
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments every request with a counter and latency histogram
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if httpRequests == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		httpRequests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		httpLatency.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
