package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the boleta
// subsystem.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	savesTotal      *prometheus.CounterVec
	classifierTotal *prometheus.CounterVec
	rosterFailures  prometheus.Counter
	rosterCacheHits prometheus.Counter
	rosterCacheMiss prometheus.Counter
	decodeFailures  prometheus.Counter
	pdfDuration     prometheus.Histogram
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	savesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boleta_saves_total",
		Help: "Boleta saves grouped by resulting approval status",
	}, []string{"status"})

	classifierTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "boleta_classifier_outcomes_total",
		Help: "Level classifier outcomes",
	}, []string{"outcome"})

	rosterFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boleta_roster_lookup_failures_total",
		Help: "Supplementary roster lookups that degraded to a placeholder",
	})

	rosterCacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boleta_roster_cache_hits_total",
		Help: "Roster display-name cache hits",
	})

	rosterCacheMiss := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boleta_roster_cache_misses_total",
		Help: "Roster display-name cache misses",
	})

	decodeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "boleta_content_decode_failures_total",
		Help: "Stored boleta payloads that failed to decode",
	})

	pdfDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "boleta_pdf_render_seconds",
		Help:    "Duration of boleta PDF rendering",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, savesTotal, classifierTotal,
		rosterFailures, rosterCacheHits, rosterCacheMiss, decodeFailures, pdfDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		savesTotal:      savesTotal,
		classifierTotal: classifierTotal,
		rosterFailures:  rosterFailures,
		rosterCacheHits: rosterCacheHits,
		rosterCacheMiss: rosterCacheMiss,
		decodeFailures:  decodeFailures,
		pdfDuration:     pdfDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordSave counts a boleta save by resulting status.
func (m *MetricsService) RecordSave(status string) {
	if m == nil {
		return
	}
	m.savesTotal.WithLabelValues(status).Inc()
}

// RecordClassification counts a classifier outcome ("tag", "pattern",
// "undetermined").
func (m *MetricsService) RecordClassification(outcome string) {
	if m == nil {
		return
	}
	m.classifierTotal.WithLabelValues(outcome).Inc()
}

// RecordRosterLookupFailure counts a degraded supplementary lookup.
func (m *MetricsService) RecordRosterLookupFailure() {
	if m == nil {
		return
	}
	m.rosterFailures.Inc()
}

// RecordRosterCache counts a display-name cache hit or miss.
func (m *MetricsService) RecordRosterCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.rosterCacheHits.Inc()
	} else {
		m.rosterCacheMiss.Inc()
	}
}

// RecordDecodeFailure counts a stored payload that failed to parse.
func (m *MetricsService) RecordDecodeFailure() {
	if m == nil {
		return
	}
	m.decodeFailures.Inc()
}

// ObservePDFRender tracks PDF rendering time.
func (m *MetricsService) ObservePDFRender(duration time.Duration) {
	if m == nil {
		return
	}
	m.pdfDuration.Observe(duration.Seconds())
}
