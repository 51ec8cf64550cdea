package observability

import (
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Error kinds recorded for upstream calls.
const (
	ErrorKindAPI       = "api"
	ErrorKindTransport = "transport"
)

// Transfer submission outcomes.
const (
	SubmissionSuccess = "success"
	SubmissionInvalid = "invalid"
	SubmissionFailed  = "failed"
)

const (
	metricUpstreamDuration = "northwind_upstream_request_duration_seconds"
	metricUpstreamErrors   = "northwind_upstream_errors_total"
	metricCacheHits        = "bfa_cache_hits_total"
	metricCacheMisses      = "bfa_cache_misses_total"
	metricSubmissions      = "bfa_transfer_submissions_total"
)

// Metrics holds all Prometheus metrics for the BFA.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	submissions      *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricUpstreamDuration,
				Help:    "Duration of Northwind API calls by facade operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricUpstreamErrors,
				Help: "Failed Northwind API calls by operation and kind (api, transport).",
			},
			[]string{"operation", "kind"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricCacheHits,
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricCacheMisses,
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricSubmissions,
				Help: "Transfer form submissions by outcome.",
			},
			[]string{"status"},
		),
	}
}

// RecordUpstream records the duration of one Northwind call.
func (m *Metrics) RecordUpstream(operation string, d time.Duration) {
	m.upstreamDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrUpstreamError increments the upstream error counter.
func (m *Metrics) IncrUpstreamError(operation, kind string) {
	m.upstreamErrors.WithLabelValues(operation, kind).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSubmission counts a transfer form submission by outcome.
func (m *Metrics) IncrSubmission(status string) {
	m.submissions.WithLabelValues(status).Inc()
}

// UpstreamSnapshot summarizes the registry for GET /v1/metrics/upstream.
// Counters are cumulative since process start.
func (m *Metrics) UpstreamSnapshot() (*domain.UpstreamMetrics, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}

	snap := &domain.UpstreamMetrics{Operations: make(map[string]domain.OperationMetrics)}
	var hits, misses float64

	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := labelMap(metric)
			switch mf.GetName() {
			case metricUpstreamDuration:
				h := metric.GetHistogram()
				op := snap.Operations[labels["operation"]]
				op.Calls = int64(h.GetSampleCount())
				if h.GetSampleCount() > 0 {
					op.AvgLatencyMs = h.GetSampleSum() / float64(h.GetSampleCount()) * 1000
				}
				snap.Operations[labels["operation"]] = op
			case metricUpstreamErrors:
				op := snap.Operations[labels["operation"]]
				n := int64(metric.GetCounter().GetValue())
				if labels["kind"] == ErrorKindAPI {
					op.APIErrors += n
				} else {
					op.TransportErrors += n
				}
				snap.Operations[labels["operation"]] = op
			case metricCacheHits:
				hits += metric.GetCounter().GetValue()
			case metricCacheMisses:
				misses += metric.GetCounter().GetValue()
			case metricSubmissions:
				n := int64(metric.GetCounter().GetValue())
				switch labels["status"] {
				case SubmissionSuccess:
					snap.TransfersOK = n
				case SubmissionInvalid:
					snap.TransfersInvalid = n
				case SubmissionFailed:
					snap.TransfersFailed = n
				}
			}
		}
	}

	if hits+misses > 0 {
		snap.CacheHitRate = hits / (hits + misses)
	}
	return snap, nil
}

func labelMap(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
