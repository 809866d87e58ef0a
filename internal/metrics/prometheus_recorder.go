package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "nmcr"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	parseDuration   *prom.HistogramVec
	documentResults *prom.CounterVec
	loadDuration    prom.Histogram
	loadOutcomes    *prom.CounterVec
	catalogEntries  *prom.GaugeVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		parseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "document_parse_duration_seconds",
			Help:      "Duration of parsing one template document",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"kind"}),
		documentResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "document_results_total",
			Help:      "Parsed documents by outcome",
		}, []string{"result"}),
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_load_duration_seconds",
			Help:      "Total catalog load duration",
			Buckets:   prom.DefBuckets,
		}),
		loadOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog loads by outcome",
		}, []string{"outcome"}),
		catalogEntries: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entries",
			Help:      "Entries in the most recently loaded catalog",
		}, []string{"type"}),
	}
	reg.MustRegister(pr.parseDuration, pr.documentResults, pr.loadDuration, pr.loadOutcomes, pr.catalogEntries)
	return pr
}

func (p *PrometheusRecorder) ObserveParseDuration(kind string, d time.Duration) {
	if p == nil {
		return
	}
	if kind == "" {
		kind = "none"
	}
	p.parseDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncDocumentResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.documentResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoadOutcome(outcome ResultLabel) {
	if p == nil {
		return
	}
	p.loadOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetCatalogSize(files, trees int) {
	if p == nil {
		return
	}
	p.catalogEntries.WithLabelValues("file").Set(float64(files))
	p.catalogEntries.WithLabelValues("tree").Set(float64(trees))
}
