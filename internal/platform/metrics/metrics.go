package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RequestLatency    *prometheus.HistogramVec
	ValidationsTotal  *prometheus.CounterVec
	TranslationsTotal prometheus.Counter
	CatalogSaves      prometheus.Counter
	AuditDropped      prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "axisd_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		ValidationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "axisd_coordinate_validations_total",
			Help: "Coordinate validations by outcome (valid/invalid)",
		}, []string{"outcome"}),
		TranslationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "axisd_text_translations_total",
			Help: "Total text-to-coordinate translations performed",
		}),
		CatalogSaves: promauto.NewCounter(prometheus.CounterOpts{
			Name: "axisd_catalog_saves_total",
			Help: "Total coordinates saved to the catalog",
		}),
		AuditDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "axisd_audit_events_dropped_total",
			Help: "Audit events dropped because the publish buffer was full",
		}),
	}
}

// ObserveValidation records a validation outcome. Safe on a nil receiver so
// services can run without metrics in tests.
func (m *Metrics) ObserveValidation(valid bool) {
	if m == nil {
		return
	}
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	m.ValidationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTranslation records one text-to-coordinate translation.
func (m *Metrics) ObserveTranslation() {
	if m == nil {
		return
	}
	m.TranslationsTotal.Inc()
}

// ObserveCatalogSave records one catalog save.
func (m *Metrics) ObserveCatalogSave() {
	if m == nil {
		return
	}
	m.CatalogSaves.Inc()
}

// ObserveAuditDrop records one dropped audit event.
func (m *Metrics) ObserveAuditDrop() {
	if m == nil {
		return
	}
	m.AuditDropped.Inc()
}
