// Package metrics holds the Prometheus metrics of the ledger node.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-gene-consent/internal/ledger"
	"github.com/MKhiriev/go-gene-consent/models"
)

// Submission outcomes.
const (
	OutcomeApplied     = "applied"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
)

// Metrics provides observability for transaction processing.
type Metrics struct {
	// Submitted transactions by kind and outcome
	SubmittedTx *prometheus.CounterVec

	// Time spent in Submit by kind
	ApplyDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the metrics on a fresh registry that also carries the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the metrics on reg and serves them from gatherer.
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SubmittedTx: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gene_consent_ledger_tx_total",
			Help: "Total submitted ledger transactions by kind and outcome",
		}, []string{"kind", "outcome"}),

		ApplyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gene_consent_ledger_apply_duration_seconds",
			Help:    "Duration of transaction validation and apply by kind",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),

		gatherer: gatherer,
	}
}

// ObserveSubmit records one Submit call.
func (m *Metrics) ObserveSubmit(kind models.TxKind, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.SubmittedTx.WithLabelValues(string(kind), Outcome(err)).Inc()
	m.ApplyDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Outcome names the result of a Submit for labelling.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, ledger.ErrLedgerRejected):
		return OutcomeRejected
	default:
		return OutcomeUnavailable
	}
}
