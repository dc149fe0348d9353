// Package metrics exposes Prometheus collectors for refresh runs and upstream
// fetches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	interfaces "github.com/asep96/OSRS-GrandExchange-App/internal/domain/interfaces"
)

const namespace = "ge"

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	_ interfaces.RefreshMetrics = (*Recorder)(nil)
	_ interfaces.FetchMetrics   = (*Recorder)(nil)
)

// Recorder implements the refresh and fetch metric ports.
type Recorder struct {
	RefreshTotal  *prometheus.CounterVec
	RefreshRows   *prometheus.GaugeVec
	FetchDuration *prometheus.HistogramVec
	FetchErrors   *prometheus.CounterVec
}

func New() *Recorder {
	return &Recorder{
		RefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_total",
			Help:      "Refresh runs by kind and outcome",
		}, []string{"kind", "outcome"}),
		RefreshRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "refresh_rows",
			Help:      "Rows committed by the last successful refresh of each kind",
		}, []string{"kind"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_seconds",
			Help:      "Upstream feed request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"feed"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetch_errors_total",
			Help:      "Failed upstream feed requests",
		}, []string{"feed"}),
	}
}

// Register adds every collector to reg.
func (r *Recorder) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{r.RefreshTotal, r.RefreshRows, r.FetchDuration, r.FetchErrors} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recorder) RefreshCompleted(kind string, rows int) {
	r.RefreshTotal.WithLabelValues(kind, outcomeSuccess).Inc()
	r.RefreshRows.WithLabelValues(kind).Set(float64(rows))
}

func (r *Recorder) RefreshFailed(kind string) {
	r.RefreshTotal.WithLabelValues(kind, outcomeFailure).Inc()
}

func (r *Recorder) FetchObserved(feed string, took time.Duration, err error) {
	r.FetchDuration.WithLabelValues(feed).Observe(took.Seconds())
	if err != nil {
		r.FetchErrors.WithLabelValues(feed).Inc()
	}
}
