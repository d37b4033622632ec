package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the assistant's Prometheus collectors.
//
//   - admitiq_chat_replies_total{kind} - replies by kind (greeting, meta, answer, clarify, fallback)
//   - admitiq_match_score - best score of every matcher scan
//   - admitiq_match_results_total{result} - matcher scans by result (matched, no_match)
//   - admitiq_active_sessions - sessions currently held in memory
type Metrics struct {
	RepliesTotal   *prometheus.CounterVec
	MatchScore     prometheus.Histogram
	MatchResults   *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New returns the process-wide metrics, registering them on first use.
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RepliesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "admitiq_chat_replies_total",
					Help: "Total number of chat replies by kind",
				},
				[]string{"kind"},
			),
			MatchScore: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "admitiq_match_score",
					Help:    "Best record score of each knowledge base scan",
					Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12, 16},
				},
			),
			MatchResults: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "admitiq_match_results_total",
					Help: "Total number of knowledge base scans by result",
				},
				[]string{"result"},
			),
			ActiveSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "admitiq_active_sessions",
					Help: "Number of chat sessions held in memory",
				},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) ObserveReply(kind string) {
	m.RepliesTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveMatchScore(score float64, matched bool) {
	m.MatchScore.Observe(score)
	result := "no_match"
	if matched {
		result = "matched"
	}
	m.MatchResults.WithLabelValues(result).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
