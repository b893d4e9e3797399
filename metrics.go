package classifier

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus series recorded for each classification.
type Metrics struct {
	classifications *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// NewMetrics creates the classifier series and registers them with reg. If
// the series are already registered, as happens when several classifiers
// share a registry, the existing collectors are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	classifications := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sara_intent_classifications_total",
			Help: "Total number of classified utterances, partitioned by intent and answering tier.",
		},
		[]string{"intent", "source"},
	)
	latency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sara_intent_classification_seconds",
			Help:    "Histogram of classification latency in seconds, partitioned by answering tier.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"source"},
	)

	var err error
	if classifications, err = register(reg, classifications); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	return &Metrics{classifications: classifications, latency: latency}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observe(res *Result) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(string(res.Intent), string(res.Source)).Inc()
	m.latency.WithLabelValues(string(res.Source)).Observe(res.Latency.Seconds())
}

// stats tracks per-source counts for Stats.
type stats struct {
	total    int
	bySource map[Source]int
}

func (s *stats) record(source Source) {
	if s.bySource == nil {
		s.bySource = make(map[Source]int)
	}
	s.total++
	s.bySource[source]++
}
