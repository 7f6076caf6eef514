package observability

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/jonathan/candidate-matcher/internal/ranking"
)

// RecorderOption configures a Recorder
type RecorderOption func(*Recorder)

// WithNamespace sets the namespace for all metrics
func WithNamespace(namespace string) RecorderOption {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics
func WithSubsystem(subsystem string) RecorderOption {
	return func(r *Recorder) {
		if subsystem != "" {
			r.subsystem = subsystem
		}
	}
}

// WithDurationBuckets sets the histogram buckets for ranking duration, in seconds
func WithDurationBuckets(buckets []float64) RecorderOption {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.durationBuckets = buckets
		}
	}
}

// WithRegisterer sets the Prometheus registerer metrics are created on
func WithRegisterer(reg prometheus.Registerer) RecorderOption {
	return func(r *Recorder) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// Recorder exports ranking pipeline measurements as Prometheus metrics
type Recorder struct {
	namespace       string
	subsystem       string
	durationBuckets []float64
	registry        prometheus.Registerer

	retrieved         prometheus.Counter
	filtered          prometheus.Counter
	scored            prometheus.Counter
	retrievalFailures prometheus.Counter
	compositeScores   prometheus.Histogram
	rankDuration      prometheus.Histogram
}

var _ ranking.Recorder = (*Recorder)(nil)

// NewRecorder creates a Recorder and registers its metrics.
// Registering twice on the same registerer panics, as promauto does.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		namespace:       "matcher",
		subsystem:       "ranking",
		durationBuckets: prometheus.DefBuckets,
		registry:        prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(r)
	}

	factory := promauto.With(r.registry)
	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: r.namespace,
			Subsystem: r.subsystem,
			Name:      name,
			Help:      help,
		})
	}

	r.retrieved = counter("candidates_retrieved_total", "Candidates returned by the retriever")
	r.filtered = counter("candidates_filtered_total", "Candidates dropped by hard constraints")
	r.scored = counter("candidates_scored_total", "Candidates scored by the metrics calculator")
	r.retrievalFailures = counter("retrieval_failures_total", "Ranking runs aborted by a retrieval error")
	r.compositeScores = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "composite_score",
		Help:      "Distribution of composite scores (0-100)",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})
	r.rankDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "duration_seconds",
		Help:      "Wall time of a ranking run",
		Buckets:   r.durationBuckets,
	})
	return r
}

func (r *Recorder) CandidatesRetrieved(n int) { r.retrieved.Add(float64(n)) }

func (r *Recorder) CandidatesFiltered(n int) { r.filtered.Add(float64(n)) }

func (r *Recorder) CandidateScored(composite float64) {
	r.scored.Inc()
	r.compositeScores.Observe(composite)
}

func (r *Recorder) RetrievalFailed() { r.retrievalFailures.Inc() }

func (r *Recorder) RankCompleted(d time.Duration) { r.rankDuration.Observe(d.Seconds()) }

// WriteText writes every gathered metric family in the Prometheus text exposition format
func WriteText(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// CounterValues returns the value of every counter gathered, keyed by metric name
func CounterValues(gatherer prometheus.Gatherer) (map[string]float64, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}
	values := make(map[string]float64)
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		var total float64
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
		values[mf.GetName()] = total
	}
	return values, nil
}
