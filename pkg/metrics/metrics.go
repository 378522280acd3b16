package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	hiringPipeline = "hiring_pipeline"

	// Transition metrics
	transitionsTotal = "transitions_total"

	// Pipeline metrics
	CandidateStatusCount = "candidate_status_count"

	// Labels
	transitionEventLabel   = "event"
	transitionOutcomeLabel = "outcome"
	candidateStatusLabel   = "status"
)

// Transition outcomes.
const (
	TransitionOutcomeApplied  = "applied"
	TransitionOutcomeRefused  = "refused"
	TransitionOutcomeConflict = "conflict"
	TransitionOutcomeError    = "error"
)

var transitionsTotalLabels = []string{
	transitionEventLabel,
	transitionOutcomeLabel,
}

var candidateStatusCountLabels = []string{
	candidateStatusLabel,
}

/**
* Metrics definition
**/
var transitionsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: hiringPipeline,
		Name:      transitionsTotal,
		Help:      "number of lifecycle transitions processed, by event and outcome",
	},
	transitionsTotalLabels,
)

var candidateStatusCountMetric = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Subsystem: hiringPipeline,
		Name:      CandidateStatusCount,
		Help:      "metrics to record the number of candidates in each status",
	},
	candidateStatusCountLabels,
)

func IncreaseTransitionsTotalMetric(event, outcome string) {
	labels := prometheus.Labels{
		transitionEventLabel:   event,
		transitionOutcomeLabel: outcome,
	}
	transitionsTotalMetric.With(labels).Inc()
}

func UpdateCandidateStatusCountMetric(status string, count int) {
	labels := prometheus.Labels{
		candidateStatusLabel: status,
	}
	candidateStatusCountMetric.With(labels).Set(float64(count))
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(transitionsTotalMetric)
	prometheus.MustRegister(candidateStatusCountMetric)
}
