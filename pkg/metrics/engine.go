package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Assignment attempt outcomes recorded on the engine counters.
const (
	OutcomeAssigned          = "assigned"
	OutcomeCapacityRejected  = "capacity_rejected"
	OutcomeDuplicateRejected = "duplicate_rejected"
	OutcomeError             = "error"
)

// EngineMetrics records assignment engine activity.
type EngineMetrics struct {
	attempts    *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_attempts_total",
		Help: "Assignment attempts by outcome.",
	}, []string{"outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shift_status_transitions_total",
		Help: "Shift status transitions applied by the engine.",
	}, []string{"to"})
	reg.MustRegister(attempts, transitions)
	return &EngineMetrics{
		attempts:    attempts,
		transitions: transitions,
	}
}

// IncAttempt increments the attempt counter for the given outcome.
func (m *EngineMetrics) IncAttempt(outcome string) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncTransition increments the transition counter for the target status.
func (m *EngineMetrics) IncTransition(to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(to)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
