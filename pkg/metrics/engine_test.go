package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestEngineMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)

	m.IncAttempt(OutcomeAssigned)
	m.IncAttempt(OutcomeAssigned)
	m.IncAttempt(OutcomeCapacityRejected)
	m.IncTransition("ASSIGNED")

	if got := testutil.ToFloat64(m.attempts.WithLabelValues(OutcomeAssigned)); got != 2 {
		t.Fatalf("expected 2 assigned attempts, got %v", got)
	}
	if got := testutil.ToFloat64(m.attempts.WithLabelValues(OutcomeCapacityRejected)); got != 1 {
		t.Fatalf("expected 1 capacity rejection, got %v", got)
	}
	if got := testutil.ToFloat64(m.transitions.WithLabelValues("ASSIGNED")); got != 1 {
		t.Fatalf("expected 1 transition, got %v", got)
	}
}

func TestEngineMetricsNilSafe(t *testing.T) {
	var m *EngineMetrics
	m.IncAttempt(OutcomeError)
	m.IncTransition("OPEN")

	empty := NewEngineMetrics(nil)
	empty.IncAttempt("")
	empty.IncTransition("")
}
