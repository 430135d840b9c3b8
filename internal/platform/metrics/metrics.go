// Package metrics provides Prometheus observability for the CRM core: how
// many mutations and stage transitions each entity type sees, and how long
// stage transitions take.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks CRM mutation counts and stage transition latency, labeled
// by entity type.
type Metrics struct {
	EntityCreated           *prometheus.CounterVec
	EntityDeleted           *prometheus.CounterVec
	StageTransitions        *prometheus.CounterVec
	ChangeRecordsAppended   prometheus.Counter
	StageTransitionDuration prometheus.Histogram
}

// New creates a Metrics instance with all CRM metrics registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		EntityCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_entities_created_total",
			Help: "Total number of entities created",
		}, []string{"entity_type"}),
		EntityDeleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_entities_deleted_total",
			Help: "Total number of entities deleted",
		}, []string{"entity_type"}),
		StageTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crm_stage_transitions_total",
			Help: "Total number of stage transitions, including no-op transitions",
		}, []string{"entity_type"}),
		ChangeRecordsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crm_change_records_appended_total",
			Help: "Total number of change log records appended",
		}),
		StageTransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crm_stage_transition_duration_seconds",
			Help:    "Duration of stage transition operations including the change log append",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementEntityCreated records a successful entity creation.
func (m *Metrics) IncrementEntityCreated(entityType string) {
	m.EntityCreated.WithLabelValues(entityType).Inc()
}

// IncrementEntityDeleted records a successful entity deletion.
func (m *Metrics) IncrementEntityDeleted(entityType string) {
	m.EntityDeleted.WithLabelValues(entityType).Inc()
}

// IncrementStageTransition records a stage transition.
func (m *Metrics) IncrementStageTransition(entityType string) {
	m.StageTransitions.WithLabelValues(entityType).Inc()
}

// IncrementChangeRecord records an appended change log record.
func (m *Metrics) IncrementChangeRecord() {
	m.ChangeRecordsAppended.Inc()
}

// ObserveStageTransition records the duration of a stage transition. Call
// with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveStageTransition(start time.Time) {
	m.StageTransitionDuration.Observe(time.Since(start).Seconds())
}
