package domain

import "time"

// VisitStatus is the closed set of scheduling states for a property visit.
type VisitStatus string

const (
	VisitScheduled VisitStatus = "SCHEDULED"
	VisitConfirmed VisitStatus = "CONFIRMED"
	VisitCompleted VisitStatus = "COMPLETED"
	VisitCancelled VisitStatus = "CANCELLED"
	VisitNoShow    VisitStatus = "NO_SHOW"
)

// VisitStatuses lists every valid visit status.
var VisitStatuses = []VisitStatus{
	VisitScheduled,
	VisitConfirmed,
	VisitCompleted,
	VisitCancelled,
	VisitNoShow,
}

// ValidVisitStatus reports whether s belongs to the visit status enumeration.
func ValidVisitStatus(s VisitStatus) bool {
	for _, v := range VisitStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Visit represents a scheduled property viewing for an opportunity.
type Visit struct {
	VisitID       int64       `json:"visitID"`
	OpportunityID int64       `json:"opportunityID"` // FK -> opportunities.opportunity_id
	PropertyID    int64       `json:"propertyID"`    // FK -> properties.property_id
	AgentID       int64       `json:"agentID"`       // FK -> agents.agent_id
	ScheduledAt   time.Time   `json:"scheduledAt"`
	Status        VisitStatus `json:"status"`
	Notes         string      `json:"notes"`
	AuditFields
}
