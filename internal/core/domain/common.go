package domain

import "time"

// AuditFields holds standard bookkeeping information embedded in every
// domain entity. UpdatedAt is refreshed on each mutation and never moves
// backwards.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy int64     `json:"createdBy"` // Agent ID reference
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy int64     `json:"updatedBy"` // Agent ID reference
}

// NewAuditFields returns audit fields for a freshly created entity, with
// CreatedAt equal to UpdatedAt.
func NewAuditFields(agentID int64, now time.Time) AuditFields {
	return AuditFields{
		CreatedAt: now,
		CreatedBy: agentID,
		UpdatedAt: now,
		UpdatedBy: agentID,
	}
}

// Touch refreshes the update stamp for a mutation performed by the given
// agent.
func (a *AuditFields) Touch(agentID int64, now time.Time) {
	a.UpdatedAt = now
	a.UpdatedBy = agentID
}
