package dto

import (
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// ScheduleVisitRequest defines the data needed to schedule a property visit.
type ScheduleVisitRequest struct {
	OpportunityID int64     `json:"opportunityID" binding:"required"`
	PropertyID    int64     `json:"propertyID" binding:"required"`
	AgentID       int64     `json:"agentID" binding:"required"`
	ScheduledAt   time.Time `json:"scheduledAt" binding:"required"`
	Notes         string    `json:"notes"`
}

// UpdateVisitRequest defines the data allowed for updating a visit.
type UpdateVisitRequest struct {
	ScheduledAt *time.Time `json:"scheduledAt"`
	AgentID     *int64     `json:"agentID"`
	Notes       *string    `json:"notes"`
}

// VisitResponse defines the data returned for a visit.
type VisitResponse struct {
	VisitID       int64              `json:"visitID"`
	OpportunityID int64              `json:"opportunityID"`
	PropertyID    int64              `json:"propertyID"`
	AgentID       int64              `json:"agentID"`
	ScheduledAt   time.Time          `json:"scheduledAt"`
	Status        domain.VisitStatus `json:"status"`
	Notes         string             `json:"notes"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ToVisitResponse converts a domain.Visit to VisitResponse.
func ToVisitResponse(v *domain.Visit) VisitResponse {
	return VisitResponse{
		VisitID:       v.VisitID,
		OpportunityID: v.OpportunityID,
		PropertyID:    v.PropertyID,
		AgentID:       v.AgentID,
		ScheduledAt:   v.ScheduledAt,
		Status:        v.Status,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// ToListVisitResponse converts a slice of domain.Visit to responses.
func ToListVisitResponse(visits []domain.Visit) []VisitResponse {
	res := make([]VisitResponse, len(visits))
	for i := range visits {
		res[i] = ToVisitResponse(&visits[i])
	}
	return res
}
