package dto

import (
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// ChangeRecordResponse defines the data returned for one change log entry.
// Timestamps are rendered as RFC 3339 strings for the history view.
type ChangeRecordResponse struct {
	ChangeID      int64               `json:"changeID"`
	EntityType    domain.EntityType   `json:"entityType"`
	EntityID      int64               `json:"entityID"`
	Action        domain.ChangeAction `json:"actionType"`
	Description   string              `json:"description"`
	PreviousValue string              `json:"previousValue,omitempty"`
	NewValue      string              `json:"newValue,omitempty"`
	UserID        int64               `json:"userID"`
	UserName      string              `json:"userName"`
	Timestamp     string              `json:"timestamp"`
}

// ToChangeRecordResponse converts a domain.ChangeRecord to its response
// shape.
func ToChangeRecordResponse(r *domain.ChangeRecord) ChangeRecordResponse {
	return ChangeRecordResponse{
		ChangeID:      r.ChangeID,
		EntityType:    r.EntityType,
		EntityID:      r.EntityID,
		Action:        r.Action,
		Description:   r.Description,
		PreviousValue: r.PreviousValue,
		NewValue:      r.NewValue,
		UserID:        r.UserID,
		UserName:      r.UserName,
		Timestamp:     r.Timestamp.UTC().Format(time.RFC3339),
	}
}

// ToListChangeRecordResponse converts a slice of domain.ChangeRecord to
// responses, preserving order.
func ToListChangeRecordResponse(records []domain.ChangeRecord) []ChangeRecordResponse {
	res := make([]ChangeRecordResponse, len(records))
	for i := range records {
		res[i] = ToChangeRecordResponse(&records[i])
	}
	return res
}
