package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// CreateOpportunityRequest defines the data needed to open an opportunity.
type CreateOpportunityRequest struct {
	ProspectID      int64           `json:"prospectID" binding:"required"`
	PropertyID      int64           `json:"propertyID" binding:"required"`
	AgentID         int64           `json:"agentID" binding:"required"`
	EstimatedAmount decimal.Decimal `json:"estimatedAmount" binding:"gte=0"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,len=3"`
	Observation     string          `json:"observation"`
}

// UpdateOpportunityRequest defines the data allowed for updating an
// opportunity. Pointers distinguish zero-value updates from fields not
// provided.
type UpdateOpportunityRequest struct {
	EstimatedAmount *decimal.Decimal `json:"estimatedAmount"`
	AgentID         *int64           `json:"agentID"`
	Observation     *string          `json:"observation"`
}

// ChangeStageRequest carries the target stage for a stage transition. The
// same shape serves every audited entity; the handler interprets the stage
// string against the entity's own enumeration.
type ChangeStageRequest struct {
	Stage       string `json:"stage" binding:"required"`
	Observation string `json:"observation"`
}

// MoveOpportunityRequest carries a kanban drag-and-drop move: target column
// and position within it.
type MoveOpportunityRequest struct {
	Stage    domain.OpportunityStage `json:"stage" binding:"required"`
	Position int                     `json:"position" binding:"gte=0"`
}

// OpportunityResponse defines the data returned for an opportunity.
type OpportunityResponse struct {
	OpportunityID   int64                   `json:"opportunityID"`
	ProspectID      int64                   `json:"prospectID"`
	PropertyID      int64                   `json:"propertyID"`
	AgentID         int64                   `json:"agentID"`
	Stage           domain.OpportunityStage `json:"stage"`
	BoardPosition   int                     `json:"boardPosition"`
	EstimatedAmount decimal.Decimal         `json:"estimatedAmount"`
	CurrencyCode    string                  `json:"currencyCode"`
	Observation     string                  `json:"observation"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// ToOpportunityResponse converts a domain.Opportunity to
// OpportunityResponse.
func ToOpportunityResponse(o *domain.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		OpportunityID:   o.OpportunityID,
		ProspectID:      o.ProspectID,
		PropertyID:      o.PropertyID,
		AgentID:         o.AgentID,
		Stage:           o.Stage,
		BoardPosition:   o.BoardPosition,
		EstimatedAmount: o.EstimatedAmount,
		CurrencyCode:    o.CurrencyCode,
		Observation:     o.Observation,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToListOpportunityResponse converts a slice of domain.Opportunity to
// responses.
func ToListOpportunityResponse(opportunities []domain.Opportunity) []OpportunityResponse {
	res := make([]OpportunityResponse, len(opportunities))
	for i := range opportunities {
		res[i] = ToOpportunityResponse(&opportunities[i])
	}
	return res
}
