package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// CreateOfferRequest defines the data needed to register a new offer. New
// offers always start in DRAFT.
type CreateOfferRequest struct {
	OpportunityID int64           `json:"opportunityID" binding:"required"`
	AgentID       int64           `json:"agentID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"gte=0"`
	Commission    decimal.Decimal `json:"commission" binding:"gte=0"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	Observation   string          `json:"observation"`
}

// UpdateOfferRequest defines the data allowed for updating an offer's
// tracked fields. Pointers distinguish zero-value updates from fields not
// provided; each changed field yields its own change record.
type UpdateOfferRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Commission  *decimal.Decimal `json:"commission"`
	ExpiresAt   *time.Time       `json:"expiresAt"`
	Observation *string          `json:"observation"`
	AgentID     *int64           `json:"agentID"`
}

// OfferResponse defines the data returned for an offer.
type OfferResponse struct {
	OfferID       int64             `json:"offerID"`
	OpportunityID int64             `json:"opportunityID"`
	AgentID       int64             `json:"agentID"`
	Stage         domain.OfferStage `json:"stage"`
	Amount        decimal.Decimal   `json:"amount"`
	Commission    decimal.Decimal   `json:"commission"`
	CurrencyCode  string            `json:"currencyCode"`
	ExpiresAt     time.Time         `json:"expiresAt"`
	Observation   string            `json:"observation"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// ToOfferResponse converts a domain.Offer to OfferResponse.
func ToOfferResponse(o *domain.Offer) OfferResponse {
	return OfferResponse{
		OfferID:       o.OfferID,
		OpportunityID: o.OpportunityID,
		AgentID:       o.AgentID,
		Stage:         o.Stage,
		Amount:        o.Amount,
		Commission:    o.Commission,
		CurrencyCode:  o.CurrencyCode,
		ExpiresAt:     o.ExpiresAt,
		Observation:   o.Observation,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToListOfferResponse converts a slice of domain.Offer to responses.
func ToListOfferResponse(offers []domain.Offer) []OfferResponse {
	res := make([]OfferResponse, len(offers))
	for i := range offers {
		res[i] = ToOfferResponse(&offers[i])
	}
	return res
}
