package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferStage is the closed set of negotiation states for an offer. There is
// no enforced transition graph between stages; any stage may move to any
// other through the stage change operation.
type OfferStage string

const (
	OfferDraft                  OfferStage = "DRAFT"
	OfferSubmitted              OfferStage = "SUBMITTED"
	OfferCounterOffer           OfferStage = "COUNTER_OFFER"
	OfferConfirmForExchange     OfferStage = "CONFIRM_FOR_EXCHANGE"
	OfferPendingSellerApproval  OfferStage = "PENDING_SELLER_APPROVAL"
	OfferPendingBuyerApproval   OfferStage = "PENDING_BUYER_APPROVAL"
	OfferPendingManagerApproval OfferStage = "PENDING_MANAGER_APPROVAL"
	OfferPendingLegalApproval   OfferStage = "PENDING_LEGAL_APPROVAL"
	OfferAccepted               OfferStage = "ACCEPTED"
	OfferRejected               OfferStage = "REJECTED"
	OfferExpired                OfferStage = "EXPIRED"
	OfferFinalized              OfferStage = "FINALIZED"
	OfferCancelled              OfferStage = "CANCELLED"
)

// OfferStages lists every valid offer stage.
var OfferStages = []OfferStage{
	OfferDraft,
	OfferSubmitted,
	OfferCounterOffer,
	OfferConfirmForExchange,
	OfferPendingSellerApproval,
	OfferPendingBuyerApproval,
	OfferPendingManagerApproval,
	OfferPendingLegalApproval,
	OfferAccepted,
	OfferRejected,
	OfferExpired,
	OfferFinalized,
	OfferCancelled,
}

// ValidOfferStage reports whether s belongs to the offer stage enumeration.
func ValidOfferStage(s OfferStage) bool {
	for _, v := range OfferStages {
		if v == s {
			return true
		}
	}
	return false
}

// Offer represents a monetary offer (or counter-offer) made within an
// opportunity. Amount, commission, observation, expiration date and agent
// assignment are tracked fields: every change to one of them is recorded in
// the change log.
type Offer struct {
	OfferID       int64           `json:"offerID"`
	OpportunityID int64           `json:"opportunityID"` // FK -> opportunities.opportunity_id
	AgentID       int64           `json:"agentID"`       // Assigned agent, FK -> agents.agent_id
	Stage         OfferStage      `json:"stage"`
	Amount        decimal.Decimal `json:"amount"`
	Commission    decimal.Decimal `json:"commission"`
	CurrencyCode  string          `json:"currencyCode"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	Observation   string          `json:"observation"`
	AuditFields
}
