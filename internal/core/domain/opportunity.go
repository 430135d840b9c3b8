package domain

import (
	"github.com/shopspring/decimal"
)

// OpportunityStage is the closed set of pipeline stages shown as kanban
// columns on the board.
type OpportunityStage string

const (
	OpportunityNew         OpportunityStage = "NEW"
	OpportunityQualified   OpportunityStage = "QUALIFIED"
	OpportunityVisit       OpportunityStage = "VISIT"
	OpportunityNegotiation OpportunityStage = "NEGOTIATION"
	OpportunityClosing     OpportunityStage = "CLOSING"
	OpportunityWon         OpportunityStage = "WON"
	OpportunityLost        OpportunityStage = "LOST"
)

// OpportunityStages lists every valid opportunity stage in board order.
var OpportunityStages = []OpportunityStage{
	OpportunityNew,
	OpportunityQualified,
	OpportunityVisit,
	OpportunityNegotiation,
	OpportunityClosing,
	OpportunityWon,
	OpportunityLost,
}

// ValidOpportunityStage reports whether s belongs to the opportunity stage
// enumeration.
func ValidOpportunityStage(s OpportunityStage) bool {
	for _, v := range OpportunityStages {
		if v == s {
			return true
		}
	}
	return false
}

// Opportunity represents a sales pipeline entry linking a prospect to a
// property. BoardPosition orders the card within its stage column; positions
// inside a column are contiguous starting at 0.
type Opportunity struct {
	OpportunityID   int64            `json:"opportunityID"`
	ProspectID      int64            `json:"prospectID"` // FK -> prospects.prospect_id
	PropertyID      int64            `json:"propertyID"` // FK -> properties.property_id
	AgentID         int64            `json:"agentID"`    // FK -> agents.agent_id
	Stage           OpportunityStage `json:"stage"`
	BoardPosition   int              `json:"boardPosition"`
	EstimatedAmount decimal.Decimal  `json:"estimatedAmount"`
	CurrencyCode    string           `json:"currencyCode"`
	Observation     string           `json:"observation"`
	AuditFields
}
