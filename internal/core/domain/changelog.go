package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType identifies which collection a change record belongs to.
type EntityType string

const (
	EntityProperty    EntityType = "PROPERTY"
	EntityProspect    EntityType = "PROSPECT"
	EntityOpportunity EntityType = "OPPORTUNITY"
	EntityOffer       EntityType = "OFFER"
	EntityVisit       EntityType = "VISIT"
)

// ChangeAction is the closed set of change kinds recorded in the log. Each
// tracked field has its own action tag so the history view can render a
// specific description per kind.
type ChangeAction string

const (
	ActionStateChange          ChangeAction = "state-change"
	ActionAmountChange         ChangeAction = "amount-change"
	ActionCommissionChange     ChangeAction = "commission-change"
	ActionObservationChange    ChangeAction = "observation-change"
	ActionExpirationDateChange ChangeAction = "expiration-date-change"
	ActionAssignmentChange     ChangeAction = "assignment-change"
	ActionCreated              ChangeAction = "created"
	ActionUpdated              ChangeAction = "updated"
	ActionDeleted              ChangeAction = "deleted"
)

// ChangeRecord is one immutable entry in the append-only change log. IDs are
// log-scoped and strictly increasing in insertion order; Timestamp is
// stamped by the log at append time, never supplied by the caller.
//
// PreviousValue and NewValue are stored as strings so any field type can be
// logged uniformly. Callers are responsible for canonical formatting (see
// FormatAmount and FormatTime) so that diffs stay comparable.
type ChangeRecord struct {
	ChangeID      int64        `json:"changeID"`
	EntityType    EntityType   `json:"entityType"`
	EntityID      int64        `json:"entityID"`
	Action        ChangeAction `json:"action"`
	Description   string       `json:"description"`
	PreviousValue string       `json:"previousValue,omitempty"`
	NewValue      string       `json:"newValue,omitempty"`
	UserID        int64        `json:"userID"`
	UserName      string       `json:"userName"`
	Timestamp     time.Time    `json:"timestamp"`
}

// FormatAmount renders a monetary value for change log storage: plain
// decimal notation, no locale separators.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// FormatTime renders a timestamp for change log storage.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
