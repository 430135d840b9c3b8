package domain

import (
	"github.com/shopspring/decimal"
)

// PropertyStatus is the closed set of listing states a property can be in.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "AVAILABLE"
	PropertyReserved  PropertyStatus = "RESERVED"
	PropertySold      PropertyStatus = "SOLD"
	PropertyWithdrawn PropertyStatus = "WITHDRAWN"
)

// PropertyStatuses lists every valid property status.
var PropertyStatuses = []PropertyStatus{
	PropertyAvailable,
	PropertyReserved,
	PropertySold,
	PropertyWithdrawn,
}

// ValidPropertyStatus reports whether s belongs to the property status
// enumeration.
func ValidPropertyStatus(s PropertyStatus) bool {
	for _, v := range PropertyStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Property represents a listed property within the core domain.
type Property struct {
	PropertyID   int64           `json:"propertyID"`
	Reference    string          `json:"reference"` // Customer facing listing code
	Title        string          `json:"title"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	Price        decimal.Decimal `json:"price"`
	CurrencyCode string          `json:"currencyCode"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	AreaM2       int             `json:"areaM2"`
	Status       PropertyStatus  `json:"status"`
	AgentID      int64           `json:"agentID"` // FK -> agents.agent_id
	AuditFields
}
