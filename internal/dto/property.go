package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// CreatePropertyRequest defines the data needed to list a new property.
type CreatePropertyRequest struct {
	Reference    string          `json:"reference" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	Address      string          `json:"address" binding:"required"`
	City         string          `json:"city" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"gte=0"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Bedrooms     int             `json:"bedrooms" binding:"gte=0"`
	Bathrooms    int             `json:"bathrooms" binding:"gte=0"`
	AreaM2       int             `json:"areaM2" binding:"gte=0"`
	AgentID      int64           `json:"agentID" binding:"required"`
}

// UpdatePropertyRequest defines the data allowed for updating a property.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePropertyRequest struct {
	Title     *string          `json:"title"`
	Address   *string          `json:"address"`
	City      *string          `json:"city"`
	Price     *decimal.Decimal `json:"price"`
	Bedrooms  *int             `json:"bedrooms"`
	Bathrooms *int             `json:"bathrooms"`
	AreaM2    *int             `json:"areaM2"`
	AgentID   *int64           `json:"agentID"`
}

// PropertyResponse defines the data returned for a property.
type PropertyResponse struct {
	PropertyID   int64                 `json:"propertyID"`
	Reference    string                `json:"reference"`
	Title        string                `json:"title"`
	Address      string                `json:"address"`
	City         string                `json:"city"`
	Price        decimal.Decimal       `json:"price"`
	CurrencyCode string                `json:"currencyCode"`
	Bedrooms     int                   `json:"bedrooms"`
	Bathrooms    int                   `json:"bathrooms"`
	AreaM2       int                   `json:"areaM2"`
	Status       domain.PropertyStatus `json:"status"`
	AgentID      int64                 `json:"agentID"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ToPropertyResponse converts a domain.Property to PropertyResponse.
func ToPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		PropertyID:   p.PropertyID,
		Reference:    p.Reference,
		Title:        p.Title,
		Address:      p.Address,
		City:         p.City,
		Price:        p.Price,
		CurrencyCode: p.CurrencyCode,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaM2:       p.AreaM2,
		Status:       p.Status,
		AgentID:      p.AgentID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToListPropertyResponse converts a slice of domain.Property to responses.
func ToListPropertyResponse(properties []domain.Property) []PropertyResponse {
	res := make([]PropertyResponse, len(properties))
	for i := range properties {
		res[i] = ToPropertyResponse(&properties[i])
	}
	return res
}
