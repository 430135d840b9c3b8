package repositories

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// PropertyFilter narrows property listings by equality on indexed fields.
// Nil fields are ignored.
type PropertyFilter struct {
	AgentID *int64
	Status  *domain.PropertyStatus
	City    *string
	Limit   int
	Offset  int
}

// PropertyReader defines read operations for property data.
type PropertyReader interface {
	// FindPropertyByID retrieves a specific property by its identifier.
	FindPropertyByID(ctx context.Context, propertyID int64) (*domain.Property, error)

	// ListProperties retrieves properties matching the filter, in insertion
	// order.
	ListProperties(ctx context.Context, filter PropertyFilter) ([]domain.Property, error)
}

// PropertyWriter defines write operations for property data.
type PropertyWriter interface {
	// SaveProperty persists a new property, assigning its identifier, and
	// returns the stored copy.
	SaveProperty(ctx context.Context, property domain.Property) (*domain.Property, error)

	// UpdateProperty replaces an existing property record atomically.
	UpdateProperty(ctx context.Context, property domain.Property) error

	// DeleteProperty removes a property. Returns apperrors.ErrNotFound when
	// no row was removed.
	DeleteProperty(ctx context.Context, propertyID int64) error
}

// PropertyRepositoryFacade combines all property-related repository
// interfaces.
type PropertyRepositoryFacade interface {
	PropertyReader
	PropertyWriter
}
