package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// PropertySvcFacade defines the operations on property listings.
type PropertySvcFacade interface {
	// GetPropertyByID retrieves a specific property by its identifier.
	GetPropertyByID(ctx context.Context, propertyID int64) (*domain.Property, error)

	// ListProperties retrieves properties matching the filter, in insertion
	// order.
	ListProperties(ctx context.Context, filter portsrepo.PropertyFilter) ([]domain.Property, error)

	// CreateProperty persists a new property listing and records a created
	// entry in the change log.
	CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, actorID int64) (*domain.Property, error)

	// UpdateProperty merges the provided fields over the stored property.
	UpdateProperty(ctx context.Context, propertyID int64, req dto.UpdatePropertyRequest, actorID int64) (*domain.Property, error)

	// ChangePropertyStatus moves the property to the target status and
	// appends exactly one state-change record.
	ChangePropertyStatus(ctx context.Context, propertyID int64, status domain.PropertyStatus, actorID int64) (*domain.Property, error)

	// DeleteProperty removes the property and records a deleted entry.
	DeleteProperty(ctx context.Context, propertyID int64, actorID int64) error
}
