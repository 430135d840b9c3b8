package repositories

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// VisitFilter narrows visit listings by equality on indexed fields. Nil
// fields are ignored.
type VisitFilter struct {
	OpportunityID *int64
	PropertyID    *int64
	AgentID       *int64
	Status        *domain.VisitStatus
	Limit         int
	Offset        int
}

// VisitReader defines read operations for visit data.
type VisitReader interface {
	// FindVisitByID retrieves a specific visit by its identifier.
	FindVisitByID(ctx context.Context, visitID int64) (*domain.Visit, error)

	// ListVisits retrieves visits matching the filter, in insertion order.
	ListVisits(ctx context.Context, filter VisitFilter) ([]domain.Visit, error)
}

// VisitWriter defines write operations for visit data.
type VisitWriter interface {
	// SaveVisit persists a new visit, assigning its identifier, and returns
	// the stored copy.
	SaveVisit(ctx context.Context, visit domain.Visit) (*domain.Visit, error)

	// UpdateVisit replaces an existing visit record atomically.
	UpdateVisit(ctx context.Context, visit domain.Visit) error

	// DeleteVisit removes a visit. Returns apperrors.ErrNotFound when no row
	// was removed.
	DeleteVisit(ctx context.Context, visitID int64) error
}

// VisitRepositoryFacade combines all visit-related repository interfaces.
type VisitRepositoryFacade interface {
	VisitReader
	VisitWriter
}
