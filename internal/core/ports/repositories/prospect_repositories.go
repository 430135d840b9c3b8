package repositories

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// ProspectFilter narrows prospect listings by equality on indexed fields.
// Nil fields are ignored.
type ProspectFilter struct {
	AgentID *int64
	Status  *domain.ProspectStatus
	Limit   int
	Offset  int
}

// ProspectReader defines read operations for prospect data.
type ProspectReader interface {
	// FindProspectByID retrieves a specific prospect by its identifier.
	FindProspectByID(ctx context.Context, prospectID int64) (*domain.Prospect, error)

	// ListProspects retrieves prospects matching the filter, in insertion
	// order.
	ListProspects(ctx context.Context, filter ProspectFilter) ([]domain.Prospect, error)
}

// ProspectWriter defines write operations for prospect data.
type ProspectWriter interface {
	// SaveProspect persists a new prospect, assigning its identifier, and
	// returns the stored copy.
	SaveProspect(ctx context.Context, prospect domain.Prospect) (*domain.Prospect, error)

	// UpdateProspect replaces an existing prospect record atomically.
	UpdateProspect(ctx context.Context, prospect domain.Prospect) error

	// DeleteProspect removes a prospect. Returns apperrors.ErrNotFound when
	// no row was removed.
	DeleteProspect(ctx context.Context, prospectID int64) error
}

// ProspectRepositoryFacade combines all prospect-related repository
// interfaces.
type ProspectRepositoryFacade interface {
	ProspectReader
	ProspectWriter
}
