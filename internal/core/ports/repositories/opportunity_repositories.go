package repositories

import (
	"context"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// OpportunityFilter narrows opportunity listings by equality on indexed
// fields. Nil fields are ignored.
type OpportunityFilter struct {
	ProspectID *int64
	PropertyID *int64
	AgentID    *int64
	Stage      *domain.OpportunityStage
	Limit      int
	Offset     int
}

// OpportunityReader defines read operations for opportunity data.
type OpportunityReader interface {
	// FindOpportunityByID retrieves a specific opportunity by its identifier.
	FindOpportunityByID(ctx context.Context, opportunityID int64) (*domain.Opportunity, error)

	// ListOpportunities retrieves opportunities matching the filter, in
	// insertion order.
	ListOpportunities(ctx context.Context, filter OpportunityFilter) ([]domain.Opportunity, error)
}

// OpportunityWriter defines write operations for opportunity data.
type OpportunityWriter interface {
	// SaveOpportunity persists a new opportunity, assigning its identifier,
	// and returns the stored copy.
	SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) (*domain.Opportunity, error)

	// UpdateOpportunity replaces an existing opportunity record atomically.
	UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error

	// MoveOpportunity relocates an opportunity to a stage column and board
	// position, re-packing positions in the affected columns. The whole
	// move is applied atomically and the updated opportunity is returned.
	MoveOpportunity(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, position int, actorID int64, now time.Time) (*domain.Opportunity, error)

	// DeleteOpportunity removes an opportunity. Returns
	// apperrors.ErrNotFound when no row was removed.
	DeleteOpportunity(ctx context.Context, opportunityID int64) error
}

// OpportunityRepositoryFacade combines all opportunity-related repository
// interfaces.
type OpportunityRepositoryFacade interface {
	OpportunityReader
	OpportunityWriter
}
