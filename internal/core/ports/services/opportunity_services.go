package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// OpportunityReaderSvc defines read operations for opportunity data.
type OpportunityReaderSvc interface {
	// GetOpportunityByID retrieves a specific opportunity by its identifier.
	GetOpportunityByID(ctx context.Context, opportunityID int64) (*domain.Opportunity, error)

	// ListOpportunities retrieves opportunities matching the filter, in
	// insertion order.
	ListOpportunities(ctx context.Context, filter portsrepo.OpportunityFilter) ([]domain.Opportunity, error)
}

// OpportunityWriterSvc defines write operations for opportunity data.
type OpportunityWriterSvc interface {
	// CreateOpportunity persists a new opportunity in its default stage and
	// records a created entry in the change log.
	CreateOpportunity(ctx context.Context, req dto.CreateOpportunityRequest, actorID int64) (*domain.Opportunity, error)

	// UpdateOpportunity merges the provided fields over the stored
	// opportunity. Changed tracked fields (estimated amount, observation,
	// assignment) yield their own change records.
	UpdateOpportunity(ctx context.Context, opportunityID int64, req dto.UpdateOpportunityRequest, actorID int64) (*domain.Opportunity, error)

	// ChangeOpportunityStage moves the opportunity to the target stage and
	// appends exactly one state-change record, even when the target equals
	// the current stage.
	ChangeOpportunityStage(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, actorID int64) (*domain.Opportunity, error)

	// MoveOpportunity relocates a kanban card to a stage column and board
	// position. A state-change record is appended only when the stage
	// actually changed; repositioning within a column leaves the change log
	// untouched.
	MoveOpportunity(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, position int, actorID int64) (*domain.Opportunity, error)

	// DeleteOpportunity removes the opportunity and records a deleted
	// entry.
	DeleteOpportunity(ctx context.Context, opportunityID int64, actorID int64) error
}

// OpportunitySvcFacade combines all opportunity-related service interfaces.
type OpportunitySvcFacade interface {
	OpportunityReaderSvc
	OpportunityWriterSvc
}
