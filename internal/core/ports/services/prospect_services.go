package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// ProspectSvcFacade defines the operations on prospects.
type ProspectSvcFacade interface {
	// GetProspectByID retrieves a specific prospect by its identifier.
	GetProspectByID(ctx context.Context, prospectID int64) (*domain.Prospect, error)

	// ListProspects retrieves prospects matching the filter, in insertion
	// order.
	ListProspects(ctx context.Context, filter portsrepo.ProspectFilter) ([]domain.Prospect, error)

	// CreateProspect persists a new prospect and records a created entry in
	// the change log.
	CreateProspect(ctx context.Context, req dto.CreateProspectRequest, actorID int64) (*domain.Prospect, error)

	// UpdateProspect merges the provided fields over the stored prospect.
	// Changed tracked fields (observation, assignment) yield their own
	// change records.
	UpdateProspect(ctx context.Context, prospectID int64, req dto.UpdateProspectRequest, actorID int64) (*domain.Prospect, error)

	// ChangeProspectStatus moves the prospect to the target status and
	// appends exactly one state-change record.
	ChangeProspectStatus(ctx context.Context, prospectID int64, status domain.ProspectStatus, actorID int64) (*domain.Prospect, error)

	// DeleteProspect removes the prospect and records a deleted entry.
	DeleteProspect(ctx context.Context, prospectID int64, actorID int64) error
}
