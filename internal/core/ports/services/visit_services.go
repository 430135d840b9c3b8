package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// VisitSvcFacade defines the operations on scheduled visits.
type VisitSvcFacade interface {
	// GetVisitByID retrieves a specific visit by its identifier.
	GetVisitByID(ctx context.Context, visitID int64) (*domain.Visit, error)

	// ListVisits retrieves visits matching the filter, in insertion order.
	ListVisits(ctx context.Context, filter portsrepo.VisitFilter) ([]domain.Visit, error)

	// ScheduleVisit persists a new visit in SCHEDULED status and records a
	// created entry in the change log.
	ScheduleVisit(ctx context.Context, req dto.ScheduleVisitRequest, actorID int64) (*domain.Visit, error)

	// UpdateVisit merges the provided fields over the stored visit.
	UpdateVisit(ctx context.Context, visitID int64, req dto.UpdateVisitRequest, actorID int64) (*domain.Visit, error)

	// ChangeVisitStatus moves the visit to the target status and appends
	// exactly one state-change record.
	ChangeVisitStatus(ctx context.Context, visitID int64, status domain.VisitStatus, actorID int64) (*domain.Visit, error)

	// DeleteVisit removes the visit and records a deleted entry.
	DeleteVisit(ctx context.Context, visitID int64, actorID int64) error
}
