package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/dto"
	"github.com/vistahomes/real_estate_crm/internal/platform/metrics"
)

// visitService implements the VisitSvcFacade interface.
type visitService struct {
	BaseService
	visitRepo       portsrepo.VisitRepositoryFacade
	opportunityRepo portsrepo.OpportunityReader
	recorder        portssvc.ChangeRecorderSvc
	metrics         *metrics.Metrics
}

// VisitServiceOption is a functional option for the visit service.
type VisitServiceOption func(*visitService)

// WithVisitMetrics adds Prometheus metrics to the visit service.
func WithVisitMetrics(m *metrics.Metrics) VisitServiceOption {
	return func(s *visitService) {
		s.metrics = m
	}
}

// NewVisitService creates the visit service.
func NewVisitService(visitRepo portsrepo.VisitRepositoryFacade, opportunityRepo portsrepo.OpportunityReader, recorder portssvc.ChangeRecorderSvc, options ...VisitServiceOption) portssvc.VisitSvcFacade {
	svc := &visitService{
		visitRepo:       visitRepo,
		opportunityRepo: opportunityRepo,
		recorder:        recorder,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.VisitSvcFacade = (*visitService)(nil)

func (s *visitService) ScheduleVisit(ctx context.Context, req dto.ScheduleVisitRequest, actorID int64) (*domain.Visit, error) {
	if _, err := s.opportunityRepo.FindOpportunityByID(ctx, req.OpportunityID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("opportunity %d does not exist: %w", req.OpportunityID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to verify opportunity for visit",
			slog.Int64("opportunity_id", req.OpportunityID))
		return nil, err
	}

	now := time.Now()
	visit := domain.Visit{
		OpportunityID: req.OpportunityID,
		PropertyID:    req.PropertyID,
		AgentID:       req.AgentID,
		ScheduledAt:   req.ScheduledAt,
		Status:        domain.VisitScheduled,
		Notes:         req.Notes,
		AuditFields:   domain.NewAuditFields(actorID, now),
	}

	stored, err := s.visitRepo.SaveVisit(ctx, visit)
	if err != nil {
		s.LogError(ctx, err, "Failed to save visit",
			slog.Int64("opportunity_id", req.OpportunityID))
		return nil, err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityVisit, stored.VisitID, domain.ActionCreated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record visit creation",
			slog.Int64("visit_id", stored.VisitID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityCreated(string(domain.EntityVisit))
	}
	s.LogInfo(ctx, "Visit scheduled successfully",
		slog.Int64("visit_id", stored.VisitID),
		slog.Time("scheduled_at", stored.ScheduledAt))
	return stored, nil
}

func (s *visitService) GetVisitByID(ctx context.Context, visitID int64) (*domain.Visit, error) {
	visit, err := s.visitRepo.FindVisitByID(ctx, visitID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find visit by ID", slog.Int64("visit_id", visitID))
		}
		return nil, err
	}
	return visit, nil
}

func (s *visitService) ListVisits(ctx context.Context, filter portsrepo.VisitFilter) ([]domain.Visit, error) {
	visits, err := s.visitRepo.ListVisits(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list visits")
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	if visits == nil {
		return []domain.Visit{}, nil
	}
	return visits, nil
}

func (s *visitService) UpdateVisit(ctx context.Context, visitID int64, req dto.UpdateVisitRequest, actorID int64) (*domain.Visit, error) {
	visit, err := s.visitRepo.FindVisitByID(ctx, visitID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find visit for update", slog.Int64("visit_id", visitID))
		}
		return nil, err
	}

	changed := false
	reassignedFrom := int64(0)
	reassigned := false

	if req.ScheduledAt != nil && !req.ScheduledAt.Equal(visit.ScheduledAt) {
		visit.ScheduledAt = *req.ScheduledAt
		changed = true
	}
	if req.Notes != nil && *req.Notes != visit.Notes {
		visit.Notes = *req.Notes
		changed = true
	}
	if req.AgentID != nil && *req.AgentID != visit.AgentID {
		reassignedFrom = visit.AgentID
		reassigned = true
		visit.AgentID = *req.AgentID
		changed = true
	}

	if !changed {
		s.LogDebug(ctx, "No fields changed on visit update", slog.Int64("visit_id", visitID))
		return visit, nil
	}

	visit.Touch(actorID, time.Now())
	if err := s.visitRepo.UpdateVisit(ctx, *visit); err != nil {
		s.LogError(ctx, err, "Failed to update visit", slog.Int64("visit_id", visitID))
		return nil, err
	}

	if reassigned {
		if _, err := s.recorder.RecordFieldChange(ctx, domain.EntityVisit, visit.VisitID, domain.ActionAssignmentChange, fmt.Sprintf("%d", reassignedFrom), fmt.Sprintf("%d", visit.AgentID), actorID); err != nil {
			s.LogError(ctx, err, "Failed to record visit reassignment", slog.Int64("visit_id", visit.VisitID))
			return nil, err
		}
	}
	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityVisit, visit.VisitID, domain.ActionUpdated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record visit update", slog.Int64("visit_id", visit.VisitID))
		return nil, err
	}

	s.LogInfo(ctx, "Visit updated successfully", slog.Int64("visit_id", visit.VisitID))
	return visit, nil
}

// ChangeVisitStatus moves the visit to the target status. The lookup failing
// leaves the change log untouched; a transition to the current status still
// succeeds and still appends a record.
func (s *visitService) ChangeVisitStatus(ctx context.Context, visitID int64, status domain.VisitStatus, actorID int64) (*domain.Visit, error) {
	start := time.Now()

	if !domain.ValidVisitStatus(status) {
		return nil, fmt.Errorf("unknown visit status %q: %w", status, apperrors.ErrValidation)
	}

	visit, err := s.visitRepo.FindVisitByID(ctx, visitID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find visit for status change", slog.Int64("visit_id", visitID))
		}
		return nil, err
	}

	previousStatus := visit.Status
	visit.Status = status
	visit.Touch(actorID, time.Now())

	if err := s.visitRepo.UpdateVisit(ctx, *visit); err != nil {
		s.LogError(ctx, err, "Failed to update visit status", slog.Int64("visit_id", visitID))
		return nil, err
	}

	if _, err := s.recorder.RecordStateChange(ctx, domain.EntityVisit, visit.VisitID, string(previousStatus), string(status), actorID); err != nil {
		s.LogError(ctx, err, "Failed to record visit status change",
			slog.Int64("visit_id", visit.VisitID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementStageTransition(string(domain.EntityVisit))
		s.metrics.ObserveStageTransition(start)
	}
	s.LogInfo(ctx, "Visit status changed",
		slog.Int64("visit_id", visit.VisitID),
		slog.String("previous_status", string(previousStatus)),
		slog.String("new_status", string(status)))
	return visit, nil
}

func (s *visitService) DeleteVisit(ctx context.Context, visitID int64, actorID int64) error {
	if err := s.visitRepo.DeleteVisit(ctx, visitID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete visit", slog.Int64("visit_id", visitID))
		}
		return err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityVisit, visitID, domain.ActionDeleted, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record visit deletion", slog.Int64("visit_id", visitID))
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityDeleted(string(domain.EntityVisit))
	}
	s.LogInfo(ctx, "Visit deleted", slog.Int64("visit_id", visitID))
	return nil
}
