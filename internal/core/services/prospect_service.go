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

// prospectService implements the ProspectSvcFacade interface.
type prospectService struct {
	BaseService
	prospectRepo portsrepo.ProspectRepositoryFacade
	recorder     portssvc.ChangeRecorderSvc
	metrics      *metrics.Metrics
}

// ProspectServiceOption is a functional option for the prospect service.
type ProspectServiceOption func(*prospectService)

// WithProspectMetrics adds Prometheus metrics to the prospect service.
func WithProspectMetrics(m *metrics.Metrics) ProspectServiceOption {
	return func(s *prospectService) {
		s.metrics = m
	}
}

// NewProspectService creates the prospect service.
func NewProspectService(prospectRepo portsrepo.ProspectRepositoryFacade, recorder portssvc.ChangeRecorderSvc, options ...ProspectServiceOption) portssvc.ProspectSvcFacade {
	svc := &prospectService{
		prospectRepo: prospectRepo,
		recorder:     recorder,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ProspectSvcFacade = (*prospectService)(nil)

func (s *prospectService) CreateProspect(ctx context.Context, req dto.CreateProspectRequest, actorID int64) (*domain.Prospect, error) {
	now := time.Now()
	prospect := domain.Prospect{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Source:      req.Source,
		Status:      domain.ProspectNew,
		AgentID:     req.AgentID,
		Observation: req.Observation,
		AuditFields: domain.NewAuditFields(actorID, now),
	}

	stored, err := s.prospectRepo.SaveProspect(ctx, prospect)
	if err != nil {
		s.LogError(ctx, err, "Failed to save prospect", slog.String("name", req.Name))
		return nil, err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityProspect, stored.ProspectID, domain.ActionCreated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record prospect creation",
			slog.Int64("prospect_id", stored.ProspectID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityCreated(string(domain.EntityProspect))
	}
	s.LogInfo(ctx, "Prospect created successfully",
		slog.Int64("prospect_id", stored.ProspectID))
	return stored, nil
}

func (s *prospectService) GetProspectByID(ctx context.Context, prospectID int64) (*domain.Prospect, error) {
	prospect, err := s.prospectRepo.FindProspectByID(ctx, prospectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find prospect by ID", slog.Int64("prospect_id", prospectID))
		}
		return nil, err
	}
	return prospect, nil
}

func (s *prospectService) ListProspects(ctx context.Context, filter portsrepo.ProspectFilter) ([]domain.Prospect, error) {
	prospects, err := s.prospectRepo.ListProspects(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list prospects")
		return nil, fmt.Errorf("failed to list prospects: %w", err)
	}
	if prospects == nil {
		return []domain.Prospect{}, nil
	}
	return prospects, nil
}

func (s *prospectService) UpdateProspect(ctx context.Context, prospectID int64, req dto.UpdateProspectRequest, actorID int64) (*domain.Prospect, error) {
	prospect, err := s.prospectRepo.FindProspectByID(ctx, prospectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find prospect for update", slog.Int64("prospect_id", prospectID))
		}
		return nil, err
	}

	type fieldDelta struct {
		action   domain.ChangeAction
		previous string
		next     string
	}
	var deltas []fieldDelta
	plainChange := false

	if req.Name != nil && *req.Name != prospect.Name {
		prospect.Name = *req.Name
		plainChange = true
	}
	if req.Email != nil && *req.Email != prospect.Email {
		prospect.Email = *req.Email
		plainChange = true
	}
	if req.Phone != nil && *req.Phone != prospect.Phone {
		prospect.Phone = *req.Phone
		plainChange = true
	}
	if req.Source != nil && *req.Source != prospect.Source {
		prospect.Source = *req.Source
		plainChange = true
	}
	if req.Observation != nil && *req.Observation != prospect.Observation {
		deltas = append(deltas, fieldDelta{domain.ActionObservationChange, prospect.Observation, *req.Observation})
		prospect.Observation = *req.Observation
	}
	if req.AgentID != nil && *req.AgentID != prospect.AgentID {
		deltas = append(deltas, fieldDelta{domain.ActionAssignmentChange, fmt.Sprintf("%d", prospect.AgentID), fmt.Sprintf("%d", *req.AgentID)})
		prospect.AgentID = *req.AgentID
	}

	if !plainChange && len(deltas) == 0 {
		s.LogDebug(ctx, "No fields changed on prospect update", slog.Int64("prospect_id", prospectID))
		return prospect, nil
	}

	prospect.Touch(actorID, time.Now())
	if err := s.prospectRepo.UpdateProspect(ctx, *prospect); err != nil {
		s.LogError(ctx, err, "Failed to update prospect", slog.Int64("prospect_id", prospectID))
		return nil, err
	}

	for _, delta := range deltas {
		if _, err := s.recorder.RecordFieldChange(ctx, domain.EntityProspect, prospect.ProspectID, delta.action, delta.previous, delta.next, actorID); err != nil {
			s.LogError(ctx, err, "Failed to record prospect field change",
				slog.Int64("prospect_id", prospect.ProspectID),
				slog.String("action", string(delta.action)))
			return nil, err
		}
	}
	if plainChange {
		if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityProspect, prospect.ProspectID, domain.ActionUpdated, actorID); err != nil {
			s.LogError(ctx, err, "Failed to record prospect update", slog.Int64("prospect_id", prospect.ProspectID))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Prospect updated successfully", slog.Int64("prospect_id", prospect.ProspectID))
	return prospect, nil
}

// ChangeProspectStatus moves the prospect to the target status. The lookup
// failing leaves the change log untouched; a transition to the current status
// still succeeds and still appends a record.
func (s *prospectService) ChangeProspectStatus(ctx context.Context, prospectID int64, status domain.ProspectStatus, actorID int64) (*domain.Prospect, error) {
	start := time.Now()

	if !domain.ValidProspectStatus(status) {
		return nil, fmt.Errorf("unknown prospect status %q: %w", status, apperrors.ErrValidation)
	}

	prospect, err := s.prospectRepo.FindProspectByID(ctx, prospectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find prospect for status change", slog.Int64("prospect_id", prospectID))
		}
		return nil, err
	}

	previousStatus := prospect.Status
	prospect.Status = status
	prospect.Touch(actorID, time.Now())

	if err := s.prospectRepo.UpdateProspect(ctx, *prospect); err != nil {
		s.LogError(ctx, err, "Failed to update prospect status", slog.Int64("prospect_id", prospectID))
		return nil, err
	}

	if _, err := s.recorder.RecordStateChange(ctx, domain.EntityProspect, prospect.ProspectID, string(previousStatus), string(status), actorID); err != nil {
		s.LogError(ctx, err, "Failed to record prospect status change",
			slog.Int64("prospect_id", prospect.ProspectID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementStageTransition(string(domain.EntityProspect))
		s.metrics.ObserveStageTransition(start)
	}
	s.LogInfo(ctx, "Prospect status changed",
		slog.Int64("prospect_id", prospect.ProspectID),
		slog.String("previous_status", string(previousStatus)),
		slog.String("new_status", string(status)))
	return prospect, nil
}

func (s *prospectService) DeleteProspect(ctx context.Context, prospectID int64, actorID int64) error {
	if err := s.prospectRepo.DeleteProspect(ctx, prospectID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete prospect", slog.Int64("prospect_id", prospectID))
		}
		return err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityProspect, prospectID, domain.ActionDeleted, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record prospect deletion", slog.Int64("prospect_id", prospectID))
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityDeleted(string(domain.EntityProspect))
	}
	s.LogInfo(ctx, "Prospect deleted", slog.Int64("prospect_id", prospectID))
	return nil
}
