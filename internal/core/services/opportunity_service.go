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

// bottomOfColumn is passed as the target position when the caller only cares
// about the stage; the repository clamps it to the end of the column.
const bottomOfColumn = 1 << 30

// opportunityService implements the OpportunitySvcFacade interface.
type opportunityService struct {
	BaseService
	opportunityRepo portsrepo.OpportunityRepositoryFacade
	prospectRepo    portsrepo.ProspectReader
	propertyRepo    portsrepo.PropertyReader
	recorder        portssvc.ChangeRecorderSvc
	metrics         *metrics.Metrics
}

// OpportunityServiceOption is a functional option for the opportunity service.
type OpportunityServiceOption func(*opportunityService)

// WithOpportunityMetrics adds Prometheus metrics to the opportunity service.
func WithOpportunityMetrics(m *metrics.Metrics) OpportunityServiceOption {
	return func(s *opportunityService) {
		s.metrics = m
	}
}

// NewOpportunityService creates the opportunity service.
func NewOpportunityService(opportunityRepo portsrepo.OpportunityRepositoryFacade, prospectRepo portsrepo.ProspectReader, propertyRepo portsrepo.PropertyReader, recorder portssvc.ChangeRecorderSvc, options ...OpportunityServiceOption) portssvc.OpportunitySvcFacade {
	svc := &opportunityService{
		opportunityRepo: opportunityRepo,
		prospectRepo:    prospectRepo,
		propertyRepo:    propertyRepo,
		recorder:        recorder,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OpportunitySvcFacade = (*opportunityService)(nil)

func (s *opportunityService) CreateOpportunity(ctx context.Context, req dto.CreateOpportunityRequest, actorID int64) (*domain.Opportunity, error) {
	if req.EstimatedAmount.IsNegative() {
		return nil, fmt.Errorf("estimated amount must not be negative: %w", apperrors.ErrValidation)
	}
	if _, err := s.prospectRepo.FindProspectByID(ctx, req.ProspectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("prospect %d does not exist: %w", req.ProspectID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to verify prospect for opportunity",
			slog.Int64("prospect_id", req.ProspectID))
		return nil, err
	}
	if _, err := s.propertyRepo.FindPropertyByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("property %d does not exist: %w", req.PropertyID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to verify property for opportunity",
			slog.Int64("property_id", req.PropertyID))
		return nil, err
	}

	now := time.Now()
	opportunity := domain.Opportunity{
		ProspectID:      req.ProspectID,
		PropertyID:      req.PropertyID,
		AgentID:         req.AgentID,
		Stage:           domain.OpportunityNew,
		EstimatedAmount: req.EstimatedAmount,
		CurrencyCode:    req.CurrencyCode,
		Observation:     req.Observation,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}

	stored, err := s.opportunityRepo.SaveOpportunity(ctx, opportunity)
	if err != nil {
		s.LogError(ctx, err, "Failed to save opportunity",
			slog.Int64("prospect_id", req.ProspectID),
			slog.Int64("property_id", req.PropertyID))
		return nil, err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityOpportunity, stored.OpportunityID, domain.ActionCreated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record opportunity creation",
			slog.Int64("opportunity_id", stored.OpportunityID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityCreated(string(domain.EntityOpportunity))
	}
	s.LogInfo(ctx, "Opportunity created successfully",
		slog.Int64("opportunity_id", stored.OpportunityID))
	return stored, nil
}

func (s *opportunityService) GetOpportunityByID(ctx context.Context, opportunityID int64) (*domain.Opportunity, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find opportunity by ID", slog.Int64("opportunity_id", opportunityID))
		}
		return nil, err
	}
	return opportunity, nil
}

func (s *opportunityService) ListOpportunities(ctx context.Context, filter portsrepo.OpportunityFilter) ([]domain.Opportunity, error) {
	opportunities, err := s.opportunityRepo.ListOpportunities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list opportunities")
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	if opportunities == nil {
		return []domain.Opportunity{}, nil
	}
	return opportunities, nil
}

func (s *opportunityService) UpdateOpportunity(ctx context.Context, opportunityID int64, req dto.UpdateOpportunityRequest, actorID int64) (*domain.Opportunity, error) {
	opportunity, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find opportunity for update", slog.Int64("opportunity_id", opportunityID))
		}
		return nil, err
	}

	type fieldDelta struct {
		action   domain.ChangeAction
		previous string
		next     string
	}
	var deltas []fieldDelta

	if req.EstimatedAmount != nil {
		if req.EstimatedAmount.IsNegative() {
			return nil, fmt.Errorf("estimated amount must not be negative: %w", apperrors.ErrValidation)
		}
		if !req.EstimatedAmount.Equal(opportunity.EstimatedAmount) {
			deltas = append(deltas, fieldDelta{domain.ActionAmountChange, domain.FormatAmount(opportunity.EstimatedAmount), domain.FormatAmount(*req.EstimatedAmount)})
			opportunity.EstimatedAmount = *req.EstimatedAmount
		}
	}
	if req.Observation != nil && *req.Observation != opportunity.Observation {
		deltas = append(deltas, fieldDelta{domain.ActionObservationChange, opportunity.Observation, *req.Observation})
		opportunity.Observation = *req.Observation
	}
	if req.AgentID != nil && *req.AgentID != opportunity.AgentID {
		deltas = append(deltas, fieldDelta{domain.ActionAssignmentChange, fmt.Sprintf("%d", opportunity.AgentID), fmt.Sprintf("%d", *req.AgentID)})
		opportunity.AgentID = *req.AgentID
	}

	if len(deltas) == 0 {
		s.LogDebug(ctx, "No tracked fields changed on opportunity update", slog.Int64("opportunity_id", opportunityID))
		return opportunity, nil
	}

	opportunity.Touch(actorID, time.Now())
	if err := s.opportunityRepo.UpdateOpportunity(ctx, *opportunity); err != nil {
		s.LogError(ctx, err, "Failed to update opportunity", slog.Int64("opportunity_id", opportunityID))
		return nil, err
	}

	for _, delta := range deltas {
		if _, err := s.recorder.RecordFieldChange(ctx, domain.EntityOpportunity, opportunity.OpportunityID, delta.action, delta.previous, delta.next, actorID); err != nil {
			s.LogError(ctx, err, "Failed to record opportunity field change",
				slog.Int64("opportunity_id", opportunity.OpportunityID),
				slog.String("action", string(delta.action)))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Opportunity updated successfully",
		slog.Int64("opportunity_id", opportunity.OpportunityID),
		slog.Int("changed_fields", len(deltas)))
	return opportunity, nil
}

// ChangeOpportunityStage moves the card to the bottom of the target column
// and always appends a state-change record, even when the target equals the
// current stage.
func (s *opportunityService) ChangeOpportunityStage(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, actorID int64) (*domain.Opportunity, error) {
	start := time.Now()

	if !domain.ValidOpportunityStage(stage) {
		return nil, fmt.Errorf("unknown opportunity stage %q: %w", stage, apperrors.ErrValidation)
	}

	current, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find opportunity for stage change", slog.Int64("opportunity_id", opportunityID))
		}
		return nil, err
	}
	previousStage := current.Stage

	moved, err := s.opportunityRepo.MoveOpportunity(ctx, opportunityID, stage, bottomOfColumn, actorID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to move opportunity stage", slog.Int64("opportunity_id", opportunityID))
		return nil, err
	}

	if _, err := s.recorder.RecordStateChange(ctx, domain.EntityOpportunity, opportunityID, string(previousStage), string(stage), actorID); err != nil {
		s.LogError(ctx, err, "Failed to record opportunity stage change",
			slog.Int64("opportunity_id", opportunityID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementStageTransition(string(domain.EntityOpportunity))
		s.metrics.ObserveStageTransition(start)
	}
	s.LogInfo(ctx, "Opportunity stage changed",
		slog.Int64("opportunity_id", opportunityID),
		slog.String("previous_stage", string(previousStage)),
		slog.String("new_stage", string(stage)))
	return moved, nil
}

// MoveOpportunity handles a kanban drag-and-drop. Repositioning within the
// same column leaves the change log untouched; crossing columns records the
// stage change.
func (s *opportunityService) MoveOpportunity(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, position int, actorID int64) (*domain.Opportunity, error) {
	start := time.Now()

	if !domain.ValidOpportunityStage(stage) {
		return nil, fmt.Errorf("unknown opportunity stage %q: %w", stage, apperrors.ErrValidation)
	}
	if position < 0 {
		return nil, fmt.Errorf("board position must not be negative: %w", apperrors.ErrValidation)
	}

	current, err := s.opportunityRepo.FindOpportunityByID(ctx, opportunityID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find opportunity for move", slog.Int64("opportunity_id", opportunityID))
		}
		return nil, err
	}
	previousStage := current.Stage

	moved, err := s.opportunityRepo.MoveOpportunity(ctx, opportunityID, stage, position, actorID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to move opportunity", slog.Int64("opportunity_id", opportunityID))
		return nil, err
	}

	if previousStage != stage {
		if _, err := s.recorder.RecordStateChange(ctx, domain.EntityOpportunity, opportunityID, string(previousStage), string(stage), actorID); err != nil {
			s.LogError(ctx, err, "Failed to record opportunity move",
				slog.Int64("opportunity_id", opportunityID))
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.IncrementStageTransition(string(domain.EntityOpportunity))
			s.metrics.ObserveStageTransition(start)
		}
	}

	s.LogInfo(ctx, "Opportunity moved on board",
		slog.Int64("opportunity_id", opportunityID),
		slog.String("stage", string(stage)),
		slog.Int("position", moved.BoardPosition))
	return moved, nil
}

func (s *opportunityService) DeleteOpportunity(ctx context.Context, opportunityID int64, actorID int64) error {
	if err := s.opportunityRepo.DeleteOpportunity(ctx, opportunityID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete opportunity", slog.Int64("opportunity_id", opportunityID))
		}
		return err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityOpportunity, opportunityID, domain.ActionDeleted, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record opportunity deletion", slog.Int64("opportunity_id", opportunityID))
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityDeleted(string(domain.EntityOpportunity))
	}
	s.LogInfo(ctx, "Opportunity deleted", slog.Int64("opportunity_id", opportunityID))
	return nil
}
