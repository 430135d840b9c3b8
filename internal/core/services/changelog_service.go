package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	portssvc "github.com/vistahomes/real_estate_crm/internal/core/ports/services"
	"github.com/vistahomes/real_estate_crm/internal/platform/metrics"
)

// changeLogService implements the ChangeLogSvcFacade interface. It is the
// single composition point for change records: entity services describe what
// changed, this service resolves the actor's display name and appends.
type changeLogService struct {
	BaseService
	changeRepo portsrepo.ChangeLogRepositoryFacade
	agentRepo  portsrepo.AgentReader
	metrics    *metrics.Metrics
}

// ChangeLogServiceOption is a functional option for the change log service.
type ChangeLogServiceOption func(*changeLogService)

// WithChangeLogMetrics adds Prometheus metrics to the change log service.
func WithChangeLogMetrics(m *metrics.Metrics) ChangeLogServiceOption {
	return func(s *changeLogService) {
		s.metrics = m
	}
}

// NewChangeLogService creates the change log service.
func NewChangeLogService(changeRepo portsrepo.ChangeLogRepositoryFacade, agentRepo portsrepo.AgentReader, options ...ChangeLogServiceOption) portssvc.ChangeLogSvcFacade {
	svc := &changeLogService{
		changeRepo: changeRepo,
		agentRepo:  agentRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ChangeLogSvcFacade = (*changeLogService)(nil)

// fieldLabels map tracked-field actions to the label used in the history
// description.
var fieldLabels = map[domain.ChangeAction]string{
	domain.ActionAmountChange:         "Amount",
	domain.ActionCommissionChange:     "Commission",
	domain.ActionObservationChange:    "Observation",
	domain.ActionExpirationDateChange: "Expiration date",
	domain.ActionAssignmentChange:     "Assigned agent",
}

func (s *changeLogService) RecordStateChange(ctx context.Context, entityType domain.EntityType, entityID int64, previous, next string, actorID int64) (*domain.ChangeRecord, error) {
	description := fmt.Sprintf("Stage changed from %s to %s", previous, next)
	return s.append(ctx, domain.ChangeRecord{
		EntityType:    entityType,
		EntityID:      entityID,
		Action:        domain.ActionStateChange,
		Description:   description,
		PreviousValue: previous,
		NewValue:      next,
		UserID:        actorID,
	})
}

func (s *changeLogService) RecordFieldChange(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, previous, next string, actorID int64) (*domain.ChangeRecord, error) {
	label, ok := fieldLabels[action]
	if !ok {
		return nil, fmt.Errorf("action %q is not a tracked-field change: %w", action, apperrors.ErrValidation)
	}
	description := fmt.Sprintf("%s changed from %s to %s", label, previous, next)
	return s.append(ctx, domain.ChangeRecord{
		EntityType:    entityType,
		EntityID:      entityID,
		Action:        action,
		Description:   description,
		PreviousValue: previous,
		NewValue:      next,
		UserID:        actorID,
	})
}

func (s *changeLogService) RecordLifecycle(ctx context.Context, entityType domain.EntityType, entityID int64, action domain.ChangeAction, actorID int64) (*domain.ChangeRecord, error) {
	switch action {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted:
	default:
		return nil, fmt.Errorf("action %q is not a lifecycle change: %w", action, apperrors.ErrValidation)
	}
	description := fmt.Sprintf("%s %s", entityTypeLabel(entityType), action)
	return s.append(ctx, domain.ChangeRecord{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		UserID:      actorID,
	})
}

func (s *changeLogService) AuditTrail(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error) {
	records, err := s.changeRepo.ListChangesByEntity(ctx, entityType, entityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list change records",
			slog.String("entity_type", string(entityType)),
			slog.Int64("entity_id", entityID))
		return nil, fmt.Errorf("failed to load audit trail for %s %d: %w", entityType, entityID, err)
	}
	if records == nil {
		return []domain.ChangeRecord{}, nil
	}
	return records, nil
}

// append resolves the actor name and stores the record. The repository
// assigns the identifier and timestamp.
func (s *changeLogService) append(ctx context.Context, record domain.ChangeRecord) (*domain.ChangeRecord, error) {
	record.UserName = s.resolveActorName(ctx, record.UserID)

	stored, err := s.changeRepo.AppendChange(ctx, record)
	if err != nil {
		s.LogError(ctx, err, "Failed to append change record",
			slog.String("entity_type", string(record.EntityType)),
			slog.Int64("entity_id", record.EntityID),
			slog.String("action", string(record.Action)))
		return nil, fmt.Errorf("failed to append change record: %w", err)
	}

	if s.metrics != nil {
		s.metrics.IncrementChangeRecord()
	}
	return stored, nil
}

// resolveActorName maps an agent id to a display name for the history view.
// A missing agent does not fail the append; the record keeps the id.
func (s *changeLogService) resolveActorName(ctx context.Context, actorID int64) string {
	agent, err := s.agentRepo.FindAgentByID(ctx, actorID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Failed to resolve actor name", slog.Int64("actor_id", actorID))
		}
		return fmt.Sprintf("agent #%d", actorID)
	}
	return agent.Name
}

func entityTypeLabel(entityType domain.EntityType) string {
	switch entityType {
	case domain.EntityProperty:
		return "Property"
	case domain.EntityProspect:
		return "Prospect"
	case domain.EntityOpportunity:
		return "Opportunity"
	case domain.EntityOffer:
		return "Offer"
	case domain.EntityVisit:
		return "Visit"
	}
	return string(entityType)
}
