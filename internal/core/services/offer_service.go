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

// offerService implements the OfferSvcFacade interface. It is the single
// mutation path for offers: every stage transition and tracked-field change
// goes through here so the change log stays consistent with the store.
type offerService struct {
	BaseService
	offerRepo       portsrepo.OfferRepositoryFacade
	opportunityRepo portsrepo.OpportunityReader
	recorder        portssvc.ChangeRecorderSvc
	metrics         *metrics.Metrics
}

// OfferServiceOption is a functional option for the offer service.
type OfferServiceOption func(*offerService)

// WithOfferMetrics adds Prometheus metrics to the offer service.
func WithOfferMetrics(m *metrics.Metrics) OfferServiceOption {
	return func(s *offerService) {
		s.metrics = m
	}
}

// NewOfferService creates the offer service.
func NewOfferService(offerRepo portsrepo.OfferRepositoryFacade, opportunityRepo portsrepo.OpportunityReader, recorder portssvc.ChangeRecorderSvc, options ...OfferServiceOption) portssvc.OfferSvcFacade {
	svc := &offerService{
		offerRepo:       offerRepo,
		opportunityRepo: opportunityRepo,
		recorder:        recorder,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OfferSvcFacade = (*offerService)(nil)

func (s *offerService) CreateOffer(ctx context.Context, req dto.CreateOfferRequest, actorID int64) (*domain.Offer, error) {
	if req.Amount.IsNegative() || req.Commission.IsNegative() {
		return nil, fmt.Errorf("amount and commission must not be negative: %w", apperrors.ErrValidation)
	}

	// The offer must hang off an existing opportunity.
	if _, err := s.opportunityRepo.FindOpportunityByID(ctx, req.OpportunityID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("opportunity %d does not exist: %w", req.OpportunityID, apperrors.ErrValidation)
		}
		s.LogError(ctx, err, "Failed to verify opportunity for offer",
			slog.Int64("opportunity_id", req.OpportunityID))
		return nil, err
	}

	now := time.Now()
	offer := domain.Offer{
		OpportunityID: req.OpportunityID,
		AgentID:       req.AgentID,
		Stage:         domain.OfferDraft,
		Amount:        req.Amount,
		Commission:    req.Commission,
		CurrencyCode:  req.CurrencyCode,
		ExpiresAt:     req.ExpiresAt,
		Observation:   req.Observation,
		AuditFields:   domain.NewAuditFields(actorID, now),
	}

	stored, err := s.offerRepo.SaveOffer(ctx, offer)
	if err != nil {
		s.LogError(ctx, err, "Failed to save offer",
			slog.Int64("opportunity_id", req.OpportunityID))
		return nil, err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityOffer, stored.OfferID, domain.ActionCreated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record offer creation",
			slog.Int64("offer_id", stored.OfferID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityCreated(string(domain.EntityOffer))
	}
	s.LogInfo(ctx, "Offer created successfully",
		slog.Int64("offer_id", stored.OfferID),
		slog.Int64("opportunity_id", stored.OpportunityID))
	return stored, nil
}

func (s *offerService) GetOfferByID(ctx context.Context, offerID int64) (*domain.Offer, error) {
	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find offer by ID", slog.Int64("offer_id", offerID))
		}
		return nil, err
	}
	return offer, nil
}

func (s *offerService) ListOffers(ctx context.Context, filter portsrepo.OfferFilter) ([]domain.Offer, error) {
	offers, err := s.offerRepo.ListOffers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list offers")
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	if offers == nil {
		return []domain.Offer{}, nil
	}
	return offers, nil
}

func (s *offerService) OffersByOpportunity(ctx context.Context, opportunityID int64) ([]domain.Offer, error) {
	return s.ListOffers(ctx, portsrepo.OfferFilter{OpportunityID: &opportunityID})
}

// UpdateOffer merges the provided tracked fields over the stored offer. Each
// field that actually changed gets its own change record; the records share
// one logical timestamp but carry strictly increasing identifiers.
func (s *offerService) UpdateOffer(ctx context.Context, offerID int64, req dto.UpdateOfferRequest, actorID int64) (*domain.Offer, error) {
	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find offer for update", slog.Int64("offer_id", offerID))
		}
		return nil, err
	}

	// Collect the per-field deltas before writing anything.
	type fieldDelta struct {
		action   domain.ChangeAction
		previous string
		next     string
	}
	var deltas []fieldDelta

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative: %w", apperrors.ErrValidation)
		}
		if !req.Amount.Equal(offer.Amount) {
			deltas = append(deltas, fieldDelta{domain.ActionAmountChange, domain.FormatAmount(offer.Amount), domain.FormatAmount(*req.Amount)})
			offer.Amount = *req.Amount
		}
	}
	if req.Commission != nil {
		if req.Commission.IsNegative() {
			return nil, fmt.Errorf("commission must not be negative: %w", apperrors.ErrValidation)
		}
		if !req.Commission.Equal(offer.Commission) {
			deltas = append(deltas, fieldDelta{domain.ActionCommissionChange, domain.FormatAmount(offer.Commission), domain.FormatAmount(*req.Commission)})
			offer.Commission = *req.Commission
		}
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.Equal(offer.ExpiresAt) {
		deltas = append(deltas, fieldDelta{domain.ActionExpirationDateChange, domain.FormatTime(offer.ExpiresAt), domain.FormatTime(*req.ExpiresAt)})
		offer.ExpiresAt = *req.ExpiresAt
	}
	if req.Observation != nil && *req.Observation != offer.Observation {
		deltas = append(deltas, fieldDelta{domain.ActionObservationChange, offer.Observation, *req.Observation})
		offer.Observation = *req.Observation
	}
	if req.AgentID != nil && *req.AgentID != offer.AgentID {
		deltas = append(deltas, fieldDelta{domain.ActionAssignmentChange, fmt.Sprintf("%d", offer.AgentID), fmt.Sprintf("%d", *req.AgentID)})
		offer.AgentID = *req.AgentID
	}

	if len(deltas) == 0 {
		s.LogDebug(ctx, "No tracked fields changed on offer update", slog.Int64("offer_id", offerID))
		return offer, nil
	}

	offer.Touch(actorID, time.Now())
	if err := s.offerRepo.UpdateOffer(ctx, *offer); err != nil {
		s.LogError(ctx, err, "Failed to update offer", slog.Int64("offer_id", offerID))
		return nil, err
	}

	for _, delta := range deltas {
		if _, err := s.recorder.RecordFieldChange(ctx, domain.EntityOffer, offer.OfferID, delta.action, delta.previous, delta.next, actorID); err != nil {
			s.LogError(ctx, err, "Failed to record offer field change",
				slog.Int64("offer_id", offer.OfferID),
				slog.String("action", string(delta.action)))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Offer updated successfully",
		slog.Int64("offer_id", offer.OfferID),
		slog.Int("changed_fields", len(deltas)))
	return offer, nil
}

// ChangeOfferStage moves the offer to the target stage. The lookup failing
// leaves the change log untouched; a transition to the current stage still
// succeeds and still appends a record.
func (s *offerService) ChangeOfferStage(ctx context.Context, offerID int64, stage domain.OfferStage, actorID int64) (*domain.Offer, error) {
	start := time.Now()

	if !domain.ValidOfferStage(stage) {
		return nil, fmt.Errorf("unknown offer stage %q: %w", stage, apperrors.ErrValidation)
	}

	offer, err := s.offerRepo.FindOfferByID(ctx, offerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find offer for stage change", slog.Int64("offer_id", offerID))
		}
		return nil, err
	}

	previousStage := offer.Stage
	offer.Stage = stage
	offer.Touch(actorID, time.Now())

	if err := s.offerRepo.UpdateOffer(ctx, *offer); err != nil {
		s.LogError(ctx, err, "Failed to update offer stage", slog.Int64("offer_id", offerID))
		return nil, err
	}

	if _, err := s.recorder.RecordStateChange(ctx, domain.EntityOffer, offer.OfferID, string(previousStage), string(stage), actorID); err != nil {
		s.LogError(ctx, err, "Failed to record offer stage change",
			slog.Int64("offer_id", offer.OfferID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementStageTransition(string(domain.EntityOffer))
		s.metrics.ObserveStageTransition(start)
	}
	s.LogInfo(ctx, "Offer stage changed",
		slog.Int64("offer_id", offer.OfferID),
		slog.String("previous_stage", string(previousStage)),
		slog.String("new_stage", string(stage)))
	return offer, nil
}

func (s *offerService) DeleteOffer(ctx context.Context, offerID int64, actorID int64) error {
	if err := s.offerRepo.DeleteOffer(ctx, offerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete offer", slog.Int64("offer_id", offerID))
		}
		return err
	}

	// The change log is independent of entity lifetime: prior history stays
	// and the removal itself is recorded.
	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityOffer, offerID, domain.ActionDeleted, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record offer deletion", slog.Int64("offer_id", offerID))
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityDeleted(string(domain.EntityOffer))
	}
	s.LogInfo(ctx, "Offer deleted", slog.Int64("offer_id", offerID))
	return nil
}
