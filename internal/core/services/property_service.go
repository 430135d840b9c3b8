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

// propertyService implements the PropertySvcFacade interface.
type propertyService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepositoryFacade
	recorder     portssvc.ChangeRecorderSvc
	metrics      *metrics.Metrics
}

// PropertyServiceOption is a functional option for the property service.
type PropertyServiceOption func(*propertyService)

// WithPropertyMetrics adds Prometheus metrics to the property service.
func WithPropertyMetrics(m *metrics.Metrics) PropertyServiceOption {
	return func(s *propertyService) {
		s.metrics = m
	}
}

// NewPropertyService creates the property service.
func NewPropertyService(propertyRepo portsrepo.PropertyRepositoryFacade, recorder portssvc.ChangeRecorderSvc, options ...PropertyServiceOption) portssvc.PropertySvcFacade {
	svc := &propertyService{
		propertyRepo: propertyRepo,
		recorder:     recorder,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

func (s *propertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, actorID int64) (*domain.Property, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	property := domain.Property{
		Reference:    req.Reference,
		Title:        req.Title,
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		CurrencyCode: req.CurrencyCode,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaM2:       req.AreaM2,
		Status:       domain.PropertyAvailable,
		AgentID:      req.AgentID,
		AuditFields:  domain.NewAuditFields(actorID, now),
	}

	stored, err := s.propertyRepo.SaveProperty(ctx, property)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save property", slog.String("reference", req.Reference))
		}
		return nil, err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityProperty, stored.PropertyID, domain.ActionCreated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record property creation",
			slog.Int64("property_id", stored.PropertyID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityCreated(string(domain.EntityProperty))
	}
	s.LogInfo(ctx, "Property created successfully",
		slog.Int64("property_id", stored.PropertyID),
		slog.String("reference", stored.Reference))
	return stored, nil
}

func (s *propertyService) GetPropertyByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find property by ID", slog.Int64("property_id", propertyID))
		}
		return nil, err
	}
	return property, nil
}

func (s *propertyService) ListProperties(ctx context.Context, filter portsrepo.PropertyFilter) ([]domain.Property, error) {
	properties, err := s.propertyRepo.ListProperties(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list properties")
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	if properties == nil {
		return []domain.Property{}, nil
	}
	return properties, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, propertyID int64, req dto.UpdatePropertyRequest, actorID int64) (*domain.Property, error) {
	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find property for update", slog.Int64("property_id", propertyID))
		}
		return nil, err
	}

	changed := false
	reassignedFrom := int64(0)
	reassigned := false

	if req.Title != nil && *req.Title != property.Title {
		property.Title = *req.Title
		changed = true
	}
	if req.Address != nil && *req.Address != property.Address {
		property.Address = *req.Address
		changed = true
	}
	if req.City != nil && *req.City != property.City {
		property.City = *req.City
		changed = true
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
		}
		if !req.Price.Equal(property.Price) {
			property.Price = *req.Price
			changed = true
		}
	}
	if req.Bedrooms != nil && *req.Bedrooms != property.Bedrooms {
		property.Bedrooms = *req.Bedrooms
		changed = true
	}
	if req.Bathrooms != nil && *req.Bathrooms != property.Bathrooms {
		property.Bathrooms = *req.Bathrooms
		changed = true
	}
	if req.AreaM2 != nil && *req.AreaM2 != property.AreaM2 {
		property.AreaM2 = *req.AreaM2
		changed = true
	}
	if req.AgentID != nil && *req.AgentID != property.AgentID {
		reassignedFrom = property.AgentID
		reassigned = true
		property.AgentID = *req.AgentID
		changed = true
	}

	if !changed {
		s.LogDebug(ctx, "No fields changed on property update", slog.Int64("property_id", propertyID))
		return property, nil
	}

	property.Touch(actorID, time.Now())
	if err := s.propertyRepo.UpdateProperty(ctx, *property); err != nil {
		s.LogError(ctx, err, "Failed to update property", slog.Int64("property_id", propertyID))
		return nil, err
	}

	// Reassignment gets its own record; everything else is a plain update.
	if reassigned {
		if _, err := s.recorder.RecordFieldChange(ctx, domain.EntityProperty, property.PropertyID, domain.ActionAssignmentChange, fmt.Sprintf("%d", reassignedFrom), fmt.Sprintf("%d", property.AgentID), actorID); err != nil {
			s.LogError(ctx, err, "Failed to record property reassignment", slog.Int64("property_id", property.PropertyID))
			return nil, err
		}
	}
	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityProperty, property.PropertyID, domain.ActionUpdated, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record property update", slog.Int64("property_id", property.PropertyID))
		return nil, err
	}

	s.LogInfo(ctx, "Property updated successfully", slog.Int64("property_id", property.PropertyID))
	return property, nil
}

// ChangePropertyStatus moves the listing to the target status. The lookup
// failing leaves the change log untouched; a transition to the current status
// still succeeds and still appends a record.
func (s *propertyService) ChangePropertyStatus(ctx context.Context, propertyID int64, status domain.PropertyStatus, actorID int64) (*domain.Property, error) {
	start := time.Now()

	if !domain.ValidPropertyStatus(status) {
		return nil, fmt.Errorf("unknown property status %q: %w", status, apperrors.ErrValidation)
	}

	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find property for status change", slog.Int64("property_id", propertyID))
		}
		return nil, err
	}

	previousStatus := property.Status
	property.Status = status
	property.Touch(actorID, time.Now())

	if err := s.propertyRepo.UpdateProperty(ctx, *property); err != nil {
		s.LogError(ctx, err, "Failed to update property status", slog.Int64("property_id", propertyID))
		return nil, err
	}

	if _, err := s.recorder.RecordStateChange(ctx, domain.EntityProperty, property.PropertyID, string(previousStatus), string(status), actorID); err != nil {
		s.LogError(ctx, err, "Failed to record property status change",
			slog.Int64("property_id", property.PropertyID))
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.IncrementStageTransition(string(domain.EntityProperty))
		s.metrics.ObserveStageTransition(start)
	}
	s.LogInfo(ctx, "Property status changed",
		slog.Int64("property_id", property.PropertyID),
		slog.String("previous_status", string(previousStatus)),
		slog.String("new_status", string(status)))
	return property, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, propertyID int64, actorID int64) error {
	if err := s.propertyRepo.DeleteProperty(ctx, propertyID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete property", slog.Int64("property_id", propertyID))
		}
		return err
	}

	if _, err := s.recorder.RecordLifecycle(ctx, domain.EntityProperty, propertyID, domain.ActionDeleted, actorID); err != nil {
		s.LogError(ctx, err, "Failed to record property deletion", slog.Int64("property_id", propertyID))
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementEntityDeleted(string(domain.EntityProperty))
	}
	s.LogInfo(ctx, "Property deleted", slog.Int64("property_id", propertyID))
	return nil
}
