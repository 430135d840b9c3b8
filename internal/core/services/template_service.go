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
)

// templateService implements the TemplateSvcFacade interface. Templates are
// configuration, not CRM records, so they stay outside the change log.
type templateService struct {
	BaseService
	templateRepo portsrepo.TemplateRepositoryFacade
}

// NewTemplateService creates the template service.
func NewTemplateService(templateRepo portsrepo.TemplateRepositoryFacade) portssvc.TemplateSvcFacade {
	return &templateService{templateRepo: templateRepo}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

func (s *templateService) CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, actorID int64) (*domain.MessageTemplate, error) {
	now := time.Now()
	template := domain.MessageTemplate{
		Name:        req.Name,
		Subject:     req.Subject,
		Body:        req.Body,
		Channel:     req.Channel,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(actorID, now),
	}

	stored, err := s.templateRepo.SaveTemplate(ctx, template)
	if err != nil {
		s.LogError(ctx, err, "Failed to save template", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Template created successfully",
		slog.Int64("template_id", stored.TemplateID),
		slog.String("channel", string(stored.Channel)))
	return stored, nil
}

func (s *templateService) GetTemplateByID(ctx context.Context, templateID int64) (*domain.MessageTemplate, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find template by ID", slog.Int64("template_id", templateID))
		}
		return nil, err
	}
	return template, nil
}

func (s *templateService) ListTemplates(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.MessageTemplate, error) {
	templates, err := s.templateRepo.ListTemplates(ctx, activeOnly, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list templates")
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if templates == nil {
		return []domain.MessageTemplate{}, nil
	}
	return templates, nil
}

func (s *templateService) UpdateTemplate(ctx context.Context, templateID int64, req dto.UpdateTemplateRequest, actorID int64) (*domain.MessageTemplate, error) {
	template, err := s.templateRepo.FindTemplateByID(ctx, templateID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find template for update", slog.Int64("template_id", templateID))
		}
		return nil, err
	}

	changed := false
	if req.Name != nil && *req.Name != template.Name {
		template.Name = *req.Name
		changed = true
	}
	if req.Subject != nil && *req.Subject != template.Subject {
		template.Subject = *req.Subject
		changed = true
	}
	if req.Body != nil && *req.Body != template.Body {
		template.Body = *req.Body
		changed = true
	}
	if req.Channel != nil && *req.Channel != template.Channel {
		template.Channel = *req.Channel
		changed = true
	}
	if req.IsActive != nil && *req.IsActive != template.IsActive {
		template.IsActive = *req.IsActive
		changed = true
	}

	if !changed {
		s.LogDebug(ctx, "No fields changed on template update", slog.Int64("template_id", templateID))
		return template, nil
	}

	template.Touch(actorID, time.Now())
	if err := s.templateRepo.UpdateTemplate(ctx, *template); err != nil {
		s.LogError(ctx, err, "Failed to update template", slog.Int64("template_id", templateID))
		return nil, err
	}

	s.LogInfo(ctx, "Template updated successfully", slog.Int64("template_id", template.TemplateID))
	return template, nil
}

func (s *templateService) DeleteTemplate(ctx context.Context, templateID int64, actorID int64) error {
	if err := s.templateRepo.DeleteTemplate(ctx, templateID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete template", slog.Int64("template_id", templateID))
		}
		return err
	}

	s.LogInfo(ctx, "Template deleted", slog.Int64("template_id", templateID))
	return nil
}
