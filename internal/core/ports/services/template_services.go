package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// TemplateSvcFacade defines the operations on message templates.
type TemplateSvcFacade interface {
	// GetTemplateByID retrieves a specific template by its identifier.
	GetTemplateByID(ctx context.Context, templateID int64) (*domain.MessageTemplate, error)

	// ListTemplates retrieves a paginated list of templates.
	ListTemplates(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.MessageTemplate, error)

	// CreateTemplate persists a new message template.
	CreateTemplate(ctx context.Context, req dto.CreateTemplateRequest, actorID int64) (*domain.MessageTemplate, error)

	// UpdateTemplate merges the provided fields over the stored template.
	UpdateTemplate(ctx context.Context, templateID int64, req dto.UpdateTemplateRequest, actorID int64) (*domain.MessageTemplate, error)

	// DeleteTemplate removes the template.
	DeleteTemplate(ctx context.Context, templateID int64, actorID int64) error
}
