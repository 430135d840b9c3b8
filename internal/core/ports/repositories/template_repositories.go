package repositories

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// TemplateReader defines read operations for message templates.
type TemplateReader interface {
	// FindTemplateByID retrieves a specific template by its identifier.
	FindTemplateByID(ctx context.Context, templateID int64) (*domain.MessageTemplate, error)

	// ListTemplates retrieves a paginated list of templates in insertion
	// order. When activeOnly is set, inactive templates are skipped.
	ListTemplates(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.MessageTemplate, error)
}

// TemplateWriter defines write operations for message templates.
type TemplateWriter interface {
	// SaveTemplate persists a new template, assigning its identifier, and
	// returns the stored copy.
	SaveTemplate(ctx context.Context, template domain.MessageTemplate) (*domain.MessageTemplate, error)

	// UpdateTemplate replaces an existing template record atomically.
	UpdateTemplate(ctx context.Context, template domain.MessageTemplate) error

	// DeleteTemplate removes a template. Returns apperrors.ErrNotFound when
	// no row was removed.
	DeleteTemplate(ctx context.Context, templateID int64) error
}

// TemplateRepositoryFacade combines all template-related repository
// interfaces.
type TemplateRepositoryFacade interface {
	TemplateReader
	TemplateWriter
}
