package memory

import (
	"context"
	"fmt"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// TemplateRepository implements the template repository ports over the
// shared in-memory store.
type TemplateRepository struct {
	store *Store
}

// NewTemplateRepository creates a memory-backed template repository.
func NewTemplateRepository(store *Store) *TemplateRepository {
	return &TemplateRepository{store: store}
}

var _ portsrepo.TemplateRepositoryFacade = (*TemplateRepository)(nil)

func (r *TemplateRepository) FindTemplateByID(_ context.Context, templateID int64) (*domain.MessageTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.templates {
		if r.store.templates[i].TemplateID == templateID {
			template := r.store.templates[i]
			return &template, nil
		}
	}
	return nil, fmt.Errorf("template %d: %w", templateID, apperrors.ErrNotFound)
}

func (r *TemplateRepository) ListTemplates(_ context.Context, activeOnly bool, limit int, offset int) ([]domain.MessageTemplate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.MessageTemplate, 0, len(r.store.templates))
	for _, template := range r.store.templates {
		if activeOnly && !template.IsActive {
			continue
		}
		matched = append(matched, template)
	}
	return paginate(matched, limit, offset), nil
}

func (r *TemplateRepository) SaveTemplate(_ context.Context, template domain.MessageTemplate) (*domain.MessageTemplate, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	for i := range r.store.templates {
		if r.store.templates[i].TemplateID > maxID {
			maxID = r.store.templates[i].TemplateID
		}
	}
	template.TemplateID = maxID + 1
	r.store.templates = append(r.store.templates, template)
	stored := template
	return &stored, nil
}

func (r *TemplateRepository) UpdateTemplate(_ context.Context, template domain.MessageTemplate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.templates {
		if r.store.templates[i].TemplateID == template.TemplateID {
			r.store.templates[i] = template
			return nil
		}
	}
	return fmt.Errorf("template %d: %w", template.TemplateID, apperrors.ErrNotFound)
}

func (r *TemplateRepository) DeleteTemplate(_ context.Context, templateID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.templates {
		if r.store.templates[i].TemplateID == templateID {
			r.store.templates = append(r.store.templates[:i], r.store.templates[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("template %d: %w", templateID, apperrors.ErrNotFound)
}
