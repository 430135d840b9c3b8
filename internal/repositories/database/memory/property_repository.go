package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// PropertyRepository implements the property repository ports over the
// shared in-memory store.
type PropertyRepository struct {
	store *Store
}

// NewPropertyRepository creates a memory-backed property repository.
func NewPropertyRepository(store *Store) *PropertyRepository {
	return &PropertyRepository{store: store}
}

var _ portsrepo.PropertyRepositoryFacade = (*PropertyRepository)(nil)

func (r *PropertyRepository) FindPropertyByID(_ context.Context, propertyID int64) (*domain.Property, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.properties {
		if r.store.properties[i].PropertyID == propertyID {
			property := r.store.properties[i]
			return &property, nil
		}
	}
	return nil, fmt.Errorf("property %d: %w", propertyID, apperrors.ErrNotFound)
}

func (r *PropertyRepository) ListProperties(_ context.Context, filter portsrepo.PropertyFilter) ([]domain.Property, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.Property, 0, len(r.store.properties))
	for _, property := range r.store.properties {
		if filter.AgentID != nil && property.AgentID != *filter.AgentID {
			continue
		}
		if filter.Status != nil && property.Status != *filter.Status {
			continue
		}
		if filter.City != nil && property.City != *filter.City {
			continue
		}
		matched = append(matched, property)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *PropertyRepository) SaveProperty(_ context.Context, property domain.Property) (*domain.Property, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	for i := range r.store.properties {
		if strings.EqualFold(r.store.properties[i].Reference, property.Reference) {
			return nil, fmt.Errorf("property reference %q: %w", property.Reference, apperrors.ErrDuplicate)
		}
		if r.store.properties[i].PropertyID > maxID {
			maxID = r.store.properties[i].PropertyID
		}
	}
	property.PropertyID = maxID + 1
	r.store.properties = append(r.store.properties, property)
	stored := property
	return &stored, nil
}

func (r *PropertyRepository) UpdateProperty(_ context.Context, property domain.Property) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.properties {
		if r.store.properties[i].PropertyID == property.PropertyID {
			r.store.properties[i] = property
			return nil
		}
	}
	return fmt.Errorf("property %d: %w", property.PropertyID, apperrors.ErrNotFound)
}

func (r *PropertyRepository) DeleteProperty(_ context.Context, propertyID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.properties {
		if r.store.properties[i].PropertyID == propertyID {
			r.store.properties = append(r.store.properties[:i], r.store.properties[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("property %d: %w", propertyID, apperrors.ErrNotFound)
}
