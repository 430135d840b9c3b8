package memory

import (
	"context"
	"fmt"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// ProspectRepository implements the prospect repository ports over the
// shared in-memory store.
type ProspectRepository struct {
	store *Store
}

// NewProspectRepository creates a memory-backed prospect repository.
func NewProspectRepository(store *Store) *ProspectRepository {
	return &ProspectRepository{store: store}
}

var _ portsrepo.ProspectRepositoryFacade = (*ProspectRepository)(nil)

func (r *ProspectRepository) FindProspectByID(_ context.Context, prospectID int64) (*domain.Prospect, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.prospects {
		if r.store.prospects[i].ProspectID == prospectID {
			prospect := r.store.prospects[i]
			return &prospect, nil
		}
	}
	return nil, fmt.Errorf("prospect %d: %w", prospectID, apperrors.ErrNotFound)
}

func (r *ProspectRepository) ListProspects(_ context.Context, filter portsrepo.ProspectFilter) ([]domain.Prospect, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.Prospect, 0, len(r.store.prospects))
	for _, prospect := range r.store.prospects {
		if filter.AgentID != nil && prospect.AgentID != *filter.AgentID {
			continue
		}
		if filter.Status != nil && prospect.Status != *filter.Status {
			continue
		}
		matched = append(matched, prospect)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *ProspectRepository) SaveProspect(_ context.Context, prospect domain.Prospect) (*domain.Prospect, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	for i := range r.store.prospects {
		if r.store.prospects[i].ProspectID > maxID {
			maxID = r.store.prospects[i].ProspectID
		}
	}
	prospect.ProspectID = maxID + 1
	r.store.prospects = append(r.store.prospects, prospect)
	stored := prospect
	return &stored, nil
}

func (r *ProspectRepository) UpdateProspect(_ context.Context, prospect domain.Prospect) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.prospects {
		if r.store.prospects[i].ProspectID == prospect.ProspectID {
			r.store.prospects[i] = prospect
			return nil
		}
	}
	return fmt.Errorf("prospect %d: %w", prospect.ProspectID, apperrors.ErrNotFound)
}

func (r *ProspectRepository) DeleteProspect(_ context.Context, prospectID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.prospects {
		if r.store.prospects[i].ProspectID == prospectID {
			r.store.prospects = append(r.store.prospects[:i], r.store.prospects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("prospect %d: %w", prospectID, apperrors.ErrNotFound)
}
