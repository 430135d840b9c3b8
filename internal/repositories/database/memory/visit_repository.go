package memory

import (
	"context"
	"fmt"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// VisitRepository implements the visit repository ports over the shared
// in-memory store.
type VisitRepository struct {
	store *Store
}

// NewVisitRepository creates a memory-backed visit repository.
func NewVisitRepository(store *Store) *VisitRepository {
	return &VisitRepository{store: store}
}

var _ portsrepo.VisitRepositoryFacade = (*VisitRepository)(nil)

func (r *VisitRepository) FindVisitByID(_ context.Context, visitID int64) (*domain.Visit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.visits {
		if r.store.visits[i].VisitID == visitID {
			visit := r.store.visits[i]
			return &visit, nil
		}
	}
	return nil, fmt.Errorf("visit %d: %w", visitID, apperrors.ErrNotFound)
}

func (r *VisitRepository) ListVisits(_ context.Context, filter portsrepo.VisitFilter) ([]domain.Visit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.Visit, 0, len(r.store.visits))
	for _, visit := range r.store.visits {
		if filter.OpportunityID != nil && visit.OpportunityID != *filter.OpportunityID {
			continue
		}
		if filter.PropertyID != nil && visit.PropertyID != *filter.PropertyID {
			continue
		}
		if filter.AgentID != nil && visit.AgentID != *filter.AgentID {
			continue
		}
		if filter.Status != nil && visit.Status != *filter.Status {
			continue
		}
		matched = append(matched, visit)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *VisitRepository) SaveVisit(_ context.Context, visit domain.Visit) (*domain.Visit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	for i := range r.store.visits {
		if r.store.visits[i].VisitID > maxID {
			maxID = r.store.visits[i].VisitID
		}
	}
	visit.VisitID = maxID + 1
	r.store.visits = append(r.store.visits, visit)
	stored := visit
	return &stored, nil
}

func (r *VisitRepository) UpdateVisit(_ context.Context, visit domain.Visit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.visits {
		if r.store.visits[i].VisitID == visit.VisitID {
			r.store.visits[i] = visit
			return nil
		}
	}
	return fmt.Errorf("visit %d: %w", visit.VisitID, apperrors.ErrNotFound)
}

func (r *VisitRepository) DeleteVisit(_ context.Context, visitID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.visits {
		if r.store.visits[i].VisitID == visitID {
			r.store.visits = append(r.store.visits[:i], r.store.visits[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("visit %d: %w", visitID, apperrors.ErrNotFound)
}
