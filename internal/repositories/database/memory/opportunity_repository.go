package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// OpportunityRepository implements the opportunity repository ports over the
// shared in-memory store.
type OpportunityRepository struct {
	store *Store
}

// NewOpportunityRepository creates a memory-backed opportunity repository.
func NewOpportunityRepository(store *Store) *OpportunityRepository {
	return &OpportunityRepository{store: store}
}

var _ portsrepo.OpportunityRepositoryFacade = (*OpportunityRepository)(nil)

func (r *OpportunityRepository) FindOpportunityByID(_ context.Context, opportunityID int64) (*domain.Opportunity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.opportunities {
		if r.store.opportunities[i].OpportunityID == opportunityID {
			opportunity := r.store.opportunities[i]
			return &opportunity, nil
		}
	}
	return nil, fmt.Errorf("opportunity %d: %w", opportunityID, apperrors.ErrNotFound)
}

func (r *OpportunityRepository) ListOpportunities(_ context.Context, filter portsrepo.OpportunityFilter) ([]domain.Opportunity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.Opportunity, 0, len(r.store.opportunities))
	for _, opportunity := range r.store.opportunities {
		if filter.ProspectID != nil && opportunity.ProspectID != *filter.ProspectID {
			continue
		}
		if filter.PropertyID != nil && opportunity.PropertyID != *filter.PropertyID {
			continue
		}
		if filter.AgentID != nil && opportunity.AgentID != *filter.AgentID {
			continue
		}
		if filter.Stage != nil && opportunity.Stage != *filter.Stage {
			continue
		}
		matched = append(matched, opportunity)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *OpportunityRepository) SaveOpportunity(_ context.Context, opportunity domain.Opportunity) (*domain.Opportunity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	columnSize := 0
	for i := range r.store.opportunities {
		if r.store.opportunities[i].OpportunityID > maxID {
			maxID = r.store.opportunities[i].OpportunityID
		}
		if r.store.opportunities[i].Stage == opportunity.Stage {
			columnSize++
		}
	}
	opportunity.OpportunityID = maxID + 1
	// New cards land at the bottom of their stage column.
	opportunity.BoardPosition = columnSize
	r.store.opportunities = append(r.store.opportunities, opportunity)
	stored := opportunity
	return &stored, nil
}

func (r *OpportunityRepository) UpdateOpportunity(_ context.Context, opportunity domain.Opportunity) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.opportunities {
		if r.store.opportunities[i].OpportunityID == opportunity.OpportunityID {
			r.store.opportunities[i] = opportunity
			return nil
		}
	}
	return fmt.Errorf("opportunity %d: %w", opportunity.OpportunityID, apperrors.ErrNotFound)
}

// MoveOpportunity relocates a kanban card. The whole re-pack happens under
// one write lock, so concurrent board reads never observe a half-moved
// column.
func (r *OpportunityRepository) MoveOpportunity(_ context.Context, opportunityID int64, stage domain.OpportunityStage, position int, actorID int64, now time.Time) (*domain.Opportunity, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx := -1
	for i := range r.store.opportunities {
		if r.store.opportunities[i].OpportunityID == opportunityID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("opportunity %d: %w", opportunityID, apperrors.ErrNotFound)
	}

	moved := r.store.opportunities[idx]
	oldStage, oldPosition := moved.Stage, moved.BoardPosition

	// Close the gap in the source column.
	targetSize := 0
	for i := range r.store.opportunities {
		o := &r.store.opportunities[i]
		if o.OpportunityID == opportunityID {
			continue
		}
		if o.Stage == oldStage && o.BoardPosition > oldPosition {
			o.BoardPosition--
		}
		if o.Stage == stage {
			targetSize++
		}
	}

	if position > targetSize {
		position = targetSize
	}

	// Open a slot in the destination column.
	for i := range r.store.opportunities {
		o := &r.store.opportunities[i]
		if o.OpportunityID == opportunityID {
			continue
		}
		if o.Stage == stage && o.BoardPosition >= position {
			o.BoardPosition++
		}
	}

	moved.Stage = stage
	moved.BoardPosition = position
	moved.Touch(actorID, now)
	r.store.opportunities[idx] = moved

	stored := moved
	return &stored, nil
}

// DeleteOpportunity removes a card and closes the gap it leaves in its stage
// column, so board positions stay contiguous for later inserts and moves.
func (r *OpportunityRepository) DeleteOpportunity(_ context.Context, opportunityID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.opportunities {
		if r.store.opportunities[i].OpportunityID == opportunityID {
			stage, position := r.store.opportunities[i].Stage, r.store.opportunities[i].BoardPosition
			r.store.opportunities = append(r.store.opportunities[:i], r.store.opportunities[i+1:]...)
			for j := range r.store.opportunities {
				o := &r.store.opportunities[j]
				if o.Stage == stage && o.BoardPosition > position {
					o.BoardPosition--
				}
			}
			return nil
		}
	}
	return fmt.Errorf("opportunity %d: %w", opportunityID, apperrors.ErrNotFound)
}
