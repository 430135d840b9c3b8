package memory

import (
	"context"
	"fmt"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// OfferRepository implements the offer repository ports over the shared
// in-memory store.
type OfferRepository struct {
	store *Store
}

// NewOfferRepository creates a memory-backed offer repository.
func NewOfferRepository(store *Store) *OfferRepository {
	return &OfferRepository{store: store}
}

var _ portsrepo.OfferRepositoryFacade = (*OfferRepository)(nil)

func (r *OfferRepository) FindOfferByID(_ context.Context, offerID int64) (*domain.Offer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for i := range r.store.offers {
		if r.store.offers[i].OfferID == offerID {
			offer := r.store.offers[i]
			return &offer, nil
		}
	}
	return nil, fmt.Errorf("offer %d: %w", offerID, apperrors.ErrNotFound)
}

func (r *OfferRepository) ListOffers(_ context.Context, filter portsrepo.OfferFilter) ([]domain.Offer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	matched := make([]domain.Offer, 0, len(r.store.offers))
	for _, offer := range r.store.offers {
		if filter.OpportunityID != nil && offer.OpportunityID != *filter.OpportunityID {
			continue
		}
		if filter.AgentID != nil && offer.AgentID != *filter.AgentID {
			continue
		}
		if filter.Stage != nil && offer.Stage != *filter.Stage {
			continue
		}
		matched = append(matched, offer)
	}
	return paginate(matched, filter.Limit, filter.Offset), nil
}

func (r *OfferRepository) SaveOffer(_ context.Context, offer domain.Offer) (*domain.Offer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var maxID int64
	for i := range r.store.offers {
		if r.store.offers[i].OfferID > maxID {
			maxID = r.store.offers[i].OfferID
		}
	}
	offer.OfferID = maxID + 1
	r.store.offers = append(r.store.offers, offer)
	stored := offer
	return &stored, nil
}

func (r *OfferRepository) UpdateOffer(_ context.Context, offer domain.Offer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.offers {
		if r.store.offers[i].OfferID == offer.OfferID {
			r.store.offers[i] = offer
			return nil
		}
	}
	return fmt.Errorf("offer %d: %w", offer.OfferID, apperrors.ErrNotFound)
}

func (r *OfferRepository) DeleteOffer(_ context.Context, offerID int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.offers {
		if r.store.offers[i].OfferID == offerID {
			r.store.offers = append(r.store.offers[:i], r.store.offers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("offer %d: %w", offerID, apperrors.ErrNotFound)
}
