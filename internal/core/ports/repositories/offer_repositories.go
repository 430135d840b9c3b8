package repositories

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
)

// OfferFilter narrows offer listings by equality on indexed fields. Nil
// fields are ignored. Results preserve insertion order.
type OfferFilter struct {
	OpportunityID *int64
	AgentID       *int64
	Stage         *domain.OfferStage
	Limit         int
	Offset        int
}

// OfferReader defines read operations for offer data.
type OfferReader interface {
	// FindOfferByID retrieves a specific offer by its identifier.
	FindOfferByID(ctx context.Context, offerID int64) (*domain.Offer, error)

	// ListOffers retrieves offers matching the filter, in insertion order.
	ListOffers(ctx context.Context, filter OfferFilter) ([]domain.Offer, error)
}

// OfferWriter defines write operations for offer data.
type OfferWriter interface {
	// SaveOffer persists a new offer, assigning its identifier, and returns
	// the stored copy.
	SaveOffer(ctx context.Context, offer domain.Offer) (*domain.Offer, error)

	// UpdateOffer replaces an existing offer record atomically.
	UpdateOffer(ctx context.Context, offer domain.Offer) error

	// DeleteOffer removes an offer. Returns apperrors.ErrNotFound when no
	// row was removed.
	DeleteOffer(ctx context.Context, offerID int64) error
}

// OfferRepositoryFacade combines all offer-related repository interfaces.
type OfferRepositoryFacade interface {
	OfferReader
	OfferWriter
}
