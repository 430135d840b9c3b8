package services

import (
	"context"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
	"github.com/vistahomes/real_estate_crm/internal/dto"
)

// OfferReaderSvc defines read operations for offer data.
type OfferReaderSvc interface {
	// GetOfferByID retrieves a specific offer by its identifier.
	GetOfferByID(ctx context.Context, offerID int64) (*domain.Offer, error)

	// ListOffers retrieves offers matching the filter, in insertion order.
	ListOffers(ctx context.Context, filter portsrepo.OfferFilter) ([]domain.Offer, error)

	// OffersByOpportunity retrieves every offer belonging to an
	// opportunity, in insertion order.
	OffersByOpportunity(ctx context.Context, opportunityID int64) ([]domain.Offer, error)
}

// OfferWriterSvc defines write operations for offer data.
type OfferWriterSvc interface {
	// CreateOffer persists a new offer in its default stage and records a
	// created entry in the change log.
	CreateOffer(ctx context.Context, req dto.CreateOfferRequest, actorID int64) (*domain.Offer, error)

	// UpdateOffer merges the provided fields over the stored offer. Each
	// changed tracked field (amount, commission, observation, expiration
	// date, assignment) yields its own change record.
	UpdateOffer(ctx context.Context, offerID int64, req dto.UpdateOfferRequest, actorID int64) (*domain.Offer, error)

	// ChangeOfferStage moves the offer to the target stage and appends
	// exactly one state-change record, even when the target equals the
	// current stage.
	ChangeOfferStage(ctx context.Context, offerID int64, stage domain.OfferStage, actorID int64) (*domain.Offer, error)

	// DeleteOffer removes the offer and records a deleted entry. The change
	// log keeps all prior records for the removed offer.
	DeleteOffer(ctx context.Context, offerID int64, actorID int64) error
}

// OfferSvcFacade combines all offer-related service interfaces.
type OfferSvcFacade interface {
	OfferReaderSvc
	OfferWriterSvc
}
