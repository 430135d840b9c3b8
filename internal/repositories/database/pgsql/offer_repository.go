package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// PgxOfferRepository implements the offer repository ports over PostgreSQL.
type PgxOfferRepository struct {
	pool *pgxpool.Pool
}

func newPgxOfferRepository(pool *pgxpool.Pool) *PgxOfferRepository {
	return &PgxOfferRepository{pool: pool}
}

var _ portsrepo.OfferRepositoryFacade = (*PgxOfferRepository)(nil)

const offerColumns = `offer_id, opportunity_id, agent_id, stage, amount, commission, currency_code, expires_at, observation, created_at, created_by, updated_at, updated_by`

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(
		&o.OfferID,
		&o.OpportunityID,
		&o.AgentID,
		&o.Stage,
		&o.Amount,
		&o.Commission,
		&o.CurrencyCode,
		&o.ExpiresAt,
		&o.Observation,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.UpdatedAt,
		&o.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PgxOfferRepository) SaveOffer(ctx context.Context, offer domain.Offer) (*domain.Offer, error) {
	query := `
		INSERT INTO offers (opportunity_id, agent_id, stage, amount, commission, currency_code, expires_at, observation, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING offer_id;
	`
	err := r.pool.QueryRow(ctx, query,
		offer.OpportunityID,
		offer.AgentID,
		offer.Stage,
		offer.Amount,
		offer.Commission,
		offer.CurrencyCode,
		offer.ExpiresAt,
		offer.Observation,
		offer.CreatedAt,
		offer.CreatedBy,
		offer.UpdatedAt,
		offer.UpdatedBy,
	).Scan(&offer.OfferID)
	if err != nil {
		return nil, fmt.Errorf("failed to save offer: %w", err)
	}
	return &offer, nil
}

func (r *PgxOfferRepository) FindOfferByID(ctx context.Context, offerID int64) (*domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE offer_id = $1;`
	offer, err := scanOffer(r.pool.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("offer %d: %w", offerID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find offer %d: %w", offerID, err)
	}
	return offer, nil
}

func (r *PgxOfferRepository) ListOffers(ctx context.Context, filter portsrepo.OfferFilter) ([]domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE 1=1`
	args := []any{}
	if filter.OpportunityID != nil {
		args = append(args, *filter.OpportunityID)
		query += fmt.Sprintf(" AND opportunity_id = $%d", len(args))
	}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if filter.Stage != nil {
		args = append(args, *filter.Stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	query += " ORDER BY offer_id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := make([]domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer row: %w", err)
		}
		offers = append(offers, *offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offer rows: %w", err)
	}
	return offers, nil
}

func (r *PgxOfferRepository) UpdateOffer(ctx context.Context, offer domain.Offer) error {
	query := `
		UPDATE offers
		SET agent_id = $2, stage = $3, amount = $4, commission = $5, expires_at = $6, observation = $7, updated_at = $8, updated_by = $9
		WHERE offer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		offer.OfferID,
		offer.AgentID,
		offer.Stage,
		offer.Amount,
		offer.Commission,
		offer.ExpiresAt,
		offer.Observation,
		offer.UpdatedAt,
		offer.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update offer %d: %w", offer.OfferID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("offer %d: %w", offer.OfferID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxOfferRepository) DeleteOffer(ctx context.Context, offerID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offers WHERE offer_id = $1;`, offerID)
	if err != nil {
		return fmt.Errorf("failed to delete offer %d: %w", offerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("offer %d: %w", offerID, apperrors.ErrNotFound)
	}
	return nil
}
