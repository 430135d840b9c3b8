package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// PgxOpportunityRepository implements the opportunity repository ports over
// PostgreSQL.
type PgxOpportunityRepository struct {
	pool *pgxpool.Pool
}

func newPgxOpportunityRepository(pool *pgxpool.Pool) *PgxOpportunityRepository {
	return &PgxOpportunityRepository{pool: pool}
}

var _ portsrepo.OpportunityRepositoryFacade = (*PgxOpportunityRepository)(nil)

const opportunityColumns = `opportunity_id, prospect_id, property_id, agent_id, stage, board_position, estimated_amount, currency_code, observation, created_at, created_by, updated_at, updated_by`

func scanOpportunity(row pgx.Row) (*domain.Opportunity, error) {
	var o domain.Opportunity
	err := row.Scan(
		&o.OpportunityID,
		&o.ProspectID,
		&o.PropertyID,
		&o.AgentID,
		&o.Stage,
		&o.BoardPosition,
		&o.EstimatedAmount,
		&o.CurrencyCode,
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

// SaveOpportunity inserts the opportunity at the bottom of its stage column.
// A per-stage advisory lock serializes concurrent inserts into the same
// column, so two inserts cannot read the same bottom position.
func (r *PgxOpportunityRepository) SaveOpportunity(ctx context.Context, opportunity domain.Opportunity) (*domain.Opportunity, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin save transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, string(opportunity.Stage)); err != nil {
		return nil, fmt.Errorf("failed to lock stage column: %w", err)
	}

	query := `
		INSERT INTO opportunities (prospect_id, property_id, agent_id, stage, board_position, estimated_amount, currency_code, observation, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(board_position) + 1, 0) FROM opportunities WHERE stage = $4),
			$5, $6, $7, $8, $9, $10, $11)
		RETURNING opportunity_id, board_position;
	`
	err = tx.QueryRow(ctx, query,
		opportunity.ProspectID,
		opportunity.PropertyID,
		opportunity.AgentID,
		opportunity.Stage,
		opportunity.EstimatedAmount,
		opportunity.CurrencyCode,
		opportunity.Observation,
		opportunity.CreatedAt,
		opportunity.CreatedBy,
		opportunity.UpdatedAt,
		opportunity.UpdatedBy,
	).Scan(&opportunity.OpportunityID, &opportunity.BoardPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit save transaction: %w", err)
	}
	return &opportunity, nil
}

func (r *PgxOpportunityRepository) FindOpportunityByID(ctx context.Context, opportunityID int64) (*domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE opportunity_id = $1;`
	opportunity, err := scanOpportunity(r.pool.QueryRow(ctx, query, opportunityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("opportunity %d: %w", opportunityID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find opportunity %d: %w", opportunityID, err)
	}
	return opportunity, nil
}

func (r *PgxOpportunityRepository) ListOpportunities(ctx context.Context, filter portsrepo.OpportunityFilter) ([]domain.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}
	if filter.ProspectID != nil {
		args = append(args, *filter.ProspectID)
		query += fmt.Sprintf(" AND prospect_id = $%d", len(args))
	}
	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if filter.Stage != nil {
		args = append(args, *filter.Stage)
		query += fmt.Sprintf(" AND stage = $%d", len(args))
	}
	query += " ORDER BY opportunity_id"
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
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	opportunities := make([]domain.Opportunity, 0)
	for rows.Next() {
		opportunity, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity row: %w", err)
		}
		opportunities = append(opportunities, *opportunity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunity rows: %w", err)
	}
	return opportunities, nil
}

func (r *PgxOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity domain.Opportunity) error {
	query := `
		UPDATE opportunities
		SET prospect_id = $2, property_id = $3, agent_id = $4, stage = $5, board_position = $6, estimated_amount = $7, observation = $8, updated_at = $9, updated_by = $10
		WHERE opportunity_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		opportunity.OpportunityID,
		opportunity.ProspectID,
		opportunity.PropertyID,
		opportunity.AgentID,
		opportunity.Stage,
		opportunity.BoardPosition,
		opportunity.EstimatedAmount,
		opportunity.Observation,
		opportunity.UpdatedAt,
		opportunity.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update opportunity %d: %w", opportunity.OpportunityID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("opportunity %d: %w", opportunity.OpportunityID, apperrors.ErrNotFound)
	}
	return nil
}

// MoveOpportunity relocates a kanban card inside one transaction: close the
// gap in the source column, open a slot in the destination column, then
// place the card. The row is locked for the duration so concurrent moves on
// the same card serialize.
func (r *PgxOpportunityRepository) MoveOpportunity(ctx context.Context, opportunityID int64, stage domain.OpportunityStage, position int, actorID int64, now time.Time) (*domain.Opportunity, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin move transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldStage domain.OpportunityStage
	var oldPosition int
	err = tx.QueryRow(ctx, `SELECT stage, board_position FROM opportunities WHERE opportunity_id = $1 FOR UPDATE;`, opportunityID).
		Scan(&oldStage, &oldPosition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("opportunity %d: %w", opportunityID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock opportunity %d: %w", opportunityID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE opportunities SET board_position = board_position - 1
		WHERE stage = $1 AND board_position > $2 AND opportunity_id <> $3;
	`, oldStage, oldPosition, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to close source column gap: %w", err)
	}

	var targetSize int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM opportunities WHERE stage = $1 AND opportunity_id <> $2;`, stage, opportunityID).
		Scan(&targetSize)
	if err != nil {
		return nil, fmt.Errorf("failed to size target column: %w", err)
	}
	if position > targetSize {
		position = targetSize
	}

	_, err = tx.Exec(ctx, `
		UPDATE opportunities SET board_position = board_position + 1
		WHERE stage = $1 AND board_position >= $2 AND opportunity_id <> $3;
	`, stage, position, opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to open destination slot: %w", err)
	}

	query := `
		UPDATE opportunities
		SET stage = $2, board_position = $3, updated_at = $4, updated_by = $5
		WHERE opportunity_id = $1
		RETURNING ` + opportunityColumns + `;
	`
	moved, err := scanOpportunity(tx.QueryRow(ctx, query, opportunityID, stage, position, now, actorID))
	if err != nil {
		return nil, fmt.Errorf("failed to place opportunity %d: %w", opportunityID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit move transaction: %w", err)
	}
	return moved, nil
}

// DeleteOpportunity removes a card and closes the gap in its stage column
// inside one transaction, keeping board positions contiguous.
func (r *PgxOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunityID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var stage domain.OpportunityStage
	var position int
	err = tx.QueryRow(ctx, `DELETE FROM opportunities WHERE opportunity_id = $1 RETURNING stage, board_position;`, opportunityID).
		Scan(&stage, &position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("opportunity %d: %w", opportunityID, apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to delete opportunity %d: %w", opportunityID, err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE opportunities SET board_position = board_position - 1
		WHERE stage = $1 AND board_position > $2;
	`, stage, position)
	if err != nil {
		return fmt.Errorf("failed to close column gap after delete: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return nil
}
