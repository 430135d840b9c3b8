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

// PgxVisitRepository implements the visit repository ports over PostgreSQL.
type PgxVisitRepository struct {
	pool *pgxpool.Pool
}

func newPgxVisitRepository(pool *pgxpool.Pool) *PgxVisitRepository {
	return &PgxVisitRepository{pool: pool}
}

var _ portsrepo.VisitRepositoryFacade = (*PgxVisitRepository)(nil)

const visitColumns = `visit_id, opportunity_id, property_id, agent_id, scheduled_at, status, notes, created_at, created_by, updated_at, updated_by`

func scanVisit(row pgx.Row) (*domain.Visit, error) {
	var v domain.Visit
	err := row.Scan(
		&v.VisitID,
		&v.OpportunityID,
		&v.PropertyID,
		&v.AgentID,
		&v.ScheduledAt,
		&v.Status,
		&v.Notes,
		&v.CreatedAt,
		&v.CreatedBy,
		&v.UpdatedAt,
		&v.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PgxVisitRepository) SaveVisit(ctx context.Context, visit domain.Visit) (*domain.Visit, error) {
	query := `
		INSERT INTO visits (opportunity_id, property_id, agent_id, scheduled_at, status, notes, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING visit_id;
	`
	err := r.pool.QueryRow(ctx, query,
		visit.OpportunityID,
		visit.PropertyID,
		visit.AgentID,
		visit.ScheduledAt,
		visit.Status,
		visit.Notes,
		visit.CreatedAt,
		visit.CreatedBy,
		visit.UpdatedAt,
		visit.UpdatedBy,
	).Scan(&visit.VisitID)
	if err != nil {
		return nil, fmt.Errorf("failed to save visit: %w", err)
	}
	return &visit, nil
}

func (r *PgxVisitRepository) FindVisitByID(ctx context.Context, visitID int64) (*domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE visit_id = $1;`
	visit, err := scanVisit(r.pool.QueryRow(ctx, query, visitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("visit %d: %w", visitID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find visit %d: %w", visitID, err)
	}
	return visit, nil
}

func (r *PgxVisitRepository) ListVisits(ctx context.Context, filter portsrepo.VisitFilter) ([]domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE 1=1`
	args := []any{}
	if filter.OpportunityID != nil {
		args = append(args, *filter.OpportunityID)
		query += fmt.Sprintf(" AND opportunity_id = $%d", len(args))
	}
	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY visit_id"
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
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	defer rows.Close()

	visits := make([]domain.Visit, 0)
	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		visits = append(visits, *visit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visit rows: %w", err)
	}
	return visits, nil
}

func (r *PgxVisitRepository) UpdateVisit(ctx context.Context, visit domain.Visit) error {
	query := `
		UPDATE visits
		SET agent_id = $2, scheduled_at = $3, status = $4, notes = $5, updated_at = $6, updated_by = $7
		WHERE visit_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		visit.VisitID,
		visit.AgentID,
		visit.ScheduledAt,
		visit.Status,
		visit.Notes,
		visit.UpdatedAt,
		visit.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update visit %d: %w", visit.VisitID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("visit %d: %w", visit.VisitID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxVisitRepository) DeleteVisit(ctx context.Context, visitID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM visits WHERE visit_id = $1;`, visitID)
	if err != nil {
		return fmt.Errorf("failed to delete visit %d: %w", visitID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("visit %d: %w", visitID, apperrors.ErrNotFound)
	}
	return nil
}
