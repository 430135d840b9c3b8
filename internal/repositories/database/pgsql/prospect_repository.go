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

// PgxProspectRepository implements the prospect repository ports over
// PostgreSQL.
type PgxProspectRepository struct {
	pool *pgxpool.Pool
}

func newPgxProspectRepository(pool *pgxpool.Pool) *PgxProspectRepository {
	return &PgxProspectRepository{pool: pool}
}

var _ portsrepo.ProspectRepositoryFacade = (*PgxProspectRepository)(nil)

const prospectColumns = `prospect_id, name, email, phone, source, status, agent_id, observation, created_at, created_by, updated_at, updated_by`

func scanProspect(row pgx.Row) (*domain.Prospect, error) {
	var p domain.Prospect
	err := row.Scan(
		&p.ProspectID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Source,
		&p.Status,
		&p.AgentID,
		&p.Observation,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.UpdatedAt,
		&p.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxProspectRepository) SaveProspect(ctx context.Context, prospect domain.Prospect) (*domain.Prospect, error) {
	query := `
		INSERT INTO prospects (name, email, phone, source, status, agent_id, observation, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING prospect_id;
	`
	err := r.pool.QueryRow(ctx, query,
		prospect.Name,
		prospect.Email,
		prospect.Phone,
		prospect.Source,
		prospect.Status,
		prospect.AgentID,
		prospect.Observation,
		prospect.CreatedAt,
		prospect.CreatedBy,
		prospect.UpdatedAt,
		prospect.UpdatedBy,
	).Scan(&prospect.ProspectID)
	if err != nil {
		return nil, fmt.Errorf("failed to save prospect: %w", err)
	}
	return &prospect, nil
}

func (r *PgxProspectRepository) FindProspectByID(ctx context.Context, prospectID int64) (*domain.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE prospect_id = $1;`
	prospect, err := scanProspect(r.pool.QueryRow(ctx, query, prospectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("prospect %d: %w", prospectID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find prospect %d: %w", prospectID, err)
	}
	return prospect, nil
}

func (r *PgxProspectRepository) ListProspects(ctx context.Context, filter portsrepo.ProspectFilter) ([]domain.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE 1=1`
	args := []any{}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY prospect_id"
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
		return nil, fmt.Errorf("failed to list prospects: %w", err)
	}
	defer rows.Close()

	prospects := make([]domain.Prospect, 0)
	for rows.Next() {
		prospect, err := scanProspect(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prospect row: %w", err)
		}
		prospects = append(prospects, *prospect)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prospect rows: %w", err)
	}
	return prospects, nil
}

func (r *PgxProspectRepository) UpdateProspect(ctx context.Context, prospect domain.Prospect) error {
	query := `
		UPDATE prospects
		SET name = $2, email = $3, phone = $4, source = $5, status = $6, agent_id = $7, observation = $8, updated_at = $9, updated_by = $10
		WHERE prospect_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		prospect.ProspectID,
		prospect.Name,
		prospect.Email,
		prospect.Phone,
		prospect.Source,
		prospect.Status,
		prospect.AgentID,
		prospect.Observation,
		prospect.UpdatedAt,
		prospect.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update prospect %d: %w", prospect.ProspectID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prospect %d: %w", prospect.ProspectID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxProspectRepository) DeleteProspect(ctx context.Context, prospectID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM prospects WHERE prospect_id = $1;`, prospectID)
	if err != nil {
		return fmt.Errorf("failed to delete prospect %d: %w", prospectID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("prospect %d: %w", prospectID, apperrors.ErrNotFound)
	}
	return nil
}
