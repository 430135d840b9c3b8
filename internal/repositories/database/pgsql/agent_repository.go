package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// PgxAgentRepository implements the agent repository ports over PostgreSQL.
type PgxAgentRepository struct {
	pool *pgxpool.Pool
}

func newPgxAgentRepository(pool *pgxpool.Pool) *PgxAgentRepository {
	return &PgxAgentRepository{pool: pool}
}

var _ portsrepo.AgentRepositoryFacade = (*PgxAgentRepository)(nil)

const agentColumns = `agent_id, name, email, password_hash, role, is_active, created_at, created_by, updated_at, updated_by`

func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var a domain.Agent
	err := row.Scan(
		&a.AgentID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.IsActive,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.UpdatedAt,
		&a.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PgxAgentRepository) SaveAgent(ctx context.Context, agent domain.Agent) (*domain.Agent, error) {
	query := `
		INSERT INTO agents (name, email, password_hash, role, is_active, created_at, created_by, updated_at, updated_by)
		VALUES ($1, lower($2), $3, $4, $5, $6, $7, $8, $9)
		RETURNING agent_id;
	`
	err := r.pool.QueryRow(ctx, query,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.Role,
		agent.IsActive,
		agent.CreatedAt,
		agent.CreatedBy,
		agent.UpdatedAt,
		agent.UpdatedBy,
	).Scan(&agent.AgentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("agent email %q: %w", agent.Email, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save agent: %w", err)
	}
	return &agent, nil
}

func (r *PgxAgentRepository) FindAgentByID(ctx context.Context, agentID int64) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE agent_id = $1;`
	agent, err := scanAgent(r.pool.QueryRow(ctx, query, agentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("agent %d: %w", agentID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find agent %d: %w", agentID, err)
	}
	return agent, nil
}

func (r *PgxAgentRepository) FindAgentByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE email = lower($1);`
	agent, err := scanAgent(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("agent email %q: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find agent by email: %w", err)
	}
	return agent, nil
}

func (r *PgxAgentRepository) ListAgents(ctx context.Context, limit int, offset int) ([]domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents ORDER BY agent_id`
	args := []any{}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0)
	for rows.Next() {
		agent, err := scanAgent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent row: %w", err)
		}
		agents = append(agents, *agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agent rows: %w", err)
	}
	return agents, nil
}

func (r *PgxAgentRepository) UpdateAgent(ctx context.Context, agent domain.Agent) error {
	query := `
		UPDATE agents
		SET name = $2, email = lower($3), password_hash = $4, role = $5, is_active = $6, updated_at = $7, updated_by = $8
		WHERE agent_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		agent.AgentID,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.Role,
		agent.IsActive,
		agent.UpdatedAt,
		agent.UpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("agent email %q: %w", agent.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update agent %d: %w", agent.AgentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agent %d: %w", agent.AgentID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxAgentRepository) DeactivateAgent(ctx context.Context, agentID int64, actorID int64, now time.Time) error {
	query := `
		UPDATE agents
		SET is_active = FALSE, updated_at = $2, updated_by = $3
		WHERE agent_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, agentID, now, actorID)
	if err != nil {
		return fmt.Errorf("failed to deactivate agent %d: %w", agentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agent %d: %w", agentID, apperrors.ErrNotFound)
	}
	return nil
}
