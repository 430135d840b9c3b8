package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// PgxChangeLogRepository implements the append-only change log over
// PostgreSQL. The change_log table carries no UPDATE or DELETE paths;
// records are immutable once inserted.
type PgxChangeLogRepository struct {
	pool *pgxpool.Pool
}

func newPgxChangeLogRepository(pool *pgxpool.Pool) *PgxChangeLogRepository {
	return &PgxChangeLogRepository{pool: pool}
}

var _ portsrepo.ChangeLogRepositoryFacade = (*PgxChangeLogRepository)(nil)

// AppendChange inserts the record. The database assigns the identifier and
// the timestamp; caller-supplied values for either are ignored.
func (r *PgxChangeLogRepository) AppendChange(ctx context.Context, record domain.ChangeRecord) (*domain.ChangeRecord, error) {
	query := `
		INSERT INTO change_log (entity_type, entity_id, action, description, previous_value, new_value, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		RETURNING change_id, created_at;
	`
	err := r.pool.QueryRow(ctx, query,
		record.EntityType,
		record.EntityID,
		record.Action,
		record.Description,
		record.PreviousValue,
		record.NewValue,
		record.UserID,
		record.UserName,
	).Scan(&record.ChangeID, &record.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to append change record: %w", err)
	}
	return &record, nil
}

// ListChangesByEntity returns the entity's records most recent first:
// descending timestamp, descending identifier on ties.
func (r *PgxChangeLogRepository) ListChangesByEntity(ctx context.Context, entityType domain.EntityType, entityID int64) ([]domain.ChangeRecord, error) {
	query := `
		SELECT change_id, entity_type, entity_id, action, description, previous_value, new_value, user_id, user_name, created_at
		FROM change_log
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC, change_id DESC;
	`
	rows, err := r.pool.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list change records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.ChangeRecord, 0)
	for rows.Next() {
		var record domain.ChangeRecord
		err := rows.Scan(
			&record.ChangeID,
			&record.EntityType,
			&record.EntityID,
			&record.Action,
			&record.Description,
			&record.PreviousValue,
			&record.NewValue,
			&record.UserID,
			&record.UserName,
			&record.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change record row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate change record rows: %w", err)
	}
	return records, nil
}
