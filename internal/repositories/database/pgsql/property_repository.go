package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistahomes/real_estate_crm/internal/apperrors"
	"github.com/vistahomes/real_estate_crm/internal/core/domain"
	portsrepo "github.com/vistahomes/real_estate_crm/internal/core/ports/repositories"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const uniqueViolation = "23505"

// PgxPropertyRepository implements the property repository ports over
// PostgreSQL.
type PgxPropertyRepository struct {
	pool *pgxpool.Pool
}

func newPgxPropertyRepository(pool *pgxpool.Pool) *PgxPropertyRepository {
	return &PgxPropertyRepository{pool: pool}
}

var _ portsrepo.PropertyRepositoryFacade = (*PgxPropertyRepository)(nil)

const propertyColumns = `property_id, reference, title, address, city, price, currency_code, bedrooms, bathrooms, area_m2, status, agent_id, created_at, created_by, updated_at, updated_by`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.PropertyID,
		&p.Reference,
		&p.Title,
		&p.Address,
		&p.City,
		&p.Price,
		&p.CurrencyCode,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.AreaM2,
		&p.Status,
		&p.AgentID,
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

func (r *PgxPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) (*domain.Property, error) {
	query := `
		INSERT INTO properties (reference, title, address, city, price, currency_code, bedrooms, bathrooms, area_m2, status, agent_id, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING property_id;
	`
	err := r.pool.QueryRow(ctx, query,
		property.Reference,
		property.Title,
		property.Address,
		property.City,
		property.Price,
		property.CurrencyCode,
		property.Bedrooms,
		property.Bathrooms,
		property.AreaM2,
		property.Status,
		property.AgentID,
		property.CreatedAt,
		property.CreatedBy,
		property.UpdatedAt,
		property.UpdatedBy,
	).Scan(&property.PropertyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("property reference %q: %w", property.Reference, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to save property: %w", err)
	}
	return &property, nil
}

func (r *PgxPropertyRepository) FindPropertyByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE property_id = $1;`
	property, err := scanProperty(r.pool.QueryRow(ctx, query, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("property %d: %w", propertyID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find property %d: %w", propertyID, err)
	}
	return property, nil
}

func (r *PgxPropertyRepository) ListProperties(ctx context.Context, filter portsrepo.PropertyFilter) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE 1=1`
	args := []any{}
	if filter.AgentID != nil {
		args = append(args, *filter.AgentID)
		query += fmt.Sprintf(" AND agent_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.City != nil {
		args = append(args, *filter.City)
		query += fmt.Sprintf(" AND city = $%d", len(args))
	}
	query += " ORDER BY property_id"
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
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, *property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate property rows: %w", err)
	}
	return properties, nil
}

func (r *PgxPropertyRepository) UpdateProperty(ctx context.Context, property domain.Property) error {
	query := `
		UPDATE properties
		SET title = $2, address = $3, city = $4, price = $5, bedrooms = $6, bathrooms = $7, area_m2 = $8, status = $9, agent_id = $10, updated_at = $11, updated_by = $12
		WHERE property_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		property.PropertyID,
		property.Title,
		property.Address,
		property.City,
		property.Price,
		property.Bedrooms,
		property.Bathrooms,
		property.AreaM2,
		property.Status,
		property.AgentID,
		property.UpdatedAt,
		property.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update property %d: %w", property.PropertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %d: %w", property.PropertyID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxPropertyRepository) DeleteProperty(ctx context.Context, propertyID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE property_id = $1;`, propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete property %d: %w", propertyID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("property %d: %w", propertyID, apperrors.ErrNotFound)
	}
	return nil
}
