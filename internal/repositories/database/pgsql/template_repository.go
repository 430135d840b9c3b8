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

// PgxTemplateRepository implements the message template repository ports
// over PostgreSQL.
type PgxTemplateRepository struct {
	pool *pgxpool.Pool
}

func newPgxTemplateRepository(pool *pgxpool.Pool) *PgxTemplateRepository {
	return &PgxTemplateRepository{pool: pool}
}

var _ portsrepo.TemplateRepositoryFacade = (*PgxTemplateRepository)(nil)

const templateColumns = `template_id, name, subject, body, channel, is_active, created_at, created_by, updated_at, updated_by`

func scanTemplate(row pgx.Row) (*domain.MessageTemplate, error) {
	var t domain.MessageTemplate
	err := row.Scan(
		&t.TemplateID,
		&t.Name,
		&t.Subject,
		&t.Body,
		&t.Channel,
		&t.IsActive,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.UpdatedAt,
		&t.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTemplateRepository) SaveTemplate(ctx context.Context, template domain.MessageTemplate) (*domain.MessageTemplate, error) {
	query := `
		INSERT INTO message_templates (name, subject, body, channel, is_active, created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING template_id;
	`
	err := r.pool.QueryRow(ctx, query,
		template.Name,
		template.Subject,
		template.Body,
		template.Channel,
		template.IsActive,
		template.CreatedAt,
		template.CreatedBy,
		template.UpdatedAt,
		template.UpdatedBy,
	).Scan(&template.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}
	return &template, nil
}

func (r *PgxTemplateRepository) FindTemplateByID(ctx context.Context, templateID int64) (*domain.MessageTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM message_templates WHERE template_id = $1;`
	template, err := scanTemplate(r.pool.QueryRow(ctx, query, templateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("template %d: %w", templateID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find template %d: %w", templateID, err)
	}
	return template, nil
}

func (r *PgxTemplateRepository) ListTemplates(ctx context.Context, activeOnly bool, limit int, offset int) ([]domain.MessageTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM message_templates`
	args := []any{}
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY template_id"
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
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]domain.MessageTemplate, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		templates = append(templates, *template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate template rows: %w", err)
	}
	return templates, nil
}

func (r *PgxTemplateRepository) UpdateTemplate(ctx context.Context, template domain.MessageTemplate) error {
	query := `
		UPDATE message_templates
		SET name = $2, subject = $3, body = $4, channel = $5, is_active = $6, updated_at = $7, updated_by = $8
		WHERE template_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		template.TemplateID,
		template.Name,
		template.Subject,
		template.Body,
		template.Channel,
		template.IsActive,
		template.UpdatedAt,
		template.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update template %d: %w", template.TemplateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %d: %w", template.TemplateID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTemplateRepository) DeleteTemplate(ctx context.Context, templateID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM message_templates WHERE template_id = $1;`, templateID)
	if err != nil {
		return fmt.Errorf("failed to delete template %d: %w", templateID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template %d: %w", templateID, apperrors.ErrNotFound)
	}
	return nil
}
