package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/persistence"
)

// TemplateRepository handles template-related database operations.
type TemplateRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(db *sql.DB, logger *slog.Logger) *TemplateRepository {
	return &TemplateRepository{db: db, logger: logger}
}

const templateColumns = `
	id
  , name
  , description
  , version
  , resource_type
  , sections
  , created_at
  , updated_at
  , deleted_at
`

// Templates returns all templates from the database.
func (r *TemplateRepository) Templates(ctx context.Context) ([]*models.Template, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM templates
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query templates: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	templates := make([]*models.Template, 0)

	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}

		templates = append(templates, template)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating templates: %w", err)
	}

	return templates, nil
}

// TemplateByID returns a template by its ID.
func (r *TemplateRepository) TemplateByID(ctx context.Context, id string) (*models.Template, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM templates
		WHERE id = $1 AND deleted_at IS NULL
	`

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewTemplateError("GetByID", id, persistence.ErrTemplateNotFound)
		}

		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	return template, nil
}

// TemplateByName returns a template by its exact name.
func (r *TemplateRepository) TemplateByName(ctx context.Context, name string) (*models.Template, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM templates
		WHERE name = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewTemplateError("GetByName", name, persistence.ErrTemplateNotFound)
		}

		return nil, fmt.Errorf("failed to scan template: %w", err)
	}

	return template, nil
}

// SaveTemplate creates or overwrites a template by ID.
func (r *TemplateRepository) SaveTemplate(ctx context.Context, template *models.Template) error {
	sections, err := json.Marshal(template.Sections)
	if err != nil {
		return fmt.Errorf("failed to marshal sections: %w", err)
	}

	query := `
		INSERT INTO templates (id, name, description, version, resource_type, sections, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name
		  , description = EXCLUDED.description
		  , version = EXCLUDED.version
		  , resource_type = EXCLUDED.resource_type
		  , sections = EXCLUDED.sections
		  , updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		template.ID,
		template.Name,
		template.Description,
		template.Version,
		template.ResourceType,
		sections,
		template.CreatedAt,
		template.UpdatedAt,
	)
	if err != nil {
		return persistence.NewTemplateError("Save", template.ID, err)
	}

	return nil
}

// DeleteTemplate soft deletes a template by setting deleted_at.
func (r *TemplateRepository) DeleteTemplate(ctx context.Context, id string) error {
	query := `UPDATE templates SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return persistence.NewTemplateError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return persistence.NewTemplateError("Delete", id, persistence.ErrTemplateNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var (
		template models.Template
		sections []byte
	)

	err := row.Scan(
		&template.ID,
		&template.Name,
		&template.Description,
		&template.Version,
		&template.ResourceType,
		&sections,
		&template.CreatedAt,
		&template.UpdatedAt,
		&template.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(sections, &template.Sections)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal sections: %w", err)
	}

	return &template, nil
}
