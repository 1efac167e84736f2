package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/persistence"
)

// ChecklistRepository handles checklist-related database operations.
type ChecklistRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewChecklistRepository creates a new checklist repository.
func NewChecklistRepository(db *sql.DB, logger *slog.Logger) *ChecklistRepository {
	return &ChecklistRepository{db: db, logger: logger}
}

const checklistColumns = `
	id
  , template_id
  , responses
  , notes
  , validation_summary
  , total_items
  , completed_items
  , correct_count
  , warning_count
  , error_count
  , percent_complete
  , state
  , requires_review
  , effective_date
  , created_by
  , created_at
  , updated_at
`

// Checklists returns all checklists, newest first.
func (r *ChecklistRepository) Checklists(ctx context.Context) ([]*models.Checklist, error) {
	query := `
		SELECT ` + checklistColumns + `
		FROM checklists
		ORDER BY created_at DESC
	`

	return r.queryChecklists(ctx, query)
}

// ChecklistsByTemplate returns all checklists recorded against a template,
// newest first.
func (r *ChecklistRepository) ChecklistsByTemplate(ctx context.Context, templateID string) ([]*models.Checklist, error) {
	query := `
		SELECT ` + checklistColumns + `
		FROM checklists
		WHERE template_id = $1
		ORDER BY created_at DESC
	`

	return r.queryChecklists(ctx, query, templateID)
}

func (r *ChecklistRepository) queryChecklists(ctx context.Context, query string, args ...any) ([]*models.Checklist, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklists: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	checklists := make([]*models.Checklist, 0)

	for rows.Next() {
		checklist, err := scanChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}

		checklists = append(checklists, checklist)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating checklists: %w", err)
	}

	return checklists, nil
}

// ChecklistByID returns a checklist by its ID.
func (r *ChecklistRepository) ChecklistByID(ctx context.Context, id string) (*models.Checklist, error) {
	query := `
		SELECT ` + checklistColumns + `
		FROM checklists
		WHERE id = $1
	`

	checklist, err := scanChecklist(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewChecklistError("GetByID", id, persistence.ErrChecklistNotFound)
		}

		return nil, fmt.Errorf("failed to scan checklist: %w", err)
	}

	return checklist, nil
}

// SaveChecklist creates or overwrites a checklist by ID in a single
// statement. Overwrites of terminally-stated records are refused inside the
// upsert's WHERE clause, so the immutability check and the write are one
// atomic operation.
func (r *ChecklistRepository) SaveChecklist(ctx context.Context, checklist *models.Checklist) error {
	responses, err := json.Marshal(checklist.Responses)
	if err != nil {
		return fmt.Errorf("failed to marshal responses: %w", err)
	}

	notes, err := json.Marshal(checklist.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	summary, err := json.Marshal(checklist.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal validation summary: %w", err)
	}

	query := `
		INSERT INTO checklists (
			id, template_id, responses, notes, validation_summary,
			total_items, completed_items, correct_count, warning_count, error_count,
			percent_complete, state, requires_review, effective_date, created_by,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (id) DO UPDATE SET
			responses = EXCLUDED.responses
		  , notes = EXCLUDED.notes
		  , validation_summary = EXCLUDED.validation_summary
		  , total_items = EXCLUDED.total_items
		  , completed_items = EXCLUDED.completed_items
		  , correct_count = EXCLUDED.correct_count
		  , warning_count = EXCLUDED.warning_count
		  , error_count = EXCLUDED.error_count
		  , percent_complete = EXCLUDED.percent_complete
		  , state = EXCLUDED.state
		  , requires_review = EXCLUDED.requires_review
		  , effective_date = EXCLUDED.effective_date
		  , updated_at = EXCLUDED.updated_at
		WHERE checklists.state = 'in_progress'
	`

	result, err := r.db.ExecContext(ctx, query,
		checklist.ID,
		checklist.TemplateID,
		responses,
		notes,
		summary,
		checklist.TotalItems,
		checklist.CompletedItems,
		checklist.CorrectCount,
		checklist.WarningCount,
		checklist.ErrorCount,
		checklist.PercentComplete,
		checklist.State,
		checklist.RequiresReview,
		checklist.EffectiveDate,
		checklist.CreatedBy,
		checklist.CreatedAt,
		checklist.UpdatedAt,
	)
	if err != nil {
		return persistence.NewChecklistError("Save", checklist.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return persistence.NewChecklistError("Save", checklist.ID, persistence.ErrChecklistFinalized)
	}

	return nil
}

// DeleteChecklist removes a checklist record by ID.
func (r *ChecklistRepository) DeleteChecklist(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM checklists WHERE id = $1", id)
	if err != nil {
		return persistence.NewChecklistError("Delete", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return persistence.NewChecklistError("Delete", id, persistence.ErrChecklistNotFound)
	}

	return nil
}

func scanChecklist(row rowScanner) (*models.Checklist, error) {
	var (
		checklist models.Checklist
		responses []byte
		notes     []byte
		summary   []byte
	)

	err := row.Scan(
		&checklist.ID,
		&checklist.TemplateID,
		&responses,
		&notes,
		&summary,
		&checklist.TotalItems,
		&checklist.CompletedItems,
		&checklist.CorrectCount,
		&checklist.WarningCount,
		&checklist.ErrorCount,
		&checklist.PercentComplete,
		&checklist.State,
		&checklist.RequiresReview,
		&checklist.EffectiveDate,
		&checklist.CreatedBy,
		&checklist.CreatedAt,
		&checklist.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(responses, &checklist.Responses)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal responses: %w", err)
	}

	err = json.Unmarshal(notes, &checklist.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
	}

	if len(summary) > 0 && string(summary) != "null" {
		checklist.Summary = &models.ValidationSummary{}

		err = json.Unmarshal(summary, checklist.Summary)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal validation summary: %w", err)
		}
	}

	return &checklist, nil
}
