// Package persistence provides data storage abstraction for checklist
// templates and completion records.
package persistence

import (
	"context"

	"github.com/dukex/fleetcheck/pkg/models"
)

// TemplateRepository stores checklist template definitions.
type TemplateRepository interface {
	Templates(ctx context.Context) ([]*models.Template, error)
	TemplateByID(ctx context.Context, id string) (*models.Template, error)
	TemplateByName(ctx context.Context, name string) (*models.Template, error)
	SaveTemplate(ctx context.Context, template *models.Template) error
	DeleteTemplate(ctx context.Context, id string) error
}

// ChecklistRepository stores checklist completion records. SaveChecklist is
// the single atomic upsert the lifecycle controller relies on: a record is
// never half saved. Implementations must refuse overwrites of records
// already in a terminal lifecycle state with ErrChecklistFinalized.
type ChecklistRepository interface {
	Checklists(ctx context.Context) ([]*models.Checklist, error)
	ChecklistsByTemplate(ctx context.Context, templateID string) ([]*models.Checklist, error)
	ChecklistByID(ctx context.Context, id string) (*models.Checklist, error)
	SaveChecklist(ctx context.Context, checklist *models.Checklist) error
	DeleteChecklist(ctx context.Context, id string) error
}

type Persistence interface {
	TemplateRepository() TemplateRepository
	ChecklistRepository() ChecklistRepository
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
