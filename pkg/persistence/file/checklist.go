package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/persistence"
)

// ChecklistRepository handles checklist-related file operations.
type ChecklistRepository struct {
	root string
}

// NewChecklistRepository creates a new checklist repository.
func NewChecklistRepository(root string) *ChecklistRepository {
	return &ChecklistRepository{root: root}
}

func (cr *ChecklistRepository) dir() string {
	return path.Join(cr.root, "checklists")
}

// Checklists returns every stored checklist, newest first.
func (cr *ChecklistRepository) Checklists(ctx context.Context) ([]*models.Checklist, error) {
	checklists := make([]*models.Checklist, 0)

	if _, err := os.Stat(cr.dir()); os.IsNotExist(err) {
		return checklists, nil
	}

	root := os.DirFS(cr.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist files: %w", err)
	}

	for _, file := range jsonFiles {
		checklistID := file[:len(file)-5] // Remove .json extension

		checklist, err := cr.ChecklistByID(ctx, checklistID)
		if err != nil {
			return nil, fmt.Errorf("failed to load checklist %s: %w", checklistID, err)
		}

		checklists = append(checklists, checklist)
	}

	sort.Slice(checklists, func(i, j int) bool {
		return checklists[i].CreatedAt.After(checklists[j].CreatedAt)
	})

	return checklists, nil
}

// ChecklistsByTemplate returns every checklist recorded against a template.
func (cr *ChecklistRepository) ChecklistsByTemplate(ctx context.Context, templateID string) ([]*models.Checklist, error) {
	all, err := cr.Checklists(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*models.Checklist, 0)

	for _, checklist := range all {
		if checklist.TemplateID == templateID {
			matched = append(matched, checklist)
		}
	}

	return matched, nil
}

// ChecklistByID returns a checklist by its ID.
func (cr *ChecklistRepository) ChecklistByID(_ context.Context, id string) (*models.Checklist, error) {
	data, err := os.ReadFile(filepath.Join(cr.dir(), id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewChecklistError("GetByID", id, persistence.ErrChecklistNotFound)
		}

		return nil, fmt.Errorf("failed to read checklist file: %w", err)
	}

	var checklist models.Checklist

	err = json.Unmarshal(data, &checklist)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal checklist %s: %w", id, err)
	}

	return &checklist, nil
}

// SaveChecklist writes a checklist record, creating or overwriting by ID.
// Records already in a terminal lifecycle state are immutable.
func (cr *ChecklistRepository) SaveChecklist(ctx context.Context, checklist *models.Checklist) error {
	existing, err := cr.ChecklistByID(ctx, checklist.ID)
	if err != nil && !persistence.IsChecklistNotFound(err) {
		return err
	}

	if existing != nil && existing.State.Terminal() {
		return persistence.NewChecklistError("Save", checklist.ID, persistence.ErrChecklistFinalized)
	}

	err = os.MkdirAll(cr.dir(), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create checklists directory: %w", err)
	}

	data, err := json.MarshalIndent(checklist, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checklist %s: %w", checklist.ID, err)
	}

	err = os.WriteFile(filepath.Join(cr.dir(), checklist.ID+".json"), data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write checklist file: %w", err)
	}

	return nil
}

// DeleteChecklist removes a checklist record by ID.
func (cr *ChecklistRepository) DeleteChecklist(_ context.Context, id string) error {
	err := os.Remove(filepath.Join(cr.dir(), id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewChecklistError("Delete", id, persistence.ErrChecklistNotFound)
		}

		return fmt.Errorf("failed to delete checklist file: %w", err)
	}

	return nil
}
