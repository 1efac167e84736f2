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

// TemplateRepository handles template-related file operations.
type TemplateRepository struct {
	root string
}

// NewTemplateRepository creates a new template repository.
func NewTemplateRepository(root string) *TemplateRepository {
	return &TemplateRepository{root: root}
}

func (tr *TemplateRepository) dir() string {
	return path.Join(tr.root, "templates")
}

// Templates returns every stored template, ordered by name.
func (tr *TemplateRepository) Templates(ctx context.Context) ([]*models.Template, error) {
	templates := make([]*models.Template, 0)

	if _, err := os.Stat(tr.dir()); os.IsNotExist(err) {
		return templates, nil
	}

	root := os.DirFS(tr.dir())

	jsonFiles, err := fs.Glob(root, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list template files: %w", err)
	}

	for _, file := range jsonFiles {
		templateID := file[:len(file)-5] // Remove .json extension

		template, err := tr.TemplateByID(ctx, templateID)
		if err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", templateID, err)
		}

		templates = append(templates, template)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates, nil
}

// TemplateByID returns a template by its ID.
func (tr *TemplateRepository) TemplateByID(_ context.Context, id string) (*models.Template, error) {
	data, err := os.ReadFile(filepath.Join(tr.dir(), id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewTemplateError("GetByID", id, persistence.ErrTemplateNotFound)
		}

		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var template models.Template

	err = json.Unmarshal(data, &template)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal template %s: %w", id, err)
	}

	return &template, nil
}

// TemplateByName returns the first template whose name matches exactly.
func (tr *TemplateRepository) TemplateByName(ctx context.Context, name string) (*models.Template, error) {
	templates, err := tr.Templates(ctx)
	if err != nil {
		return nil, err
	}

	for _, template := range templates {
		if template.Name == name {
			return template, nil
		}
	}

	return nil, persistence.NewTemplateError("GetByName", name, persistence.ErrTemplateNotFound)
}

// SaveTemplate writes a template record, creating or overwriting by ID.
func (tr *TemplateRepository) SaveTemplate(_ context.Context, template *models.Template) error {
	err := os.MkdirAll(tr.dir(), 0o755)
	if err != nil {
		return fmt.Errorf("failed to create templates directory: %w", err)
	}

	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal template %s: %w", template.ID, err)
	}

	err = os.WriteFile(filepath.Join(tr.dir(), template.ID+".json"), data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}

	return nil
}

// DeleteTemplate removes a template record by ID.
func (tr *TemplateRepository) DeleteTemplate(_ context.Context, id string) error {
	err := os.Remove(filepath.Join(tr.dir(), id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewTemplateError("Delete", id, persistence.ErrTemplateNotFound)
		}

		return fmt.Errorf("failed to delete template file: %w", err)
	}

	return nil
}
