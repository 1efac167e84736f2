// Package file provides file-based persistence implementation for checklist
// templates and completion records.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/dukex/fleetcheck/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface using the
// file system. Each record is one JSON document under the root directory.
type Persistence struct {
	root          string
	templateRepo  *TemplateRepository
	checklistRepo *ChecklistRepository
}

// NewPersistence creates a new instance of Persistence with the specified
// root directory.
func NewPersistence(root string) persistence.Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{
		root:          cleanRoot,
		templateRepo:  NewTemplateRepository(cleanRoot),
		checklistRepo: NewChecklistRepository(cleanRoot),
	}
}

// Close performs any necessary cleanup. For file-based persistence, there is nothing to clean up.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

// HealthCheck checks if the file persistence layer is healthy by verifying the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return os.ErrNotExist
	}

	return nil
}

// TemplateRepository returns the template repository implementation for file persistence.
func (fp *Persistence) TemplateRepository() persistence.TemplateRepository {
	return fp.templateRepo
}

// ChecklistRepository returns the checklist repository implementation for file persistence.
func (fp *Persistence) ChecklistRepository() persistence.ChecklistRepository {
	return fp.checklistRepo
}
