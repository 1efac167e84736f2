package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/persistence"
	"github.com/google/uuid"
)

// Template is the template management service.
type Template struct {
	persistence persistence.Persistence
}

// NewTemplate creates a new template service.
func NewTemplate(persistence persistence.Persistence) *Template {
	return &Template{
		persistence: persistence,
	}
}

// HealthCheck checks the health of the persistence layer.
func (t *Template) HealthCheck(ctx context.Context) (string, bool) {
	if t.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := t.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every stored template.
func (t *Template) List(ctx context.Context) ([]*models.Template, error) {
	return t.persistence.TemplateRepository().Templates(ctx)
}

// FetchByID returns a template by its ID.
func (t *Template) FetchByID(ctx context.Context, id string) (*models.Template, error) {
	return t.persistence.TemplateRepository().TemplateByID(ctx, id)
}

// FetchByName returns a template by its well-known name.
func (t *Template) FetchByName(ctx context.Context, name string) (*models.Template, error) {
	return t.persistence.TemplateRepository().TemplateByName(ctx, name)
}

// Create validates and stores a template, generating an ID when absent.
func (t *Template) Create(ctx context.Context, template *models.Template) (*models.Template, error) {
	err := t.validateTemplate(template)
	if err != nil {
		return nil, err
	}

	if template.ID == "" {
		template.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	err = t.persistence.TemplateRepository().SaveTemplate(ctx, template)
	if err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	return template, nil
}

// CreateFromDocument validates a raw template JSON document against the
// template schema, decodes it and stores it.
func (t *Template) CreateFromDocument(ctx context.Context, document []byte) (*models.Template, error) {
	err := models.ValidateTemplateDocument(document)
	if err != nil {
		return nil, NewValidationError("CreateFromDocument", err.Error(), ErrInvalidRequest)
	}

	var template models.Template

	err = json.Unmarshal(document, &template)
	if err != nil {
		return nil, NewValidationError("CreateFromDocument", "malformed template document", ErrInvalidRequest)
	}

	return t.Create(ctx, &template)
}

// Delete removes a template by ID.
func (t *Template) Delete(ctx context.Context, id string) error {
	return t.persistence.TemplateRepository().DeleteTemplate(ctx, id)
}

func (t *Template) validateTemplate(template *models.Template) error {
	if template == nil {
		return ErrTemplateNil
	}

	if strings.TrimSpace(template.Name) == "" {
		return ErrTemplateNameRequired
	}

	if len(template.Sections) == 0 {
		return ErrSectionsRequired
	}

	if duplicates := template.DuplicateItemIDs(); len(duplicates) > 0 {
		return NewValidationError("Create", "duplicate item ids: "+strings.Join(duplicates, ", "), ErrDuplicateItemIDs)
	}

	return nil
}
