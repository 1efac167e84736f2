package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dukex/fleetcheck/pkg/engine"
	"github.com/dukex/fleetcheck/pkg/eventbus"
	"github.com/dukex/fleetcheck/pkg/events"
	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/otelhelper"
	"github.com/dukex/fleetcheck/pkg/persistence"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxMissingInMessage = 5

// Checklist orchestrates checklist lifecycle operations: saving drafts and
// finalizing. It does not serialize concurrent calls for the same checklist
// ID; callers must keep at most one save or finalize in flight per record.
type Checklist struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	tracer      trace.Tracer
	logger      *slog.Logger
}

// NewChecklist creates a new checklist lifecycle service.
func NewChecklist(persistence persistence.Persistence) *Checklist {
	return &Checklist{
		persistence: persistence,
		tracer:      otel.Tracer("fleetcheck/services"),
		logger:      slog.Default().With("module", "services.checklist"),
	}
}

// WithEventBus attaches an event bus for lifecycle notifications.
func (c *Checklist) WithEventBus(eventBus eventbus.EventBus) *Checklist {
	c.eventBus = eventBus

	return c
}

// WithTracer overrides the default tracer.
func (c *Checklist) WithTracer(tracer trace.Tracer) *Checklist {
	c.tracer = tracer

	return c
}

// SaveRequest carries everything one save or finalize call needs. The
// response map is treated as an immutable value: callers pass a fresh
// snapshot on every call.
type SaveRequest struct {
	ChecklistID   string // empty means create a new record
	TemplateID    string `validate:"required"`
	Responses     map[string]engine.RawResponse
	Notes         map[string]string
	EffectiveDate time.Time
	User          string
	Device        string
}

// FinalizeResult reports the outcome of a finalize call. A gate refusal is
// a business rule rejection, not a fault: Success is false, Checklist is
// nil and Message explains what is missing or wrong. Callers surface the
// message verbatim and must not retry automatically.
type FinalizeResult struct {
	Checklist *models.Checklist `json:"checklist,omitempty"`
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
}

// HealthCheck checks the health of the persistence layer.
func (c *Checklist) HealthCheck(ctx context.Context) (string, bool) {
	if c.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := c.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every stored checklist.
func (c *Checklist) List(ctx context.Context) ([]*models.Checklist, error) {
	return c.persistence.ChecklistRepository().Checklists(ctx)
}

// ListByTemplate returns every checklist recorded against a template.
func (c *Checklist) ListByTemplate(ctx context.Context, templateID string) ([]*models.Checklist, error) {
	return c.persistence.ChecklistRepository().ChecklistsByTemplate(ctx, templateID)
}

// FetchByID returns a checklist by its ID.
func (c *Checklist) FetchByID(ctx context.Context, id string) (*models.Checklist, error) {
	return c.persistence.ChecklistRepository().ChecklistByID(ctx, id)
}

// SaveInProgress persists a draft. Progress and validation are computed and
// stored but never block the save: partial or invalid work is a valid
// draft. The lifecycle state is always in_progress and requires_review is
// always false.
func (c *Checklist) SaveInProgress(ctx context.Context, req SaveRequest) (*models.Checklist, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "checklist.save_in_progress",
		attribute.String(otelhelper.ChecklistIDKey, req.ChecklistID),
		attribute.String(otelhelper.TemplateIDKey, req.TemplateID),
	)
	defer span.End()

	template, existing, err := c.loadPreconditions(ctx, req)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	checklist := c.buildRecord(template, existing, req)
	checklist.State = models.StateInProgress
	checklist.RequiresReview = false

	err = c.persistence.ChecklistRepository().SaveChecklist(ctx, checklist)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to save checklist: %w", err)
	}

	c.publishSaved(ctx, checklist)

	return checklist, nil
}

// Finalize runs the finalization gate and, only if it passes, persists the
// record in a terminal lifecycle state. The gate is checked before any
// write: a refusal returns Success=false with a composed message and
// persists nothing.
func (c *Checklist) Finalize(ctx context.Context, req SaveRequest) (*FinalizeResult, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "checklist.finalize",
		attribute.String(otelhelper.ChecklistIDKey, req.ChecklistID),
		attribute.String(otelhelper.TemplateIDKey, req.TemplateID),
	)
	defer span.End()

	template, existing, err := c.loadPreconditions(ctx, req)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	checklist := c.buildRecord(template, existing, req)

	missing := engine.MissingRequired(template, checklist.Responses)
	errorCount := len(checklist.Summary.Errors)

	if len(missing) > 0 || errorCount > 0 {
		return &FinalizeResult{
			Success: false,
			Message: composeGateMessage(missing, checklist.Summary),
		}, nil
	}

	checklist.State = classify(checklist.CompletedItems, checklist.TotalItems, errorCount)
	checklist.RequiresReview = errorCount > 0

	span.SetAttributes(attribute.String(otelhelper.StateKey, string(checklist.State)))

	err = c.persistence.ChecklistRepository().SaveChecklist(ctx, checklist)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to save checklist: %w", err)
	}

	c.publishFinalized(ctx, checklist)

	return &FinalizeResult{
		Checklist: checklist,
		Success:   true,
		Message:   "checklist finalized",
	}, nil
}

// loadPreconditions resolves the template and, when an existing checklist
// ID is given, the prior record. Failures here are caller errors: nothing
// has been persisted.
func (c *Checklist) loadPreconditions(ctx context.Context, req SaveRequest) (*models.Template, *models.Checklist, error) {
	if strings.TrimSpace(req.TemplateID) == "" {
		return nil, nil, ErrTemplateRequired
	}

	template, err := c.persistence.TemplateRepository().TemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load template: %w", err)
	}

	var existing *models.Checklist

	if req.ChecklistID != "" {
		existing, err = c.persistence.ChecklistRepository().ChecklistByID(ctx, req.ChecklistID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load checklist: %w", err)
		}
	}

	return template, existing, nil
}

// buildRecord snapshots the raw responses and recomputes progress and
// validation from scratch. Finalize recomputes even when the caller already
// validated; input sizes are tens of items, recomputation is cheaper than
// trusting a stale summary.
func (c *Checklist) buildRecord(template *models.Template, existing *models.Checklist, req SaveRequest) *models.Checklist {
	now := time.Now().UTC()

	var previous map[string]*models.Response
	if existing != nil {
		previous = existing.Responses
	}

	responses := engine.SnapshotResponses(template, req.Responses, previous, engine.ResponseContext{
		User:            req.User,
		Device:          req.Device,
		TemplateVersion: template.Version,
		Timestamp:       now,
	})

	progress := engine.ComputeProgress(template, responses)
	summary := engine.ValidateChecklist(template, responses)

	notes := req.Notes
	if notes == nil {
		notes = make(map[string]string)
	}

	checklist := &models.Checklist{
		ID:              req.ChecklistID,
		TemplateID:      template.ID,
		Responses:       responses,
		Notes:           notes,
		Summary:         summary,
		TotalItems:      progress.TotalItems,
		CompletedItems:  progress.CompletedItems,
		CorrectCount:    len(summary.Correct),
		WarningCount:    len(summary.Warnings),
		ErrorCount:      len(summary.Errors),
		PercentComplete: progress.PercentComplete,
		EffectiveDate:   req.EffectiveDate,
		CreatedBy:       req.User,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if checklist.ID == "" {
		checklist.ID = uuid.New().String()
	}

	if existing != nil {
		checklist.CreatedAt = existing.CreatedAt
		checklist.CreatedBy = existing.CreatedBy
	}

	return checklist
}

// classify derives the terminal lifecycle state. Completeness with zero
// errors wins over either partial or errored.
func classify(completed, total, errorCount int) models.LifecycleState {
	switch {
	case completed == total && errorCount == 0:
		return models.StateCompleted
	case completed < total:
		return models.StatePartial
	case errorCount > 0:
		return models.StateErrored
	default:
		return models.StateCompleted
	}
}

// composeGateMessage builds the user-facing refusal: the missing-required
// count with up to five descriptions and a "+N more" suffix, then the
// error count and the first error's item and message.
func composeGateMessage(missing []string, summary *models.ValidationSummary) string {
	parts := make([]string, 0, 2)

	if len(missing) == 0 {
		parts = append(parts, "0 missing required item(s)")
	} else {
		shown := missing
		if len(shown) > maxMissingInMessage {
			shown = shown[:maxMissingInMessage]
		}

		part := fmt.Sprintf("%d missing required item(s): %s", len(missing), strings.Join(shown, ", "))
		if len(missing) > maxMissingInMessage {
			part += fmt.Sprintf(" (+%d more)", len(missing)-maxMissingInMessage)
		}

		parts = append(parts, part)
	}

	if len(summary.Errors) > 0 {
		first := summary.Errors[0]
		parts = append(parts, fmt.Sprintf("%d validation error(s), first: %s: %s", len(summary.Errors), first.Item, first.Message))
	}

	return "cannot finalize checklist: " + strings.Join(parts, "; ")
}

// Event publishing is advisory: a bus failure is logged and never fails
// the save that already happened.
func (c *Checklist) publishSaved(ctx context.Context, checklist *models.Checklist) {
	if c.eventBus == nil {
		return
	}

	event := events.ChecklistSaved{
		BaseEvent: events.BaseEvent{
			ID:          c.eventBus.GenerateID(),
			Type:        events.ChecklistSavedEvent,
			Timestamp:   time.Now().UTC(),
			ChecklistID: checklist.ID,
			TemplateID:  checklist.TemplateID,
		},
		State:           checklist.State,
		PercentComplete: checklist.PercentComplete,
	}

	err := c.eventBus.Publish(ctx, checklist.ID, event)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to publish checklist.saved event", "checklist_id", checklist.ID, "error", err)
	}
}

func (c *Checklist) publishFinalized(ctx context.Context, checklist *models.Checklist) {
	if c.eventBus == nil {
		return
	}

	event := events.ChecklistFinalized{
		BaseEvent: events.BaseEvent{
			ID:          c.eventBus.GenerateID(),
			Type:        events.ChecklistFinalizedEvent,
			Timestamp:   time.Now().UTC(),
			ChecklistID: checklist.ID,
			TemplateID:  checklist.TemplateID,
		},
		State:          checklist.State,
		RequiresReview: checklist.RequiresReview,
		ErrorCount:     checklist.ErrorCount,
	}

	err := c.eventBus.Publish(ctx, checklist.ID, event)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to publish checklist.finalized event", "checklist_id", checklist.ID, "error", err)
	}
}
