package web

import (
	"github.com/dukex/fleetcheck/pkg/engine"
	"github.com/dukex/fleetcheck/pkg/models"
	"github.com/dukex/fleetcheck/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	templateService  *services.Template
	checklistService *services.Checklist
	validator        *validator.Validate
}

func NewAPIHandlers(
	templateService *services.Template,
	checklistService *services.Checklist,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		templateService:  templateService,
		checklistService: checklistService,
		validator:        validator,
	}
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	templates, err := h.templateService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"templates": templates})
}

func (h *APIHandlers) GetTemplate(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	template, err := h.templateService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(template)
}

// CreateTemplate accepts a raw template document: schema validation runs
// before decoding so violations are reported all at once.
func (h *APIHandlers) CreateTemplate(c fiber.Ctx) error {
	template, err := h.templateService.CreateFromDocument(c.Context(), c.Body())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(template)
}

func (h *APIHandlers) DeleteTemplate(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Template ID is required")
	}

	err := h.templateService.Delete(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateChecklist runs a full validation pass without persisting anything.
func (h *APIHandlers) ValidateChecklist(c fiber.Ctx) error {
	template, req, err := h.parseValidateRequest(c)
	if err != nil {
		return err
	}

	responses := engine.SnapshotResponses(template, req.Responses, nil, engine.ResponseContext{
		TemplateVersion: template.Version,
	})

	return c.JSON(engine.ValidateChecklist(template, responses))
}

// GetProgress computes completion progress without persisting anything.
func (h *APIHandlers) GetProgress(c fiber.Ctx) error {
	template, req, err := h.parseValidateRequest(c)
	if err != nil {
		return err
	}

	responses := engine.SnapshotResponses(template, req.Responses, nil, engine.ResponseContext{
		TemplateVersion: template.Version,
	})

	return c.JSON(engine.ComputeProgress(template, responses))
}

func (h *APIHandlers) GetChecklists(c fiber.Ctx) error {
	if templateID := c.Query("template_id"); templateID != "" {
		checklists, err := h.checklistService.ListByTemplate(c.Context(), templateID)
		if err != nil {
			return handleServiceError(c, err)
		}

		return c.JSON(fiber.Map{"checklists": checklists})
	}

	checklists, err := h.checklistService.List(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"checklists": checklists})
}

func (h *APIHandlers) GetChecklist(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Checklist ID is required")
	}

	checklist, err := h.checklistService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(checklist)
}

func (h *APIHandlers) SaveChecklist(c fiber.Ctx) error {
	req, err := h.parseSaveRequest(c)
	if err != nil {
		return err
	}

	checklist, err := h.checklistService.SaveInProgress(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(checklist)
}

func (h *APIHandlers) FinalizeChecklist(c fiber.Ctx) error {
	req, err := h.parseSaveRequest(c)
	if err != nil {
		return err
	}

	result, err := h.checklistService.Finalize(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	if !result.Success {
		return finalizationRejected(c, result.Message)
	}

	return c.JSON(result)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	message, healthy := h.checklistService.HealthCheck(c.Context())
	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "message": message})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}

func (h *APIHandlers) parseValidateRequest(c fiber.Ctx) (*models.Template, *ValidateRequest, error) {
	id := c.Params("id")
	if id == "" {
		return nil, nil, badRequest(c, "Template ID is required")
	}

	loaded, lookupErr := h.templateService.FetchByID(c.Context(), id)
	if lookupErr != nil {
		return nil, nil, handleServiceError(c, lookupErr)
	}

	var body ValidateRequest
	if bindErr := c.Bind().Body(&body); bindErr != nil {
		return nil, nil, badRequest(c, "Invalid request body: "+bindErr.Error())
	}

	if validateErr := h.validator.Struct(&body); validateErr != nil {
		return nil, nil, badRequest(c, "Invalid request: "+validateErr.Error())
	}

	return loaded, &body, nil
}

func (h *APIHandlers) parseSaveRequest(c fiber.Ctx) (services.SaveRequest, error) {
	var body SaveChecklistRequest
	if err := c.Bind().Body(&body); err != nil {
		return services.SaveRequest{}, badRequest(c, "Invalid request body: "+err.Error())
	}

	if err := h.validator.Struct(&body); err != nil {
		return services.SaveRequest{}, badRequest(c, "Invalid request: "+err.Error())
	}

	return services.SaveRequest{
		ChecklistID:   body.ChecklistID,
		TemplateID:    body.TemplateID,
		Responses:     body.Responses,
		Notes:         body.Notes,
		EffectiveDate: body.EffectiveDate,
		User:          body.User,
		Device:        body.Device,
	}, nil
}
