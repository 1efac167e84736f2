// Package main provides the FleetCheck API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/dukex/fleetcheck/pkg/eventbus"
	"github.com/dukex/fleetcheck/pkg/persistence"
	"github.com/dukex/fleetcheck/pkg/services"
	"github.com/dukex/fleetcheck/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	templateService := services.NewTemplate(a.persistence)
	checklistService := services.NewChecklist(a.persistence).WithEventBus(a.eventBus)

	handlers := web.NewAPIHandlers(templateService, checklistService, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("FleetCheck API")
	})

	tg := app.Group("/templates")
	tg.Get("/", handlers.GetTemplates)
	tg.Post("/", handlers.CreateTemplate)
	tg.Get("/:id", handlers.GetTemplate)
	tg.Delete("/:id", handlers.DeleteTemplate)
	tg.Post("/:id/validate", handlers.ValidateChecklist)
	tg.Post("/:id/progress", handlers.GetProgress)

	cg := app.Group("/checklists")
	cg.Get("/", handlers.GetChecklists)
	cg.Get("/:id", handlers.GetChecklist)
	cg.Post("/save", handlers.SaveChecklist)
	cg.Post("/finalize", handlers.FinalizeChecklist)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
