package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vollara/internal/config"
	"vollara/internal/store"
)

const maxDiagnosticCollections = 10

// HealthHandler serves the root, hello, and store-diagnostic endpoints.
type HealthHandler struct {
	store store.Store
	cfg   *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(s store.Store, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		store: s,
		cfg:   cfg,
	}
}

// RegisterRoutes registers the health routes with the Fiber app.
func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.HandleRoot)
	app.Get("/api/hello", h.HandleHello)
	app.Get("/test", h.HandleTest)
}

// HandleRoot confirms the backend is running.
func (h *HealthHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Vollara Products Backend is running",
	})
}

// HandleHello is a trivial liveness endpoint for frontend smoke tests.
func (h *HealthHandler) HandleHello(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Hello from the backend API!",
	})
}

// HandleTest reports backend and store diagnostics. It always answers
// 200; store problems degrade into descriptive strings in the body.
func (h *HealthHandler) HandleTest(c *fiber.Ctx) error {
	response := fiber.Map{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      setOrNot(h.cfg.DatabaseURL),
		"database_name":     setOrNot(h.cfg.DatabaseName),
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	status := h.store.Status(c.Context())
	if !status.Available {
		return c.JSON(response)
	}

	response["database"] = "✅ Available"
	response["connection_status"] = "Connected"
	switch {
	case status.Connected && status.Err == "":
		response["database"] = "✅ Connected & Working"
		names := status.Collections
		if names == nil {
			names = []string{}
		}
		if len(names) > maxDiagnosticCollections {
			names = names[:maxDiagnosticCollections]
		}
		response["collections"] = names
	default:
		response["database"] = "⚠️  Connected but Error: " + truncate(status.Err, 50)
	}
	return c.JSON(response)
}

func setOrNot(value string) string {
	if value == "" {
		return "❌ Not Set"
	}
	return "✅ Set"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
