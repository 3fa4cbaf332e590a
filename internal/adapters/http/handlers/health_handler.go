package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	appMode string
	pingDB  func() error
}

// NewHealthHandler creates a new health handler. pingDB reports database reachability.
func NewHealthHandler(appMode string, pingDB func() error) *HealthHandler {
	return &HealthHandler{appMode: appMode, pingDB: pingDB}
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and database health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	overall, dbStatus := "ok", "healthy"
	status := fiber.StatusOK
	if h.pingDB != nil {
		if err := h.pingDB(); err != nil {
			overall, dbStatus = "degraded", "unhealthy"
			status = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Payroll API v1",
		"version": "1.0.0",
		"mode":    h.appMode,
		"docs":    "/swagger/index.html",
	})
}
