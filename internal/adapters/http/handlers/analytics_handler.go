package handlers

import (
	"github.com/curlykit/PTLab2/internal/core/services"
	"github.com/curlykit/PTLab2/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler serves the statistics report and salary snapshots as JSON
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	snapshotService  *services.SnapshotService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService, snapshotService *services.SnapshotService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		snapshotService:  snapshotService,
	}
}

// Report returns the analytics report
// @Summary Salary analytics
// @Description Descriptive statistics over base salaries and payment bonuses. summary is null without employees.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /analytics [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	report, err := h.analyticsService.Report(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to build analytics")
	}
	return response.Success(c, "Analytics retrieved successfully", report)
}

// Snapshots lists stored salary snapshots
// @Summary List salary snapshots
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of snapshots (default 30)"
// @Success 200 {object} response.Response
// @Router /snapshots [get]
func (h *AnalyticsHandler) Snapshots(c *fiber.Ctx) error {
	snapshots, err := h.snapshotService.List(c.UserContext(), c.QueryInt("limit", 30))
	if err != nil {
		return response.InternalServerError(c, "Failed to list snapshots")
	}
	return response.Success(c, "Snapshots retrieved successfully", snapshots)
}

// TakeSnapshot stores a snapshot now
// @Summary Take salary snapshot
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Response
// @Router /snapshots [post]
func (h *AnalyticsHandler) TakeSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.snapshotService.TakeSnapshot(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to take snapshot")
	}
	return response.Created(c, "Snapshot stored", snapshot)
}
