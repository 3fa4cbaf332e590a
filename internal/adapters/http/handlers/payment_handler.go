package handlers

import (
	"strconv"

	"github.com/curlykit/PTLab2/internal/core/services"
	"github.com/curlykit/PTLab2/internal/pkg/pagination"
	"github.com/curlykit/PTLab2/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment administration endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) filterFromQuery(c *fiber.Ctx) (uint, bool) {
	raw := c.Query("employee_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// List returns a page of payments, newest first
// @Summary List payments
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Rows per page"
// @Param payment_type query string false "SALARY, BONUS, ADVANCE, VACATION, SICK_LEAVE, MATERNITY or OTHER"
// @Param employee_id query int false "Employee ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	employeeID, ok := h.filterFromQuery(c)
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}
	filter, err := h.paymentService.ListFilter(c.Query("payment_type"), employeeID)
	if err != nil {
		return writeServiceError(c, err, "Failed to list payments")
	}

	page, err := h.paymentService.List(c.UserContext(), filter, pagination.FromQuery(c))
	if err != nil {
		return writeServiceError(c, err, "Failed to list payments")
	}
	return response.Success(c, "Payments retrieved successfully", page)
}

// Get returns one payment
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	id, ok := pagination.ParseID(c.Params("id"))
	if !ok {
		return response.BadRequest(c, "Invalid payment ID")
	}

	payment, err := h.paymentService.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err, "Failed to get payment")
	}
	return response.Success(c, "Payment retrieved successfully", payment)
}

// Create records a payment without changing the employee
// @Summary Record payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePaymentInput true "Payment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /payments [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var input services.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.EmployeeID == 0 {
		return response.BadRequest(c, "employee_id is required")
	}

	payment, err := h.paymentService.Create(c.UserContext(), input)
	if err != nil {
		return writeServiceError(c, err, "Failed to record payment")
	}
	return response.Created(c, "Payment recorded successfully", payment)
}

// Export downloads the payments as csv or xlsx
// @Summary Export payments
// @Tags Payments
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx"
// @Param payment_type query string false "Payment type filter"
// @Param employee_id query int false "Employee ID"
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Router /payments/export [get]
func (h *PaymentHandler) Export(c *fiber.Ctx) error {
	employeeID, ok := h.filterFromQuery(c)
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}
	filter, err := h.paymentService.ListFilter(c.Query("payment_type"), employeeID)
	if err != nil {
		return writeServiceError(c, err, "Failed to export payments")
	}

	export, err := h.paymentService.Export(c.UserContext(), filter, c.Query("format", "csv"))
	if err != nil {
		return writeServiceError(c, err, "Failed to export payments")
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Attachment(export.Filename)
	return c.Send(export.Body)
}
