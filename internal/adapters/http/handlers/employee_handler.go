package handlers

import (
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/services"
	"github.com/curlykit/PTLab2/internal/pkg/pagination"
	"github.com/curlykit/PTLab2/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee administration endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List returns a page of employees
// @Summary List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Rows per page"
// @Param q query string false "Search by name or position"
// @Param employee_type query string false "JUNIOR, MIDDLE, SENIOR, LEAD, MANAGER or OTHER"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	filter := repositories.EmployeeFilter{
		Query:        c.Query("q"),
		EmployeeType: c.Query("employee_type"),
	}

	page, err := h.employeeService.List(c.UserContext(), filter, pagination.FromQuery(c))
	if err != nil {
		return writeServiceError(c, err, "Failed to list employees")
	}
	return response.Success(c, "Employees retrieved successfully", page)
}

// Get returns one employee
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, ok := pagination.ParseID(c.Params("id"))
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err, "Failed to get employee")
	}
	return response.Success(c, "Employee retrieved successfully", employee)
}

// Create adds an employee
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EmployeeInput true "Employee"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input services.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Create(c.UserContext(), input)
	if err != nil {
		return writeServiceError(c, err, "Failed to create employee")
	}
	return response.Created(c, "Employee created successfully", employee)
}

// Update changes an employee
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.EmployeeInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, ok := pagination.ParseID(c.Params("id"))
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.UserContext(), id, input)
	if err != nil {
		return writeServiceError(c, err, "Failed to update employee")
	}
	return response.Success(c, "Employee updated successfully", employee)
}

// Delete removes an employee together with its payments
// @Summary Delete employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, ok := pagination.ParseID(c.Params("id"))
	if !ok {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.UserContext(), id); err != nil {
		return writeServiceError(c, err, "Failed to delete employee")
	}
	return response.Success(c, "Employee deleted successfully", nil)
}

// BulkType sets one employee type for several employees
// @Summary Set employee type in bulk
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BulkTypeInput true "IDs and type"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /employees/bulk-type [post]
func (h *EmployeeHandler) BulkType(c *fiber.Ctx) error {
	var input services.BulkTypeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	updated, err := h.employeeService.BulkSetType(c.UserContext(), input)
	if err != nil {
		return writeServiceError(c, err, "Failed to update employees")
	}
	return response.Success(c, "Employee type updated", fiber.Map{"updated": updated})
}
