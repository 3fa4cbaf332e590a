package handlers

import (
	"errors"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/core/services"
	"github.com/curlykit/PTLab2/internal/pkg/pagination"

	"github.com/gofiber/fiber/v2"
)

// PageHandler renders the HTML pages
type PageHandler struct {
	payrollService   *services.PayrollService
	analyticsService *services.AnalyticsService
}

// NewPageHandler creates a new page handler
func NewPageHandler(payrollService *services.PayrollService, analyticsService *services.AnalyticsService) *PageHandler {
	return &PageHandler{
		payrollService:   payrollService,
		analyticsService: analyticsService,
	}
}

type paymentTypeOption struct {
	Value string
	Label string
}

func paymentTypeOptions() []paymentTypeOption {
	options := make([]paymentTypeOption, 0, len(domain.PaymentTypes))
	for _, t := range domain.PaymentTypes {
		options = append(options, paymentTypeOption{Value: string(t), Label: t.Label()})
	}
	return options
}

// Index lists employees with the salary summary
func (h *PageHandler) Index(c *fiber.Ctx) error {
	overview, err := h.payrollService.Overview(c.UserContext())
	if err != nil {
		return err
	}

	employees := make([]*models.EmployeeResponse, 0, len(overview.Employees))
	for _, e := range overview.Employees {
		employees = append(employees, e.ToResponse())
	}

	return c.Render("index", fiber.Map{
		"Title":     "Employees",
		"Employees": employees,
		"Summary":   overview.Summary,
	})
}

// PaymentForm shows the payment form for one employee
func (h *PageHandler) PaymentForm(c *fiber.Ctx) error {
	employee, err := h.employee(c)
	if err != nil {
		return err
	}

	return c.Render("payment_form", fiber.Map{
		"Title":        "Pay " + employee.Name,
		"Employee":     employee.ToResponse(),
		"PaymentTypes": paymentTypeOptions(),
	})
}

// ProcessPayment records the submitted payment and shows the confirmation
func (h *PageHandler) ProcessPayment(c *fiber.Ctx) error {
	id, ok := pagination.ParseID(c.Params("employee_id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Employee not found")
	}

	result, err := h.payrollService.ProcessPayment(c.UserContext(), id, services.PaymentInput{
		Bonus:       c.FormValue("bonus"),
		Deductions:  c.FormValue("deductions"),
		Description: c.FormValue("description"),
		PaymentType: c.FormValue("payment_type"),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return fiber.NewError(fiber.StatusNotFound, "Employee not found")
		case errors.Is(err, services.ErrNonNumericAmount):
			return fiber.NewError(fiber.StatusBadRequest, "Bonus and deductions must be numbers")
		case errors.Is(err, services.ErrInvalidPaymentType):
			return fiber.NewError(fiber.StatusBadRequest, "Unknown payment type")
		default:
			return err
		}
	}

	return c.Render("payment_result", fiber.Map{
		"Title":          "Payment recorded",
		"Employee":       result.Employee.ToResponse(),
		"BaseSalary":     result.Employee.BaseSalary,
		"Bonus":          result.Bonus,
		"Deductions":     result.Deductions,
		"FinalPay":       result.FinalPay,
		"YearsOfService": result.YearsOfService,
		"Description":    result.Payment.Description,
		"PaymentType":    result.Payment.Type().Label(),
	})
}

// Analytics renders the statistics page
func (h *PageHandler) Analytics(c *fiber.Ctx) error {
	report, err := h.analyticsService.Report(c.UserContext())
	if err != nil {
		return err
	}

	return c.Render("analytics", fiber.Map{
		"Title":  "Salary analytics",
		"Report": report,
	})
}

func (h *PageHandler) employee(c *fiber.Ctx) (*models.Employee, error) {
	id, ok := pagination.ParseID(c.Params("employee_id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "Employee not found")
	}

	employee, err := h.payrollService.GetEmployee(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Employee not found")
		}
		return nil, err
	}
	return employee, nil
}
