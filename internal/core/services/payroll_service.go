package services

import (
	"context"
	"errors"
	"strings"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/core/payroll"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Payroll errors
var (
	ErrEmployeeNotFound    = domain.ErrEmployeeNotFound
	ErrNonNumericAmount    = domain.ErrNonNumericAmount
	ErrInvalidPaymentType  = domain.ErrInvalidPaymentType
	ErrInvalidEmployeeType = domain.ErrInvalidEmployeeType
)

// PayrollService serves the employee list and the payment form workflow
type PayrollService struct {
	employeeRepo repositories.EmployeeRepository
	paymentRepo  repositories.PaymentRepository
	log          zerolog.Logger
}

// NewPayrollService creates a new payroll service
func NewPayrollService(
	employeeRepo repositories.EmployeeRepository,
	paymentRepo repositories.PaymentRepository,
	log zerolog.Logger,
) *PayrollService {
	return &PayrollService{
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
		log:          log,
	}
}

// PaymentInput is the raw payment form
type PaymentInput struct {
	Bonus       string
	Deductions  string
	Description string
	PaymentType string
}

// PaymentResult is what the confirmation page shows
type PaymentResult struct {
	Employee       *models.Employee
	Payment        *models.Payment
	Bonus          float64
	Deductions     float64
	FinalPay       float64
	YearsOfService uint
}

// Overview is the index page content
type Overview struct {
	Employees []*models.Employee
	Summary   *payroll.Summary // nil when there are no employees
}

// Overview lists employees with their salary summary
func (s *PayrollService) Overview(ctx context.Context) (*Overview, error) {
	employees, err := s.employeeRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Employees: employees,
		Summary:   payroll.Summarize(points(employees)),
	}, nil
}

// GetEmployee returns one employee or ErrEmployeeNotFound
func (s *PayrollService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// ProcessPayment pays an employee: it records the payment and adds one year
// of service. Nothing is written when the employee is missing or the
// amounts do not parse.
func (s *PayrollService) ProcessPayment(ctx context.Context, employeeID uint, input PaymentInput) (*PaymentResult, error) {
	// 1. Employee must exist
	employee, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	// 2. Parse amounts
	bonus, err := payroll.ParseAmount(input.Bonus)
	if err != nil {
		return nil, err
	}
	deductions, err := payroll.ParseAmount(input.Deductions)
	if err != nil {
		return nil, err
	}

	// 3. Payment type
	paymentType, err := parsePaymentType(input.PaymentType)
	if err != nil {
		return nil, err
	}

	// 4. Record payment and bump tenure
	payment := &models.Payment{
		EmployeeID:  employee.ID,
		BonusAmount: payroll.FormatAmount(bonus),
		Description: strings.TrimSpace(input.Description),
		PaymentType: string(paymentType),
	}
	if err := s.paymentRepo.Record(ctx, payment, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrInvalidReference) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	// 5. Reload for the new tenure
	updated, err := s.GetEmployee(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	payment.Employee = *updated

	finalPay := payroll.FinalPay(employee.BaseSalary, bonus, deductions)

	s.log.Info().
		Uint("employee_id", employee.ID).
		Uint("payment_id", payment.ID).
		Str("payment_type", payment.PaymentType).
		Float64("final_pay", finalPay).
		Uint("years_of_service", updated.YearsOfService).
		Msg("payment processed")

	return &PaymentResult{
		Employee:       updated,
		Payment:        payment,
		Bonus:          bonus,
		Deductions:     deductions,
		FinalPay:       finalPay,
		YearsOfService: updated.YearsOfService,
	}, nil
}

// parsePaymentType reads an optional payment type, blank means Salary
func parsePaymentType(raw string) (domain.PaymentType, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return domain.PaymentTypeSalary, nil
	}
	t := domain.PaymentType(raw)
	if !t.Valid() {
		return "", ErrInvalidPaymentType
	}
	return t, nil
}

func points(employees []*models.Employee) []payroll.EmployeePoint {
	out := make([]payroll.EmployeePoint, 0, len(employees))
	for _, e := range employees {
		out = append(out, e.Point())
	}
	return out
}
