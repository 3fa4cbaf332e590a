package services

import (
	"context"
	"errors"
	"strings"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/core/payroll"
	"github.com/curlykit/PTLab2/internal/pkg/pagination"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrPaymentNotFound is returned for unknown payment ids
var ErrPaymentNotFound = domain.ErrPaymentNotFound

// PaymentService handles payment administration and export
type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	employeeRepo repositories.EmployeeRepository
	log          zerolog.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	employeeRepo repositories.EmployeeRepository,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		employeeRepo: employeeRepo,
		log:          log,
	}
}

// CreatePaymentInput records a payment directly, without the tenure bump
type CreatePaymentInput struct {
	EmployeeID  uint   `json:"employee_id"`
	BonusAmount string `json:"bonus_amount"`
	Description string `json:"description"`
	PaymentType string `json:"payment_type"`
}

// ListFilter validates the payment type filter
func (s *PaymentService) ListFilter(paymentType string, employeeID uint) (repositories.PaymentFilter, error) {
	filter := repositories.PaymentFilter{EmployeeID: employeeID}
	if strings.TrimSpace(paymentType) != "" {
		t, err := parsePaymentType(paymentType)
		if err != nil {
			return filter, err
		}
		filter.PaymentType = string(t)
	}
	return filter, nil
}

// List returns a page of payments, newest first
func (s *PaymentService) List(ctx context.Context, filter repositories.PaymentFilter, p pagination.Params) (pagination.Page[*models.PaymentResponse], error) {
	payments, total, err := s.paymentRepo.List(ctx, filter, p.Offset, p.Limit)
	if err != nil {
		return pagination.Page[*models.PaymentResponse]{}, err
	}

	items := make([]*models.PaymentResponse, 0, len(payments))
	for _, pay := range payments {
		items = append(items, pay.ToResponse())
	}
	return pagination.NewPage(items, p, total), nil
}

// Get returns one payment
func (s *PaymentService) Get(ctx context.Context, id uint) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment.ToResponse(), nil
}

// Create records a payment. The bonus must be numeric.
func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*models.PaymentResponse, error) {
	employee, err := s.employeeRepo.GetByID(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	bonus, err := payroll.ParseAmount(input.BonusAmount)
	if err != nil {
		return nil, err
	}
	paymentType, err := parsePaymentType(input.PaymentType)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		EmployeeID:  employee.ID,
		BonusAmount: payroll.FormatAmount(bonus),
		Description: strings.TrimSpace(input.Description),
		PaymentType: string(paymentType),
	}
	if err := s.paymentRepo.Record(ctx, payment, false); err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	payment.Employee = *employee

	s.log.Info().Uint("payment_id", payment.ID).Uint("employee_id", employee.ID).Msg("payment recorded")
	return payment.ToResponse(), nil
}
