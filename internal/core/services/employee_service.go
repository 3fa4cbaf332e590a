package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/pkg/pagination"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrInvalidEmployee wraps employee validation failures
var ErrInvalidEmployee = errors.New("invalid employee")

// EmployeeService handles employee administration
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
	log          zerolog.Logger
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, log: log}
}

// EmployeeInput is the create/update body. Nil fields are left untouched on
// update; blank position and type are filled on save.
type EmployeeInput struct {
	Name           *string  `json:"name"`
	BaseSalary     *float64 `json:"base_salary"`
	YearsOfService *uint    `json:"years_of_service"`
	Position       *string  `json:"position"`
	EmployeeType   *string  `json:"employee_type"`
}

// BulkTypeInput sets one type for several employees
type BulkTypeInput struct {
	IDs          []uint `json:"ids"`
	EmployeeType string `json:"employee_type"`
}

// List returns a page of employees
func (s *EmployeeService) List(ctx context.Context, filter repositories.EmployeeFilter, p pagination.Params) (pagination.Page[*models.EmployeeResponse], error) {
	if filter.EmployeeType != "" {
		t, err := parseEmployeeType(filter.EmployeeType)
		if err != nil {
			return pagination.Page[*models.EmployeeResponse]{}, err
		}
		filter.EmployeeType = string(t)
	}

	employees, total, err := s.employeeRepo.List(ctx, filter, p.Offset, p.Limit)
	if err != nil {
		return pagination.Page[*models.EmployeeResponse]{}, err
	}

	items := make([]*models.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		items = append(items, e.ToResponse())
	}
	return pagination.NewPage(items, p, total), nil
}

// Get returns one employee
func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.EmployeeResponse, error) {
	employee, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return employee.ToResponse(), nil
}

// Create adds an employee
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*models.EmployeeResponse, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidEmployee)
	}
	if input.BaseSalary == nil {
		return nil, fmt.Errorf("%w: base_salary is required", ErrInvalidEmployee)
	}

	employee := &models.Employee{YearsOfService: 1}
	if err := applyEmployeeInput(employee, input); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}

	s.log.Info().Uint("employee_id", employee.ID).Str("name", employee.Name).Msg("employee created")
	return employee.ToResponse(), nil
}

// Update changes the given fields of an employee
func (s *EmployeeService) Update(ctx context.Context, id uint, input EmployeeInput) (*models.EmployeeResponse, error) {
	employee, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidEmployee)
	}
	if err := applyEmployeeInput(employee, input); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	s.log.Info().Uint("employee_id", employee.ID).Msg("employee updated")
	return employee.ToResponse(), nil
}

// Delete removes an employee and its payments
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	s.log.Info().Uint("employee_id", id).Msg("employee deleted")
	return nil
}

// BulkSetType assigns one type to several employees and returns how many changed
func (s *EmployeeService) BulkSetType(ctx context.Context, input BulkTypeInput) (int64, error) {
	if len(input.IDs) == 0 {
		return 0, fmt.Errorf("%w: ids are required", ErrInvalidEmployee)
	}
	t, err := parseEmployeeType(input.EmployeeType)
	if err != nil {
		return 0, err
	}

	n, err := s.employeeRepo.SetType(ctx, input.IDs, string(t))
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("updated", n).Str("employee_type", string(t)).Msg("employee type changed in bulk")
	return n, nil
}

func (s *EmployeeService) find(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

func applyEmployeeInput(e *models.Employee, input EmployeeInput) error {
	if input.Name != nil {
		e.Name = strings.TrimSpace(*input.Name)
	}
	if input.BaseSalary != nil {
		e.BaseSalary = *input.BaseSalary
	}
	if input.YearsOfService != nil {
		e.YearsOfService = *input.YearsOfService
	}
	if input.Position != nil {
		position := strings.TrimSpace(*input.Position)
		e.Position = &position
	}
	if input.EmployeeType != nil {
		if strings.TrimSpace(*input.EmployeeType) == "" {
			e.EmployeeType = nil
			return nil
		}
		t, err := parseEmployeeType(*input.EmployeeType)
		if err != nil {
			return err
		}
		value := string(t)
		e.EmployeeType = &value
	}
	return nil
}

func parseEmployeeType(raw string) (domain.EmployeeType, error) {
	t := domain.EmployeeType(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", ErrInvalidEmployeeType
	}
	return t, nil
}
