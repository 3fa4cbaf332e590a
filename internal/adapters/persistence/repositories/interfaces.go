package repositories

import (
	"context"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
)

// EmployeeFilter narrows employee listings
type EmployeeFilter struct {
	Query        string // matches name or position
	EmployeeType string
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	PaymentType string
	EmployeeID  uint
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter EmployeeFilter, offset, limit int) ([]*models.Employee, int64, error)
	All(ctx context.Context) ([]*models.Employee, error)
	SetType(ctx context.Context, ids []uint, employeeType string) (int64, error)
}

// PaymentRepository defines payment repository interface
type PaymentRepository interface {
	// Record inserts the payment and, when bumpTenure is set, adds one year of
	// service to the employee in the same transaction.
	Record(ctx context.Context, payment *models.Payment, bumpTenure bool) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error)
	All(ctx context.Context, filter PaymentFilter) ([]*models.Payment, error)
	BonusAmounts(ctx context.Context) ([]string, error)
}

// UserRepository defines admin account repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	CountByRole(ctx context.Context, role string) (int64, error)
	DeleteExcept(ctx context.Context, keepID uint) (int64, error)
}

// SnapshotRepository defines salary snapshot repository interface
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.SalarySnapshot) error
	List(ctx context.Context, limit int) ([]*models.SalarySnapshot, error)
}
