package repositories

import (
	"context"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// paymentRepository implements PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Record creates a payment and optionally bumps the employee tenure
func (r *paymentRepository) Record(ctx context.Context, payment *models.Payment, bumpTenure bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Employee").Create(payment).Error; err != nil {
			return err
		}
		if !bumpTenure {
			return nil
		}

		result := tx.Model(&models.Employee{}).
			Where("id = ?", payment.EmployeeID).
			UpdateColumn("years_of_service", gorm.Expr("years_of_service + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return mapDatabaseError(err)
}

// GetByID gets a payment by ID with its employee
func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Preload("Employee").Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// List lists payments newest first with pagination
func (r *paymentRepository) List(ctx context.Context, filter PaymentFilter, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	query := r.filtered(ctx, filter)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Employee").
		Order("paid_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// All returns every payment matching the filter, newest first
func (r *paymentRepository) All(ctx context.Context, filter PaymentFilter) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := r.filtered(ctx, filter).
		Preload("Employee").
		Order("paid_at DESC, id DESC").
		Find(&payments).Error
	return payments, err
}

// BonusAmounts returns the raw bonus text of every payment
func (r *paymentRepository) BonusAmounts(ctx context.Context) ([]string, error) {
	var amounts []string
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Pluck("bonus_amount", &amounts).Error
	return amounts, err
}

func (r *paymentRepository) filtered(ctx context.Context, filter PaymentFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Payment{})
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.EmployeeID != 0 {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}
	return query
}
