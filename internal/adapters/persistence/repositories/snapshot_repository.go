package repositories

import (
	"context"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new salary snapshot repository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Create(ctx context.Context, snapshot *models.SalarySnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

// List returns the latest snapshots first
func (r *snapshotRepository) List(ctx context.Context, limit int) ([]*models.SalarySnapshot, error) {
	var snapshots []*models.SalarySnapshot
	err := r.db.WithContext(ctx).Order("taken_at DESC").Limit(limit).Find(&snapshots).Error
	return snapshots, err
}
