package services

import (
	"context"
	"time"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/models"
	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/payroll"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// snapshotTimeout bounds one scheduled run
const snapshotTimeout = 2 * time.Minute

// SnapshotService stores periodic salary fund snapshots
type SnapshotService struct {
	employeeRepo repositories.EmployeeRepository
	paymentRepo  repositories.PaymentRepository
	snapshotRepo repositories.SnapshotRepository
	log          zerolog.Logger
	cron         *cron.Cron
	now          func() time.Time
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(
	employeeRepo repositories.EmployeeRepository,
	paymentRepo repositories.PaymentRepository,
	snapshotRepo repositories.SnapshotRepository,
	log zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
		snapshotRepo: snapshotRepo,
		log:          log,
		now:          time.Now,
	}
}

// Start schedules TakeSnapshot with a standard five field cron spec.
// An empty spec leaves the scheduler off.
func (s *SnapshotService) Start(spec string) error {
	if spec == "" {
		s.log.Info().Msg("salary snapshots disabled")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
		defer cancel()

		if _, err := s.TakeSnapshot(ctx); err != nil {
			s.log.Error().Err(err).Msg("salary snapshot failed")
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	s.cron = c
	s.log.Info().Str("schedule", spec).Msg("salary snapshots scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running snapshot
func (s *SnapshotService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info().Msg("salary snapshots stopped")
}

// TakeSnapshot aggregates the current employees and payments and stores a row
func (s *SnapshotService) TakeSnapshot(ctx context.Context) (*models.SalarySnapshot, error) {
	employees, err := s.employeeRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	amounts, err := s.paymentRepo.BonusAmounts(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &models.SalarySnapshot{
		TakenAt:       s.now(),
		EmployeeCount: len(employees),
		PaymentCount:  len(amounts),
	}
	if summary := payroll.Summarize(points(employees)); summary != nil {
		snapshot.TotalFund = summary.Salaries.Sum
		snapshot.MeanSalary = summary.Salaries.Mean
		snapshot.MedianSalary = summary.Salaries.Median
	}
	if bonuses := payroll.SummarizeBonuses(parseBonuses(amounts)); bonuses != nil {
		snapshot.BonusTotal = bonuses.Sum
	}

	if err := s.snapshotRepo.Create(ctx, snapshot); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("employees", snapshot.EmployeeCount).
		Float64("total_fund", snapshot.TotalFund).
		Msg("salary snapshot stored")
	return snapshot, nil
}

// List returns the latest snapshots first
func (s *SnapshotService) List(ctx context.Context, limit int) ([]*models.SalarySnapshot, error) {
	if limit < 1 || limit > 365 {
		limit = 30
	}
	return s.snapshotRepo.List(ctx, limit)
}
