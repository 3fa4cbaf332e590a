package services

import (
	"context"

	"github.com/curlykit/PTLab2/internal/adapters/persistence/repositories"
	"github.com/curlykit/PTLab2/internal/core/payroll"
)

// AnalyticsService builds the statistics report
type AnalyticsService struct {
	employeeRepo repositories.EmployeeRepository
	paymentRepo  repositories.PaymentRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(employeeRepo repositories.EmployeeRepository, paymentRepo repositories.PaymentRepository) *AnalyticsService {
	return &AnalyticsService{
		employeeRepo: employeeRepo,
		paymentRepo:  paymentRepo,
	}
}

// Report is the analytics page content. Summary is nil when there are no
// employees, Bonuses is nil when there are no payments.
type Report struct {
	Summary    *payroll.Summary        `json:"summary"`
	ByPosition []payroll.PositionGroup `json:"by_position"`
	ByType     []payroll.TypeGroup     `json:"by_type"`
	Bonuses    *payroll.BonusStats     `json:"bonuses"`
}

// HasData reports whether there is anything to analyse
func (r *Report) HasData() bool {
	return r.Summary != nil
}

// Report aggregates employees and payment bonuses
func (s *AnalyticsService) Report(ctx context.Context) (*Report, error) {
	employees, err := s.employeeRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{
		ByPosition: []payroll.PositionGroup{},
		ByType:     []payroll.TypeGroup{},
	}
	if len(employees) == 0 {
		return report, nil
	}

	pts := points(employees)
	report.Summary = payroll.Summarize(pts)
	report.ByPosition = payroll.GroupByPosition(pts)
	report.ByType = payroll.GroupByType(pts)

	amounts, err := s.paymentRepo.BonusAmounts(ctx)
	if err != nil {
		return nil, err
	}
	report.Bonuses = payroll.SummarizeBonuses(parseBonuses(amounts))

	return report, nil
}

func parseBonuses(amounts []string) []float64 {
	out := make([]float64, 0, len(amounts))
	for _, a := range amounts {
		out = append(out, payroll.ParseBonus(a))
	}
	return out
}
