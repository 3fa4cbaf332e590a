package payroll

import (
	"math"
	"sort"

	"github.com/curlykit/PTLab2/internal/core/domain"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EmployeePoint is the slice of an employee the aggregator works on
type EmployeePoint struct {
	BaseSalary     float64
	YearsOfService uint
	EmployeeType   domain.EmployeeType
	Position       string
}

// SalaryStats are the descriptive statistics over base salaries.
// StdDev is nil when fewer than two salaries exist.
type SalaryStats struct {
	Count  int      `json:"count"`
	Sum    float64  `json:"sum"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	StdDev *float64 `json:"std,omitempty"`
}

// TypeCount is the number of employees carrying one type tag
type TypeCount struct {
	Type  domain.EmployeeType `json:"type"`
	Label string              `json:"label"`
	Count int                 `json:"count"`
}

// Summary is the aggregate view of the employee table
type Summary struct {
	Salaries SalaryStats `json:"salary_stats"`
	ByType   []TypeCount `json:"by_type"`
	// Pearson correlation between years of service and base salary.
	// nil with fewer than two points or when either series is constant.
	Correlation *float64 `json:"correlation_exp_salary,omitempty"`
}

// Summarize computes salary statistics over points.
// It returns nil for empty input so callers render a "no data" state.
func Summarize(points []EmployeePoint) *Summary {
	if len(points) == 0 {
		return nil
	}

	salaries := make([]float64, len(points))
	years := make([]float64, len(points))
	for i, p := range points {
		salaries[i] = p.BaseSalary
		years[i] = float64(p.YearsOfService)
	}

	summary := &Summary{
		Salaries: describe(salaries),
		ByType:   countByType(points),
	}

	if len(points) >= 2 {
		summary.Correlation = finiteOrNil(stat.Correlation(years, salaries, nil))
	}

	return summary
}

// BonusStats are the statistics over payment bonus amounts
type BonusStats struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Max   float64 `json:"max"`
	Min   float64 `json:"min"`
}

// SummarizeBonuses returns nil for empty input
func SummarizeBonuses(bonuses []float64) *BonusStats {
	if len(bonuses) == 0 {
		return nil
	}
	return &BonusStats{
		Count: len(bonuses),
		Sum:   floats.Sum(bonuses),
		Mean:  stat.Mean(bonuses, nil),
		Max:   floats.Max(bonuses),
		Min:   floats.Min(bonuses),
	}
}

// PositionGroup aggregates salaries of one position
type PositionGroup struct {
	Position string  `json:"position"`
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Sum      float64 `json:"sum"`
}

// GroupByPosition groups salaries per distinct position, ordered by position name
func GroupByPosition(points []EmployeePoint) []PositionGroup {
	buckets := make(map[string][]float64)
	for _, p := range points {
		buckets[p.Position] = append(buckets[p.Position], p.BaseSalary)
	}

	groups := make([]PositionGroup, 0, len(buckets))
	for position, salaries := range buckets {
		groups = append(groups, PositionGroup{
			Position: position,
			Count:    len(salaries),
			Mean:     stat.Mean(salaries, nil),
			Sum:      floats.Sum(salaries),
		})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Position < groups[j].Position })
	return groups
}

// TypeGroup aggregates salaries of one employee type
type TypeGroup struct {
	Type  domain.EmployeeType `json:"type"`
	Label string              `json:"label"`
	Count int                 `json:"count"`
	Mean  float64             `json:"mean"`
	Sum   float64             `json:"sum"`
}

// GroupByType groups salaries per employee type, in domain.EmployeeTypes order.
// Types without employees are omitted.
func GroupByType(points []EmployeePoint) []TypeGroup {
	buckets := make(map[domain.EmployeeType][]float64)
	for _, p := range points {
		buckets[p.EmployeeType] = append(buckets[p.EmployeeType], p.BaseSalary)
	}

	groups := make([]TypeGroup, 0, len(buckets))
	for _, t := range orderedTypes(buckets) {
		salaries := buckets[t]
		groups = append(groups, TypeGroup{
			Type:  t,
			Label: t.Label(),
			Count: len(salaries),
			Mean:  stat.Mean(salaries, nil),
			Sum:   floats.Sum(salaries),
		})
	}
	return groups
}

// Median uses the even/odd rule: the mean of the two central values for even
// lengths, the central value for odd lengths. Returns 0 for empty input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func describe(values []float64) SalaryStats {
	stats := SalaryStats{
		Count:  len(values),
		Sum:    floats.Sum(values),
		Mean:   stat.Mean(values, nil),
		Median: Median(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
	if len(values) >= 2 {
		// stat.StdDev is the unbiased (n-1) estimator
		stats.StdDev = finiteOrNil(stat.StdDev(values, nil))
	}
	return stats
}

func countByType(points []EmployeePoint) []TypeCount {
	counts := make(map[domain.EmployeeType]int)
	for _, p := range points {
		counts[p.EmployeeType]++
	}

	result := make([]TypeCount, 0, len(domain.EmployeeTypes))
	for _, t := range domain.EmployeeTypes {
		result = append(result, TypeCount{Type: t, Label: t.Label(), Count: counts[t]})
	}
	return result
}

// orderedTypes returns the keys present in buckets: known types first in
// display order, then any unknown tags sorted by value.
func orderedTypes[V any](buckets map[domain.EmployeeType]V) []domain.EmployeeType {
	ordered := make([]domain.EmployeeType, 0, len(buckets))
	for _, t := range domain.EmployeeTypes {
		if _, ok := buckets[t]; ok {
			ordered = append(ordered, t)
		}
	}

	var unknown []domain.EmployeeType
	for t := range buckets {
		if !t.Valid() {
			unknown = append(unknown, t)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })

	return append(ordered, unknown...)
}

func finiteOrNil(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
