// Package payroll holds the salary arithmetic and the descriptive statistics
// shown on the index and analytics pages. It has no database or HTTP dependencies.
package payroll

import (
	"math"
	"strconv"
	"strings"

	"github.com/curlykit/PTLab2/internal/core/domain"
)

// FinalPay returns base + bonus - deductions.
// Negative bonus or deductions are accepted and affect the result symmetrically.
func FinalPay(base, bonus, deductions float64) float64 {
	return base + bonus - deductions
}

// ParseAmount parses a user supplied amount. Blank input reads as zero.
// Anything that is not a finite number yields domain.ErrNonNumericAmount.
func ParseAmount(raw string) (float64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, domain.ErrNonNumericAmount
	}
	return amount, nil
}

// ParseBonus reads a stored bonus text. Invalid text reads as 0.
func ParseBonus(raw string) float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}

// maxAmountLen bounds plain decimal output; longer values switch to exponent form
const maxAmountLen = 32

// FormatAmount renders an amount the way it is stored in the bonus column.
// The text always parses back to the same float64.
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if len(s) > maxAmountLen {
		s = strconv.FormatFloat(amount, 'g', -1, 64)
	}
	return s
}
