package models

import "fmt"

// FormatMoney renders an amount with two decimals and the currency suffix
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f RUB", amount)
}

// ExperienceText renders tenure as "1 year" or "N years"
func ExperienceText(years uint) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

// TenureStatus buckets tenure: New below 1 year, Experienced below 3, Veteran otherwise
func TenureStatus(years uint) string {
	switch {
	case years < 1:
		return "New"
	case years < 3:
		return "Experienced"
	default:
		return "Veteran"
	}
}
