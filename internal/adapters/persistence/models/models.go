package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/curlykit/PTLab2/internal/core/domain"
	"github.com/curlykit/PTLab2/internal/core/payroll"

	"gorm.io/gorm"
)

// DefaultPosition is stored when an employee is saved without a position
const DefaultPosition = "Specialist"

// ============================================================
// Payroll Tables
// ============================================================

// Employee represents employees table
type Employee struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	BaseSalary     float64   `gorm:"type:decimal(10,2);not null" json:"base_salary"`
	YearsOfService uint      `gorm:"not null;default:1" json:"years_of_service"`
	Position       *string   `gorm:"size:100" json:"position"`
	EmployeeType   *string   `gorm:"size:20;index" json:"employee_type"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// BeforeSave fills position and employee type when they are blank
func (e *Employee) BeforeSave(tx *gorm.DB) error {
	e.ApplyDefaults()
	return nil
}

// ApplyDefaults fills blank position with DefaultPosition and blank type from tenure.
// Values already set are kept.
func (e *Employee) ApplyDefaults() {
	if e.Position == nil || strings.TrimSpace(*e.Position) == "" {
		position := DefaultPosition
		e.Position = &position
	}
	if e.EmployeeType == nil || strings.TrimSpace(*e.EmployeeType) == "" {
		t := string(domain.ClassifyByTenure(e.YearsOfService))
		e.EmployeeType = &t
	}
}

// PositionName returns the stored position, or DefaultPosition when blank
func (e *Employee) PositionName() string {
	if e.Position != nil && *e.Position != "" {
		return *e.Position
	}
	return DefaultPosition
}

// Type returns the stored type, or the tenure derived one when blank
func (e *Employee) Type() domain.EmployeeType {
	if e.EmployeeType != nil && *e.EmployeeType != "" {
		return domain.EmployeeType(*e.EmployeeType)
	}
	return domain.ClassifyByTenure(e.YearsOfService)
}

// CalculateSalary returns base salary + bonus - deductions
func (e *Employee) CalculateSalary(bonus, deductions float64) float64 {
	return payroll.FinalPay(e.BaseSalary, bonus, deductions)
}

// Point projects the employee for the aggregator
func (e *Employee) Point() payroll.EmployeePoint {
	return payroll.EmployeePoint{
		BaseSalary:     e.BaseSalary,
		YearsOfService: e.YearsOfService,
		EmployeeType:   e.Type(),
		Position:       e.PositionName(),
	}
}

func (e *Employee) String() string {
	if e.Position != nil && *e.Position != "" {
		return fmt.Sprintf("%s - %s", e.Name, *e.Position)
	}
	return e.Name
}

// EmployeeResponse DTO
type EmployeeResponse struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	BaseSalary     float64 `json:"base_salary"`
	YearsOfService uint    `json:"years_of_service"`
	Position       string  `json:"position"`
	EmployeeType   string  `json:"employee_type"`
	TypeLabel      string  `json:"type_label"`
	SalaryDisplay  string  `json:"salary_display"`
	Experience     string  `json:"experience"`
	Status         string  `json:"status"`
}

func (e *Employee) ToResponse() *EmployeeResponse {
	t := e.Type()
	return &EmployeeResponse{
		ID:             e.ID,
		Name:           e.Name,
		BaseSalary:     e.BaseSalary,
		YearsOfService: e.YearsOfService,
		Position:       e.PositionName(),
		EmployeeType:   string(t),
		TypeLabel:      t.Label(),
		SalaryDisplay:  FormatMoney(e.BaseSalary),
		Experience:     ExperienceText(e.YearsOfService),
		Status:         TenureStatus(e.YearsOfService),
	}
}

// Payment represents payments table
type Payment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployeeID  uint      `gorm:"index;not null" json:"employee_id"`
	Employee    Employee  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
	BonusAmount string    `gorm:"size:200;not null" json:"bonus_amount"`
	Description string    `gorm:"size:200" json:"description"`
	PaymentType string    `gorm:"size:20;default:'SALARY'" json:"payment_type"`
	PaidAt      time.Time `gorm:"autoCreateTime;<-:create" json:"paid_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// Bonus parses the stored bonus text, invalid text reads as 0
func (p *Payment) Bonus() float64 {
	return payroll.ParseBonus(p.BonusAmount)
}

// Type returns the payment type, Salary when blank
func (p *Payment) Type() domain.PaymentType {
	if p.PaymentType == "" {
		return domain.PaymentTypeSalary
	}
	return domain.PaymentType(p.PaymentType)
}

// FinalSalary is the employee base salary plus the bonus.
// Requires Employee to be preloaded.
func (p *Payment) FinalSalary() float64 {
	return p.Employee.BaseSalary + p.Bonus()
}

func (p *Payment) String() string {
	date := "n/a"
	if !p.PaidAt.IsZero() {
		date = p.PaidAt.Format("02.01.2006")
	}
	return fmt.Sprintf("%s: %s - %s (%s)", p.Type().Label(), p.Employee.Name, FormatMoney(p.FinalSalary()), date)
}

// PaymentResponse DTO
type PaymentResponse struct {
	ID           uint      `json:"id"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	PaymentType  string    `json:"payment_type"`
	TypeLabel    string    `json:"type_label"`
	Bonus        float64   `json:"bonus"`
	FinalSalary  float64   `json:"final_salary"`
	Description  string    `json:"description"`
	PaidAt       time.Time `json:"paid_at"`
}

func (p *Payment) ToResponse() *PaymentResponse {
	return &PaymentResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.Employee.Name,
		PaymentType:  string(p.Type()),
		TypeLabel:    p.Type().Label(),
		Bonus:        p.Bonus(),
		FinalSalary:  p.FinalSalary(),
		Description:  p.Description,
		PaidAt:       p.PaidAt,
	}
}

// SalarySnapshot represents salary_snapshots table, one row per scheduled run
type SalarySnapshot struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TakenAt       time.Time `gorm:"index;not null" json:"taken_at"`
	EmployeeCount int       `gorm:"not null" json:"employee_count"`
	TotalFund     float64   `gorm:"type:decimal(14,2);not null" json:"total_fund"`
	MeanSalary    float64   `gorm:"type:decimal(14,2);not null" json:"mean_salary"`
	MedianSalary  float64   `gorm:"type:decimal(14,2);not null" json:"median_salary"`
	PaymentCount  int       `gorm:"not null" json:"payment_count"`
	BonusTotal    float64   `gorm:"type:decimal(14,2);not null" json:"bonus_total"`
}

func (SalarySnapshot) TableName() string {
	return "salary_snapshots"
}

// ============================================================
// Admin Accounts
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'ADMIN'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Employee{},
		&Payment{},
		&SalarySnapshot{},
		&User{},
	)
}
