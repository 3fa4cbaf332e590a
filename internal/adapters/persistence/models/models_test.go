package models

import (
	"testing"

	"github.com/curlykit/PTLab2/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		employee Employee
		position string
		empType  string
	}{
		{"junior below two years", Employee{YearsOfService: 1}, DefaultPosition, "JUNIOR"},
		{"middle at two years", Employee{YearsOfService: 2}, DefaultPosition, "MIDDLE"},
		{"middle at four years", Employee{YearsOfService: 4}, DefaultPosition, "MIDDLE"},
		{"senior at five years", Employee{YearsOfService: 5}, DefaultPosition, "SENIOR"},
		{"blank position replaced", Employee{YearsOfService: 0, Position: strPtr("  ")}, DefaultPosition, "JUNIOR"},
		{"explicit values kept", Employee{YearsOfService: 10, Position: strPtr("CTO"), EmployeeType: strPtr("MANAGER")}, "CTO", "MANAGER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.employee
			e.ApplyDefaults()
			if *e.Position != tt.position {
				t.Fatalf("expected position %q, got %q", tt.position, *e.Position)
			}
			if *e.EmployeeType != tt.empType {
				t.Fatalf("expected type %q, got %q", tt.empType, *e.EmployeeType)
			}
		})
	}
}

func TestApplyDefaultsPersistsDerivedType(t *testing.T) {
	e := Employee{YearsOfService: 1}
	e.ApplyDefaults()

	// tenure grows, the stored type does not follow
	e.YearsOfService = 7
	e.ApplyDefaults()
	if e.Type() != domain.EmployeeTypeJunior {
		t.Fatalf("expected stored type to stay JUNIOR, got %s", e.Type())
	}
}

func TestEmployeeToResponse(t *testing.T) {
	e := Employee{ID: 3, Name: "Anna", BaseSalary: 40000, YearsOfService: 2, Position: strPtr("Developer")}
	resp := e.ToResponse()

	if resp.SalaryDisplay != "40000.00 RUB" {
		t.Fatalf("unexpected salary display: %s", resp.SalaryDisplay)
	}
	if resp.Experience != "2 years" || resp.Status != "Experienced" {
		t.Fatalf("unexpected experience/status: %s / %s", resp.Experience, resp.Status)
	}
	if resp.EmployeeType != "MIDDLE" || resp.TypeLabel != "Middle" {
		t.Fatalf("unexpected type: %s / %s", resp.EmployeeType, resp.TypeLabel)
	}
}

func TestDisplayHelpers(t *testing.T) {
	if ExperienceText(1) != "1 year" {
		t.Fatalf("unexpected singular: %s", ExperienceText(1))
	}
	if ExperienceText(0) != "0 years" {
		t.Fatalf("unexpected zero: %s", ExperienceText(0))
	}
	if TenureStatus(0) != "New" || TenureStatus(1) != "Experienced" || TenureStatus(3) != "Veteran" {
		t.Fatal("unexpected tenure status buckets")
	}
}

func TestPaymentDerivedValues(t *testing.T) {
	p := Payment{
		Employee:    Employee{Name: "Anna", BaseSalary: 40000},
		BonusAmount: "8000",
	}
	if p.Bonus() != 8000 || p.FinalSalary() != 48000 {
		t.Fatalf("unexpected bonus/final: %v / %v", p.Bonus(), p.FinalSalary())
	}
	if p.Type() != domain.PaymentTypeSalary {
		t.Fatalf("expected blank type to read as SALARY, got %s", p.Type())
	}

	p.BonusAmount = "oops"
	if p.FinalSalary() != 40000 {
		t.Fatalf("expected invalid bonus to read as 0, got %v", p.FinalSalary())
	}
}
