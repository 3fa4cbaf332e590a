package domain

// Role represents admin account role in the system
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleViewer Role = "VIEWER"
)

// EmployeeType is the seniority tag stored on an employee
type EmployeeType string

const (
	EmployeeTypeJunior  EmployeeType = "JUNIOR"
	EmployeeTypeMiddle  EmployeeType = "MIDDLE"
	EmployeeTypeSenior  EmployeeType = "SENIOR"
	EmployeeTypeLead    EmployeeType = "LEAD"
	EmployeeTypeManager EmployeeType = "MANAGER"
	EmployeeTypeOther   EmployeeType = "OTHER"
)

// EmployeeTypes lists every employee type in display order
var EmployeeTypes = []EmployeeType{
	EmployeeTypeJunior,
	EmployeeTypeMiddle,
	EmployeeTypeSenior,
	EmployeeTypeLead,
	EmployeeTypeManager,
	EmployeeTypeOther,
}

var employeeTypeLabels = map[EmployeeType]string{
	EmployeeTypeJunior:  "Junior",
	EmployeeTypeMiddle:  "Middle",
	EmployeeTypeSenior:  "Senior",
	EmployeeTypeLead:    "Team Lead",
	EmployeeTypeManager: "Manager",
	EmployeeTypeOther:   "Other",
}

// Label returns the human readable name of the type
func (t EmployeeType) Label() string {
	if label, ok := employeeTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Valid reports whether t is one of the known employee types
func (t EmployeeType) Valid() bool {
	_, ok := employeeTypeLabels[t]
	return ok
}

// ClassifyByTenure derives the employee type from years of service.
// < 2 years is Junior, 2-4 is Middle, 5 and more is Senior.
func ClassifyByTenure(years uint) EmployeeType {
	switch {
	case years < 2:
		return EmployeeTypeJunior
	case years < 5:
		return EmployeeTypeMiddle
	default:
		return EmployeeTypeSenior
	}
}

// PaymentType is the kind of disbursement a payment represents
type PaymentType string

const (
	PaymentTypeSalary    PaymentType = "SALARY"
	PaymentTypeBonus     PaymentType = "BONUS"
	PaymentTypeAdvance   PaymentType = "ADVANCE"
	PaymentTypeVacation  PaymentType = "VACATION"
	PaymentTypeSickLeave PaymentType = "SICK_LEAVE"
	PaymentTypeMaternity PaymentType = "MATERNITY"
	PaymentTypeOther     PaymentType = "OTHER"
)

// PaymentTypes lists every payment type in display order
var PaymentTypes = []PaymentType{
	PaymentTypeSalary,
	PaymentTypeBonus,
	PaymentTypeAdvance,
	PaymentTypeVacation,
	PaymentTypeSickLeave,
	PaymentTypeMaternity,
	PaymentTypeOther,
}

var paymentTypeLabels = map[PaymentType]string{
	PaymentTypeSalary:    "Salary",
	PaymentTypeBonus:     "Bonus",
	PaymentTypeAdvance:   "Advance",
	PaymentTypeVacation:  "Vacation pay",
	PaymentTypeSickLeave: "Sick leave",
	PaymentTypeMaternity: "Maternity pay",
	PaymentTypeOther:     "Other",
}

// Label returns the human readable name of the payment type.
// Unknown or empty types read as Salary.
func (t PaymentType) Label() string {
	if label, ok := paymentTypeLabels[t]; ok {
		return label
	}
	return paymentTypeLabels[PaymentTypeSalary]
}

// Valid reports whether t is one of the known payment types
func (t PaymentType) Valid() bool {
	_, ok := paymentTypeLabels[t]
	return ok
}
