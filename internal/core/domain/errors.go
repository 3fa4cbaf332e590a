package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidReference   = errors.New("invalid foreign key reference")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Payroll errors
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNonNumericAmount    = errors.New("bonus and deductions must be numbers")
	ErrInvalidEmployeeType = errors.New("invalid employee type")
	ErrInvalidPaymentType  = errors.New("invalid payment type")
)
