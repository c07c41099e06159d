package core

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")
)

var (
	ErrInvalidDate          = &ValidationError{Field: "date", Reason: "invalid date"}
	ErrInvalidMonth         = &ValidationError{Field: "month", Reason: "invalid month, expected YYYY-MM"}
	ErrInvalidAmount        = &ValidationError{Field: "amount", Reason: "invalid amount"}
	ErrNegativeAmount       = &ValidationError{Field: "amount", Reason: "amount must not be negative"}
	ErrUnknownCategory      = &ValidationError{Field: "category", Reason: "unknown category"}
	ErrUnknownPaymentMethod = &ValidationError{Field: "payment_method", Reason: "unknown payment method"}
	ErrNegativeBudget       = &ValidationError{Field: "budget", Reason: "budget must not be negative"}
	ErrNegativeGoal         = &ValidationError{Field: "savings_goal", Reason: "savings goal must not be negative"}
	ErrInvalidThreshold     = &ValidationError{Field: "alert_threshold", Reason: "threshold must be a ratio between 0 and 1"}
)

// ValidationError reports a field that failed the domain rules.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a record missing from the store.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExpenseNotFound builds the not-found error for an expense id.
func ExpenseNotFound(id int64) error {
	return &NotFoundError{Kind: "expense", ID: id}
}
