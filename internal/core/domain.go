package core

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type (
	// Date is a calendar day with no time component, always stored in UTC.
	Date struct {
		time.Time
	}

	// Month is the YYYY-MM key that budgets are stored under.
	Month struct {
		Year  int
		Month time.Month
	}

	Expense struct {
		ID            int64 // Assigned by the store on creation
		Date          Date
		Amount        Money
		Category      string
		PaymentMethod string
		Notes         string
	}

	// BudgetPlan holds the spending target and savings goal of one month.
	BudgetPlan struct {
		Month       Month
		Budget      Money
		SavingsGoal Money
	}

	// Setting is a key/value pair persisted as text.
	Setting struct {
		Key   string
		Value string
	}

	// ExportRow is the flat, ordered representation of an expense handed to exporters.
	ExportRow struct {
		ID            int64
		Date          string
		Category      string
		PaymentMethod string
		Amount        float64
		Notes         string
	}
)

// NewDate creates a new Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a date string in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

// Month returns the year-month the date belongs to.
func (d Date) Month() Month {
	return Month{Year: d.Year(), Month: d.Time.Month()}
}

// NewMonth builds a Month key.
func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Month: month}
}

// ParseMonth parses a YYYY-MM key.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) Validate() error {
	if m.Year < 1 || m.Month < time.January || m.Month > time.December {
		return ErrInvalidMonth
	}
	return nil
}

// FirstDay returns the first calendar day of the month.
func (m Month) FirstDay() Date {
	return NewDate(m.Year, m.Month, 1)
}

// LastDay returns the last calendar day of the month.
func (m Month) LastDay() Date {
	return Date{Time: m.FirstDay().AddDate(0, 1, -1)}
}

// Contains reports whether d falls within the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Time.Month() == m.Month
}

func (b BudgetPlan) Validate() error {
	if err := b.Month.Validate(); err != nil {
		return err
	}
	if b.Budget.Cents < 0 {
		return ErrNegativeBudget
	}
	if b.SavingsGoal.Cents < 0 {
		return ErrNegativeGoal
	}
	return nil
}

// ExportRow flattens the expense in export column order.
func (e Expense) ExportRow() ExportRow {
	return ExportRow{
		ID:            e.ID,
		Date:          e.Date.String(),
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Amount:        e.Amount.Float64(),
		Notes:         e.Notes,
	}
}

// ExportHeader lists the export columns in order.
var ExportHeader = []string{"id", "date", "category", "payment_method", "amount", "notes"}
