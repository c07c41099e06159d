package core

import (
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDateAndMonth(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2024-02-29" || d.Month().String() != "2024-02" {
		t.Fatalf("unexpected date %s month %s", d, d.Month())
	}
	if _, err := ParseDate("2024-13-01"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	m, err := ParseMonth("2024-02")
	if err != nil {
		t.Fatalf("parse month: %v", err)
	}
	if m.FirstDay().String() != "2024-02-01" || m.LastDay().String() != "2024-02-29" {
		t.Fatalf("unexpected bounds %s..%s", m.FirstDay(), m.LastDay())
	}
	if !m.Contains(d) || m.Contains(NewDate(2024, 3, 1)) {
		t.Fatalf("Contains gave wrong answer")
	}
	if _, err := ParseMonth("2024/02"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTaxonomyValidateExpense(t *testing.T) {
	tax := DefaultTaxonomy()
	good := Expense{
		Date:          NewDate(2025, 1, 1),
		Amount:        Money{Cents: 100},
		Category:      "Food",
		PaymentMethod: "UPI",
	}
	if err := tax.ValidateExpense(good); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	zero := good
	zero.Amount = Money{}
	if err := tax.ValidateExpense(zero); err != nil {
		t.Fatalf("zero amount should pass the engine guard, got %v", err)
	}

	bads := []struct {
		mutate func(*Expense)
		want   error
	}{
		{func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{func(e *Expense) { e.Amount = Money{Cents: -1} }, ErrNegativeAmount},
		{func(e *Expense) { e.Category = "Travel" }, ErrUnknownCategory},
		{func(e *Expense) { e.PaymentMethod = "Cheque" }, ErrUnknownPaymentMethod},
	}
	for i, tc := range bads {
		e := good
		tc.mutate(&e)
		err := tax.ValidateExpense(e)
		if !errors.Is(err, tc.want) || !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestBudgetPlanValidate(t *testing.T) {
	m := NewMonth(2024, time.January)
	if err := (BudgetPlan{Month: m, Budget: Money{Cents: 40000}}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (BudgetPlan{Month: m, Budget: Money{Cents: -1}}).Validate(); !errors.Is(err, ErrNegativeBudget) {
		t.Fatalf("expected ErrNegativeBudget, got %v", err)
	}
	if err := (BudgetPlan{Month: m, SavingsGoal: Money{Cents: -1}}).Validate(); !errors.Is(err, ErrNegativeGoal) {
		t.Fatalf("expected ErrNegativeGoal, got %v", err)
	}
}

func TestNotFoundError(t *testing.T) {
	err := ExpenseNotFound(7)
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		t.Fatalf("unexpected error matching for %v", err)
	}
	if err.Error() != "expense 7 not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestExportRowOrder(t *testing.T) {
	e := Expense{ID: 3, Date: NewDate(2024, 1, 5), Amount: Money{Cents: 20050}, Category: "Groceries", PaymentMethod: "Cash", Notes: "veg"}
	row := e.ExportRow()
	if row.ID != 3 || row.Date != "2024-01-05" || row.Amount != 200.5 || row.Notes != "veg" {
		t.Fatalf("unexpected row %+v", row)
	}
	if len(ExportHeader) != 6 || ExportHeader[0] != "id" || ExportHeader[5] != "notes" {
		t.Fatalf("unexpected header %v", ExportHeader)
	}
}
