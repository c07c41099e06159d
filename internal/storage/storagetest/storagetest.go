// Package storagetest holds the behaviour every storage.Store must share.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/storage"
)

// Run exercises newStore against the record store contract. Each subtest gets a fresh store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"expense round trip", testExpenseRoundTrip},
		{"update overwrites", testUpdate},
		{"update unknown id", testUpdateUnknown},
		{"delete", testDelete},
		{"ids are not reused", testIDsNotReused},
		{"budget upsert", testBudgetUpsert},
		{"settings", testSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { s.Close() })
			tt.fn(t, s)
		})
	}
}

func sample() core.Expense {
	return core.Expense{
		Date:          core.NewDate(2024, time.January, 5),
		Amount:        core.Money{Cents: 20000},
		Category:      "Groceries",
		PaymentMethod: "UPI",
		Notes:         "Weekly veg run",
	}
}

func equal(a, b core.Expense) bool {
	return a.ID == b.ID && a.Date.Equal(b.Date.Time) && a.Amount == b.Amount &&
		a.Category == b.Category && a.PaymentMethod == b.PaymentMethod && a.Notes == b.Notes
}

func testExpenseRoundTrip(t *testing.T, s storage.Store) {
	ctx := context.Background()
	in := sample()
	created, err := s.CreateExpense(ctx, in)
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("CreateExpense did not assign an id")
	}
	in.ID = created.ID

	list, err := s.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(list) != 1 || !equal(list[0], in) {
		t.Fatalf("ListExpenses = %+v, want [%+v]", list, in)
	}
	got, err := s.GetExpense(ctx, in.ID)
	if err != nil || !equal(got, in) {
		t.Fatalf("GetExpense = %+v, %v", got, err)
	}
	if n, _ := s.CountExpenses(ctx); n != 1 {
		t.Errorf("CountExpenses = %d, want 1", n)
	}
}

func testUpdate(t *testing.T, s storage.Store) {
	ctx := context.Background()
	created, err := s.CreateExpense(ctx, sample())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	next := core.Expense{
		ID:            created.ID,
		Date:          core.NewDate(2024, time.February, 29),
		Amount:        core.Money{Cents: 1},
		Category:      "Food",
		PaymentMethod: "Bank Transfer",
	}
	if err := s.UpdateExpense(ctx, next); err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	got, err := s.GetExpense(ctx, created.ID)
	if err != nil || !equal(got, next) {
		t.Fatalf("GetExpense after update = %+v, %v; want %+v", got, err, next)
	}
}

func testUpdateUnknown(t *testing.T, s storage.Store) {
	e := sample()
	e.ID = 404
	err := s.UpdateExpense(context.Background(), e)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("UpdateExpense(unknown) = %v, want ErrNotFound", err)
	}
}

func testDelete(t *testing.T, s storage.Store) {
	ctx := context.Background()
	created, err := s.CreateExpense(ctx, sample())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := s.DeleteExpense(ctx, created.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if _, err := s.GetExpense(ctx, created.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("GetExpense after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteExpense(ctx, created.ID); err != nil {
		t.Fatalf("second DeleteExpense = %v, want nil", err)
	}
	if n, _ := s.CountExpenses(ctx); n != 0 {
		t.Errorf("CountExpenses = %d, want 0", n)
	}
}

func testIDsNotReused(t *testing.T, s storage.Store) {
	ctx := context.Background()
	a, _ := s.CreateExpense(ctx, sample())
	b, _ := s.CreateExpense(ctx, sample())
	if err := s.DeleteExpense(ctx, b.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	c, err := s.CreateExpense(ctx, sample())
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if c.ID == a.ID || c.ID == b.ID {
		t.Fatalf("id %d reused (a=%d b=%d)", c.ID, a.ID, b.ID)
	}
}

func testBudgetUpsert(t *testing.T, s storage.Store) {
	ctx := context.Background()
	jan := core.NewMonth(2024, time.January)
	if _, ok, err := s.GetBudget(ctx, jan); ok || err != nil {
		t.Fatalf("GetBudget(absent) = %v, %v", ok, err)
	}

	first := core.BudgetPlan{Month: jan, Budget: core.Money{Cents: 40000}, SavingsGoal: core.Money{Cents: 5000}}
	if err := s.UpsertBudget(ctx, first); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}
	second := core.BudgetPlan{Month: jan, Budget: core.Money{Cents: 60000}}
	if err := s.UpsertBudget(ctx, second); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}
	got, ok, err := s.GetBudget(ctx, jan)
	if err != nil || !ok || got != second {
		t.Fatalf("GetBudget = %+v, %v, %v; want %+v", got, ok, err, second)
	}

	feb := core.BudgetPlan{Month: core.NewMonth(2024, time.February), Budget: core.Money{Cents: 1}}
	if err := s.UpsertBudget(ctx, feb); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}
	plans, err := s.ListBudgets(ctx)
	if err != nil || len(plans) != 2 || plans[0].Month != jan || plans[1] != feb {
		t.Fatalf("ListBudgets = %+v, %v", plans, err)
	}
}

func testSettings(t *testing.T, s storage.Store) {
	ctx := context.Background()
	if _, ok, err := s.GetSetting(ctx, "alert_threshold"); ok || err != nil {
		t.Fatalf("GetSetting(absent) = %v, %v", ok, err)
	}
	for _, v := range []string{"0.9", "0.75"} {
		if err := s.SaveSetting(ctx, "alert_threshold", v); err != nil {
			t.Fatalf("SaveSetting: %v", err)
		}
	}
	v, ok, err := s.GetSetting(ctx, "alert_threshold")
	if err != nil || !ok || v != "0.75" {
		t.Fatalf("GetSetting = %q, %v, %v", v, ok, err)
	}
}
