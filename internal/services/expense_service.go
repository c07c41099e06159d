// Package services implements the expense repository, budget and dashboard
// operations on top of the record store ports.
package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"spendwise/internal/analytics"
	"spendwise/internal/core"
	"spendwise/internal/log"
	"spendwise/internal/storage"
)

// ExpenseService is the typed expense repository. It validates every write
// against the taxonomy before it reaches the store.
type ExpenseService struct {
	store    storage.ExpenseStore
	taxonomy core.Taxonomy
	logger   *log.Logger
}

func NewExpenseService(store storage.ExpenseStore, taxonomy core.Taxonomy, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExpenseService{
		store:    store,
		taxonomy: taxonomy,
		logger:   logger.WithComponent(log.ComponentExpense),
	}
}

// Taxonomy returns the categories and payment methods in use.
func (s *ExpenseService) Taxonomy() core.Taxonomy {
	return s.taxonomy
}

// Add validates and stores e, returning its new id.
func (s *ExpenseService) Add(ctx context.Context, e core.Expense) (int64, error) {
	if err := s.taxonomy.ValidateExpense(e); err != nil {
		return 0, err
	}
	e.ID = 0
	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}
	s.logger.InfoContext(ctx, "Expense added", log.NewFields().
		WithOperation(log.OpCreate).
		WithExpense(created.ID, created.Amount.Cents, created.Category, created.PaymentMethod).
		ToSlice()...)
	return created.ID, nil
}

// Update overwrites every field of expense id with e. The update is all or nothing.
func (s *ExpenseService) Update(ctx context.Context, id int64, e core.Expense) error {
	if err := s.taxonomy.ValidateExpense(e); err != nil {
		return err
	}
	e.ID = id
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	s.logger.InfoContext(ctx, "Expense updated", log.NewFields().
		WithOperation(log.OpUpdate).
		WithExpense(id, e.Amount.Cents, e.Category, e.PaymentMethod).
		ToSlice()...)
	return nil
}

// Delete removes expense id. Unknown ids are ignored.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.logger.InfoContext(ctx, "Expense deleted", log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// List returns every expense in store order; callers sort explicitly.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Query lists the expenses matching f in order o.
func (s *ExpenseService) Query(ctx context.Context, f analytics.Filter, o analytics.Order) ([]core.Expense, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Query(expenses, f, o), nil
}

// Latest returns the most recent expense by date, the last added on ties.
// It is used to prefill entry forms.
func (s *ExpenseService) Latest(ctx context.Context) (core.Expense, bool, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return core.Expense{}, false, err
	}
	if len(expenses) == 0 {
		return core.Expense{}, false, nil
	}
	latest := slices.MaxFunc(expenses, func(a, b core.Expense) int {
		if c := a.Date.Compare(b.Date.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return latest, true, nil
}

// ExportRows flattens every expense, ordered by id, for exporters.
func (s *ExpenseService) ExportRows(ctx context.Context) ([]core.ExportRow, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(expenses, func(a, b core.Expense) int { return cmp.Compare(a.ID, b.ID) })
	rows := make([]core.ExportRow, len(expenses))
	for i, e := range expenses {
		rows[i] = e.ExportRow()
	}
	return rows, nil
}
