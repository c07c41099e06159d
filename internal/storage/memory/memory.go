// Package memory is an in-process record store used by tests and DATA_BACKEND=memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"spendwise/internal/core"
	"spendwise/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	items    []core.Expense
	budgets  map[core.Month]core.BudgetPlan
	settings map[string]string
}

func New() *Store {
	return &Store{
		nextID:   1,
		budgets:  map[core.Month]core.BudgetPlan{},
		settings: map[string]string{},
	}
}

func (s *Store) Close() error { return nil }

// CreateExpense stores e under the next id. Ids are never reused.
func (s *Store) CreateExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(e.ID)
	if i < 0 {
		return core.ExpenseNotFound(e.ID)
	}
	s.items[i] = e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	return nil
}

func (s *Store) GetExpense(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return core.Expense{}, core.ExpenseNotFound(id)
	}
	return s.items[i], nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) CountExpenses(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *Store) GetBudget(_ context.Context, month core.Month) (core.BudgetPlan, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.budgets[month]
	return p, ok, nil
}

func (s *Store) UpsertBudget(_ context.Context, plan core.BudgetPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[plan.Month] = plan
	return nil
}

func (s *Store) ListBudgets(_ context.Context) ([]core.BudgetPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.BudgetPlan, 0, len(s.budgets))
	for _, p := range s.budgets {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b core.BudgetPlan) int {
		return a.Month.FirstDay().Compare(b.Month.FirstDay().Time)
	})
	return out, nil
}

func (s *Store) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *Store) SaveSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.items, func(e core.Expense) bool { return e.ID == id })
}
