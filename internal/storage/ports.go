package storage

import (
	"context"

	"spendwise/internal/core"
)

// Ports implemented by the record stores. Stores persist what they are given;
// domain validation happens in the services before a write reaches them.
type (
	ExpenseStore interface {
		// CreateExpense inserts e and returns it with the assigned id.
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
		// UpdateExpense overwrites every field but the id. Unknown ids yield a NotFoundError.
		UpdateExpense(ctx context.Context, e core.Expense) error
		// DeleteExpense removes the expense; deleting an unknown id is not an error.
		DeleteExpense(ctx context.Context, id int64) error
		GetExpense(ctx context.Context, id int64) (core.Expense, error)
		// ListExpenses returns every expense in no particular order.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
		CountExpenses(ctx context.Context) (int, error)
	}

	BudgetStore interface {
		// GetBudget reports false when no plan exists for month.
		GetBudget(ctx context.Context, month core.Month) (core.BudgetPlan, bool, error)
		UpsertBudget(ctx context.Context, plan core.BudgetPlan) error
		ListBudgets(ctx context.Context) ([]core.BudgetPlan, error)
	}

	SettingStore interface {
		// GetSetting reports false when key has never been saved.
		GetSetting(ctx context.Context, key string) (string, bool, error)
		SaveSetting(ctx context.Context, key, value string) error
	}

	// Store is a complete record store.
	Store interface {
		ExpenseStore
		BudgetStore
		SettingStore
		Close() error
	}
)
