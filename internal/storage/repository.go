// Package storage persists expenses, budgets and settings in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"spendwise/internal/core"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection serializes writes.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const expenseColumns = "id, date, amount_cents, category, payment_method, notes"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e    core.Expense
		date string
	)
	if err := row.Scan(&e.ID, &date, &e.Amount.Cents, &e.Category, &e.PaymentMethod, &e.Notes); err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, fmt.Errorf("expense %d: %w", e.ID, err)
	}
	e.Date = d
	return e, nil
}

// CreateExpense implements ExpenseStore
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, amount_cents, category, payment_method, notes) VALUES (?, ?, ?, ?, ?)`,
		e.Date.String(), e.Amount.Cents, e.Category, e.PaymentMethod, e.Notes)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("read expense id: %w", err)
	}
	e.ID = id

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"date", e.Date.String(),
		"amount_cents", e.Amount.Cents,
		"category", e.Category)
	return e, nil
}

// UpdateExpense implements ExpenseStore
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, amount_cents = ?, category = ?, payment_method = ?, notes = ? WHERE id = ?`,
		e.Date.String(), e.Amount.Cents, e.Category, e.PaymentMethod, e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n == 0 {
		return core.ExpenseNotFound(e.ID)
	}
	slog.InfoContext(ctx, "Expense updated in SQLite", "id", e.ID)
	return nil
}

// DeleteExpense implements ExpenseStore
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		slog.DebugContext(ctx, "Delete of unknown expense ignored", "id", id)
		return nil
	}
	slog.InfoContext(ctx, "Expense deleted from SQLite", "id", id)
	return nil
}

// GetExpense implements ExpenseStore
func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ExpenseNotFound(id)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense by id: %w", err)
	}
	return e, nil
}

// ListExpenses implements ExpenseStore
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// CountExpenses implements ExpenseStore
func (r *SQLiteRepository) CountExpenses(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

// GetBudget implements BudgetStore
func (r *SQLiteRepository) GetBudget(ctx context.Context, month core.Month) (core.BudgetPlan, bool, error) {
	plan := core.BudgetPlan{Month: month}
	err := r.db.QueryRowContext(ctx,
		`SELECT budget_cents, savings_goal_cents FROM budgets WHERE month = ?`, month.String()).
		Scan(&plan.Budget.Cents, &plan.SavingsGoal.Cents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.BudgetPlan{}, false, nil
	}
	if err != nil {
		return core.BudgetPlan{}, false, fmt.Errorf("get budget %s: %w", month, err)
	}
	return plan, true, nil
}

// UpsertBudget implements BudgetStore
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, plan core.BudgetPlan) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (month, budget_cents, savings_goal_cents) VALUES (?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET budget_cents = excluded.budget_cents, savings_goal_cents = excluded.savings_goal_cents`,
		plan.Month.String(), plan.Budget.Cents, plan.SavingsGoal.Cents)
	if err != nil {
		return fmt.Errorf("upsert budget %s: %w", plan.Month, err)
	}
	slog.InfoContext(ctx, "Budget saved to SQLite",
		"month", plan.Month.String(),
		"budget_cents", plan.Budget.Cents,
		"savings_goal_cents", plan.SavingsGoal.Cents)
	return nil
}

// ListBudgets implements BudgetStore
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.BudgetPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month, budget_cents, savings_goal_cents FROM budgets ORDER BY month`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	plans := []core.BudgetPlan{}
	for rows.Next() {
		var (
			p     core.BudgetPlan
			month string
		)
		if err := rows.Scan(&month, &p.Budget.Cents, &p.SavingsGoal.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if p.Month, err = core.ParseMonth(month); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return plans, nil
}

// GetSetting implements SettingStore
func (r *SQLiteRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, true, nil
}

// SaveSetting implements SettingStore
func (r *SQLiteRepository) SaveSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	slog.InfoContext(ctx, "Setting saved to SQLite", "key", key)
	return nil
}
