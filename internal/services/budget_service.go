package services

import (
	"context"
	"fmt"
	"strconv"

	"spendwise/internal/budget"
	"spendwise/internal/core"
	"spendwise/internal/log"
	"spendwise/internal/storage"
)

// BudgetService manages month plans and settings and evaluates spend against them.
type BudgetService struct {
	budgets          storage.BudgetStore
	settings         storage.SettingStore
	expenses         storage.ExpenseStore
	defaultThreshold float64
	logger           *log.Logger
}

func NewBudgetService(store storage.Store, defaultThreshold float64, logger *log.Logger) *BudgetService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &BudgetService{
		budgets:          store,
		settings:         store,
		expenses:         store,
		defaultThreshold: defaultThreshold,
		logger:           logger.WithComponent(log.ComponentBudget),
	}
}

// GetBudget returns the plan for month. A missing plan is reported by the
// boolean, never as an error.
func (s *BudgetService) GetBudget(ctx context.Context, month core.Month) (core.BudgetPlan, bool, error) {
	if err := month.Validate(); err != nil {
		return core.BudgetPlan{}, false, err
	}
	plan, ok, err := s.budgets.GetBudget(ctx, month)
	if err != nil {
		return core.BudgetPlan{}, false, fmt.Errorf("get budget: %w", err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "No budget set", log.FieldMonth, month.String())
	}
	return plan, ok, nil
}

// SetBudget creates or replaces the plan for plan.Month.
func (s *BudgetService) SetBudget(ctx context.Context, plan core.BudgetPlan) error {
	if err := plan.Validate(); err != nil {
		return err
	}
	if err := s.budgets.UpsertBudget(ctx, plan); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	s.logger.InfoContext(ctx, "Budget set",
		log.FieldOperation, log.OpUpdate,
		log.FieldMonth, plan.Month.String(),
		log.FieldAmountCents, plan.Budget.Cents)
	return nil
}

func (s *BudgetService) ListBudgets(ctx context.Context) ([]core.BudgetPlan, error) {
	plans, err := s.budgets.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return plans, nil
}

// Setting returns the stored value for key, or def when it was never saved.
func (s *BudgetService) Setting(ctx context.Context, key, def string) (string, error) {
	v, ok, err := s.settings.GetSetting(ctx, key)
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

// LookupSetting returns the stored value for key and whether it exists.
func (s *BudgetService) LookupSetting(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.settings.GetSetting(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get setting: %w", err)
	}
	return v, ok, nil
}

func (s *BudgetService) SaveSetting(ctx context.Context, key, value string) error {
	if key == budget.AlertThresholdKey {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return core.ErrInvalidThreshold
		}
		return s.SetAlertThreshold(ctx, v)
	}
	return s.saveSetting(ctx, key, value)
}

func (s *BudgetService) saveSetting(ctx context.Context, key, value string) error {
	if err := s.settings.SaveSetting(ctx, key, value); err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	s.logger.InfoContext(ctx, "Setting saved", log.FieldSettingKey, key)
	return nil
}

// AlertThreshold returns the configured alert ratio. An unreadable stored
// value falls back to the default.
func (s *BudgetService) AlertThreshold(ctx context.Context) (float64, error) {
	raw, err := s.Setting(ctx, budget.AlertThresholdKey, "")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return s.defaultThreshold, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		s.logger.WarnContext(ctx, "Ignoring invalid alert threshold", log.FieldSettingKey, budget.AlertThresholdKey, "value", raw)
		return s.defaultThreshold, nil
	}
	return v, nil
}

// SetAlertThreshold stores a ratio in [0, 1].
func (s *BudgetService) SetAlertThreshold(ctx context.Context, v float64) error {
	if v < 0 || v > 1 {
		return core.ErrInvalidThreshold
	}
	return s.saveSetting(ctx, budget.AlertThresholdKey, strconv.FormatFloat(v, 'f', -1, 64))
}

func (s *BudgetService) monthState(ctx context.Context, month core.Month) (core.BudgetPlan, bool, []core.Expense, error) {
	plan, ok, err := s.GetBudget(ctx, month)
	if err != nil {
		return core.BudgetPlan{}, false, nil, err
	}
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return core.BudgetPlan{}, false, nil, fmt.Errorf("list expenses: %w", err)
	}
	return plan, ok, expenses, nil
}

// Progress reports spend against the budget of month; without a plan the budget is 0.
func (s *BudgetService) Progress(ctx context.Context, month core.Month) (budget.Progress, error) {
	plan, _, expenses, err := s.monthState(ctx, month)
	if err != nil {
		return budget.Progress{}, err
	}
	return budget.MonthlyProgress(expenses, month, plan.Budget), nil
}

// Alert evaluates p against the configured threshold.
func (s *BudgetService) Alert(ctx context.Context, p budget.Progress) (string, bool, error) {
	threshold, err := s.AlertThreshold(ctx)
	if err != nil {
		return "", false, err
	}
	msg, ok := budget.SpendingAlert(p.Spent, p.Budget, threshold)
	if ok {
		s.logger.WarnContext(ctx, "Spending alert", log.FieldMonth, p.Month.String(), log.FieldAmountCents, p.Spent.Cents)
	}
	return msg, ok, nil
}

// Suggest returns the planning defaults for month.
func (s *BudgetService) Suggest(ctx context.Context, month core.Month) (budget.Suggestion, error) {
	plan, ok, expenses, err := s.monthState(ctx, month)
	if err != nil {
		return budget.Suggestion{}, err
	}
	return budget.Suggest(plan, ok, budget.MonthSpent(expenses, month)), nil
}
