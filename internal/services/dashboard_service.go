package services

import (
	"context"

	"spendwise/internal/analytics"
	"spendwise/internal/budget"
	"spendwise/internal/core"
)

// RecentLimit is how many expenses the dashboard lists.
const RecentLimit = 10

// Dashboard is the month overview.
type Dashboard struct {
	Month       core.Month
	Progress    budget.Progress
	SavingsGoal core.Money
	Alert       string // empty when no alert fired
	Highlights  analytics.Highlights
	Recent      []core.Expense // newest first
	Categories  []analytics.GroupRow
}

// Charts is the data behind the dashboard charts for one range.
type Charts struct {
	Range     analytics.Range
	Dimension analytics.Dimension
	Bucket    analytics.Bucket
	Breakdown []analytics.GroupRow // every enumerated value, zero filled
	Trend     []analytics.TrendPoint
}

// DashboardService composes the expense and budget services into the overview screens.
type DashboardService struct {
	expenses *ExpenseService
	budgets  *BudgetService
}

func NewDashboardService(expenses *ExpenseService, budgets *BudgetService) *DashboardService {
	return &DashboardService{expenses: expenses, budgets: budgets}
}

// Month builds the overview of month.
func (s *DashboardService) Month(ctx context.Context, month core.Month) (Dashboard, error) {
	if err := month.Validate(); err != nil {
		return Dashboard{}, err
	}
	all, err := s.expenses.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	plan, _, err := s.budgets.GetBudget(ctx, month)
	if err != nil {
		return Dashboard{}, err
	}

	inMonth := analytics.Apply(all, analytics.Filter{From: month.FirstDay(), To: month.LastDay()})
	d := Dashboard{
		Month:       month,
		Progress:    budget.MonthlyProgress(inMonth, month, plan.Budget),
		SavingsGoal: plan.SavingsGoal,
		Highlights:  analytics.Summarize(inMonth),
		Categories:  analytics.Rows(analytics.GroupSummary(inMonth, analytics.ByCategory)),
	}
	if d.Alert, _, err = s.budgets.Alert(ctx, d.Progress); err != nil {
		return Dashboard{}, err
	}

	recent := analytics.Sort(inMonth, analytics.NewestFirst)
	d.Recent = recent[:min(len(recent), RecentLimit)]
	return d, nil
}

// Charts builds the breakdown and trend series for a preset range.
func (s *DashboardService) Charts(ctx context.Context, preset analytics.RangePreset, dim analytics.Dimension, bucket analytics.Bucket, today core.Date) (Charts, error) {
	r, err := analytics.RangeFor(preset, today)
	if err != nil {
		return Charts{}, &core.ValidationError{Field: "range", Reason: err.Error()}
	}
	all, err := s.expenses.List(ctx)
	if err != nil {
		return Charts{}, err
	}
	inRange := analytics.Apply(all, r.Filter())
	return Charts{
		Range:     r,
		Dimension: dim,
		Bucket:    bucket,
		Breakdown: analytics.Reindex(analytics.GroupSummary(inRange, dim), dim.Values(s.expenses.Taxonomy())),
		Trend:     analytics.Trend(inRange, bucket),
	}, nil
}
