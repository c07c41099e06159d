// Package budget holds the month budget math: progress against a plan,
// threshold alerts and the suggested defaults offered when planning.
package budget

import (
	"fmt"

	"github.com/shopspring/decimal"

	"spendwise/internal/core"
)

const (
	// AlertThresholdKey is the setting holding the alert ratio.
	AlertThresholdKey = "alert_threshold"
	// DefaultAlertThreshold is used when the setting is absent.
	DefaultAlertThreshold = 0.9
)

var (
	// FloorBudget is suggested when there is neither a budget nor any spend.
	FloorBudget = core.Money{Cents: 500000}

	headroom     = decimal.RequireFromString("1.2")
	ceilingRatio = decimal.RequireFromString("1.5")
	goalRatio    = decimal.RequireFromString("0.1")
)

// Progress is spend against budget for one month.
type Progress struct {
	Month     core.Month
	Spent     core.Money
	Budget    core.Money
	Remaining core.Money // never negative
}

// UsedRatio returns Spent/Budget, or 0 without a budget.
func (p Progress) UsedRatio() float64 {
	if p.Budget.Cents <= 0 {
		return 0
	}
	return float64(p.Spent.Cents) / float64(p.Budget.Cents)
}

// BarRatio is UsedRatio capped at 1 for progress bars.
func (p Progress) BarRatio() float64 {
	return min(p.UsedRatio(), 1)
}

// MonthSpent sums the expenses dated within month.
func MonthSpent(expenses []core.Expense, month core.Month) core.Money {
	var spent core.Money
	for _, e := range expenses {
		if month.Contains(e.Date) {
			spent = spent.Add(e.Amount)
		}
	}
	return spent
}

// MonthlyProgress computes progress for month. A zero budget means no plan exists.
func MonthlyProgress(expenses []core.Expense, month core.Month, budget core.Money) Progress {
	spent := MonthSpent(expenses, month)
	return Progress{
		Month:     month,
		Spent:     spent,
		Budget:    budget,
		Remaining: core.MaxMoney(budget.Sub(spent), core.Money{}),
	}
}

// SpendingAlert returns a message when spent/budget reaches threshold.
// Without a positive budget there is never an alert.
func SpendingAlert(spent, budget core.Money, threshold float64) (string, bool) {
	if budget.Cents <= 0 {
		return "", false
	}
	ratio := float64(spent.Cents) / float64(budget.Cents)
	if ratio < threshold {
		return "", false
	}
	return fmt.Sprintf("Spending alert: %.1f%% of the monthly budget used, over the %.0f%% threshold",
		ratio*100, threshold*100), true
}

// SuggestedBudget is max(existing, spent*1.2), or FloorBudget when nothing has
// been spent yet.
func SuggestedBudget(existing, spent core.Money) core.Money {
	if spent.Cents == 0 {
		return core.MaxMoney(existing, FloorBudget)
	}
	return core.MaxMoney(existing, scale(spent, headroom))
}

// BudgetCeiling is the upper bound for budget and goal controls.
func BudgetCeiling(suggested core.Money) core.Money {
	return core.MaxMoney(scale(suggested, ceilingRatio), FloorBudget)
}

// SuggestedGoal proposes a savings goal of a tenth of the ceiling.
func SuggestedGoal(existingGoal, ceiling core.Money) core.Money {
	return core.MaxMoney(existingGoal, scale(ceiling, goalRatio))
}

func scale(m core.Money, factor decimal.Decimal) core.Money {
	return core.Money{Cents: decimal.NewFromInt(m.Cents).Mul(factor).Round(0).IntPart()}
}

// Suggestion holds the defaults a planning form starts from.
type Suggestion struct {
	Spent         core.Money
	Budget        core.Money // suggested budget
	Ceiling       core.Money
	Goal          core.Money // suggested savings goal
	DefaultBudget core.Money // existing budget, else the suggestion
	DefaultGoal   core.Money // existing goal, else the suggestion
}

// Suggest derives planning defaults from the existing plan (if any) and the month spend.
func Suggest(plan core.BudgetPlan, exists bool, spent core.Money) Suggestion {
	var existing, existingGoal core.Money
	if exists {
		existing, existingGoal = plan.Budget, plan.SavingsGoal
	}
	s := Suggestion{Spent: spent}
	s.Budget = SuggestedBudget(existing, spent)
	s.Ceiling = BudgetCeiling(s.Budget)
	s.Goal = SuggestedGoal(existingGoal, s.Ceiling)

	s.DefaultBudget = s.Budget
	if existing.Cents > 0 {
		s.DefaultBudget = existing
	}
	s.DefaultGoal = s.Goal
	if existingGoal.Cents > 0 {
		s.DefaultGoal = existingGoal
	}
	return s
}
