package http

import (
	"spendwise/internal/analytics"
	"spendwise/internal/budget"
	"spendwise/internal/core"
	"spendwise/internal/services"
)

// Amounts leave the API as fixed two-decimal strings alongside the exact cents.

type expenseView struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	AmountCents   int64  `json:"amount_cents"`
	Category      string `json:"category"`
	PaymentMethod string `json:"payment_method"`
	Notes         string `json:"notes"`
}

func newExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:            e.ID,
		Date:          e.Date.String(),
		Amount:        e.Amount.String(),
		AmountCents:   e.Amount.Cents,
		Category:      e.Category,
		PaymentMethod: e.PaymentMethod,
		Notes:         e.Notes,
	}
}

func newExpenseViews(expenses []core.Expense) []expenseView {
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, newExpenseView(e))
	}
	return views
}

type expenseListView struct {
	Count    int           `json:"count"`
	Total    string        `json:"total"`
	Sort     string        `json:"sort"`
	Expenses []expenseView `json:"expenses"`
}

type groupView struct {
	Value string  `json:"value"`
	Sum   string  `json:"sum"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

func newGroupViews(rows []analytics.GroupRow) []groupView {
	views := make([]groupView, 0, len(rows))
	for _, r := range rows {
		views = append(views, groupView{Value: r.Value, Sum: r.Sum.String(), Mean: r.Mean, Count: r.Count})
	}
	return views
}

type summaryView struct {
	Dimension string      `json:"dimension"`
	Groups    []groupView `json:"groups"`
}

type trendPointView struct {
	Start string `json:"start"`
	Label string `json:"label"`
	Sum   string `json:"sum"`
}

func newTrendViews(points []analytics.TrendPoint, b analytics.Bucket) []trendPointView {
	views := make([]trendPointView, 0, len(points))
	for _, p := range points {
		views = append(views, trendPointView{Start: p.Start.String(), Label: b.Label(p.Start), Sum: p.Sum.String()})
	}
	return views
}

type trendView struct {
	Bucket string           `json:"bucket"`
	Points []trendPointView `json:"points"`
}

type shareView struct {
	Category string  `json:"category"`
	Total    string  `json:"total"`
	Percent  float64 `json:"percent"`
}

func newShareViews(shares []analytics.Share) []shareView {
	views := make([]shareView, 0, len(shares))
	for _, s := range shares {
		views = append(views, shareView{Category: s.Category, Total: s.Total.String(), Percent: s.Percent})
	}
	return views
}

type budgetView struct {
	Month       string `json:"month"`
	Budget      string `json:"budget"`
	SavingsGoal string `json:"savings_goal"`
}

func newBudgetView(p core.BudgetPlan) budgetView {
	return budgetView{Month: p.Month.String(), Budget: p.Budget.String(), SavingsGoal: p.SavingsGoal.String()}
}

type progressView struct {
	Month     string  `json:"month"`
	Spent     string  `json:"spent"`
	Budget    string  `json:"budget"`
	Remaining string  `json:"remaining"`
	UsedRatio float64 `json:"used_ratio"`
	BarRatio  float64 `json:"bar_ratio"`
	Alert     string  `json:"alert,omitempty"`
}

func newProgressView(p budget.Progress, alert string) progressView {
	return progressView{
		Month:     p.Month.String(),
		Spent:     p.Spent.String(),
		Budget:    p.Budget.String(),
		Remaining: p.Remaining.String(),
		UsedRatio: p.UsedRatio(),
		BarRatio:  p.BarRatio(),
		Alert:     alert,
	}
}

type suggestionView struct {
	Month         string `json:"month"`
	Spent         string `json:"spent"`
	Budget        string `json:"suggested_budget"`
	Ceiling       string `json:"ceiling"`
	Goal          string `json:"suggested_goal"`
	DefaultBudget string `json:"default_budget"`
	DefaultGoal   string `json:"default_goal"`
}

func newSuggestionView(month core.Month, s budget.Suggestion) suggestionView {
	return suggestionView{
		Month:         month.String(),
		Spent:         s.Spent.String(),
		Budget:        s.Budget.String(),
		Ceiling:       s.Ceiling.String(),
		Goal:          s.Goal.String(),
		DefaultBudget: s.DefaultBudget.String(),
		DefaultGoal:   s.DefaultGoal.String(),
	}
}

type settingView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type highlightsView struct {
	Count       int     `json:"count"`
	Total       string  `json:"total"`
	AvgDaily    float64 `json:"avg_daily"`
	TopCategory string  `json:"top_category,omitempty"`
	TopAmount   string  `json:"top_amount"`
}

type dashboardView struct {
	Month       string         `json:"month"`
	Progress    progressView   `json:"progress"`
	SavingsGoal string         `json:"savings_goal"`
	Highlights  highlightsView `json:"highlights"`
	Recent      []expenseView  `json:"recent"`
	Categories  []groupView    `json:"categories"`
}

func newDashboardView(d services.Dashboard) dashboardView {
	return dashboardView{
		Month:       d.Month.String(),
		Progress:    newProgressView(d.Progress, d.Alert),
		SavingsGoal: d.SavingsGoal.String(),
		Highlights: highlightsView{
			Count:       d.Highlights.Count,
			Total:       d.Highlights.Total.String(),
			AvgDaily:    d.Highlights.AvgDaily,
			TopCategory: d.Highlights.TopCategory,
			TopAmount:   d.Highlights.TopAmount.String(),
		},
		Recent:     newExpenseViews(d.Recent),
		Categories: newGroupViews(d.Categories),
	}
}

type chartsView struct {
	From      string      `json:"from,omitempty"`
	To        string      `json:"to,omitempty"`
	Dimension string      `json:"dimension"`
	Breakdown []groupView `json:"breakdown"`
	Trend     trendView   `json:"trend"`
}

func newChartsView(c services.Charts) chartsView {
	v := chartsView{
		Dimension: string(c.Dimension),
		Breakdown: newGroupViews(c.Breakdown),
		Trend:     trendView{Bucket: c.Bucket.String(), Points: newTrendViews(c.Trend, c.Bucket)},
	}
	if !c.Range.From.IsZero() {
		v.From = c.Range.From.String()
	}
	if !c.Range.To.IsZero() {
		v.To = c.Range.To.String()
	}
	return v
}

type exportJobView struct {
	JobID       string `json:"job_id"`
	Trigger     string `json:"trigger"`
	FileName    string `json:"file_name,omitempty"`
	RequestedAt string `json:"requested_at"`
}

type taxonomyView struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
}
