package analytics

import (
	"fmt"
	"sort"
	"strings"

	"spendwise/internal/core"
)

// Dimension is the categorical field expenses are grouped by.
type Dimension string

const (
	ByCategory      Dimension = "category"
	ByPaymentMethod Dimension = "payment_method"
)

// ParseDimension accepts "category" and "payment_method" (or "payment"/"method").
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "category":
		return ByCategory, nil
	case "payment_method", "payment", "method":
		return ByPaymentMethod, nil
	default:
		return "", fmt.Errorf("unknown dimension %q", s)
	}
}

// Value extracts the dimension value of e.
func (d Dimension) Value(e core.Expense) string {
	if d == ByPaymentMethod {
		return e.PaymentMethod
	}
	return e.Category
}

// Values returns the enumerated values of the dimension in taxonomy order.
func (d Dimension) Values(t core.Taxonomy) []string {
	if d == ByPaymentMethod {
		return t.PaymentMethods
	}
	return t.Categories
}

// GroupStats holds sum, mean and count of one group.
type GroupStats struct {
	Sum   core.Money
	Mean  float64 // currency units; 0 when Count is 0
	Count int
}

// GroupRow is a GroupStats labelled with its dimension value.
type GroupRow struct {
	Value string
	GroupStats
}

// GroupSummary groups expenses by dimension. Only values present in the input
// appear, so every group has Count >= 1.
func GroupSummary(expenses []core.Expense, dim Dimension) map[string]GroupStats {
	groups := make(map[string]GroupStats)
	for _, e := range expenses {
		key := dim.Value(e)
		g := groups[key]
		g.Sum = g.Sum.Add(e.Amount)
		g.Count++
		groups[key] = g
	}
	for key, g := range groups {
		g.Mean = mean(g.Sum, g.Count)
		groups[key] = g
	}
	return groups
}

func mean(sum core.Money, count int) float64 {
	if count == 0 {
		return 0
	}
	return sum.Float64() / float64(count)
}

// Reindex lays the summary out against the full ordered value set, zero-filling
// values without expenses. Values in the summary but outside the set are appended
// in name order so no amount is dropped.
func Reindex(summary map[string]GroupStats, values []string) []GroupRow {
	rows := make([]GroupRow, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
		rows = append(rows, GroupRow{Value: v, GroupStats: summary[v]})
	}
	var extra []string
	for v := range summary {
		if _, ok := seen[v]; !ok {
			extra = append(extra, v)
		}
	}
	sort.Strings(extra)
	for _, v := range extra {
		rows = append(rows, GroupRow{Value: v, GroupStats: summary[v]})
	}
	return rows
}

// Rows returns the summary sorted by sum descending, then by value.
func Rows(summary map[string]GroupStats) []GroupRow {
	rows := make([]GroupRow, 0, len(summary))
	for v, g := range summary {
		rows = append(rows, GroupRow{Value: v, GroupStats: g})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Sum.Cents != rows[j].Sum.Cents {
			return rows[i].Sum.Cents > rows[j].Sum.Cents
		}
		return rows[i].Value < rows[j].Value
	})
	return rows
}

// Share is one slice of a distribution chart.
type Share struct {
	Category string
	Total    core.Money
	Percent  float64 // 0..100, 0 when the grand total is 0
}

// Distribution returns per-category totals, largest first. Totals sum to the
// total of the input.
func Distribution(expenses []core.Expense) []Share {
	rows := Rows(GroupSummary(expenses, ByCategory))
	grand := Total(expenses)
	shares := make([]Share, 0, len(rows))
	for _, r := range rows {
		s := Share{Category: r.Value, Total: r.Sum}
		if grand.Cents > 0 {
			s.Percent = float64(r.Sum.Cents) / float64(grand.Cents) * 100
		}
		shares = append(shares, s)
	}
	return shares
}

// Total sums the amounts of expenses.
func Total(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Highlights summarises a set of expenses for the dashboard header.
type Highlights struct {
	Count       int
	Total       core.Money
	AvgDaily    float64 // mean of per-day totals over days with spending
	TopCategory string
	TopAmount   core.Money
}

// Summarize computes dashboard highlights.
func Summarize(expenses []core.Expense) Highlights {
	h := Highlights{Count: len(expenses), Total: Total(expenses)}
	if len(expenses) == 0 {
		return h
	}

	days := make(map[string]struct{})
	for _, e := range expenses {
		days[e.Date.String()] = struct{}{}
	}
	h.AvgDaily = h.Total.Float64() / float64(len(days))

	if rows := Rows(GroupSummary(expenses, ByCategory)); len(rows) > 0 {
		h.TopCategory = rows[0].Value
		h.TopAmount = rows[0].Sum
	}
	return h
}
