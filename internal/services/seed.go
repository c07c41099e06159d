package services

import (
	"context"
	"fmt"

	"spendwise/internal/core"
	"spendwise/internal/log"
)

type sampleExpense struct {
	daysAgo       int
	cents         int64
	category      string
	paymentMethod string
	notes         string
}

var sampleExpenses = []sampleExpense{
	{50, 15000, "Other", "UPI", "Gift wrap"},
	{41, 22000, "Utilities", "NetBanking", "Internet"},
	{35, 1500000, "Rent", "Bank Transfer", "Monthly rent"},
	{27, 9000, "Food", "Cash", "Street food"},
	{20, 38000, "Groceries", "UPI", "Groceries"},
	{14, 32000, "Health", "Cash", "Pharmacy"},
	{10, 80000, "Entertainment", "Card", "Concert tickets"},
	{8, 25000, "Utilities", "NetBanking", "Electricity bill"},
	{5, 1500000, "Rent", "Bank Transfer", "Monthly rent"},
	{3, 6000, "Transport", "UPI", "Metro card top-up"},
	{1, 12000, "Food", "Card", "Lunch"},
	{0, 45000, "Groceries", "UPI", "Weekly groceries"},
}

// SeedSampleData adds a fixed set of demo expenses dated relative to today,
// only when the store holds no expenses. It returns the number added.
// Samples outside the configured taxonomy are skipped.
func (s *ExpenseService) SeedSampleData(ctx context.Context, today core.Date) (int, error) {
	n, err := s.store.CountExpenses(ctx)
	if err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	if n > 0 {
		s.logger.DebugContext(ctx, "Store not empty, skipping demo data", log.FieldOperation, log.OpSeed, log.FieldRows, n)
		return 0, nil
	}

	added := 0
	for _, sample := range sampleExpenses {
		e := core.Expense{
			Date:          today.AddDays(-sample.daysAgo),
			Amount:        core.Money{Cents: sample.cents},
			Category:      sample.category,
			PaymentMethod: sample.paymentMethod,
			Notes:         sample.notes,
		}
		if s.taxonomy.ValidateExpense(e) != nil {
			continue
		}
		if _, err := s.store.CreateExpense(ctx, e); err != nil {
			return added, fmt.Errorf("seed expense: %w", err)
		}
		added++
	}
	s.logger.InfoContext(ctx, "Demo data seeded", log.FieldOperation, log.OpSeed, log.FieldRows, added)
	return added, nil
}
