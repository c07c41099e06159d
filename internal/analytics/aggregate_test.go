package analytics

import (
	"math"
	"testing"

	"spendwise/internal/core"
)

func TestGroupSummaryScenario(t *testing.T) {
	jan := Apply(sample()[:3], Filter{From: core.NewDate(2024, 1, 1), To: core.NewDate(2024, 1, 31)})
	got := GroupSummary(jan, ByCategory)

	want := map[string]GroupStats{
		"Groceries": {Sum: core.Money{Cents: 20000}, Mean: 200, Count: 1},
		"Food":      {Sum: core.Money{Cents: 30000}, Mean: 300, Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("GroupSummary() = %v, want %v", got, want)
	}
	for k, w := range want {
		if got[k] != w {
			t.Errorf("GroupSummary()[%s] = %+v, want %+v", k, got[k], w)
		}
	}
}

func TestGroupSummarySumsMatchTotal(t *testing.T) {
	for _, dim := range []Dimension{ByCategory, ByPaymentMethod} {
		summary := GroupSummary(sample(), dim)
		var sum float64
		count := 0
		for _, g := range summary {
			sum += g.Sum.Float64()
			count += g.Count
			if g.Count == 0 {
				t.Errorf("%s: group with zero count present", dim)
			}
		}
		if math.Abs(sum-Total(sample()).Float64()) > 1e-6 || count != len(sample()) {
			t.Errorf("%s: sum=%v count=%d do not match input", dim, sum, count)
		}
	}
}

func TestGroupSummaryMean(t *testing.T) {
	got := GroupSummary(sample(), ByPaymentMethod)["UPI"]
	if got.Count != 3 || got.Sum.Cents != 35000 {
		t.Fatalf("unexpected UPI group %+v", got)
	}
	if math.Abs(got.Mean-350.0/3) > 1e-9 {
		t.Fatalf("unexpected mean %v", got.Mean)
	}
}

func TestReindexZeroFills(t *testing.T) {
	summary := GroupSummary(sample(), ByCategory)
	rows := Reindex(summary, core.DefaultCategories)
	if len(rows) != len(core.DefaultCategories) {
		t.Fatalf("Reindex() returned %d rows", len(rows))
	}
	for i, r := range rows {
		if r.Value != core.DefaultCategories[i] {
			t.Errorf("row %d = %s, want %s", i, r.Value, core.DefaultCategories[i])
		}
	}
	if rent := rows[6]; rent.Value != "Rent" || rent.Count != 0 || rent.Mean != 0 || rent.Sum.Cents != 0 {
		t.Errorf("Rent row not zero-filled: %+v", rent)
	}

	extra := Reindex(map[string]GroupStats{"Legacy": {Sum: core.Money{Cents: 1}, Count: 1}}, []string{"Food"})
	if len(extra) != 2 || extra[1].Value != "Legacy" {
		t.Errorf("values outside the set must be kept, got %+v", extra)
	}
}

func TestDistribution(t *testing.T) {
	shares := Distribution(sample())
	if len(shares) != 3 || shares[0].Category != "Food" {
		t.Fatalf("unexpected shares %+v", shares)
	}
	var total int64
	var pct float64
	for _, s := range shares {
		total += s.Total.Cents
		pct += s.Percent
	}
	if total != Total(sample()).Cents {
		t.Errorf("share totals %d != input total %d", total, Total(sample()).Cents)
	}
	if math.Abs(pct-100) > 1e-6 {
		t.Errorf("percentages sum to %v", pct)
	}
	if got := Distribution(nil); len(got) != 0 {
		t.Errorf("Distribution(nil) = %v", got)
	}
}

func TestSummarize(t *testing.T) {
	h := Summarize(sample())
	if h.Count != 5 || h.Total.Cents != 75000 {
		t.Fatalf("unexpected highlights %+v", h)
	}
	// four distinct days with spending
	if math.Abs(h.AvgDaily-750.0/4) > 1e-9 {
		t.Errorf("AvgDaily = %v", h.AvgDaily)
	}
	if h.TopCategory != "Food" || h.TopAmount.Cents != 35000 {
		t.Errorf("top category = %s %v", h.TopCategory, h.TopAmount)
	}
	if empty := Summarize(nil); empty.Count != 0 || empty.TopCategory != "" || empty.AvgDaily != 0 {
		t.Errorf("Summarize(nil) = %+v", empty)
	}
}
