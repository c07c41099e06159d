package http

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"spendwise/internal/core"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantCats  []string
		wantPay   []string
		wantText  string
		wantFrom  string
		wantField string // non-empty when an error is expected
	}{
		{
			name:  "empty query is unfiltered",
			query: url.Values{},
		},
		{
			name:     "repeated and comma separated categories",
			query:    url.Values{"category": {"Food, Rent", "Other"}, "payment_method": {"Card"}},
			wantCats: []string{"Food", "Rent", "Other"},
			wantPay:  []string{"Card"},
		},
		{
			name:     "dates and text",
			query:    url.Values{"from": {"2024-01-31"}, "q": {"  taxi "}},
			wantFrom: "2024-01-31",
			wantText: "taxi",
		},
		{
			name:      "invalid to date",
			query:     url.Values{"to": {"31/01/2024"}},
			wantField: "date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.query)
			if tt.wantField != "" {
				var verr *core.ValidationError
				if !errors.As(err, &verr) || verr.Field != tt.wantField {
					t.Fatalf("err = %v, want validation error on %s", err, tt.wantField)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalStrings(f.Categories, tt.wantCats) {
				t.Errorf("Categories = %q, want %q", f.Categories, tt.wantCats)
			}
			if !equalStrings(f.PaymentMethods, tt.wantPay) {
				t.Errorf("PaymentMethods = %q, want %q", f.PaymentMethods, tt.wantPay)
			}
			if f.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", f.Text, tt.wantText)
			}
			if tt.wantFrom != "" && f.From.String() != tt.wantFrom {
				t.Errorf("From = %s, want %s", f.From, tt.wantFrom)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAmountField(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`"12,34"`, "12,34", false},
		{`12.5`, "12.5", false},
		{`0`, "0", false},
		{`true`, "", true},
		{`{"v":1}`, "", true},
	}
	for _, tt := range tests {
		var a amountField
		err := json.Unmarshal([]byte(tt.raw), &a)
		if (err != nil) != tt.wantErr {
			t.Errorf("Unmarshal(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && string(a) != tt.want {
			t.Errorf("Unmarshal(%s) = %q, want %q", tt.raw, a, tt.want)
		}
	}
}

func TestExpenseRequest(t *testing.T) {
	req := expenseRequest{
		Date:          "2024-02-29",
		Amount:        "7,255",
		Category:      " Food ",
		PaymentMethod: "UPI",
		Notes:         "  chai\x00 \tbreak ",
	}
	e, err := req.Expense()
	if err != nil {
		t.Fatalf("Expense() error = %v", err)
	}
	if e.Amount.Cents != 726 {
		t.Errorf("Amount = %d cents, want 726", e.Amount.Cents)
	}
	if e.Category != "Food" || !e.Date.Equal(core.NewDate(2024, 2, 29).Time) {
		t.Errorf("expense = %+v", e)
	}
	if e.Notes != "chai \tbreak" {
		t.Errorf("Notes = %q", e.Notes)
	}

	req.Amount = "0"
	if _, err := req.Expense(); !errors.Is(err, core.ErrValidation) {
		t.Errorf("zero amount error = %v, want validation error", err)
	}
}

func TestBudgetRequestPlan(t *testing.T) {
	month := core.NewMonth(2024, 5)
	tests := []struct {
		name    string
		req     budgetRequest
		want    core.BudgetPlan
		wantErr error
	}{
		{"budget only", budgetRequest{Budget: "1500"}, core.BudgetPlan{Month: month, Budget: core.Money{Cents: 150000}}, nil},
		{"budget and goal", budgetRequest{Budget: "0", SavingsGoal: "99.99"}, core.BudgetPlan{Month: month, SavingsGoal: core.Money{Cents: 9999}}, nil},
		{"negative budget", budgetRequest{Budget: "-1"}, core.BudgetPlan{}, core.ErrNegativeBudget},
		{"negative goal", budgetRequest{Budget: "1", SavingsGoal: "-1"}, core.BudgetPlan{}, core.ErrNegativeGoal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Plan(month)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("plan = %+v, want %+v", got, tt.want)
			}
		})
	}
}
