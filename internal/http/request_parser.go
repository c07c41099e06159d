// Package http provides HTTP server and handler implementations.
//
// This file implements utilities for parsing and validating HTTP request data:
// path values, listing filters and the JSON bodies of write requests.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"spendwise/internal/analytics"
	"spendwise/internal/core"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// invalid wraps a parse failure as a validation error on field.
func invalid(field string, err error) error {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	return &core.ValidationError{Field: field, Reason: err.Error()}
}

// ParseID reads the {id} path value.
func ParseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &core.ValidationError{Field: "id", Reason: "id must be a positive integer"}
	}
	return id, nil
}

// ParseMonth reads the {month} path value as YYYY-MM.
func ParseMonth(r *http.Request) (core.Month, error) {
	return core.ParseMonth(r.PathValue("month"))
}

// ParseFilter builds a listing filter from query parameters. category and
// payment_method may repeat or hold comma separated values.
func ParseFilter(query url.Values) (analytics.Filter, error) {
	var f analytics.Filter
	var err error
	if v := strings.TrimSpace(query.Get("from")); v != "" {
		if f.From, err = core.ParseDate(v); err != nil {
			return analytics.Filter{}, invalid("from", err)
		}
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		if f.To, err = core.ParseDate(v); err != nil {
			return analytics.Filter{}, invalid("to", err)
		}
	}
	f.Categories = listParam(query["category"])
	f.PaymentMethods = listParam(query["payment_method"])
	f.Text = strings.TrimSpace(query.Get("q"))
	return f, nil
}

func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ParseOrder reads the sort parameter.
func ParseOrder(query url.Values) (analytics.Order, error) {
	o, err := analytics.ParseOrder(query.Get("sort"))
	if err != nil {
		return analytics.Order{}, invalid("sort", err)
	}
	return o, nil
}

// decodeJSON decodes a bounded JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &core.ValidationError{Field: "body", Reason: "request body is empty"}
		}
		return &core.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// amountField accepts a decimal amount written either as a JSON string
// ("12.34", "12,34") or as a JSON number.
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a string or number")
	}
	*a = amountField(n.String())
	return nil
}

// expenseRequest is the body of expense create and update calls.
type expenseRequest struct {
	Date          string      `json:"date"`
	Amount        amountField `json:"amount"`
	Category      string      `json:"category"`
	PaymentMethod string      `json:"payment_method"`
	Notes         string      `json:"notes"`
}

// Expense converts the request into a domain expense. Entry amounts must be
// positive; taxonomy checks happen in the service.
func (req expenseRequest) Expense() (core.Expense, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Expense{}, err
	}
	amount, err := core.ParseEntryAmount(string(req.Amount))
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Date:          date,
		Amount:        amount,
		Category:      strings.TrimSpace(req.Category),
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		Notes:         sanitizeInput(req.Notes),
	}, nil
}

// budgetRequest is the body of a budget upsert.
type budgetRequest struct {
	Budget      amountField `json:"budget"`
	SavingsGoal amountField `json:"savings_goal"`
}

// Plan converts the request into the plan of month. A missing goal is zero.
func (req budgetRequest) Plan(month core.Month) (core.BudgetPlan, error) {
	budget, err := planAmount(string(req.Budget), "budget", core.ErrNegativeBudget)
	if err != nil {
		return core.BudgetPlan{}, err
	}
	var goal int64
	if strings.TrimSpace(string(req.SavingsGoal)) != "" {
		if goal, err = planAmount(string(req.SavingsGoal), "savings_goal", core.ErrNegativeGoal); err != nil {
			return core.BudgetPlan{}, err
		}
	}
	return core.BudgetPlan{
		Month:       month,
		Budget:      core.Money{Cents: budget},
		SavingsGoal: core.Money{Cents: goal},
	}, nil
}

func planAmount(raw, field string, negative error) (int64, error) {
	cents, err := core.ParseDecimalToCents(raw)
	switch {
	case errors.Is(err, core.ErrNegativeAmount):
		return 0, negative
	case err != nil:
		return 0, &core.ValidationError{Field: field, Reason: "invalid amount"}
	}
	return cents, nil
}

// settingRequest is the body of a setting write.
type settingRequest struct {
	Value string `json:"value"`
}

// sanitizeInput removes control characters other than tab and newlines and
// trims whitespace.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}
