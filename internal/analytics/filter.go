// Package analytics turns a collection of expenses into filtered views,
// grouped summaries and time-bucketed trends. Every function here is pure:
// callers load the full collection from the store and pass it in.
package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"spendwise/internal/core"
)

// Filter selects expenses. Zero-valued fields do not constrain the result.
type Filter struct {
	From           core.Date // inclusive, zero = unbounded
	To             core.Date // inclusive, zero = unbounded
	Categories     []string
	PaymentMethods []string
	Text           string // case-insensitive substring of Notes
}

// IsEmpty reports whether the filter lets every expense through.
func (f Filter) IsEmpty() bool {
	return f.From.IsZero() && f.To.IsZero() && len(f.Categories) == 0 &&
		len(f.PaymentMethods) == 0 && f.Text == ""
}

// Matches reports whether e satisfies every active predicate.
func (f Filter) Matches(e core.Expense) bool {
	if !f.From.IsZero() && e.Date.Before(f.From.Time) {
		return false
	}
	if !f.To.IsZero() && e.Date.After(f.To.Time) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, e.Category) {
		return false
	}
	if len(f.PaymentMethods) > 0 && !slices.Contains(f.PaymentMethods, e.PaymentMethod) {
		return false
	}
	if f.Text != "" && !containsIgnoreCase(e.Notes, f.Text) {
		return false
	}
	return true
}

// Apply returns a fresh slice with the expenses matching f, in input order.
func Apply(expenses []core.Expense, f Filter) []core.Expense {
	result := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			result = append(result, e)
		}
	}
	return result
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// SortKey is the field an expense listing is ordered by.
type SortKey string

const (
	SortByDate   SortKey = "date"
	SortByAmount SortKey = "amount"
)

// Order is a sort key plus direction.
type Order struct {
	Key       SortKey
	Ascending bool
}

// Preset orders offered by the listing screens.
var (
	NewestFirst  = Order{Key: SortByDate, Ascending: false}
	OldestFirst  = Order{Key: SortByDate, Ascending: true}
	HighestFirst = Order{Key: SortByAmount, Ascending: false}
	LowestFirst  = Order{Key: SortByAmount, Ascending: true}
)

// ParseOrder accepts "date", "amount" with an optional "-asc"/"-desc" suffix.
// A bare key sorts descending, matching the listing default of newest first.
func ParseOrder(s string) (Order, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NewestFirst, nil
	}
	key, dir, _ := strings.Cut(s, "-")
	var o Order
	switch SortKey(key) {
	case SortByDate, SortByAmount:
		o.Key = SortKey(key)
	default:
		return Order{}, fmt.Errorf("unknown sort key %q", key)
	}
	switch dir {
	case "", "desc":
	case "asc":
		o.Ascending = true
	default:
		return Order{}, fmt.Errorf("unknown sort direction %q", dir)
	}
	return o, nil
}

func (o Order) String() string {
	if o.Ascending {
		return string(o.Key) + "-asc"
	}
	return string(o.Key) + "-desc"
}

// Sort returns a stably ordered copy of expenses. Equal keys keep their input order
// in both directions.
func Sort(expenses []core.Expense, o Order) []core.Expense {
	result := slices.Clone(expenses)
	if result == nil {
		result = []core.Expense{}
	}
	slices.SortStableFunc(result, func(a, b core.Expense) int {
		c := compareBy(a, b, o.Key)
		if !o.Ascending {
			c = -c
		}
		return c
	})
	return result
}

func compareBy(a, b core.Expense, key SortKey) int {
	switch key {
	case SortByAmount:
		return cmp.Compare(a.Amount.Cents, b.Amount.Cents)
	default:
		return a.Date.Compare(b.Date.Time)
	}
}

// Query filters first and then sorts.
func Query(expenses []core.Expense, f Filter, o Order) []core.Expense {
	return Sort(Apply(expenses, f), o)
}
