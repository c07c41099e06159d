package core

import "slices"

var (
	// DefaultCategories is the ordered set of allowed expense categories.
	DefaultCategories = []string{
		"Groceries",
		"Food",
		"Transport",
		"Entertainment",
		"Health",
		"Utilities",
		"Rent",
		"Other",
	}

	// DefaultPaymentMethods is the ordered set of allowed payment methods.
	DefaultPaymentMethods = []string{
		"UPI",
		"Cash",
		"Card",
		"NetBanking",
		"Bank Transfer",
	}
)

// Taxonomy is the fixed, ordered vocabulary expenses are validated against.
// Changing it is a configuration change; the engines only ever see strings.
type Taxonomy struct {
	Categories     []string
	PaymentMethods []string
}

// DefaultTaxonomy returns a copy of the built-in categories and payment methods.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Categories:     slices.Clone(DefaultCategories),
		PaymentMethods: slices.Clone(DefaultPaymentMethods),
	}
}

func (t Taxonomy) HasCategory(c string) bool {
	return slices.Contains(t.Categories, c)
}

func (t Taxonomy) HasPaymentMethod(p string) bool {
	return slices.Contains(t.PaymentMethods, p)
}

// ValidateExpense applies the repository boundary rules to e.
// Zero amounts pass here; rejecting them is an entry-form concern.
func (t Taxonomy) ValidateExpense(e Expense) error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	if !t.HasCategory(e.Category) {
		return ErrUnknownCategory
	}
	if !t.HasPaymentMethod(e.PaymentMethod) {
		return ErrUnknownPaymentMethod
	}
	return nil
}
