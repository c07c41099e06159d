package core

import (
	"errors"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"0", 0, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("%q expected validation error, got %v", tc.in, err)
			}
		}
	}
}

func TestParseEntryAmountRejectsZero(t *testing.T) {
	if _, err := ParseEntryAmount("0.00"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for zero, got %v", err)
	}
	m, err := ParseEntryAmount("250")
	if err != nil || m.Cents != 25000 {
		t.Fatalf("expected 25000 cents, got %d (err=%v)", m.Cents, err)
	}
}

func TestMoneyConversions(t *testing.T) {
	m := Money{Cents: 12345}
	if m.String() != "123.45" {
		t.Fatalf("unexpected string %q", m.String())
	}
	if m.Float64() != 123.45 {
		t.Fatalf("unexpected float %v", m.Float64())
	}
	if got := FromFloat(123.45); got != m {
		t.Fatalf("FromFloat: got %v", got)
	}
	if got := MaxMoney(Money{Cents: 1}, Money{Cents: 2}); got.Cents != 2 {
		t.Fatalf("MaxMoney: got %v", got)
	}
}
