package service_test

import (
	"testing"

	"github.com/boddenberg/northwind-bfa-go/internal/service"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.56", "USD", "$1,234.56"},
		{"-50", "USD", "-$50.00"},
		{"100", "EUR", "€100.00"},
		{"0", "USD", "$0.00"},
		{"999", "USD", "$999.00"},
		{"1000", "", "$1,000.00"},
		{"1234567.891", "USD", "$1,234,567.89"},
		{"12500.5", "usd", "$12,500.50"},
		{"42", "GBP", "£42.00"},
		{"42", "CAD", "CA$42.00"},
		{"-0.001", "USD", "$0.00"},
		{"100", "JPY", "¥100"},
		{"1234.5", "JPY", "¥1,235"},
		{"-1000", "eur", "-€1,000.00"},
		{"42", "CHF", "CHF 42.00"},
		{"42", "ZZZ", "ZZZ 42.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			got := service.FormatCurrency(decimal.RequireFromString(tt.amount), tt.currency)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatAccountType(t *testing.T) {
	tests := map[string]string{
		"CHECKING":          "Checking",
		"MONEY_MARKET":      "Money Market",
		"CD":                "CD",
		"IRA":               "IRA",
		"hsa":               "HSA",
		"BUSINESS_SAVINGS":  "Business Savings",
		"roth_ira":          "Roth IRA",
		"":                  "",
		"BUSINESS__SAVINGS": "Business  Savings",
	}
	for in, want := range tests {
		if got := service.FormatAccountType(in); got != want {
			t.Errorf("FormatAccountType(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2026-02-03":           "Feb 3",
		"2026-02-03T13:52:38Z": "Feb 3",
		"":                     "—",
		"not a date":           "not a date",
	}
	for in, want := range tests {
		if got := service.FormatDate(in); got != want {
			t.Errorf("FormatDate(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestFormatDateLong(t *testing.T) {
	tests := map[string]string{
		"2026-02-03":                "Feb 3, 2026",
		"2025-12-31T23:00:00-05:00": "Dec 31, 2025",
		"":                          "—",
	}
	for in, want := range tests {
		if got := service.FormatDateLong(in); got != want {
			t.Errorf("FormatDateLong(%q): expected %q, got %q", in, want, got)
		}
	}
}
