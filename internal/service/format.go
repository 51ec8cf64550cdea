package service

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// noDate is shown in place of a missing date.
const noDate = "—"

// accountTypeAcronyms stay uppercase in FormatAccountType.
var accountTypeAcronyms = map[string]bool{"CD": true, "IRA": true, "HSA": true}

// usPrinter formats amounts the way a US English browser does.
var usPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders amount in en-US style, e.g. "$1,234.56", "-$50.00",
// "¥100" or "CA$42.00". Symbols and decimal places follow CLDR for the
// currency; alphabetic symbols are separated by a space ("CHF 42.00").
// Codes that are not ISO 4217 are shown as the code with two decimals.
// An empty currency means USD.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}

	symbol, scale := code, 2
	if unit, err := xcurrency.ParseISO(code); err == nil {
		symbol = usPrinter.Sprint(xcurrency.Symbol(unit))
		scale, _ = xcurrency.Standard.Rounding(unit)
	}
	if r, _ := utf8.DecodeLastRuneInString(symbol); unicode.IsLetter(r) {
		symbol += " "
	}

	rounded := amount.Round(int32(scale))
	digits := usPrinter.Sprint(number.Decimal(rounded.Abs().InexactFloat64(), number.Scale(scale)))

	if rounded.IsNegative() {
		return "-" + symbol + digits
	}
	return symbol + digits
}

// FormatAccountType turns "MONEY_MARKET" into "Money Market". Known acronyms
// such as CD and IRA are kept uppercase.
func FormatAccountType(accountType string) string {
	words := strings.Split(strings.ToUpper(accountType), "_")
	for i, w := range words {
		if accountTypeAcronyms[w] || w == "" {
			continue
		}
		words[i] = w[:1] + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// FormatDate renders a date or RFC 3339 timestamp as "Feb 3".
// Unparsable input is returned as is.
func FormatDate(s string) string {
	return formatDate(s, "Jan 2")
}

// FormatDateLong renders a date or RFC 3339 timestamp as "Feb 3, 2026".
func FormatDateLong(s string) string {
	return formatDate(s, "Jan 2, 2006")
}

func formatDate(s, layout string) string {
	if s == "" {
		return noDate
	}
	t, err := parseDate(s)
	if err != nil {
		return s
	}
	return t.Format(layout)
}

// parseDate accepts "2006-01-02" and RFC 3339 timestamps. A bare date is
// taken as a calendar day, never shifted by time zone.
func parseDate(s string) (time.Time, error) {
	if strings.Contains(s, "T") {
		return time.Parse(time.RFC3339, s)
	}
	return time.Parse(time.DateOnly, s)
}
