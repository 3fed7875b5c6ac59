// Package currency provides standardized currency handling for tracked
// prices. All monetary amounts are decimal.Decimal to avoid floating-point
// errors; tracked retail prices are two-decimal USD unless an item says
// otherwise.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency represents an ISO 4217 currency code.
type Currency string

// Supported currencies for tracked items.
const (
	USD Currency = "USD" // US Dollar
	CAD Currency = "CAD" // Canadian Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency when an item does not specify one.
const DefaultCurrency = USD

// CurrencyInfo contains metadata about a currency.
type CurrencyInfo struct {
	Code          Currency
	Symbol        string
	DecimalPlaces int
	SymbolBefore  bool
}

var currencies = map[Currency]CurrencyInfo{
	USD: {Code: USD, Symbol: "$", DecimalPlaces: 2, SymbolBefore: true},
	CAD: {Code: CAD, Symbol: "$", DecimalPlaces: 2, SymbolBefore: true},
	EUR: {Code: EUR, Symbol: "€", DecimalPlaces: 2, SymbolBefore: false},
	GBP: {Code: GBP, Symbol: "£", DecimalPlaces: 2, SymbolBefore: true},
}

// IsValid checks if a currency code is supported.
func IsValid(code string) bool {
	_, ok := currencies[Currency(code)]
	return ok
}

// Format renders an amount with its currency symbol and thousands grouping,
// e.g. Format(decimal 1234.5, USD) -> "$1,234.50".
func Format(amount decimal.Decimal, code Currency) string {
	info, ok := currencies[code]
	if !ok {
		info = currencies[DefaultCurrency]
	}

	fixed := amount.StringFixed(int32(info.DecimalPlaces))

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	whole, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		whole, frac = fixed[:i], fixed[i:]
	}
	grouped := groupThousands(whole)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	if info.SymbolBefore {
		b.WriteString(info.Symbol)
		b.WriteString(grouped)
		b.WriteString(frac)
	} else {
		b.WriteString(grouped)
		b.WriteString(frac)
		b.WriteString(info.Symbol)
	}
	return b.String()
}

// FormatUSD renders a two-decimal USD amount, e.g. "$79.99".
func FormatUSD(amount decimal.Decimal) string {
	return Format(amount, USD)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	pre := n % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
