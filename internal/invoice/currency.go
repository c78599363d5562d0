package invoice

import (
	"fmt"

	"factuur/internal/domain"
)

// currencySymbols covers the supported closed set.
var currencySymbols = map[domain.Currency]string{
	domain.CurrencyEUR: "€",
	domain.CurrencyUSD: "$",
	domain.CurrencyGBP: "£",
}

// Symbol returns the display symbol for a currency. An unsupported code is
// passed through as-is rather than rejected, so the document can still be
// produced.
func Symbol(currency domain.Currency) string {
	if s, ok := currencySymbols[currency]; ok {
		return s
	}
	return string(currency)
}

// FormatAmount formats a monetary value for display: currency symbol, a
// space, and the amount rounded to two decimal places. This is the only
// place rounding happens; stored and computed values stay unrounded.
func FormatAmount(amount float64, currency domain.Currency) string {
	return fmt.Sprintf("%s %.2f", Symbol(currency), amount)
}
