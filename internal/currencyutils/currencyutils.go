// Package currencyutils provides amount parsing and currency detection for
// locale-ambiguous statement text.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"jortiz/resumen-csv/internal/models"
)

// ParseAmount parses an amount token where `.` and `,` may each act as
// thousands or decimal separator. Disambiguation: when both appear, the one
// that appears last is the decimal separator; a lone comma followed by
// exactly two trailing digits is decimal, otherwise thousands. A malformed
// token yields an error and the caller must skip the transaction.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("empty amount token %q", amountStr)
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount rewrites an amount token into a form decimal can parse:
// thousands separators stripped, decimal separator as a dot.
func StandardizeAmount(amountStr string) string {
	s := strings.TrimSpace(amountStr)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "$", "")

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ".") < strings.LastIndex(s, ",") {
			// 1.234,56: dot is thousands, comma is decimal
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234.56: comma is thousands
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts[len(parts)-1]) == 2 {
			// 1234,56: comma is decimal
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// 1,234: comma is thousands
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	return s
}

// DetectCurrency returns USD when the text carries a dollar marker, otherwise
// the provided default. Argentinian statements write dollars as "USD" or
// "U$S".
func DetectCurrency(text, defaultCurrency string) string {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "U$S") || strings.Contains(upper, "USD") {
		return models.CurrencyUSD
	}
	if defaultCurrency == "" {
		return models.CurrencyARS
	}
	return defaultCurrency
}

// FormatAmount formats a decimal amount with its currency code for display,
// e.g. "ARS 1234.56".
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = models.CurrencyARS
	}
	return fmt.Sprintf("%s %s", currency, amount.StringFixed(2))
}
