// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction represents a single movement extracted from a bank or credit
// card statement. Every parser produces transactions in this shape; the
// classifier fills in Type, Category and Subcategory before persistence.
type Transaction struct {
	Date              string          `csv:"Date" yaml:"date"`               // Date in DD/MM/YYYY format
	Description       string          `csv:"Description" yaml:"description"` // Whitespace-collapsed free text
	Amount            decimal.Decimal `csv:"Amount" yaml:"amount"`           // Signed decimal amount
	Currency          string          `csv:"Currency" yaml:"currency"`       // ARS or USD
	Owner             string          `csv:"Owner" yaml:"owner"`             // Empty until resolved
	Type              string          `csv:"Type" yaml:"type"`               // One of the Type* constants
	OriginalType      string          `csv:"OriginalType" yaml:"originalType"`
	Category          string          `csv:"Category" yaml:"category"`
	Subcategory       string          `csv:"Subcategory" yaml:"subcategory"`
	Installment       int             `csv:"Installment" yaml:"installment"`
	TotalInstallments int             `csv:"TotalInstallments" yaml:"totalInstallments"`
	IsInstallment     bool            `csv:"IsInstallment" yaml:"isInstallment"`
	PaymentMethod     string          `csv:"PaymentMethod" yaml:"paymentMethod"` // e.g. "Visa Galicia"
	Account           string          `csv:"Account" yaml:"account"`
	SourceFile        string          `csv:"SourceFile" yaml:"sourceFile"`
	IsExtraordinary   bool            `csv:"IsExtraordinary" yaml:"isExtraordinary"`
	AccrualPeriod     string          `csv:"AccrualPeriod" yaml:"accrualPeriod"`
}

// Validate checks the invariant every parsed transaction must satisfy before
// it is handed to the persistence layer: date, description, amount and
// currency are present and well formed.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("transaction has no date")
	}
	if len(strings.Split(t.Date, "/")) != 3 {
		return fmt.Errorf("transaction date %q is not in DD/MM/YYYY form", t.Date)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction has no description")
	}
	if t.Currency != CurrencyARS && t.Currency != CurrencyUSD {
		return fmt.Errorf("unsupported currency %q", t.Currency)
	}
	return nil
}

// IsExpense returns true for transactions that count against spending totals.
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeRealExpense
}

// IsIncome returns true for transactions that count toward income totals.
func (t *Transaction) IsIncome() bool {
	return t.Type == TypeRealIncome
}

// InstallmentLabel returns the "N/M" marker for financed purchases, or "".
func (t *Transaction) InstallmentLabel() string {
	if !t.IsInstallment {
		return ""
	}
	return fmt.Sprintf("%d/%d", t.Installment, t.TotalInstallments)
}
