package models

import "github.com/shopspring/decimal"

// RecurringExpense is a candidate produced by the recurrence detector from a
// stored transaction history. Confidence is derived at detection time and is
// not re-computed unless detection runs again.
type RecurringExpense struct {
	Name                 string          `csv:"Name" yaml:"name"`
	Amount               decimal.Decimal `csv:"Amount" yaml:"amount"`
	Currency             string          `csv:"Currency" yaml:"currency"`
	Frequency            string          `csv:"Frequency" yaml:"frequency"` // One of the Frequency* constants
	LastOccurrence       string          `csv:"LastOccurrence" yaml:"lastOccurrence"`
	NextOccurrence       string          `csv:"NextOccurrence" yaml:"nextOccurrence"`
	Confidence           int             `csv:"Confidence" yaml:"confidence"` // 0-100
	LinkedTransactionIDs []string        `csv:"-" yaml:"linkedTransactionIds"`
	Active               bool            `csv:"Active" yaml:"active"`
}
