// Package classifier assigns a transaction type and category to raw parsed
// transactions. User-defined rules are evaluated first; built-in heuristics
// follow in a fixed priority order. Classification is a pure function: the
// same input always produces the same result.
package classifier

import (
	"strings"

	"github.com/shopspring/decimal"

	"jortiz/resumen-csv/internal/models"
)

// Input is the raw tuple the engine classifies.
type Input struct {
	Description string
	Amount      decimal.Decimal
	Owner       string
	Account     string
}

// Result is the classification outcome.
type Result struct {
	Type        string
	Category    string
	Subcategory string
}

// Classify resolves the transaction type and category for the given input.
// Priority order, first match wins: user rules, exclusion heuristics,
// internal-transfer heuristics, income heuristics, keyword table, default.
func Classify(in Input, rules []models.CategorizationRule) Result {
	if res, ok := applyRules(in, rules); ok {
		return res
	}
	if res, ok := applyExclusions(in); ok {
		return res
	}
	if res, ok := applyTransferHeuristics(in); ok {
		return res
	}
	if res, ok := applyIncomeHeuristics(in); ok {
		return res
	}
	return applyKeywordTable(in)
}

// ClassifyTransaction classifies t in place, preserving any type the parser
// already derived structurally (payments and transfers detected during
// extraction keep their tag; only the category is filled in).
func ClassifyTransaction(t *models.Transaction, rules []models.CategorizationRule) {
	res := Classify(Input{
		Description: t.Description,
		Amount:      t.Amount,
		Owner:       t.Owner,
		Account:     t.Account,
	}, rules)

	if t.Type == "" || t.Type == models.TypeRealExpense {
		t.Type = res.Type
	}
	if t.Category == "" {
		t.Category = res.Category
		t.Subcategory = res.Subcategory
	}
}

// typeForCategory derives the transaction type implied by a rule-assigned
// category; categories without transfer or exclusion semantics fall back to
// the amount sign.
func typeForCategory(category string, amount decimal.Decimal) string {
	switch category {
	case models.CategoryTransfers, models.CategoryCardPayment, models.CategoryWithdrawals:
		return models.TypeInternalTransfer
	case models.CategorySalary:
		return models.TypeRealIncome
	}
	if amount.IsPositive() {
		return models.TypeRealIncome
	}
	return models.TypeRealExpense
}

func lowerDescription(in Input) string {
	return strings.ToLower(in.Description)
}
