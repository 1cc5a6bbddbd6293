// Package aiparser delegates extraction to a generative model for documents
// the structural parsers cannot handle. The model is asked for strict JSON;
// every returned entry is validated before it is accepted.
package aiparser

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/parser"
	"jortiz/resumen-csv/internal/parsererror"
	"jortiz/resumen-csv/internal/textutils"
)

// Parser sends statement text to a generative model and converts the JSON
// reply into transactions.
type Parser struct {
	parser.BaseParser
	client           Client
	models           []string
	maxDocumentChars int
	defaultCurrency  string
}

// New creates an AI-assisted parser. models is the ordered fallback list;
// a model that errors out is retried on the next one, a model that answers
// with malformed JSON fails the whole document.
func New(logger logging.Logger, client Client, modelNames []string, maxDocumentChars int, defaultCurrency string) *Parser {
	return &Parser{
		BaseParser:       parser.NewBaseParser(logger),
		client:           client,
		models:           modelNames,
		maxDocumentChars: maxDocumentChars,
		defaultCurrency:  defaultCurrency,
	}
}

// aiResponse is the JSON shape the prompt demands.
type aiResponse struct {
	StatementDate string          `json:"statementDate"`
	Transactions  []aiTransaction `json:"transactions"`
}

type aiTransaction struct {
	Date              string `json:"date"`
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	Currency          string `json:"currency"`
	Owner             string `json:"owner"`
	Installment       int    `json:"installment"`
	TotalInstallments int    `json:"totalInstallments"`
}

// Parse satisfies the Parser interface with a background context; callers
// that need timeouts should use ParseContext.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	return p.ParseContext(context.Background(), r)
}

// ParseContext reads the document, queries the models in order and returns
// the validated transactions. The network call blocks; cancellation is the
// caller's responsibility through ctx.
func (p *Parser) ParseContext(ctx context.Context, r io.Reader) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, &parsererror.ValidationError{Source: "ai parser", Reason: "document is empty"}
	}
	if p.maxDocumentChars > 0 && len(text) > p.maxDocumentChars {
		p.Logger().WithField(logging.FieldCount, p.maxDocumentChars).
			Warn("Truncating document before sending to the model")
		text = text[:p.maxDocumentChars]
	}

	prompt := buildPrompt(text)

	var lastErr error
	var tried []string
	for _, model := range p.models {
		tried = append(tried, model)
		raw, err := p.client.Generate(ctx, model, prompt)
		if err != nil {
			// The model itself may be unavailable; the next one gets a chance.
			p.Logger().WithFields(
				logging.Field{Key: logging.FieldModel, Value: model},
				logging.Field{Key: logging.FieldError, Value: err.Error()},
			).Warn("Model attempt failed, trying next")
			lastErr = err
			continue
		}

		var resp aiResponse
		if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &resp); err != nil {
			// Malformed JSON is a bad answer, not an unavailable model.
			return nil, fmt.Errorf("model %s returned malformed JSON: %w", model, err)
		}
		if resp.Transactions == nil {
			// A reply without the transactions field is malformed too; a
			// present-but-empty list is a genuinely empty statement.
			return nil, fmt.Errorf("model %s returned a response without the transactions field", model)
		}

		transactions := p.convert(resp)
		p.Logger().WithFields(
			logging.Field{Key: logging.FieldModel, Value: model},
			logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		).Info("Extracted transactions with model assistance")
		return transactions, nil
	}

	return nil, &parsererror.AIResponseError{ModelsTried: tried, LastErr: lastErr}
}

// convert validates and converts each returned entry. Entries missing a
// required field are dropped, never defaulted.
func (p *Parser) convert(resp aiResponse) []models.Transaction {
	statementDate := ""
	if normalized, err := dateutils.NormalizeDate(resp.StatementDate); err == nil {
		statementDate = normalized
	}

	var out []models.Transaction
	for _, entry := range resp.Transactions {
		tx, ok := p.convertEntry(entry, statementDate)
		if !ok {
			p.Logger().WithField("description", entry.Description).
				Debug("Dropping incomplete model entry")
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (p *Parser) convertEntry(entry aiTransaction, statementDate string) (models.Transaction, bool) {
	if entry.Date == "" || entry.Description == "" || entry.Amount == "" {
		return models.Transaction{}, false
	}

	date, err := dateutils.NormalizeDate(entry.Date)
	if err != nil {
		return models.Transaction{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(entry.Amount))
	if err != nil {
		return models.Transaction{}, false
	}

	currency := strings.ToUpper(entry.Currency)
	if currency != models.CurrencyARS && currency != models.CurrencyUSD {
		currency = p.defaultCurrency
		if currency == "" {
			currency = models.CurrencyARS
		}
	}

	tx := models.Transaction{
		Date:        date,
		Description: textutils.CollapseWhitespace(entry.Description),
		Amount:      amount,
		Currency:    currency,
		Owner:       entry.Owner,
	}

	if entry.Installment >= 1 && entry.TotalInstallments >= 2 && entry.Installment <= entry.TotalInstallments {
		tx.Installment = entry.Installment
		tx.TotalInstallments = entry.TotalInstallments
		tx.IsInstallment = true
		if statementDate != "" {
			if adjusted, err := dateutils.AdjustToStatementMonth(tx.Date, statementDate); err == nil {
				tx.Date = adjusted
			}
		}
	}

	if amount.IsNegative() {
		tx.Type = models.TypeRealExpense
	}
	return tx, true
}

// buildPrompt assembles the extraction instructions. The response shape is
// spelled out so the JSON can be parsed strictly.
func buildPrompt(document string) string {
	var b strings.Builder
	b.WriteString("You are a financial statement extraction assistant.\n")
	b.WriteString("Extract every transaction from the bank or credit card statement below.\n\n")
	b.WriteString("Respond with ONLY a JSON object, no prose and no markdown fences, shaped exactly like this:\n")
	b.WriteString(`{"statementDate": "DD/MM/YYYY", "transactions": [{"date": "DD/MM/YYYY", "description": "...", "amount": "-1234.56", "currency": "ARS", "owner": "", "installment": 0, "totalInstallments": 0}]}`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- dates in DD/MM/YYYY\n")
	b.WriteString("- amount as a plain decimal string with '.' as decimal separator, negative for expenses\n")
	b.WriteString("- currency is ARS or USD\n")
	b.WriteString("- statementDate is the closing or due date of the statement, empty string if absent\n")
	b.WriteString("- for installment purchases (\"02/06\") set installment and totalInstallments, else 0\n")
	b.WriteString("- skip headers, totals, marketing text and legal boilerplate\n\n")
	b.WriteString("Statement text:\n")
	b.WriteString(document)
	return b.String()
}

// cleanModelJSON strips markdown fences and surrounding prose the model may
// wrap around the JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Keep only the outermost object when prose leaks around it.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
