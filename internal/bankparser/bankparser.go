// Package bankparser extracts transactions from bank account statement text.
// Each statement line carries a date, a free-text description and an amount;
// lines missing either token are skipped.
package bankparser

import (
	"io"
	"strings"

	"jortiz/resumen-csv/internal/currencyutils"
	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/parser"
	"jortiz/resumen-csv/internal/parsererror"
	"jortiz/resumen-csv/internal/textutils"
)

// Parser is the line-oriented bank statement parser.
type Parser struct {
	parser.BaseParser
	cardMappings    models.CardMappings
	defaultCurrency string
}

// New creates a bank statement parser. cardMappings resolves owners from
// card-number fragments embedded in descriptions; defaultCurrency applies to
// lines without an explicit currency marker.
func New(logger logging.Logger, cardMappings models.CardMappings, defaultCurrency string) *Parser {
	return &Parser{
		BaseParser:      parser.NewBaseParser(logger),
		cardMappings:    cardMappings,
		defaultCurrency: defaultCurrency,
	}
}

// Parse reads the statement text and returns one transaction per parseable
// line, in document order.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	lines, err := p.ReadLines(r)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	for i, line := range lines {
		tx, ok := p.parseLine(line)
		if !ok {
			continue
		}
		p.Logger().WithFields(
			logging.Field{Key: logging.FieldLine, Value: i + 1},
			logging.Field{Key: "date", Value: tx.Date},
		).Debug("Parsed bank statement line")
		transactions = append(transactions, tx)
	}

	p.Logger().WithField(logging.FieldCount, len(transactions)).
		Info("Extracted transactions from bank statement")
	return transactions, nil
}

// parseLine extracts a single transaction from one statement line. A line
// with a date but no amount, or vice versa, is not an error; it is skipped.
func (p *Parser) parseLine(line string) (models.Transaction, bool) {
	dateToken, dateLoc, ok := textutils.FindDate(line)
	if !ok {
		return models.Transaction{}, false
	}

	// Search for the amount after the date so day/month fragments are never
	// mistaken for amounts.
	rest := line[dateLoc[1]:]
	amountToken, amountLoc, ok := textutils.FindAmount(rest)
	if !ok {
		return models.Transaction{}, false
	}
	amountSpan := []int{dateLoc[1] + amountLoc[0], dateLoc[1] + amountLoc[1]}

	date, err := dateutils.NormalizeDate(dateToken)
	if err != nil {
		p.Logger().WithError(&parsererror.ParseError{
			Parser: "bank statement", Field: "date", Value: dateToken, Err: err,
		}).Debug("Skipping line with unparsable date")
		return models.Transaction{}, false
	}

	amount, err := currencyutils.ParseAmount(amountToken)
	if err != nil {
		p.Logger().WithError(&parsererror.ParseError{
			Parser: "bank statement", Field: "amount", Value: amountToken, Err: err,
		}).Debug("Skipping line with unparsable amount")
		return models.Transaction{}, false
	}

	description := textutils.RemoveSpans(line, dateLoc, amountSpan)
	if description == "" {
		return models.Transaction{}, false
	}

	tx := models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Currency:    currencyutils.DetectCurrency(line, p.defaultCurrency),
	}

	// Card-number fragments identify the owner, and a card payment from the
	// bank side is a movement between the user's own products.
	if owner := p.cardMappings.OwnerFor(description); owner != "" {
		tx.Owner = owner
		lower := strings.ToLower(description)
		if strings.Contains(lower, "pago") && strings.Contains(lower, "tarjeta") {
			tx.Type = models.TypeInternalTransfer
			tx.Category = models.CategoryTransfers
			tx.Subcategory = models.CategoryCardPayment
		}
	}

	return tx, true
}
