// Package cardparser extracts transactions from credit card statement text.
//
// Card statements concatenate one consumption block per card: the block's
// lines come first and the owner is only revealed by the block's closing
// footer ("Total Consumos de NAME"). The parser therefore accumulates
// owner-pending transactions in a local buffer and stamps them when the
// footer appears. Installment purchases are re-dated to the statement's
// billing month, preserving the original day of month.
package cardparser

import (
	"io"

	"jortiz/resumen-csv/internal/currencyutils"
	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/parser"
	"jortiz/resumen-csv/internal/parsererror"
	"jortiz/resumen-csv/internal/textutils"
)

// Parser is the credit card statement parser.
type Parser struct {
	parser.BaseParser
	cardMappings    models.CardMappings
	primaryHolder   string
	defaultCurrency string
}

// New creates a credit card statement parser. primaryHolder is the owner
// assumed for a trailing block that ends without a footer; when empty those
// transactions keep an unresolved owner for manual assignment.
func New(logger logging.Logger, cardMappings models.CardMappings, primaryHolder, defaultCurrency string) *Parser {
	return &Parser{
		BaseParser:      parser.NewBaseParser(logger),
		cardMappings:    cardMappings,
		primaryHolder:   primaryHolder,
		defaultCurrency: defaultCurrency,
	}
}

// blockState is the accumulator threaded through the line fold: the output
// so far, the owner-pending buffer, and the owner currently in effect.
type blockState struct {
	out          []models.Transaction
	buffer       []models.Transaction
	currentOwner string
}

// Parse reads the whole statement and returns transactions in document
// order. Lines that are not consumption entries, footers or card markers are
// ignored.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	lines, err := p.ReadLines(r)
	if err != nil {
		return nil, err
	}

	statementDate := p.findStatementDate(lines)
	if statementDate == "" {
		// Without the closing or due date, installments keep their original
		// purchase dates and undated payment lines are skipped.
		p.Logger().WithError(&parsererror.DataExtractionError{
			Source:    "credit card statement",
			FieldName: "statement_date",
			Reason:    "no Cierre or Vencimiento date found",
		}).Warn("Statement date not found")
	}
	paymentMethod := detectPaymentMethod(lines)

	state := blockState{}
	for _, line := range lines {
		state = p.processLine(state, line, statementDate)
	}

	// A trailing block without a footer is flushed best-effort: with the
	// configured primary holder when set, otherwise with owner unresolved.
	for i := range state.buffer {
		if state.buffer[i].Owner == "" && p.primaryHolder != "" {
			state.buffer[i].Owner = p.primaryHolder
		}
	}
	state.out = append(state.out, state.buffer...)

	for i := range state.out {
		state.out[i].PaymentMethod = paymentMethod
	}

	p.Logger().WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(state.out)},
		logging.Field{Key: "statement_date", Value: statementDate},
	).Info("Extracted transactions from credit card statement")
	return state.out, nil
}

// processLine advances the fold by one line.
func (p *Parser) processLine(state blockState, line string, statementDate string) blockState {
	if owner, ok := p.matchOwnerFooter(line); ok {
		// The footer closes the current block: stamp and flush everything
		// buffered, then forget the owner. Lines after the footer belong to
		// the next card block until its own footer appears.
		for i := range state.buffer {
			if state.buffer[i].Owner == "" {
				state.buffer[i].Owner = owner
			}
		}
		state.out = append(state.out, state.buffer...)
		state.buffer = nil
		state.currentOwner = ""
		p.Logger().WithField(logging.FieldOwner, owner).Debug("Resolved card block owner from footer")
		return state
	}

	if owner, ok := p.matchCardMarker(line); ok {
		// An explicit card number shifts the owner boundary: anything still
		// buffered belongs to an earlier block and is flushed as-is.
		state.out = append(state.out, state.buffer...)
		state.buffer = nil
		state.currentOwner = owner
		p.Logger().WithField(logging.FieldOwner, owner).Debug("Resolved card block owner from card marker")
		return state
	}

	for _, tx := range p.parseConsumptions(line, statementDate) {
		if state.currentOwner != "" {
			tx.Owner = state.currentOwner
			state.out = append(state.out, tx)
		} else {
			state.buffer = append(state.buffer, tx)
		}
	}
	return state
}

// parseConsumptions extracts every date+amount pair from one line. Card
// statements frequently place two consumption columns side by side, so a
// single line may carry several entries.
func (p *Parser) parseConsumptions(line string, statementDate string) []models.Transaction {
	if tx, ok := p.parsePaymentLine(line, statementDate); ok {
		return []models.Transaction{tx}
	}

	var out []models.Transaction
	remaining := line
	for {
		dateToken, dateLoc, ok := textutils.FindDate(remaining)
		if !ok {
			break
		}
		rest := remaining[dateLoc[1]:]
		amountToken, amountLoc, ok := textutils.FindAmount(rest)
		if !ok {
			break
		}

		description := rest[:amountLoc[0]]
		next := rest[amountLoc[1]:]

		if tx, ok := p.buildConsumption(dateToken, description, amountToken, line, statementDate); ok {
			out = append(out, tx)
		}
		remaining = next
	}
	return out
}

// buildConsumption assembles one consumption entry; a bad date or amount
// skips the entry, never the document.
func (p *Parser) buildConsumption(dateToken, description, amountToken, line, statementDate string) (models.Transaction, bool) {
	date, err := dateutils.NormalizeDate(dateToken)
	if err != nil {
		p.Logger().WithError(&parsererror.ParseError{
			Parser: "credit card statement", Field: "date", Value: dateToken, Err: err,
		}).Debug("Skipping consumption with unparsable date")
		return models.Transaction{}, false
	}

	amount, err := currencyutils.ParseAmount(amountToken)
	if err != nil {
		p.Logger().WithError(&parsererror.ParseError{
			Parser: "credit card statement", Field: "amount", Value: amountToken, Err: err,
		}).Debug("Skipping consumption with unparsable amount")
		return models.Transaction{}, false
	}

	tx := models.Transaction{
		Description: textutils.CollapseWhitespace(description),
		Currency:    currencyutils.DetectCurrency(line, p.defaultCurrency),
	}

	if n, total, rest, ok := textutils.ExtractInstallment(tx.Description); ok {
		tx.Installment = n
		tx.TotalInstallments = total
		tx.IsInstallment = true
		tx.Description = rest
		if statementDate != "" {
			if adjusted, err := dateutils.AdjustToStatementMonth(date, statementDate); err == nil {
				date = adjusted
			}
		}
	}
	tx.Date = date

	if tx.Description == "" {
		return models.Transaction{}, false
	}

	// Consumptions are expenses; the amount column is unsigned.
	tx.Amount = amount.Abs().Neg()
	tx.Type = models.TypeRealExpense

	return tx, true
}
