// Package tabularparser extracts transactions from CSV exports. Exports come
// from many tools, so the column layout is discovered from the header row:
// known header tokens are matched case-insensitively in Spanish or English,
// in any order.
package tabularparser

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"jortiz/resumen-csv/internal/currencyutils"
	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/parser"
	"jortiz/resumen-csv/internal/parsererror"
)

// Parser is the header-driven CSV export parser.
type Parser struct {
	parser.BaseParser
	defaultCurrency string
}

// New creates a tabular export parser.
func New(logger logging.Logger, defaultCurrency string) *Parser {
	return &Parser{
		BaseParser:      parser.NewBaseParser(logger),
		defaultCurrency: defaultCurrency,
	}
}

// headerTokens maps logical columns to the header names they may appear
// under. Matching is case-insensitive and accent-insensitive for the common
// Spanish spellings.
var headerTokens = map[string][]string{
	"date":        {"date", "fecha"},
	"description": {"description", "descripcion", "descripción", "detalle", "concepto"},
	"amount":      {"amount", "monto", "importe"},
	"currency":    {"currency", "moneda"},
	"type":        {"type", "tipo"},
	"category":    {"category", "categoria", "categoría", "rubro"},
	"subcategory": {"subcategory", "subcategoria", "subcategoría"},
	"owner":       {"owner", "titular", "dueño", "dueno"},
	"account":     {"account", "cuenta"},
}

// Parse reads the export and returns one transaction per valid data row.
// Rows with an unparsable date or amount are logged and skipped.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.FieldsPerRecord = -1 // exports are ragged more often than not
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			Source:         "tabular export",
			ExpectedFormat: "CSV",
			Msg:            err.Error(),
		}
	}

	headerIdx, columns := findHeader(records)
	if columns == nil {
		return nil, &parsererror.InvalidFormatError{
			Source:         "tabular export",
			ExpectedFormat: "CSV with date and amount columns",
			Msg:            "no recognizable header row found",
		}
	}

	var transactions []models.Transaction
	for i, record := range records[headerIdx+1:] {
		tx, ok := p.parseRow(record, columns)
		if !ok {
			p.Logger().WithField(logging.FieldLine, headerIdx+2+i).
				Warn("Skipping unparsable export row")
			continue
		}
		transactions = append(transactions, tx)
	}

	p.Logger().WithField(logging.FieldCount, len(transactions)).
		Info("Extracted transactions from tabular export")
	return transactions, nil
}

// sniffDelimiter picks the delimiter that splits the first line into the
// most fields.
func sniffDelimiter(text string) rune {
	firstLine := text
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		firstLine = text[:idx]
	}
	best, bestCount := ',', strings.Count(firstLine, ",")
	for _, cand := range []rune{';', '\t'} {
		if c := strings.Count(firstLine, string(cand)); c > bestCount {
			best, bestCount = cand, c
		}
	}
	return best
}

// findHeader locates the first row that names at least a date and an amount
// column, and returns the logical-column-to-index mapping.
func findHeader(records [][]string) (int, map[string]int) {
	for i, record := range records {
		columns := make(map[string]int)
		for idx, cell := range record {
			name := strings.ToLower(strings.TrimSpace(cell))
			for logical, tokens := range headerTokens {
				if _, taken := columns[logical]; taken {
					continue
				}
				for _, token := range tokens {
					if name == token {
						columns[logical] = idx
						break
					}
				}
			}
		}
		if _, hasDate := columns["date"]; hasDate {
			if _, hasAmount := columns["amount"]; hasAmount {
				return i, columns
			}
		}
	}
	return 0, nil
}

func cellAt(record []string, columns map[string]int, logical string) string {
	idx, ok := columns[logical]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseRow converts one data row. The optional type column wins over the
// amount sign when deciding the transaction type.
func (p *Parser) parseRow(record []string, columns map[string]int) (models.Transaction, bool) {
	dateCell := cellAt(record, columns, "date")
	amountCell := cellAt(record, columns, "amount")
	if dateCell == "" || amountCell == "" {
		return models.Transaction{}, false
	}

	date, err := dateutils.NormalizeDate(dateCell)
	if err != nil {
		// Exports from other tools commonly use ISO dates.
		t, isoErr := time.Parse("2006-01-02", dateCell)
		if isoErr != nil {
			return models.Transaction{}, false
		}
		date = t.Format(dateutils.DateLayoutStatement)
	}

	amount, err := currencyutils.ParseAmount(amountCell)
	if err != nil {
		return models.Transaction{}, false
	}

	currency := strings.ToUpper(cellAt(record, columns, "currency"))
	if currency != models.CurrencyARS && currency != models.CurrencyUSD {
		currency = p.defaultCurrency
		if currency == "" {
			currency = models.CurrencyARS
		}
	}

	tx := models.Transaction{
		Date:        date,
		Description: cellAt(record, columns, "description"),
		Amount:      amount,
		Currency:    currency,
		Owner:       cellAt(record, columns, "owner"),
		Account:     cellAt(record, columns, "account"),
		Category:    cellAt(record, columns, "category"),
		Subcategory: cellAt(record, columns, "subcategory"),
		Type:        normalizeType(cellAt(record, columns, "type"), amount),
	}
	if tx.Description == "" {
		return models.Transaction{}, false
	}
	return tx, true
}

// normalizeType maps a type cell in either language to the canonical tags;
// without a type column the amount sign decides.
func normalizeType(raw string, amount interface{ IsPositive() bool }) string {
	switch strings.ToLower(raw) {
	case "ingreso", "income", "real_income":
		return models.TypeRealIncome
	case "gasto", "expense", "real_expense", "egreso":
		return models.TypeRealExpense
	case "transferencia", "transfer", "internal_transfer":
		return models.TypeInternalTransfer
	case "excluido", "excluded":
		return models.TypeExcluded
	case "pago", "payment":
		return models.TypePayment
	}
	if amount.IsPositive() {
		return models.TypeRealIncome
	}
	return models.TypeRealExpense
}
