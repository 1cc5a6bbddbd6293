package cardparser

import (
	"regexp"
	"strings"

	"jortiz/resumen-csv/internal/currencyutils"
	"jortiz/resumen-csv/internal/dateutils"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/textutils"
)

var (
	// "Total Consumos de JUAN PEREZ   123.456,78"
	ownerFooterPattern = regexp.MustCompile(`(?i)total\s+consumos\s+de\s+([a-záéíóúñü .]+)`)

	// Card number markers: full or masked PANs and "Tarjeta terminada en 1234".
	cardNumberPattern = regexp.MustCompile(`(?:\d{4}|[X*]{4})[\s-](?:\d{4}|[X*]{4})[\s-](?:\d{4}|[X*]{4})[\s-](\d{4})`)
	cardSuffixPattern = regexp.MustCompile(`(?i)tarjeta\s+(?:nro\.?\s+)?(?:terminada\s+en\s+)?(\d{4})\b`)

	// Statement header lines carrying the closing and due dates.
	closingPattern = regexp.MustCompile(`(?i)cierre`)
	duePattern     = regexp.MustCompile(`(?i)vencimiento`)
)

// paymentKeywords identify statement items that are payments or carried-over
// balances rather than consumptions. They are excluded from expense totals
// but keep an original type of payment so they can be restored.
var paymentKeywords = []string{
	"SU PAGO",
	"PAGO EN PESOS",
	"PAGO EN DOLARES",
	"SALDO ANTERIOR",
	"SALDO PENDIENTE",
}

// Bank and brand keyword tables for statement metadata detection.
var bankKeywords = []string{"Galicia", "Santander", "BBVA", "Macro", "Nacion", "Provincia", "HSBC", "ICBC", "Patagonia"}
var brandKeywords = []string{"Visa", "Mastercard", "American Express", "Amex"}

// findStatementDate pre-scans the whole document for the closing/due date
// header. The closing date wins when both appear; its month and year anchor
// installment dates.
func (p *Parser) findStatementDate(lines []string) string {
	var closing, due string
	for _, line := range lines {
		token, _, ok := textutils.FindDate(line)
		if !ok {
			continue
		}
		date, err := dateutils.NormalizeDate(token)
		if err != nil {
			continue
		}
		if closing == "" && closingPattern.MatchString(line) {
			closing = date
		}
		if due == "" && duePattern.MatchString(line) {
			due = date
		}
	}
	if closing != "" {
		return closing
	}
	return due
}

// matchOwnerFooter recognizes the "Total Consumos de NAME" block footer. The
// card mapping wins over the footer's name when a known last-4 fragment is
// present on the same line.
func (p *Parser) matchOwnerFooter(line string) (string, bool) {
	m := ownerFooterPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if owner := p.cardMappings.OwnerFor(line); owner != "" {
		return owner, true
	}
	name := strings.TrimRight(strings.TrimSpace(m[1]), ". ")
	if name == "" {
		return "", false
	}
	return textutils.TitleCaseName(name), true
}

// matchCardMarker recognizes an explicit card-number line whose last 4
// digits appear in the user's card mappings.
func (p *Parser) matchCardMarker(line string) (string, bool) {
	var last4 string
	if m := cardNumberPattern.FindStringSubmatch(line); m != nil {
		last4 = m[1]
	} else if m := cardSuffixPattern.FindStringSubmatch(line); m != nil {
		last4 = m[1]
	}
	if last4 == "" {
		return "", false
	}
	owner := p.cardMappings.OwnerForExact(last4)
	return owner, owner != ""
}

// parsePaymentLine handles payment and balance items, which may carry no
// date of their own; the statement date stands in when the line has none.
func (p *Parser) parsePaymentLine(line, statementDate string) (models.Transaction, bool) {
	upper := strings.ToUpper(line)
	var matched string
	for _, kw := range paymentKeywords {
		if strings.Contains(upper, kw) {
			matched = kw
			break
		}
	}
	if matched == "" {
		return models.Transaction{}, false
	}

	amountToken, amountLoc, ok := textutils.FindLastAmount(line)
	if !ok {
		return models.Transaction{}, false
	}
	amount, err := currencyutils.ParseAmount(amountToken)
	if err != nil {
		return models.Transaction{}, false
	}

	date := statementDate
	var dateLoc []int
	if token, loc, ok := textutils.FindDate(line); ok {
		if normalized, err := dateutils.NormalizeDate(token); err == nil {
			date = normalized
			dateLoc = loc
		}
	}
	if date == "" {
		p.Logger().Debug("Skipping payment line with no resolvable date")
		return models.Transaction{}, false
	}

	description := textutils.RemoveSpans(line, dateLoc, amountLoc)
	if description == "" {
		description = textutils.TitleCaseName(matched)
	}

	return models.Transaction{
		Date:         date,
		Description:  description,
		Amount:       amount.Abs(),
		Currency:     currencyutils.DetectCurrency(line, p.defaultCurrency),
		Type:         models.TypeExcluded,
		OriginalType: models.TypePayment,
	}, true
}

// detectPaymentMethod scans the whole document for brand and bank keywords
// and renders them as "<brand> <bank>" ("Visa Galicia").
func detectPaymentMethod(lines []string) string {
	doc := strings.ToLower(strings.Join(lines, "\n"))

	var brand, bank string
	for _, b := range brandKeywords {
		if strings.Contains(doc, strings.ToLower(b)) {
			brand = b
			break
		}
	}
	for _, b := range bankKeywords {
		if strings.Contains(doc, strings.ToLower(b)) {
			bank = b
			break
		}
	}

	switch {
	case brand != "" && bank != "":
		return brand + " " + bank
	case brand != "":
		return brand
	case bank != "":
		return bank
	default:
		return ""
	}
}
