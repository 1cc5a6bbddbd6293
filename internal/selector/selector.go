// Package selector decides which parser handles a document.
package selector

import (
	"strings"

	"jortiz/resumen-csv/internal/models"
)

// Kind names a parser implementation.
type Kind string

const (
	KindBank    Kind = "banco"
	KindCard    Kind = "tarjeta"
	KindTabular Kind = "tabular"
	KindAI      Kind = "ai"
)

// Options carries the caller's explicit choices.
type Options struct {
	// Method forces a parser regardless of heuristics: "ai" or "tabular".
	Method string
}

// cardFilenameKeywords identify a credit card statement from its filename.
var cardFilenameKeywords = []string{"tarjeta", "visa", "mastercard", "amex", "american express"}

// cardContentKeywords identify a credit card statement from its text.
var cardContentKeywords = []string{
	"limite de compra",
	"límite de compra",
	"total consumos de",
	"pago minimo",
	"pago mínimo",
	"consumos del periodo",
}

// tabularFilenameSuffixes identify spreadsheet exports.
var tabularFilenameSuffixes = []string{".csv", ".tsv"}

// Detect picks the parser kind for a document. It is deterministic and
// total: explicit method override first, then filename keywords, then
// content keywords, and the bank parser as the default.
func Detect(text, filename string, opts Options) Kind {
	switch strings.ToLower(opts.Method) {
	case string(KindAI):
		return KindAI
	case string(KindTabular):
		return KindTabular
	}

	lowerName := strings.ToLower(filename)
	for _, suffix := range tabularFilenameSuffixes {
		if strings.HasSuffix(lowerName, suffix) {
			return KindTabular
		}
	}
	for _, kw := range cardFilenameKeywords {
		if strings.Contains(lowerName, kw) {
			return KindCard
		}
	}

	lowerText := strings.ToLower(text)
	for _, kw := range cardContentKeywords {
		if strings.Contains(lowerText, kw) {
			return KindCard
		}
	}

	return KindBank
}

// Factory resolves a Kind to a ready parser instance.
type Factory struct {
	Bank    models.Parser
	Card    models.Parser
	Tabular models.Parser
	AI      models.Parser
}

// ParserFor returns the parser for the kind; unknown kinds get the bank
// parser so the result is never nil.
func (f Factory) ParserFor(kind Kind) models.Parser {
	switch kind {
	case KindCard:
		return f.Card
	case KindTabular:
		return f.Tabular
	case KindAI:
		return f.AI
	default:
		return f.Bank
	}
}

// Select combines detection and resolution.
func (f Factory) Select(text, filename string, opts Options) (models.Parser, Kind) {
	kind := Detect(text, filename, opts)
	return f.ParserFor(kind), kind
}
