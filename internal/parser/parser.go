// Package parser provides the parser contract and the base functionality
// shared by all statement parsers.
package parser

import (
	"io"

	"jortiz/resumen-csv/internal/models"
)

// Parser reads raw statement text and returns transactions in document
// order. Lines that cannot be understood are skipped; implementations return
// an error only when the document as a whole is unusable.
type Parser interface {
	Parse(r io.Reader) ([]models.Transaction, error)
}
