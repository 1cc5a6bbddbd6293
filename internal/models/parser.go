package models

import "io"

// Parser is the contract every statement parser implements. Parse reads the
// raw statement text from r and returns transactions in document order.
// A line the parser cannot understand is skipped, never fatal; only an
// unusable document as a whole produces an error.
type Parser interface {
	Parse(r io.Reader) ([]Transaction, error)
}
