package parser

import (
	"bufio"
	"io"
	"strings"

	"jortiz/resumen-csv/internal/common"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
)

// BaseParser provides the functionality every parser implementation shares:
// a configurable logger, line splitting and standardized CSV output.
//
// Parsers embed BaseParser:
//
//	type MyParser struct {
//		parser.BaseParser
//		// parser-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
}

// NewBaseParser creates a BaseParser with the provided logger. A nil logger
// falls back to the package default.
func NewBaseParser(logger logging.Logger) BaseParser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return BaseParser{logger: logger}
}

// SetLogger replaces the parser's logger. Nil loggers are ignored.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Logger returns the current logger instance.
func (b *BaseParser) Logger() logging.Logger {
	return b.logger
}

// ReadLines reads the whole document from r and splits it into trimmed
// lines, preserving document order. Carriage returns are stripped so CRLF
// input behaves like LF input.
func (b *BaseParser) ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// WriteToCSV writes transactions to a CSV file using the standardized writer
// so every parser produces the same output format.
func (b *BaseParser) WriteToCSV(transactions []models.Transaction, csvFile string) error {
	b.logger.Info("Writing transactions to CSV",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	return common.WriteTransactionsToCSV(transactions, csvFile)
}
