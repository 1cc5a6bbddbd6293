// Package common contains shared functionality for command handlers
package common

import (
	"path/filepath"
	"strings"

	"jortiz/resumen-csv/internal/classifier"
	"jortiz/resumen-csv/internal/container"
	"jortiz/resumen-csv/internal/fileutils"
	"jortiz/resumen-csv/internal/logging"
	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/selector"
	"jortiz/resumen-csv/internal/validation"

	csvio "jortiz/resumen-csv/internal/common"
)

// ProcessFile converts one statement file to CSV: read, parse, classify,
// validate, write. An empty kind lets the selector decide from the filename
// and content; an empty outputFile derives "<input>.csv".
func ProcessFile(app *container.Container, inputFile, outputFile string, kind selector.Kind, log logging.Logger) {
	if err := validation.IsValidInputPath(inputFile); err != nil {
		log.Fatalf("Invalid input: %v", err)
	}

	text, err := fileutils.ReadFileText(inputFile)
	if err != nil {
		log.Fatalf("Error reading input file: %v", err)
	}

	var p models.Parser
	if kind == "" {
		p, kind, err = app.SelectParser(text, inputFile, selector.Options{})
	} else {
		p, err = app.ParserFor(kind)
	}
	if err != nil {
		log.Fatalf("Error selecting parser: %v", err)
	}
	log.WithField(logging.FieldParser, string(kind)).Info("Parser selected")

	transactions, err := p.Parse(strings.NewReader(text))
	if err != nil {
		log.Fatalf("Error parsing statement: %v", err)
	}
	if len(transactions) == 0 {
		log.Warn("No transactions found in the statement")
	}

	ClassifyAll(app, transactions, inputFile)

	if err := validation.ValidateTransactions(transactions); err != nil {
		log.Fatalf("Extracted transactions failed validation: %v", err)
	}

	if outputFile == "" {
		outputFile = fileutils.DefaultOutputPath(inputFile)
	}
	if err := csvio.WriteTransactionsToCSV(transactions, outputFile); err != nil {
		log.Fatalf("Error writing CSV: %v", err)
	}
	log.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
	).Info("Conversion completed successfully!")
}

// ClassifyAll classifies every transaction with the effective rules and
// stamps the source file for provenance.
func ClassifyAll(app *container.Container, transactions []models.Transaction, inputFile string) {
	rules := app.GetRules()
	for i := range transactions {
		classifier.ClassifyTransaction(&transactions[i], rules)
		if transactions[i].SourceFile == "" {
			transactions[i].SourceFile = filepath.Base(inputFile)
		}
	}
}
