// Package validation checks transactions and paths before persistence.
package validation

import (
	"fmt"
	"os"

	"jortiz/resumen-csv/internal/models"
	"jortiz/resumen-csv/internal/parsererror"
)

// ValidateTransactions checks every transaction against the persistence
// invariants: required fields present, a real calendar date, a known
// currency and a classification type. The first failure is returned with
// its index.
func ValidateTransactions(transactions []models.Transaction) error {
	for i, tx := range transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		if tx.Type == "" {
			return &parsererror.ValidationError{
				Source: fmt.Sprintf("transaction %d", i),
				Reason: "type must be set before persistence",
			}
		}
	}
	return nil
}

// IsValidInputPath checks that the path exists and is a regular file.
func IsValidInputPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path is a directory, expected a file: %s", path)
	}
	return nil
}

// IsValidParserMethod checks an explicit --method flag value.
func IsValidParserMethod(method string) error {
	switch method {
	case "", "ai", "tabular":
		return nil
	default:
		return fmt.Errorf("unsupported method: %s. Supported methods are 'ai' and 'tabular'", method)
	}
}
