// Package parsererror defines the error types shared by the statement
// parsers and the classification pipeline.
package parsererror

import "fmt"

// ParseError represents a failure to parse a specific field of a document.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a transaction or input that failed validation.
type ValidationError struct {
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Source, e.Reason)
}

// InvalidFormatError represents input that does not conform to the format a
// parser expects.
type InvalidFormatError struct {
	Source         string
	ExpectedFormat string
	Snippet        string // optional content snippet for debugging
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("invalid format in '%s': %s. Expected: %s. Content snippet: '%s'",
			e.Source, e.Msg, e.ExpectedFormat, e.Snippet)
	}
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s",
		e.Source, e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents a required value that could not be extracted
// from an otherwise readable document.
type DataExtractionError struct {
	Source    string
	FieldName string
	Snippet   string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	if e.Snippet != "" {
		return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s. Raw data snippet: '%s'",
			e.Source, e.FieldName, e.Reason, e.Snippet)
	}
	return fmt.Sprintf("data extraction failed in '%s' for field '%s': %s",
		e.Source, e.FieldName, e.Reason)
}

// AIResponseError represents an AI extraction batch that failed after every
// model in the fallback list was attempted. LastErr carries the most recent
// underlying failure so the user sees an actionable message.
type AIResponseError struct {
	ModelsTried []string
	LastErr     error
}

func (e *AIResponseError) Error() string {
	return fmt.Sprintf("AI extraction failed after trying %d model(s): %v (verify your API key and document)",
		len(e.ModelsTried), e.LastErr)
}

func (e *AIResponseError) Unwrap() error {
	return e.LastErr
}
