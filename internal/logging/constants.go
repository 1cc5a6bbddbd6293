package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldOwner      = "owner"
	FieldLine       = "line"
	FieldCategory   = "category"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldCount      = "count"
	FieldModel      = "model"
	FieldCurrency   = "currency"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
