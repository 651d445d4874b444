// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldBackup     = "backup"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldCommand    = "command"

	// Configuration fields.
	FieldFlavor        = "flavor"
	FieldPreviewLength = "preview_length"
	FieldQuoteLength   = "quote_length"
	FieldColor         = "color"
	FieldWidth         = "width"

	// Document fields.
	FieldLength     = "length"
	FieldStyles     = "styles"
	FieldEntities   = "entities"
	FieldTruncated  = "truncated"
	FieldBytes      = "bytes"
	FieldErrorField = "field"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
