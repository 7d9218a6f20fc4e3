package analyses

import "errors"

var ErrNotFound = errors.New("analysis not found")

// Error codes surfaced to API clients.
const (
	CodeConfigError    = "CONFIG_ERROR"
	CodeLLMTimeout     = "LLM_TIMEOUT"
	CodeSchemaMismatch = "LLM_SCHEMA_MISMATCH"
	CodeValidation     = "VALIDATION_ERROR"
	CodeInternal       = "INTERNAL_ERROR"
)
