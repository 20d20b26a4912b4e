// Package errors defines the application error taxonomy for the
// reconciliation service. Errors carry a category, a specific code, optional
// context and a user-facing suggestion, and map onto both CLI exit codes and
// HTTP-style status classes for callers embedding the engine behind an API.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors.
type ErrorCategory string

const (
	// CategoryInput covers malformed or empty input batches. Input problems
	// are corrected by filtering wherever possible and rejected only when
	// filtering empties the batch entirely.
	CategoryInput ErrorCategory = "invalid_input"
	// CategoryMatching covers unexpected failures inside the scoring loop,
	// reported once for the whole run rather than per transaction.
	CategoryMatching ErrorCategory = "matching_failure"
	// CategoryGeneration covers output row formatting failures, at the same
	// whole-run granularity.
	CategoryGeneration ErrorCategory = "generation_failure"
	// CategoryFile covers filesystem problems reading input files.
	CategoryFile ErrorCategory = "file"
	// CategoryParse covers CSV/JSON decoding problems in the collaborators.
	CategoryParse ErrorCategory = "parse"
	// CategoryInternal covers everything unexpected.
	CategoryInternal ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories.
type ErrorCode string

const (
	// Input errors
	CodeEmptyBatch      ErrorCode = "empty_batch"
	CodeInvalidRecord   ErrorCode = "invalid_record"
	CodePlaceholderOnly ErrorCode = "placeholder_only"

	// Matching errors
	CodeMatchingFailed ErrorCode = "matching_failed"

	// Generation errors
	CodeRowGeneration ErrorCode = "row_generation_failed"

	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileError      ErrorCode = "file_error"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeMissingColumn ErrorCode = "missing_column"
	CodeInvalidData   ErrorCode = "invalid_data"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// ReconcilerError is the base error type for all application errors.
type ReconcilerError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error.
type Context map[string]interface{}

// Error implements the error interface.
func (e *ReconcilerError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *ReconcilerError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the HTTP-style status class for the error: input
// problems are client errors, everything else is a server-side failure.
func (e *ReconcilerError) HTTPStatus() int {
	switch e.Category {
	case CategoryInput, CategoryParse, CategoryFile:
		return 400
	default:
		return 500
	}
}

// GetExitCode returns an appropriate CLI exit code for the error.
func (e *ReconcilerError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryInput, CategoryParse:
		return 3
	case CategoryMatching, CategoryGeneration, CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds context information to the error.
func (e *ReconcilerError) WithContext(key string, value interface{}) *ReconcilerError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error.
func (e *ReconcilerError) WithSuggestion(suggestion string) *ReconcilerError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ReconcilerError.
func New(category ErrorCategory, code ErrorCode, message string) *ReconcilerError {
	return &ReconcilerError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ReconcilerError context.
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ReconcilerError {
	if err == nil {
		return nil
	}
	return &ReconcilerError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces.
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// InputError creates an invalid-input error.
func InputError(code ErrorCode, detail string) *ReconcilerError {
	var message, suggestion string
	switch code {
	case CodeEmptyBatch:
		message = fmt.Sprintf("no valid transactions to process: %s", detail)
		suggestion = "upload statements containing actual transaction data"
	case CodePlaceholderOnly:
		message = "no actual bank transactions found, only placeholder rows"
		suggestion = "upload valid bank statements with real transaction data"
	case CodeInvalidRecord:
		message = fmt.Sprintf("invalid record: %s", detail)
		suggestion = "check the record fields and formats"
	default:
		message = fmt.Sprintf("invalid input: %s", detail)
		suggestion = "check the input data and try again"
	}
	return New(CategoryInput, code, message).
		WithSuggestion(suggestion).
		WithContext("detail", detail)
}

// MatchingError creates a matching-failure error for the whole run.
func MatchingError(operation string, err error) *ReconcilerError {
	message := fmt.Sprintf("error comparing transactions during %s", operation)
	result := Wrap(err, CategoryMatching, CodeMatchingFailed, message)
	if result == nil {
		result = New(CategoryMatching, CodeMatchingFailed, message)
	}
	return result.
		WithSuggestion("check data quality and try again").
		WithContext("operation", operation)
}

// GenerationError creates a row-generation failure error.
func GenerationError(operation string, err error) *ReconcilerError {
	message := fmt.Sprintf("error generating output rows during %s", operation)
	result := Wrap(err, CategoryGeneration, CodeRowGeneration, message)
	if result == nil {
		result = New(CategoryGeneration, CodeRowGeneration, message)
	}
	return result.
		WithSuggestion("review the match results and configuration").
		WithContext("operation", operation)
}

// FileError creates a file-related error.
func FileError(code ErrorCode, path string, err error) *ReconcilerError {
	var message, suggestion string
	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *ReconcilerError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}
	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// ParseError creates a parsing-related error.
func ParseError(code ErrorCode, source string, line int, field, value string, err error) *ReconcilerError {
	var message, suggestion string
	switch code {
	case CodeInvalidFormat:
		message = fmt.Sprintf("invalid format in %s at line %d, field '%s': '%s'", source, line, field, value)
		suggestion = "check the data format and ensure it matches the expected structure"
	case CodeMissingColumn:
		message = fmt.Sprintf("missing required column '%s' in %s", field, source)
		suggestion = "verify the file has all required columns with correct headers"
	case CodeInvalidData:
		message = fmt.Sprintf("invalid data in %s at line %d, field '%s': '%s'", source, line, field, value)
		suggestion = "correct the data format or remove the invalid entry"
	default:
		message = fmt.Sprintf("parse error in %s at line %d", source, line)
		suggestion = "check the file format and data integrity"
	}

	var result *ReconcilerError
	if err != nil {
		result = Wrap(err, CategoryParse, code, message)
	} else {
		result = New(CategoryParse, code, message)
	}
	return result.
		WithSuggestion(suggestion).
		WithContext("source", source).
		WithContext("line", line).
		WithContext("field", field).
		WithContext("value", value)
}

// InternalError creates an internal error.
func InternalError(operation string, err error) *ReconcilerError {
	message := fmt.Sprintf("unexpected error during %s", operation)
	result := Wrap(err, CategoryInternal, CodeUnexpectedError, message)
	if result == nil {
		result = New(CategoryInternal, CodeUnexpectedError, message)
	}
	return result.
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// IsReconcilerError checks if an error is a ReconcilerError.
func IsReconcilerError(err error) bool {
	_, ok := err.(*ReconcilerError)
	return ok
}

// AsReconcilerError extracts a ReconcilerError from an error chain.
func AsReconcilerError(err error) (*ReconcilerError, bool) {
	var reconcilerErr *ReconcilerError
	if errors.As(err, &reconcilerErr) {
		return reconcilerErr, true
	}
	return nil, false
}

// WrapIfNeeded wraps an error if it's not already a ReconcilerError.
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *ReconcilerError {
	if err == nil {
		return nil
	}
	if reconcilerErr, ok := AsReconcilerError(err); ok {
		return reconcilerErr
	}
	return Wrap(err, category, code, message)
}

// ErrorSummary aggregates multiple errors for batch reporting.
type ErrorSummary struct {
	Total      int                   `json:"total"`
	ByCategory map[ErrorCategory]int `json:"by_category"`
	Errors     []*ReconcilerError    `json:"errors"`
}

// NewErrorSummary creates a new error summary.
func NewErrorSummary(errs []*ReconcilerError) *ErrorSummary {
	summary := &ErrorSummary{
		Total:      len(errs),
		ByCategory: make(map[ErrorCategory]int),
		Errors:     errs,
	}
	for _, err := range errs {
		summary.ByCategory[err.Category]++
	}
	return summary
}

// Error returns a formatted error message for the summary.
func (es *ErrorSummary) Error() string {
	if es.Total == 0 {
		return "no errors"
	}
	if es.Total == 1 {
		return es.Errors[0].Error()
	}
	var categories []string
	for category, count := range es.ByCategory {
		categories = append(categories, fmt.Sprintf("%s: %d", category, count))
	}
	return fmt.Sprintf("%d errors occurred (%s)", es.Total, strings.Join(categories, ", "))
}

// HasCategory checks if the summary contains errors of the given category.
func (es *ErrorSummary) HasCategory(category ErrorCategory) bool {
	return es.ByCategory[category] > 0
}
