package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CategoryInput, CodeEmptyBatch, "no transactions")
	if err.Category != CategoryInput {
		t.Errorf("expected category %s, got %s", CategoryInput, err.Category)
	}
	if err.Code != CodeEmptyBatch {
		t.Errorf("expected code %s, got %s", CodeEmptyBatch, err.Code)
	}
	if err.Error() != "no transactions" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if err.StackTrace == nil {
		t.Error("expected stack trace to be captured")
	}
}

func TestErrorWithSuggestion(t *testing.T) {
	err := New(CategoryInput, CodeInvalidRecord, "bad record").
		WithSuggestion("fix the record")
	msg := err.Error()
	if !strings.Contains(msg, "bad record") || !strings.Contains(msg, "fix the record") {
		t.Errorf("expected message with suggestion, got: %s", msg)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying problem")
	err := Wrap(cause, CategoryMatching, CodeMatchingFailed, "matching broke")
	if err.Cause != cause {
		t.Error("expected cause to be preserved")
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, CategoryInternal, CodeUnexpectedError, "x"); err != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		category ErrorCategory
		want     int
	}{
		{"input is client error", CategoryInput, 400},
		{"parse is client error", CategoryParse, 400},
		{"file is client error", CategoryFile, 400},
		{"matching is server error", CategoryMatching, 500},
		{"generation is server error", CategoryGeneration, 500},
		{"internal is server error", CategoryInternal, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.category, CodeUnexpectedError, "test")
			if got := err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		want     int
	}{
		{CategoryFile, 2},
		{CategoryInput, 3},
		{CategoryParse, 3},
		{CategoryMatching, 5},
		{CategoryGeneration, 5},
		{CategoryInternal, 5},
	}
	for _, tt := range tests {
		err := New(tt.category, CodeUnexpectedError, "test")
		if got := err.GetExitCode(); got != tt.want {
			t.Errorf("GetExitCode() for %s = %d, want %d", tt.category, got, tt.want)
		}
	}
}

func TestInputErrorPlaceholderOnly(t *testing.T) {
	err := InputError(CodePlaceholderOnly, "all rows were placeholders")
	if err.Category != CategoryInput {
		t.Errorf("expected input category, got %s", err.Category)
	}
	if !strings.Contains(err.Message, "placeholder") {
		t.Errorf("expected placeholder message, got: %s", err.Message)
	}
	if err.Suggestion == "" {
		t.Error("expected a suggestion")
	}
}

func TestMatchingError(t *testing.T) {
	cause := errors.New("index out of range")
	err := MatchingError("scoring", cause)
	if err.Category != CategoryMatching {
		t.Errorf("expected matching category, got %s", err.Category)
	}
	if err.Code != CodeMatchingFailed {
		t.Errorf("expected code %s, got %s", CodeMatchingFailed, err.Code)
	}
	if err.Context["operation"] != "scoring" {
		t.Error("expected operation context")
	}
}

func TestGenerationErrorWithoutCause(t *testing.T) {
	err := GenerationError("row formatting", nil)
	if err == nil {
		t.Fatal("expected non-nil error even without cause")
	}
	if err.Category != CategoryGeneration {
		t.Errorf("expected generation category, got %s", err.Category)
	}
}

func TestParseError(t *testing.T) {
	err := ParseError(CodeMissingColumn, "ledger.csv", 1, "Invoice/CM #", "", nil)
	if !strings.Contains(err.Message, "Invoice/CM #") {
		t.Errorf("expected field name in message, got: %s", err.Message)
	}
	if err.Context["source"] != "ledger.csv" {
		t.Error("expected source context")
	}
}

func TestAsReconcilerError(t *testing.T) {
	base := New(CategoryFile, CodeFileNotFound, "missing")
	if found, ok := AsReconcilerError(base); !ok || found != base {
		t.Error("expected to extract the same error")
	}
	if _, ok := AsReconcilerError(errors.New("plain")); ok {
		t.Error("plain error should not extract")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	base := New(CategoryInput, CodeEmptyBatch, "empty")
	wrapped := WrapIfNeeded(base, CategoryInternal, CodeUnexpectedError, "outer")
	if wrapped != base {
		t.Error("existing ReconcilerError should pass through unchanged")
	}

	plain := errors.New("plain")
	wrapped = WrapIfNeeded(plain, CategoryInternal, CodeUnexpectedError, "outer")
	if wrapped.Category != CategoryInternal {
		t.Error("plain error should be wrapped as internal")
	}
}

func TestErrorSummary(t *testing.T) {
	errs := []*ReconcilerError{
		New(CategoryInput, CodeInvalidRecord, "bad 1"),
		New(CategoryInput, CodeInvalidRecord, "bad 2"),
		New(CategoryParse, CodeInvalidData, "bad 3"),
	}
	summary := NewErrorSummary(errs)
	if summary.Total != 3 {
		t.Errorf("expected 3 errors, got %d", summary.Total)
	}
	if summary.ByCategory[CategoryInput] != 2 {
		t.Errorf("expected 2 input errors, got %d", summary.ByCategory[CategoryInput])
	}
	if !summary.HasCategory(CategoryParse) {
		t.Error("expected parse category present")
	}
	if summary.HasCategory(CategoryMatching) {
		t.Error("did not expect matching category")
	}
}
