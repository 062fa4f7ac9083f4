package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "empty text literal")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidInput)
	}
	if err.Message != "empty text literal" {
		t.Errorf("Message = %q, want %q", err.Message, "empty text literal")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestNew_Formatting(t *testing.T) {
	err := New(ErrCodeSyntax, "unexpected token %q at offset %d", "&", 12)

	want := `unexpected token "&" at offset 12`
	if err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

func TestError_String(t *testing.T) {
	err := New(ErrCodeInvalidInput, "hard break inside fix scope")

	want := "INVALID_INPUT: hard break inside fix scope"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrCodeCache, cause, "store document %s", "abc")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	want := "CACHE_ERROR: store document abc: disk full"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidInput, "empty text literal")

	if !Is(err, ErrCodeInvalidInput) {
		t.Error("Is(err, ErrCodeInvalidInput) = false, want true")
	}
	if Is(err, ErrCodeSyntax) {
		t.Error("Is(err, ErrCodeSyntax) = true, want false")
	}
	if Is(fmt.Errorf("plain"), ErrCodeInvalidInput) {
		t.Error("Is(plain, ErrCodeInvalidInput) = true, want false")
	}
}

func TestIs_Wrapped(t *testing.T) {
	inner := New(ErrCodeStackOverflow, "budget exhausted")
	outer := fmt.Errorf("compile: %w", inner)

	if !Is(outer, ErrCodeStackOverflow) {
		t.Error("Is(wrapped, ErrCodeStackOverflow) = false, want true")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"structured", New(ErrCodeSyntax, "bad token"), ErrCodeSyntax},
		{"wrapped", fmt.Errorf("outer: %w", New(ErrCodeCache, "miss")), ErrCodeCache},
		{"stack overflow", &StackOverflowError{Depth: 10001, Limit: 10000}, ErrCodeStackOverflow},
		{"plain", fmt.Errorf("plain"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "empty text literal")
	if got := UserMessage(err); got != "empty text literal" {
		t.Errorf("UserMessage() = %q, want %q", got, "empty text literal")
	}

	plain := fmt.Errorf("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q, want %q", got, "plain failure")
	}
}

func TestStackOverflowError(t *testing.T) {
	err := &StackOverflowError{Depth: 10001, Limit: 10000}

	want := "stack overflow: depth 10001 exceeds limit 10000"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Code() != ErrCodeStackOverflow {
		t.Errorf("Code() = %q, want %q", err.Code(), ErrCodeStackOverflow)
	}
	if !Is(fmt.Errorf("compile: %w", err), ErrCodeStackOverflow) {
		t.Error("Is(wrapped overflow, ErrCodeStackOverflow) = false, want true")
	}
}
