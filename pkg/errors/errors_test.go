package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidLot, "lot %q too long", "ABCDEFGHIJK")

	if err.Code != ErrCodeInvalidLot {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidLot)
	}

	if err.Message != `lot "ABCDEFGHIJK" too long` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `INVALID_LOT: lot "ABCDEFGHIJK" too long`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeEncodeFailed, cause, "code 128 encode")

	if err.Code != ErrCodeEncodeFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeEncodeFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidDate, "test"),
			code:     ErrCodeInvalidDate,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeInvalidDate, "test"),
			code:     ErrCodeEncodeFailed,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeProductNotFound, "no such product")); got != ErrCodeProductNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeProductNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidIdentifier, "NSN has 12 characters")
	if got := UserMessage(err); got != "NSN has 12 characters" {
		t.Errorf("UserMessage() = %v", got)
	}
	plain := errors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %v", got)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(New(ErrCodeInvalidLot, "x")) {
		t.Error("IsValidation(INVALID_LOT) = false, want true")
	}
	if IsValidation(New(ErrCodeEncodeFailed, "x")) {
		t.Error("IsValidation(ENCODE_FAILED) = true, want false")
	}
}

func TestWarningString(t *testing.T) {
	w := NewWarning(WarnOverrideWithoutReport, "override for lot %s has no test report", "FM251115A")
	want := "OVERRIDE_WITHOUT_TEST_REPORT: override for lot FM251115A has no test report"
	if w.String() != want {
		t.Errorf("String() = %v, want %v", w.String(), want)
	}
}
