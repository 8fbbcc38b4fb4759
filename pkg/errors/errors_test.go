package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeSourceDecode, cause, "failed to decode")

	if err.Code != ErrCodeSourceDecode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSourceDecode)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
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
			err:      New(ErrCodeInvalidMargins, "test"),
			code:     ErrCodeInvalidMargins,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidMargins, "test"),
			code:     ErrCodeSourceEmpty,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeSourceDecode, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeSourceDecode,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMarginsExceedPage, "test"),
			expected: ErrCodeMarginsExceedPage,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantConfig bool
		wantSource bool
	}{
		{
			name:       "page size is config",
			err:        New(ErrCodeInvalidPageSize, "bad size"),
			wantConfig: true,
		},
		{
			name:       "rotation is config",
			err:        New(ErrCodeInvalidRotation, "bad rotation"),
			wantConfig: true,
		},
		{
			name:       "missing file is source",
			err:        New(ErrCodeSourceNotFound, "gone"),
			wantSource: true,
		},
		{
			name: "layout error is neither",
			err:  New(ErrCodeMarginsExceedPage, "collapsed"),
		},
		{
			name: "plain error is neither",
			err:  errors.New("plain"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfig(tt.err); got != tt.wantConfig {
				t.Errorf("IsConfig() = %v, want %v", got, tt.wantConfig)
			}
			if got := IsSource(tt.err); got != tt.wantSource {
				t.Errorf("IsSource() = %v, want %v", got, tt.wantSource)
			}
		})
	}
}
