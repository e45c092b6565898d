package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
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
	err := Wrap(ErrCodeInvalidConfig, cause, "load config")

	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidConfig)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
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
		{"matching code", New(ErrCodeInvalidInput, "test"), ErrCodeInvalidInput, true},
		{"different code", New(ErrCodeInvalidInput, "test"), ErrCodeNotFound, false},
		{"wrapped", fmt.Errorf("outer: %w", New(ErrCodeInvalidTable, "x")), ErrCodeInvalidTable, true},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil", nil, ErrCodeInvalidInput, false},
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
		name string
		err  error
		want Code
	}{
		{"structured", New(ErrCodeFileNotFound, "x"), ErrCodeFileNotFound},
		{"deadline", fmt.Errorf("run: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeCanceled},
		{"plain", errors.New("boom"), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "bad top_n")); got != "bad top_n" {
		t.Errorf("UserMessage() = %q", got)
	}
	wrapped := Wrap(ErrCodeInvalidConfig, errors.New("line 3"), "parse config")
	if got := UserMessage(wrapped); got != "parse config: line 3" {
		t.Errorf("UserMessage(wrapped) = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidTable, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeFileNotFound, http.StatusNotFound},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeUnsupported, http.StatusNotImplemented},
		{ErrCodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.code); got != tt.want {
			t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Cyclops", false},
		{"with punctuation", "Storm (Ororo Munroe), X-Men #1", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"control", "Jean\x00Grey", true},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("character", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTable) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidTable)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	allowed := []string{"csv", "json", "svg"}
	if err := ValidateFormats([]string{"csv", "svg"}, allowed); err != nil {
		t.Errorf("valid formats: %v", err)
	}
	if err := ValidateFormats(nil, allowed); err != nil {
		t.Errorf("empty formats: %v", err)
	}
	if err := ValidateFormats([]string{"pdf"}, allowed); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("pdf: err = %v", err)
	}
}
