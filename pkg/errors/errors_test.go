package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"New", New(ErrCodeInvalidInput, "bad %s", "format"), "INVALID_INPUT: bad format"},
		{"Wrap", Wrap(ErrCodeFileNotFound, cause, "open %s", "a.yml"), "FILE_NOT_FOUND: open a.yml: permission denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write cache")
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through errors.Is")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() did not return the cause")
	}
}

func TestCodes(t *testing.T) {
	doc := New(ErrCodeInvalidDocument, "top level is a sequence")
	tests := []struct {
		name    string
		err     error
		getCode Code
		codeOf  Code
	}{
		{"Coded", doc, ErrCodeInvalidDocument, ErrCodeInvalidDocument},
		{"OutermostWins", Wrap(ErrCodeFileNotFound, doc, "load"), ErrCodeFileNotFound, ErrCodeFileNotFound},
		{"ThroughFmt", fmt.Errorf("load quests.yaml: %w", doc), ErrCodeInvalidDocument, ErrCodeInvalidDocument},
		{"Plain", errors.New("boom"), "", ErrCodeInternal},
		{"Nil", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.getCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.getCode)
			}
			if got := CodeOf(tt.err); got != tt.codeOf {
				t.Errorf("CodeOf() = %q, want %q", got, tt.codeOf)
			}
			if tt.getCode != "" && !Is(tt.err, tt.getCode) {
				t.Errorf("Is(%q) = false", tt.getCode)
			}
		})
	}
	if Is(nil, "") {
		t.Error("Is(nil) = true")
	}
}

func TestAnnotate(t *testing.T) {
	err := Annotate(New(ErrCodeUnsupported, "no rsvg-convert"), "render %s", "pdf")
	if err.Code != ErrCodeUnsupported {
		t.Errorf("Code = %s, want UNSUPPORTED", err.Code)
	}
	if got := UserMessage(err); got != "render pdf" {
		t.Errorf("UserMessage() = %q", got)
	}
	if plain := Annotate(errors.New("exit 1"), "render svg"); plain.Code != ErrCodeInternal {
		t.Errorf("Code = %s, want INTERNAL_ERROR", plain.Code)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(fmt.Errorf("ctx: %w", New(ErrCodeNotFound, "no node %s", "x"))); got != "no node x" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage() = %q", got)
	}
}
