// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/rulesync/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "file not found",
			wantStr: "[NOT_FOUND] file not found",
		},
		{
			name:    "malformed_directive_error",
			code:    errors.ErrMalformedDirective,
			message: "directive names no targets",
			wantStr: "[MALFORMED_DIRECTIVE] directive names no targets",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("underlying failure")
	err := errors.Wrap(inner, errors.ErrFileRead, "could not read rules")

	if got := err.Error(); got != "[FILE_READ] could not read rules: underlying failure" {
		t.Errorf("Error() = %q", got)
	}

	if !stderrors.Is(err, inner) {
		t.Error("wrapped error should match with errors.Is")
	}

	if errors.Wrap(nil, errors.ErrFileRead, "msg") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrMalformedDirective, "bad directive").
		WithDetail("line", "::only ,").
		WithDetail("lineNumber", 3)

	details := errors.GetErrorDetails(err)
	if details["line"] != "::only ," {
		t.Errorf("detail line = %v", details["line"])
	}
	if details["lineNumber"] != 3 {
		t.Errorf("detail lineNumber = %v", details["lineNumber"])
	}
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrTargetUnknown, "unknown target: %s", "nope")

	if !errors.IsErrorCode(err, errors.ErrTargetUnknown) {
		t.Error("IsErrorCode should match the error's code")
	}
	if errors.IsErrorCode(err, errors.ErrNotFound) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrNotFound) {
		t.Error("IsErrorCode should not match plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrPermission, "no")); got != errors.ErrPermission {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want ErrUnknown", got)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := errors.New(errors.ErrConfigLoad, "first")
	b := errors.New(errors.ErrConfigLoad, "second")

	if !stderrors.Is(a, b) {
		t.Error("errors with the same code should match with errors.Is")
	}
}
