package errors

import (
	"fmt"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrInvalidContent, ExitUser),
			want: "invalid content",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := NewUserError(Wrap(ErrInvalidConfig, "reading config"), "fix it")
	if !Is(err, ErrInvalidConfig) {
		t.Error("Is() should find ErrInvalidConfig through ExitError and Wrap")
	}
	if Is(err, ErrInvalidContent) {
		t.Error("Is() should not match a different sentinel")
	}
}

func TestExitError_As(t *testing.T) {
	wrapped := fmt.Errorf("command failed: %w", NewSystemError(New("disk full"), "free some space"))

	var exitErr *ExitError
	if !As(wrapped, &exitErr) {
		t.Fatal("As() should find ExitError through fmt wrapping")
	}
	if exitErr.Code != ExitSystem {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitSystem)
	}
	if exitErr.Suggestion != "free some space" {
		t.Errorf("Suggestion = %q, want %q", exitErr.Suggestion, "free some space")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"user error", NewUserError(ErrInvalidContent, ""), ExitUser},
		{"wrapped system error", Wrap(NewSystemError(New("io"), ""), "writing"), ExitSystem},
		{"plain error", New("boom"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewConfigError(t *testing.T) {
	e := NewConfigError(New("config error"))
	if e.Code != ExitUser {
		t.Errorf("Code = %d, want %d", e.Code, ExitUser)
	}
	if e.Suggestion != "Run: contentdef config show" {
		t.Errorf("Suggestion = %q", e.Suggestion)
	}
}

func TestReported(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid content", NewExitError(ErrInvalidContent, ExitUser), true},
		{"unhealthy", NewExitError(Wrap(ErrUnhealthy, "2 errors"), ExitSystem), true},
		{"config", NewConfigError(ErrInvalidConfig), false},
		{"plain", fmt.Errorf("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reported(tt.err); got != tt.want {
				t.Errorf("Reported() = %v, want %v", got, tt.want)
			}
		})
	}
}
