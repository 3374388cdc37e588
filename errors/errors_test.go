package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseRelease,
				Kind:   KindOverRelease,
				Object: "buffer@01ARZ3NDEKTSV4RRFFQ69G5FAV",
				GoType: "*object.Object[buffer.Buffer]",
				Detail: "count already zero",
			},
			contains: []string{"[release]", "over_release", "buffer@01ARZ3NDEKTSV4RRFFQ69G5FAV", "buffer.Buffer", "count already zero"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAcquire,
				Kind:  KindNilHandle,
			},
			contains: []string{"[acquire]", "nil_handle"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseWrite,
				Kind:   KindIO,
				Detail: "write descriptor",
				Cause:  errors.New("bad file descriptor"),
			},
			contains: []string{"[write]", "io", "write descriptor", "caused by", "bad file descriptor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := IO(PhaseWrite, "write", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := OverRelease("buffer@x")

	if !err.Is(&Error{Phase: PhaseRelease, Kind: KindOverRelease}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseAcquire, Kind: KindOverRelease}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseRelease, Kind: KindNilHandle}) {
		t.Error("Is should not match different kind")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, &Error{Phase: PhaseRelease, Kind: KindOverRelease}) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestIsContractViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil handle", NilHandle(PhaseAcquire, "*T"), true},
		{"over release", OverRelease("x"), true},
		{"use after release", UseAfterRelease(PhaseDispatch, "x"), true},
		{"underflow", Underflow(32), true},
		{"wrapped", fmt.Errorf("ctx: %w", OverRelease("x")), true},
		{"io", IO(PhaseWrite, "w", errors.New("x")), false},
		{"out of bounds", OutOfBounds(PhaseWrite, 10, 5, 12), false},
		{"plain", errors.New("plain"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsContractViolation(tt.err); got != tt.want {
				t.Errorf("IsContractViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDispatch, KindTypeMismatch).
		Object("stream@abc").
		GoType("*object.Object[int]").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "stream", "int").
		Build()

	if err.Phase != PhaseDispatch {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDispatch)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Object != "stream@abc" {
		t.Errorf("Object = %v, want stream@abc", err.Object)
	}
	if err.GoType != "*object.Object[int]" {
		t.Errorf("GoType = %v", err.GoType)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected stream, got int" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseWrite, 10, 5, 12)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
		if !strings.Contains(err.Detail, "[10, 15)") {
			t.Errorf("Detail = %v, should contain range", err.Detail)
		}
	})

	t.Run("Underflow", func(t *testing.T) {
		err := Underflow(64)
		if err.Phase != PhaseCounter || !strings.Contains(err.Detail, "uint64") {
			t.Errorf("unexpected underflow error: %v", err)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseDispatch, "stream", "int")
		if err.GoType != "int" || !strings.Contains(err.Detail, "stream") {
			t.Errorf("unexpected type mismatch error: %v", err)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		err := Registration("parc_object_live", errors.New("dup"))
		if err.Phase != PhaseMetrics || err.Kind != KindRegistration {
			t.Errorf("unexpected registration error: %v", err)
		}
	})

	t.Run("ReadOnly", func(t *testing.T) {
		if ReadOnly(PhaseBuffer).Kind != KindReadOnly {
			t.Error("expected read_only kind")
		}
	})
}
