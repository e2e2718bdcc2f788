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
			name:     "platform unsupported",
			err:      PlatformUnsupported("plan9", "mips"),
			contains: []string{"[resolve]", "platform_unsupported", "plan9/mips", "no spell checker module"},
		},
		{
			name:     "invalid argument",
			err:      InvalidArgument(PhaseCall, "add-word", "word", "a\x00b", "contains NUL byte"),
			contains: []string{"[call]", "invalid_argument", "add-word", "parameter word", `a\x00b`, "NUL"},
		},
		{
			name:     "handle disposed",
			err:      HandleDisposed("test-spelling"),
			contains: []string{"[call]", "handle_disposed", "test-spelling", "disposed"},
		},
		{
			name:     "native failure with code",
			err:      NativeFailure(PhaseCreate, "new", -2147024809, "create spell checker"),
			contains: []string{"[create]", "native_failure", "create spell checker", "0x80070057"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNativeFailure,
				Detail: "open library",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "native_failure", "open library", "caused by", "underlying error"},
		},
		{
			name:     "minimal error",
			err:      &Error{Kind: KindNativeFailure},
			contains: []string{"native_failure"},
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
	err := Wrap(PhaseLoad, "load", cause, "dlopen")

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause in chain")
	}
}

func TestError_Is(t *testing.T) {
	err := HandleDisposed("remove-word")

	if !errors.Is(err, ErrHandleDisposed) {
		t.Error("expected match against kind sentinel")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("should not match a different kind")
	}
	if !errors.Is(err, &Error{Phase: PhaseCall, Kind: KindHandleDisposed}) {
		t.Error("expected match with same phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseCreate, Kind: KindHandleDisposed}) {
		t.Error("should not match a different phase")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !errors.Is(wrapped, ErrHandleDisposed) {
		t.Error("expected match through fmt wrapping")
	}
}

func TestError_As(t *testing.T) {
	var target *Error
	err := fmt.Errorf("resolve: %w", PlatformUnsupported("js", "wasm"))

	if !errors.As(err, &target) {
		t.Fatal("errors.As failed")
	}
	if target.OS != "js" || target.Arch != "wasm" {
		t.Errorf("platform = %s/%s, want js/wasm", target.OS, target.Arch)
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseCall, KindInvalidArgument).
		Op("suggestions").
		Param("word").
		Value("\xff").
		Detail("invalid UTF-8 at byte %d", 0).
		Build()

	if err.Phase != PhaseCall || err.Kind != KindInvalidArgument {
		t.Errorf("phase/kind = %s/%s", err.Phase, err.Kind)
	}
	if err.Op != "suggestions" || err.Param != "word" {
		t.Errorf("op/param = %s/%s", err.Op, err.Param)
	}
	if err.Detail != "invalid UTF-8 at byte 0" {
		t.Errorf("detail = %q", err.Detail)
	}

	native := New(PhaseCall, KindNativeFailure).Code(5).Platform("linux", "arm64").Cause(errors.New("x")).Build()
	if native.Code != 5 || native.OS != "linux" || native.Arch != "arm64" || native.Cause == nil {
		t.Errorf("builder fields not set: %+v", native)
	}
}

func TestKindOf(t *testing.T) {
	if k := KindOf(fmt.Errorf("x: %w", HandleDisposed("dispose"))); k != KindHandleDisposed {
		t.Errorf("KindOf = %q", k)
	}
	if k := KindOf(errors.New("plain")); k != "" {
		t.Errorf("KindOf(plain) = %q, want empty", k)
	}
	if k := KindOf(nil); k != "" {
		t.Errorf("KindOf(nil) = %q, want empty", k)
	}
}
