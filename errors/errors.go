package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where the error occurred
type Phase string

const (
	PhaseResolve Phase = "resolve" // capability module selection
	PhaseLoad    Phase = "load"    // binding / guest loading
	PhaseCreate  Phase = "create"  // checker creation
	PhaseCall    Phase = "call"    // checker operations
	PhaseProbe   Phase = "probe"   // availability probe
)

// Kind categorizes the error
type Kind string

const (
	KindPlatformUnsupported Kind = "platform_unsupported"
	KindInvalidArgument     Kind = "invalid_argument"
	KindHandleDisposed      Kind = "handle_disposed"
	KindNativeFailure       Kind = "native_failure"
)

// Sentinels for use with errors.Is. They match any phase.
var (
	ErrPlatformUnsupported = &Error{Kind: KindPlatformUnsupported}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrHandleDisposed      = &Error{Kind: KindHandleDisposed}
	ErrNativeFailure       = &Error{Kind: KindNativeFailure}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Param  string
	OS     string
	Arch   string
	Detail string
	Code   int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.OS != "" || e.Arch != "" {
		b.WriteString(": platform ")
		b.WriteString(e.OS)
		b.WriteByte('/')
		b.WriteString(e.Arch)
	}

	if e.Param != "" {
		b.WriteString(": parameter ")
		b.WriteString(e.Param)
		fmt.Fprintf(&b, " (value %q)", fmt.Sprint(e.Value))
	}

	if e.Detail != "" {
		if e.OS != "" || e.Param != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Code != 0 {
		fmt.Fprintf(&b, " (code 0x%08X)", uint32(e.Code))
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the attempted operation
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Param sets the offending parameter name
func (b *Builder) Param(name string) *Builder {
	b.err.Param = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Platform sets the detected operating system and architecture
func (b *Builder) Platform(os, arch string) *Builder {
	b.err.OS = os
	b.err.Arch = arch
	return b
}

// Code sets the native status code
func (b *Builder) Code(code int64) *Builder {
	b.err.Code = code
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// PlatformUnsupported creates an error for an OS/architecture pair with no module
func PlatformUnsupported(os, arch string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindPlatformUnsupported,
		OS:     os,
		Arch:   arch,
		Detail: "no spell checker module for this platform",
	}
}

// InvalidArgument creates an error for a parameter that cannot cross into native code
func InvalidArgument(phase Phase, op, param string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Op:     op,
		Param:  param,
		Value:  value,
		Detail: detail,
	}
}

// HandleDisposed creates an error for an operation on a disposed handle
func HandleDisposed(op string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindHandleDisposed,
		Op:     op,
		Detail: "spell checker instance has been disposed",
	}
}

// NativeFailure creates an error reported by a native capability
func NativeFailure(phase Phase, op string, code int64, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNativeFailure,
		Op:     op,
		Code:   code,
		Detail: detail,
	}
}

// Wrap wraps an existing error as a native failure, keeping its message in the chain
func Wrap(phase Phase, op string, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNativeFailure,
		Op:     op,
		Detail: detail,
		Cause:  cause,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
