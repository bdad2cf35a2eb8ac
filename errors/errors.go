package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCreate  Phase = "create"  // arena/stream construction
	PhaseAlloc   Phase = "alloc"   // arena allocation
	PhaseDestroy Phase = "destroy" // arena teardown
	PhaseLoad    Phase = "load"    // stream source loading
	PhaseRead    Phase = "read"    // stream reads
	PhaseQueue   Phase = "queue"   // ring queue/insert
	PhaseDispose Phase = "dispose" // stream teardown
	PhaseSort    Phase = "sort"    // buffer sorting
)

// Kind categorizes the error
type Kind string

const (
	KindCorruption     Kind = "memory_corruption"
	KindOverflow       Kind = "capacity_overflow"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidInput   Kind = "invalid_input"
	KindInvalidUTF8    Kind = "invalid_utf8"
	KindSourceMismatch Kind = "source_mismatch"
	KindIO             Kind = "io"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Detail   string
	Address  uintptr // offending address, corruption errors only
	Expected uint64  // expected guard/magic word
	Actual   uint64  // word found in memory
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Address != 0 {
		fmt.Fprintf(&b, " at 0x%x", e.Address)
	}
	if e.Expected != e.Actual {
		fmt.Fprintf(&b, " (expected 0x%x, found 0x%x)", e.Expected, e.Actual)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
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

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
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

// Address records the offending address
func (b *Builder) Address(addr uintptr) *Builder {
	b.err.Address = addr
	return b
}

// Words records the expected and actual guard/magic words
func (b *Builder) Words(expected, actual uint64) *Builder {
	b.err.Expected = expected
	b.err.Actual = actual
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

// Corruption creates a memory corruption error carrying the offending
// address and the expected/actual word values.
func Corruption(phase Phase, what string, addr uintptr, expected, actual uint64) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindCorruption,
		Detail:   what,
		Address:  addr,
		Expected: expected,
		Actual:   actual,
	}
}

// Overflow creates a capacity overflow error
func Overflow(phase Phase, live, added, capacity int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("%d live + %d added exceeds capacity %d", live, added, capacity),
	}
}

// NotInitialized creates a not-initialized error for a zero-value handle
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidUTF8 creates an invalid UTF-8 error with a bounded data preview
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// SourceMismatch creates an error for an operation unsupported by the
// stream's current source kind.
func SourceMismatch(phase Phase, op, source string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSourceMismatch,
		Detail: fmt.Sprintf("%s not supported on %s source", op, source),
	}
}

// IO wraps an error from an underlying reader or closer
func IO(phase Phase, detail string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: detail,
		Cause:  cause,
	}
}
