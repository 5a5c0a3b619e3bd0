package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseConstruct Phase = "construct" // handle construction
	PhaseResolve   Phase = "resolve"   // field lookup and kind checks
	PhaseRead      Phase = "read"      // target memory access
	PhaseDecode    Phase = "decode"    // raw bytes to Go values
	PhaseLoad      Phase = "load"      // catalog, layout and image loading
)

// Kind categorizes the error
type Kind string

const (
	KindNullTarget   Kind = "null_target"
	KindUnknownField Kind = "unknown_field"
	KindTypeMismatch Kind = "type_mismatch"
	KindInvalidCast  Kind = "invalid_cast"
	KindMemoryRead   Kind = "memory_read"
	KindPrecondition Kind = "precondition"
	KindInvalidInput Kind = "invalid_input"
)

// Kind sentinels for errors.Is. They match any phase.
var (
	ErrNullTarget   = &Error{Kind: KindNullTarget}
	ErrUnknownField = &Error{Kind: KindUnknownField}
	ErrTypeMismatch = &Error{Kind: KindTypeMismatch}
	ErrInvalidCast  = &Error{Kind: KindInvalidCast}
	ErrMemoryRead   = &Error{Kind: KindMemoryRead}
	ErrPrecondition = &Error{Kind: KindPrecondition}
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
)

// Error is the structured error type used throughout the module
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Type    string
	Field   string
	Detail  string
	Addr    uint64
	HasAddr bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" || e.Field != "" {
		b.WriteString(" at ")
		b.WriteString(e.Type)
		if e.Field != "" {
			if e.Type != "" {
				b.WriteByte('.')
			}
			b.WriteString(e.Field)
		}
	}

	if e.HasAddr {
		b.WriteString(" @0x")
		b.WriteString(strconv.FormatUint(e.Addr, 16))
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

// Is reports whether target matches this error. Kinds must be equal; the
// phase is compared only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
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

// Type sets the target type name
func (b *Builder) Type(name string) *Builder {
	b.err.Type = name
	return b
}

// Field sets the field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Addr sets the target address involved in the failure
func (b *Builder) Addr(addr uint64) *Builder {
	b.err.Addr = addr
	b.err.HasAddr = true
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

// NullTarget creates an error for an operation on a null handle
func NullTarget(typeName, field string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindNullTarget,
		Type:   typeName,
		Field:  field,
		Detail: "object address is null",
	}
}

// UnknownField creates an error for a field name the type does not declare
func UnknownField(typeName, field string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindUnknownField,
		Type:   typeName,
		Field:  field,
		Detail: fmt.Sprintf("type %s has no field %q", typeName, field),
	}
}

// TypeMismatch creates an error for a field whose declared kind does not
// fit the requested access
func TypeMismatch(typeName, field, declared, requested string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindTypeMismatch,
		Type:   typeName,
		Field:  field,
		Detail: fmt.Sprintf("field is %s, requested %s", declared, requested),
	}
}

// InvalidCast creates an error for a decoded value of the wrong Go type
func InvalidCast(typeName, field, decoded, requested string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidCast,
		Type:   typeName,
		Field:  field,
		Detail: fmt.Sprintf("cannot cast %s to %s", decoded, requested),
	}
}

// MemoryRead creates an error for an unreadable target address
func MemoryRead(phase Phase, addr uint64, cause error) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindMemoryRead,
		Addr:    addr,
		HasAddr: true,
		Cause:   cause,
	}
}

// Precondition creates an error for an operation the handle does not support
func Precondition(typeName, detail string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindPrecondition,
		Type:   typeName,
		Detail: detail,
	}
}

// InvalidInput creates an error for malformed configuration or image data
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// AsError returns err as *Error when it is one, searching the wrap chain.
func AsError(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
