// Package errors provides structured error types for heap inspection.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the target type name, field name and, for memory
// failures, the address that could not be read.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRead, errors.KindMemoryRead).
//		Type("Person").
//		Field("Name").
//		Addr(0x1008).
//		Cause(ioErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownField("Person", "Age")
//	err := errors.MemoryRead(errors.PhaseRead, 0x1008, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
// Kind sentinels such as ErrUnknownField match any error of that kind:
//
//	if errors.Is(err, errors.ErrUnknownField) { ... }
package errors
