package object

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// Primitive is the set of Go types GetField can decode into.
type Primitive interface {
	bool | int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | heapinspect.Address
}

// resolve performs the metadata half of every field access: null check,
// then field lookup.
func (h Handle) resolve(name string) (heapinspect.FieldDescriptor, error) {
	if h.IsNull() {
		return nil, errors.NullTarget(h.Type().Name(), name)
	}
	f, ok := h.Type().FieldByName(name)
	if !ok || f == nil {
		return nil, errors.UnknownField(h.Type().Name(), name)
	}
	return f, nil
}

// readError converts a reader failure at addr into the handle's error.
// Non-read errors from the reader are returned unchanged.
func (h Handle) readError(err error, addr heapinspect.Address, field string) error {
	Logger().Debug("field read failed",
		zap.String("type", h.Type().Name()),
		zap.String("field", field),
		zap.Uint64("object", uint64(h.addr)),
		zap.Uint64("addr", uint64(addr)),
		zap.Error(err))

	if e, ok := errors.AsError(err); ok && e.Kind != errors.KindMemoryRead {
		return err
	}
	return errors.New(errors.PhaseRead, errors.KindMemoryRead).
		Type(h.Type().Name()).
		Field(field).
		Addr(uint64(addr)).
		Cause(err).
		Build()
}

func (h Handle) mismatch(f heapinspect.FieldDescriptor, requested heapinspect.ElementKind) error {
	return errors.TypeMismatch(h.Type().Name(), f.Name(), f.Kind().String(), requested.String())
}

// GetObjectField reads an object-reference field and returns a handle to the
// referenced object. A null reference yields a null handle whose type is
// whatever the catalog reports for address 0.
func (h Handle) GetObjectField(name string) (Handle, error) {
	f, err := h.resolve(name)
	if err != nil {
		return Handle{}, err
	}
	if f.Kind() != heapinspect.KindObject {
		return Handle{}, h.mismatch(f, heapinspect.KindObject)
	}

	addr := f.Address(h.addr)
	ptr, err := h.heap.reader.ReadPointer(addr)
	if err != nil {
		return Handle{}, h.readError(err, addr, name)
	}
	return h.heap.Create(ptr, h.heap.classify(ptr)), nil
}

// GetStringField reads a string-reference field and decodes the string it
// points to. A null reference decodes to the empty string.
func (h Handle) GetStringField(name string) (string, error) {
	f, err := h.resolve(name)
	if err != nil {
		return "", err
	}
	if f.Kind() != heapinspect.KindString {
		return "", h.mismatch(f, heapinspect.KindString)
	}

	addr := f.Address(h.addr)
	ptr, err := h.heap.reader.ReadPointer(addr)
	if err != nil {
		return "", h.readError(err, addr, name)
	}
	if ptr == 0 {
		return "", nil
	}
	s, err := h.heap.reader.ReadString(ptr)
	if err != nil {
		return "", h.readError(err, ptr, name)
	}
	return s, nil
}

// GetField decodes a field into T. The field's declared kind is not checked
// against T up front; the decoded value must already be a T or the call fails
// with an invalid_cast error.
func GetField[T Primitive](h Handle, name string) (T, error) {
	var zero T
	f, err := h.resolve(name)
	if err != nil {
		return zero, err
	}

	addr := f.Address(h.addr)
	v, err := h.heap.reader.DecodeValue(addr, f.Kind())
	if err != nil {
		return zero, h.readError(err, addr, name)
	}
	out, ok := v.(T)
	if !ok {
		return zero, errors.InvalidCast(h.Type().Name(), name, fmt.Sprintf("%T", v), fmt.Sprintf("%T", zero))
	}
	return out, nil
}

// Value reads a field according to its declared kind: a Handle for object
// fields, a string for string fields, and the decoded primitive otherwise.
func (h Handle) Value(name string) (any, error) {
	f, err := h.resolve(name)
	if err != nil {
		return nil, err
	}
	switch f.Kind() {
	case heapinspect.KindObject:
		return h.GetObjectField(name)
	case heapinspect.KindString:
		return h.GetStringField(name)
	}

	addr := f.Address(h.addr)
	v, err := h.heap.reader.DecodeValue(addr, f.Kind())
	if err != nil {
		return nil, h.readError(err, addr, name)
	}
	return v, nil
}
