package object

import (
	"github.com/wippyai/heapinspect"
	"github.com/wippyai/heapinspect/errors"
)

// Handle is a typed reference to one object in the target.
// The zero Handle is a null handle of unknown type.
type Handle struct {
	typ  heapinspect.TypeDescriptor
	heap *Heap
	addr heapinspect.Address
}

// Address returns the object's address in the target.
func (h Handle) Address() heapinspect.Address { return h.addr }

// Type returns the handle's type descriptor. It is never nil.
func (h Handle) Type() heapinspect.TypeDescriptor {
	if h.typ == nil {
		return heapinspect.UnknownType
	}
	return h.typ
}

// Heap returns the heap the handle was created from, or nil for the zero Handle.
func (h Handle) Heap() *Heap { return h.heap }

// IsNull reports whether the handle refers to address 0.
func (h Handle) IsNull() bool { return h.addr == 0 }

// Size returns the instance size reported by the catalog.
func (h Handle) Size() uint64 { return h.Type().SizeOfInstance(h.addr) }

// IsBoxed reports whether the object is a boxed value type.
func (h Handle) IsBoxed() bool { return !h.Type().IsObjectReference() }

// IsArray reports whether the object is an array.
func (h Handle) IsArray() bool { return h.Type().IsArray() }

// Length returns the element count of an array object.
// Fails with a precondition error when the handle is not an array.
func (h Handle) Length() (int32, error) {
	typ := h.Type()
	if !typ.IsArray() {
		return 0, errors.Precondition(typ.Name(), "length requested on a non-array object")
	}
	if h.IsNull() {
		return 0, errors.NullTarget(typ.Name(), "")
	}
	n, err := typ.ArrayLength(h.addr)
	if err != nil {
		return 0, h.readError(err, h.addr, "")
	}
	return n, nil
}
